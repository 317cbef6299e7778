// Package flappy implements a one-button flappy game: each jump, whether
// a clap or a key press, is one flap.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

// Game is the flappy game. Physics run in cells per tick.
type Game struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	pipes      *pipes
	runtime    core.RuntimeConfig

	y, vel   float64
	score    int
	ticks    int
	gameOver bool
	paused   bool
	message  string
}

// New creates a game from cfg.
func New(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns "flappy".
func (g *Game) ID() string { return "flappy" }

// Title returns the display name.
func (g *Game) Title() string { return "Flappy Clap" }

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.pipes = newPipes(runtime.Seed, g.cfg.Obstacles, g.difficulty, runtime.ScreenW, g.floorY())

	g.y = float64(runtime.ScreenH) / 2
	g.vel = 0
	g.score = 0
	g.ticks = 0
	g.gameOver = false
	g.paused = false
	g.message = ""
}

// floorY is the first row of the ground line.
func (g *Game) floorY() int {
	return g.runtime.ScreenH - 1
}

func (g *Game) bird() core.Rect {
	p := g.cfg.Player
	return core.NewRect(p.X, int(g.y), p.Width, p.Height)
}

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	ph := g.cfg.Physics

	flapped := in.Has(core.ActionJump)
	if flapped {
		g.vel = ph.JumpImpulse
	}
	g.vel = min(g.vel+ph.Gravity, ph.MaxFallSpeed)
	g.y += g.vel

	speed := max(g.difficulty.Speed(ph.BaseSpeed, g.score, g.ticks), 0.1)
	g.score += g.pipes.update(speed, g.cfg.Player.X, g.score, g.ticks)

	switch {
	case g.y < 0:
		g.y = 0
		g.end("Flew into the sky.")
	case int(g.y)+g.cfg.Player.Height > g.floorY():
		g.y = float64(g.floorY() - g.cfg.Player.Height)
		g.end("Hit the ground.")
	case g.pipes.collides(g.bird()):
		g.end("Hit a pipe.")
	}

	return core.StepResult{State: g.State(), Jumped: flapped}
}

func (g *Game) end(msg string) {
	g.gameOver = true
	g.message = msg
}

// Render draws the bird, pipes and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	floor := g.floorY()
	dst.DrawHLine(0, floor, dst.Width(), '═', core.ColorGreen)

	for _, p := range g.pipes.list {
		top, bottom := p.rects(g.cfg.Obstacles.PipeWidth, floor)
		dst.FillRect(top, '█', core.ColorGreen)
		dst.FillRect(bottom, '█', core.ColorGreen)
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, '▄', core.ColorBrightGreen)
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, '▀', core.ColorBrightGreen)
	}

	b := g.bird()
	dst.FillRect(b, '●', core.ColorBrightYellow)
	dst.SetColored(b.Right()-1, b.Y, '▶', core.ColorOrange)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))
	if g.difficulty.IsEnabled() {
		spd := fmt.Sprintf(" Spd: %.1f ", g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.ticks))
		dst.DrawText(dst.Width()-len(spd)-2, 0, spd)
	}

	switch {
	case g.gameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("%s Score: %d  |  R to restart", g.message, g.score), core.ColorBrightRed)
	case g.paused:
		dst.DrawMessage("PAUSED", "Press P to resume", core.ColorWhite)
	}
}

// State returns the current state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Message:  g.message,
	}
}
