// Package pony implements Pixel Pony Clap Jump: a pony runs on its own
// across a generated level and the player's only input is jump.
package pony

import (
	"fmt"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

// Game implements registry.Game.
type Game struct {
	cfg        config.PonyConfig
	runtime    core.RuntimeConfig
	level      Level
	difficulty *config.DifficultyManager

	x, y     float64 // left edge and feet of the pony
	vy       float64
	grounded bool

	score    float64
	combo    int
	passed   []bool // per obstacle
	ticks    int
	gameOver bool
	won      bool
	paused   bool
	message  string
}

// New creates a game from cfg.
func New(cfg config.PonyConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns "pony".
func (g *Game) ID() string { return "pony" }

// Title returns the display name.
func (g *Game) Title() string { return "Pixel Pony Clap Jump" }

// Reset regenerates the level and puts the pony at the start.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	levelCfg := g.cfg.Level
	levelCfg.Seeds = SeedsFor(levelCfg.Seeds, runtime.Seed)
	g.level = GenerateLevel(levelCfg)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.x = g.cfg.World.StartX
	g.y = g.cfg.World.GroundY
	g.vy = 0
	g.grounded = true
	g.score = 0
	g.combo = 0
	g.passed = make([]bool, len(g.level.Obstacles))
	g.ticks = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.message = ""
}

// Level returns the current layout.
func (g *Game) Level() Level { return g.level }

// Position returns the pony's left edge and feet in world pixels.
func (g *Game) Position() (x, y float64) { return g.x, g.y }

// Grounded reports whether the pony stands on ground or a cloud.
func (g *Game) Grounded() bool { return g.grounded }

// Combo returns the number of obstacles cleared this run.
func (g *Game) Combo() int { return g.combo }

// body returns the pony's hitbox.
func (g *Game) body() Box {
	w := g.cfg.World
	return Box{X: g.x, Y: g.y - w.PonyHeight, W: w.PonyWidth, H: w.PonyHeight}
}

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	dt := g.runtime.Dt()
	w := g.cfg.World

	// Jumping needs something underfoot
	jumped := false
	if in.Has(core.ActionJump) && g.grounded {
		g.vy = -w.JumpVelocity
		g.grounded = false
		jumped = true
	}

	speed := g.difficulty.Speed(w.RunSpeed, g.State().Score, g.ticks)
	g.x += speed * dt
	g.move(dt)

	if g.x+w.PonyWidth >= g.level.FinishX-w.FinishSize/2 {
		g.won = true
		g.message = "Reached the finish!"
		return core.StepResult{State: g.State(), Jumped: jumped}
	}

	if g.checkObstacles() {
		return core.StepResult{State: g.State(), Jumped: jumped}
	}

	if g.y > w.FallKillY {
		g.end(fmt.Sprintf("Fell into the %s.", g.gapBelow()))
		return core.StepResult{State: g.State(), Jumped: jumped}
	}

	g.score += speed * dt * g.cfg.Scoring.DistanceFactor
	return core.StepResult{State: g.State(), Jumped: jumped}
}

// move integrates gravity and resolves landings and head bumps.
func (g *Game) move(dt float64) {
	w := g.cfg.World
	before := g.body()

	g.vy += w.Gravity * dt
	g.y += g.vy * dt
	after := g.body()

	if g.vy >= 0 {
		if top, ok := g.landing(before.Bottom(), after); ok {
			g.y = top
			g.vy = 0
			g.grounded = true
			return
		}
		g.grounded = false
		return
	}

	g.grounded = false
	for _, c := range g.level.Clouds {
		if after.OverlapsX(c.Body) && before.Y >= c.Body.Bottom() && after.Y < c.Body.Bottom() {
			g.y = c.Body.Bottom() + w.PonyHeight
			g.vy = 0
			return
		}
	}
}

// landing finds the highest surface the feet crossed this tick.
func (g *Game) landing(prevFeet float64, body Box) (float64, bool) {
	feet := body.Bottom()
	best, found := 0.0, false
	consider := func(top float64, span Box) {
		if !body.OverlapsX(span) || prevFeet > top || feet < top {
			return
		}
		if !found || top < best {
			best, found = top, true
		}
	}

	groundY := g.cfg.World.GroundY
	for _, s := range g.level.Ground {
		consider(groundY, Box{X: s.From, Y: groundY, W: s.To - s.From})
	}
	for _, c := range g.level.Clouds {
		consider(c.Body.Y, c.Body)
	}
	return best, found
}

// checkObstacles scores airborne passes and ends the run on a grounded
// touch. It reports whether the run ended.
func (g *Game) checkObstacles() bool {
	sc := g.cfg.Scoring
	for i, o := range g.level.Obstacles {
		if g.passed[i] || !o.Sensor.Contains(g.x) {
			continue
		}
		if g.grounded {
			g.end(fmt.Sprintf("Ran into the %s. Clap to jump!", o.Kind))
			return true
		}
		g.passed[i] = true
		g.combo++
		g.score += float64(sc.PassBase + min(sc.ComboCap, g.combo*sc.ComboFactor))
	}
	return false
}

// gapBelow names the hazard under the pony.
func (g *Game) gapBelow() string {
	body := g.body()
	for _, gap := range g.level.Gaps {
		if body.OverlapsX(Box{X: gap.Span.From, W: gap.Span.To - gap.Span.From}) {
			return gap.Kind.String()
		}
	}
	return "void"
}

func (g *Game) end(msg string) {
	g.gameOver = true
	g.message = msg
}

// Remaining returns the distance left to the finish.
func (g *Game) Remaining() float64 {
	return max(0, g.level.FinishX-g.x)
}

// State returns the current state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.score),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
		Message:  g.message,
	}
}
