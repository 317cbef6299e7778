package flappy

import (
	"testing"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newGame(seed int64) *Game {
	g := New(config.DefaultFlappyConfig())
	g.Reset(testRuntime(seed))
	return g
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, int) {
		g := newGame(12345)
		var st core.GameState
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			if i%15 == 0 {
				in.Set(core.ActionJump)
			}
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st, g.ticks
	}

	s1, t1 := run()
	s2, t2 := run()
	if s1 != s2 {
		t.Errorf("states differ: %+v vs %+v", s1, s2)
	}
	if t1 != t2 {
		t.Errorf("tick counts differ: %d vs %d", t1, t2)
	}
}

func TestGameReset(t *testing.T) {
	g := newGame(42)
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}

	g.Reset(testRuntime(42))
	if g.score != 0 || g.ticks != 0 || g.gameOver || g.paused {
		t.Errorf("Reset left state behind: score=%d ticks=%d over=%v paused=%v", g.score, g.ticks, g.gameOver, g.paused)
	}
	if len(g.pipes.list) != 0 {
		t.Errorf("Reset should clear pipes, got %d", len(g.pipes.list))
	}
}

func TestJumpMovesUp(t *testing.T) {
	g := newGame(1)
	y0 := g.y

	res := g.Step(jump())
	if !res.Jumped {
		t.Error("StepResult.Jumped should be set on a flap")
	}
	if g.y >= y0 {
		t.Errorf("flap should move up, was %f now %f", y0, g.y)
	}
	if g.vel >= 0 {
		t.Errorf("velocity after flap should be negative, got %f", g.vel)
	}
}

func TestGravity(t *testing.T) {
	g := newGame(1)
	g.y, g.vel = 10, 0

	res := g.Step(core.NewInputFrame())
	if res.Jumped {
		t.Error("Jumped set without input")
	}
	if g.y <= 10 || g.vel <= 0 {
		t.Errorf("gravity should pull down, y=%f vel=%f", g.y, g.vel)
	}
}

func TestFallSpeedCapped(t *testing.T) {
	g := newGame(1)
	g.y, g.vel = 2, 50

	g.Step(core.NewInputFrame())
	if limit := g.cfg.Physics.MaxFallSpeed; g.vel != limit {
		t.Errorf("vel = %f, expected cap %f", g.vel, limit)
	}
}

func TestPause(t *testing.T) {
	g := newGame(1)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.paused {
		t.Fatal("game should be paused")
	}

	y := g.y
	g.Step(jump())
	if g.y != y {
		t.Errorf("position changed while paused: %f -> %f", y, g.y)
	}

	g.Step(pause)
	if g.paused {
		t.Error("game should be unpaused")
	}
}

func TestGroundEndsRun(t *testing.T) {
	g := newGame(1)
	g.y, g.vel = 21, 3

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("hitting the ground should end the run")
	}
	if res.State.Message != "Hit the ground." {
		t.Errorf("message = %q", res.State.Message)
	}
}

func TestJumpIgnoredAfterGameOver(t *testing.T) {
	g := newGame(1)
	g.y, g.vel = 21, 3
	g.Step(core.NewInputFrame())

	y := g.y
	res := g.Step(jump())
	if res.Jumped {
		t.Error("Jumped should not be reported after game over")
	}
	if g.y != y {
		t.Errorf("bird moved after game over: %f -> %f", y, g.y)
	}
}

func TestPipeCollision(t *testing.T) {
	g := newGame(1)
	g.pipes.list = append(g.pipes.list, Pipe{
		X:         float64(g.cfg.Player.X - 1),
		GapY:      0,
		GapHeight: 5,
	})
	g.y, g.vel = 15, 0

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || res.State.Message != "Hit a pipe." {
		t.Errorf("expected pipe collision, got %+v", res.State)
	}
}

func TestPassingPipeScores(t *testing.T) {
	g := newGame(1)
	g.pipes.list = []Pipe{{X: float64(g.cfg.Player.X - g.cfg.Obstacles.PipeWidth), GapY: 0, GapHeight: 23}}
	g.y, g.vel = 12, 0

	res := g.Step(core.NewInputFrame())
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if !g.pipes.list[0].Passed {
		t.Error("pipe should be marked passed")
	}
}

func TestSpawnedGapWithinBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	p := newPipes(7, cfg.Obstacles, diff, 80, 23)

	for i := 0; i < 200; i++ {
		p.spawn(i, i*10)
	}
	for _, pipe := range p.list {
		if pipe.GapHeight < cfg.Obstacles.MinGapSize || pipe.GapHeight > cfg.Obstacles.MaxGapSize {
			t.Errorf("gap height %d outside [%d, %d]", pipe.GapHeight, cfg.Obstacles.MinGapSize, cfg.Obstacles.MaxGapSize)
		}
		if pipe.GapY < cfg.Obstacles.TopMargin {
			t.Errorf("gap starts at %d, above top margin", pipe.GapY)
		}
		if pipe.GapY+pipe.GapHeight > 23-cfg.Obstacles.BottomMargin {
			t.Errorf("gap ends at %d, below bottom margin", pipe.GapY+pipe.GapHeight)
		}
	}
}

func TestRender(t *testing.T) {
	g := newGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Get(0, 23); got != '═' {
		t.Errorf("ground = %q, expected '═'", got)
	}
	b := g.bird()
	if got := screen.GetCell(b.X, b.Y); got.Rune != '●' || got.Color != core.ColorBrightYellow {
		t.Errorf("bird cell = %+v", got)
	}
}
