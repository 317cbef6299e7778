package pony

import (
	"strings"
	"testing"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

func newGame(t *testing.T, mutate func(*config.PonyConfig)) *Game {
	t.Helper()
	cfg := config.DefaultPonyConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(cfg)
	g.Reset(core.DefaultConfig())
	return g
}

func jump() core.InputFrame {
	f := core.NewInputFrame()
	f.Set(core.ActionJump)
	f.Source = core.SourceClap
	return f
}

// flatLevel removes every hazard.
func flatLevel(c *config.PonyConfig) {
	c.Level.PitBelow = 0
	c.Level.RiverBelow = 0
	c.Level.Clouds.Count = 0
	c.Level.Obstacles.Spacing = 0
	c.Level.Obstacles.SprintCount = 0
}

func runUntil(g *Game, maxTicks int, stop func() bool) {
	for i := 0; i < maxTicks && !stop(); i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestRunningIntoObstacleEndsRun(t *testing.T) {
	g := newGame(t, nil)

	runUntil(g, 2000, func() bool { return g.State().Ended() })

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state = %+v, expected game over", st)
	}
	if !strings.Contains(st.Message, "grass") {
		t.Errorf("message = %q, expected the first obstacle (grass)", st.Message)
	}
	x, _ := g.Position()
	if x < 740 || x > 786 {
		t.Errorf("ended at x=%v, expected inside the first sensor", x)
	}
}

func TestJumpClearsObstacle(t *testing.T) {
	g := newGame(t, nil)

	runUntil(g, 1000, func() bool { x, _ := g.Position(); return x >= 690 })
	if res := g.Step(jump()); !res.Jumped {
		t.Fatal("grounded pony should jump")
	}
	runUntil(g, 1000, func() bool { x, _ := g.Position(); return x >= 900 || g.State().Ended() })

	st := g.State()
	if st.Ended() {
		t.Fatalf("run ended: %q", st.Message)
	}
	if g.Combo() != 1 {
		t.Errorf("Combo() = %d, expected 1", g.Combo())
	}
	// 10 + min(30, 1*2) plus distance
	if st.Score < 12 {
		t.Errorf("Score = %d, expected at least 12", st.Score)
	}
	if !g.Grounded() {
		t.Error("pony should have landed")
	}
}

func TestComboScoreIsCapped(t *testing.T) {
	g := newGame(t, flatLevel)
	g.combo = 20

	g.level.Obstacles = []Obstacle{{X: 300, Sensor: core.Span{From: 0, To: 1000}}}
	g.passed = []bool{false}
	g.Step(jump())

	// 10 + min(30, 21*2)
	if st := g.State(); st.Score < 40 || st.Score > 41 {
		t.Errorf("Score = %d, expected 40 plus a sliver of distance", st.Score)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	g := newGame(t, flatLevel)

	if !g.Step(jump()).Jumped {
		t.Fatal("first jump should be accepted")
	}
	_, y0 := g.Position()
	if res := g.Step(jump()); res.Jumped {
		t.Error("jump in mid-air should be ignored")
	}
	_, y1 := g.Position()
	if y1 >= y0 {
		t.Errorf("pony should still be rising: y %v -> %v", y0, y1)
	}
}

func TestEndedRunIgnoresJump(t *testing.T) {
	g := newGame(t, nil)
	runUntil(g, 2000, func() bool { return g.State().Ended() })

	before := g.State()
	x0, y0 := g.Position()
	res := g.Step(jump())

	if res.Jumped {
		t.Error("jump after game over should be ignored")
	}
	if x1, y1 := g.Position(); x1 != x0 || y1 != y0 || g.State() != before {
		t.Error("ended game should not change")
	}
}

func TestReachingFinishWins(t *testing.T) {
	g := newGame(t, func(c *config.PonyConfig) {
		flatLevel(c)
		c.Level.FinishX = 1000
	})

	runUntil(g, 2000, func() bool { return g.State().Ended() })

	st := g.State()
	if !st.Won || st.GameOver {
		t.Fatalf("state = %+v, expected a win", st)
	}
	if st.Score <= 0 {
		t.Error("distance should have scored")
	}
	// The pony's front reaches the finish box, half its width before FinishX
	if g.Remaining() > 100 {
		t.Errorf("Remaining() = %v at the finish", g.Remaining())
	}
}

func TestFallingIntoPitEndsRun(t *testing.T) {
	g := newGame(t, func(c *config.PonyConfig) {
		flatLevel(c)
		c.Level.SafeZone = 0
		c.Level.PitBelow = 1
		c.Level.RiverBelow = 1
	})

	runUntil(g, 600, func() bool { return g.State().Ended() })

	st := g.State()
	if !st.GameOver {
		t.Fatalf("state = %+v, expected game over", st)
	}
	if !strings.Contains(st.Message, "pit") {
		t.Errorf("message = %q, expected a pit", st.Message)
	}
}

func TestLandsOnCloud(t *testing.T) {
	g := newGame(t, flatLevel)
	cloud := Box{X: 300, Y: 330, W: 400, H: 26}
	g.level.Clouds = []Cloud{{Visual: cloud, Body: cloud, Platform: true}}

	g.Step(jump())
	runUntil(g, 200, g.Grounded)

	_, y := g.Position()
	if y != 330 {
		t.Errorf("feet at %v, expected the cloud top 330", y)
	}
	if !g.Step(jump()).Jumped {
		t.Error("pony on a cloud should be able to jump")
	}
}

func TestHeadBumpOnCloud(t *testing.T) {
	g := newGame(t, flatLevel)
	cloud := Box{X: 0, Y: 320, W: 1000, H: 26}
	g.level.Clouds = []Cloud{{Visual: cloud, Body: cloud, Platform: true}}

	g.Step(jump())
	runUntil(g, 10, func() bool { return g.vy >= 0 })

	_, y := g.Position()
	if y-g.cfg.World.PonyHeight < cloud.Bottom() {
		t.Errorf("head at %v passed through the cloud bottom %v", y-g.cfg.World.PonyHeight, cloud.Bottom())
	}

	runUntil(g, 200, g.Grounded)
	if _, y := g.Position(); y != g.cfg.World.GroundY {
		t.Errorf("pony should fall back to the ground, feet at %v", y)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newGame(t, flatLevel)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	x0, _ := g.Position()
	g.Step(core.NewInputFrame())
	if x1, _ := g.Position(); x1 != x0 {
		t.Error("paused game should not move")
	}
	if !g.State().Paused {
		t.Error("State().Paused should be true")
	}
}

func TestResetRestoresStart(t *testing.T) {
	g := newGame(t, nil)
	runUntil(g, 2000, func() bool { return g.State().Ended() })

	g.Reset(core.DefaultConfig())
	x, y := g.Position()
	if x != 140 || y != 410 || g.State().Ended() || g.State().Score != 0 {
		t.Errorf("after Reset: x=%v y=%v state=%+v", x, y, g.State())
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, nil)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	if !strings.Contains(scr.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}

	found := false
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if c := scr.GetCell(x, y); c.Rune == '█' && c.Color == core.ColorBrightYellow {
				found = true
			}
		}
	}
	if !found {
		t.Error("pony not drawn")
	}
	if !strings.Contains(scr.Row(18), "▀") {
		t.Errorf("ground row = %q", scr.Row(18))
	}
}
