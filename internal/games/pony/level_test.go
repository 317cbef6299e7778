package pony

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/clapjump/internal/config"
)

func TestGenerateLevelIsDeterministic(t *testing.T) {
	cfg := config.DefaultPonyConfig().Level
	a := GenerateLevel(cfg)
	b := GenerateLevel(cfg)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("same config produced different levels")
	}
}

func TestGenerateLevelDefaultLayout(t *testing.T) {
	lvl := GenerateLevel(config.DefaultPonyConfig().Level)

	expectedGaps := []struct {
		x    float64
		kind GapKind
	}{
		{1400, River},
		{3400, River},
		{4200, Pit},
		{4800, Pit},
	}
	if len(lvl.Gaps) != len(expectedGaps) {
		t.Fatalf("gaps = %d, expected %d", len(lvl.Gaps), len(expectedGaps))
	}
	for i, want := range expectedGaps {
		got := lvl.Gaps[i]
		if got.Span.From != want.x || got.Kind != want.kind {
			t.Errorf("gap %d = %v at %v, expected %v at %v", i, got.Kind, got.Span.From, want.kind, want.x)
		}
	}
	if len(lvl.Ground)+len(lvl.Gaps) != 33 {
		t.Errorf("segments = %d, expected 33", len(lvl.Ground)+len(lvl.Gaps))
	}

	if len(lvl.Clouds) != 26 {
		t.Fatalf("clouds = %d, expected 26", len(lvl.Clouds))
	}
	first := lvl.Clouds[0]
	if first.Visual.X != 801 || first.Visual.Y != 198 || !first.Platform {
		t.Errorf("first cloud = %+v, expected platform at (801, 198)", first)
	}
	platforms := 0
	for _, c := range lvl.Clouds {
		if c.Platform {
			platforms++
		}
	}
	if platforms != 15 {
		t.Errorf("platform clouds = %d, expected 15", platforms)
	}

	// 18 spaced obstacles and a closing run of 5
	if len(lvl.Obstacles) != 23 {
		t.Fatalf("obstacles = %d, expected 23", len(lvl.Obstacles))
	}
	o := lvl.Obstacles[0]
	if o.X != 752 || o.Kind != Grass {
		t.Errorf("first obstacle = %v at %v, expected grass at 752", o.Kind, o.X)
	}
	if o.Sensor.From != 740 || o.Sensor.To != 786 {
		t.Errorf("first sensor = %+v, expected [740, 786]", o.Sensor)
	}

	sprint := lvl.Obstacles[18:]
	for i, s := range sprint {
		wantX := 5600 - 760 + float64(i)*130
		wantKind := Grass
		if i%2 == 0 {
			wantKind = Flower
		}
		if s.X != wantX || s.Kind != wantKind {
			t.Errorf("sprint obstacle %d = %v at %v, expected %v at %v", i, s.Kind, s.X, wantKind, wantX)
		}
	}
}

func TestNoGapsNearStartOrFinish(t *testing.T) {
	cfg := config.DefaultPonyConfig().Level
	cfg.PitBelow = 0.5
	cfg.RiverBelow = 1.0 // every eligible segment is a gap

	lvl := GenerateLevel(cfg)
	for _, g := range lvl.Gaps {
		if g.Span.From < cfg.SafeZone || g.Span.From > cfg.FinishX-cfg.SafeZone {
			t.Errorf("gap at %v inside a safe zone", g.Span.From)
		}
	}
	for _, s := range lvl.Ground {
		if s.From >= cfg.SafeZone && s.From <= cfg.FinishX-cfg.SafeZone {
			t.Errorf("ground at %v where a gap was forced", s.From)
		}
	}
}

func TestDecorativeCloudHasThinBody(t *testing.T) {
	cfg := config.DefaultPonyConfig().Level
	cfg.Clouds.PlatformAbove = 1.0 // nothing is a platform

	for _, c := range GenerateLevel(cfg).Clouds {
		if c.Platform {
			t.Fatal("no cloud should be a platform")
		}
		if c.Body.W != 40 || c.Body.H != 6 {
			t.Errorf("body = %+v, expected 40x6", c.Body)
		}
		if c.Body.X != c.Visual.X+25 || c.Body.Y != c.Visual.Y+8 {
			t.Errorf("body %+v not centered in %+v", c.Body, c.Visual)
		}
	}
}

func TestSeedsFor(t *testing.T) {
	def := config.DefaultPonyConfig().Level.Seeds
	if SeedsFor(def, 0) != def {
		t.Error("seed 0 should keep the configured seeds")
	}

	cfg := config.DefaultPonyConfig().Level
	cfg.Seeds = SeedsFor(def, 2024)
	if cfg.Seeds == def {
		t.Fatal("nonzero seed should change the seeds")
	}
	if reflect.DeepEqual(GenerateLevel(cfg), GenerateLevel(config.DefaultPonyConfig().Level)) {
		t.Error("a different seed should give a different level")
	}
}
