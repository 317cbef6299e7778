package pony

import (
	"math"

	"github.com/vovakirdan/clapjump/internal/config"
	"github.com/vovakirdan/clapjump/internal/core"
)

// GapKind distinguishes the two kinds of hole in the ground.
type GapKind int

const (
	Pit GapKind = iota
	River
)

func (k GapKind) String() string {
	if k == River {
		return "river"
	}
	return "pit"
}

// ObstacleKind is the look of an obstacle; both must be jumped.
type ObstacleKind int

const (
	Grass ObstacleKind = iota
	Flower
)

func (k ObstacleKind) String() string {
	if k == Flower {
		return "flower"
	}
	return "grass"
}

// Box is a world-space rectangle in pixels, y growing downwards.
type Box struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// OverlapsX reports whether b and o share horizontal extent.
func (b Box) OverlapsX(o Box) bool {
	return b.X < o.Right() && o.X < b.Right()
}

// Gap is a missing ground segment.
type Gap struct {
	Span core.Span
	Kind GapKind
}

// Cloud is a platform in the sky. Decorative clouds have only a thin body
// in their middle.
type Cloud struct {
	Visual   Box
	Body     Box
	Platform bool
}

// Obstacle must be passed while airborne. Sensor is the x-range in which
// the pony's position is checked.
type Obstacle struct {
	X      float64
	Kind   ObstacleKind
	Sensor core.Span
}

// Level is a generated layout.
type Level struct {
	Ground    []core.Span // solid ground segments
	Gaps      []Gap
	Clouds    []Cloud
	Obstacles []Obstacle
	FinishX   float64
	Width     float64
}

// GenerateLevel builds a layout from cfg. Equal configs give equal levels.
func GenerateLevel(cfg config.LevelConfig) Level {
	lvl := Level{
		FinishX: cfg.FinishX,
		Width:   cfg.FinishX + cfg.Tail,
	}
	lvl.Ground, lvl.Gaps = generateGround(cfg)
	lvl.Clouds = generateClouds(cfg.Clouds, cfg.Seeds.Clouds)
	lvl.Obstacles = generateObstacles(cfg)
	return lvl
}

func generateGround(cfg config.LevelConfig) ([]core.Span, []Gap) {
	if cfg.SegmentWidth <= 0 {
		return nil, nil
	}

	rng := NewMulberry32(cfg.Seeds.Ground)
	total := int(math.Ceil((cfg.FinishX + cfg.Tail) / cfg.SegmentWidth))

	var ground []core.Span
	var gaps []Gap
	for i := 0; i < total; i++ {
		x := float64(i) * cfg.SegmentWidth
		span := core.Span{From: x, To: x + cfg.SegmentWidth}

		// The roll only happens away from the start and finish
		if x >= cfg.SafeZone && x <= cfg.FinishX-cfg.SafeZone {
			r := rng.Float64()
			switch {
			case r < cfg.PitBelow:
				gaps = append(gaps, Gap{Span: span, Kind: Pit})
				continue
			case r < cfg.RiverBelow:
				gaps = append(gaps, Gap{Span: span, Kind: River})
				continue
			}
		}
		ground = append(ground, span)
	}
	return ground, gaps
}

func generateClouds(cfg config.CloudConfig, seed uint32) []Cloud {
	rng := NewMulberry32(seed)
	clouds := make([]Cloud, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		x := cfg.StartX + float64(i)*cfg.Spacing + math.Floor(rng.Float64()*cfg.JitterX)
		y := cfg.BaseY + math.Floor(rng.Float64()*cfg.JitterY)
		platform := rng.Float64() > cfg.PlatformAbove

		c := Cloud{Platform: platform}
		if platform {
			c.Visual = Box{X: x, Y: y, W: cfg.PlatformW, H: cfg.PlatformH}
			c.Body = c.Visual
		} else {
			c.Visual = Box{X: x, Y: y, W: cfg.DecorW, H: cfg.DecorH}
			c.Body = Box{
				X: x + (cfg.DecorW-cfg.DecorBodyW)/2,
				Y: y + (cfg.DecorH-cfg.DecorBodyH)/2,
				W: cfg.DecorBodyW,
				H: cfg.DecorBodyH,
			}
		}
		clouds = append(clouds, c)
	}
	return clouds
}

func generateObstacles(cfg config.LevelConfig) []Obstacle {
	oc := cfg.Obstacles
	rng := NewMulberry32(cfg.Seeds.Obstacles)

	var obstacles []Obstacle
	place := func(x float64, kind ObstacleKind) {
		obstacles = append(obstacles, Obstacle{
			X:      x,
			Kind:   kind,
			Sensor: core.Span{From: x - oc.SensorBefore, To: x + oc.SensorAfter},
		})
	}

	if oc.Spacing > 0 {
		for x := oc.StartX; x < cfg.FinishX-oc.EndMargin; x += oc.Spacing {
			kind := Flower
			if rng.Float64() < oc.GrassBelow {
				kind = Grass
			}
			place(x+math.Floor(rng.Float64()*oc.JitterX), kind)
		}
	}

	// A closing run of alternating obstacles before the finish
	for i := 0; i < oc.SprintCount; i++ {
		kind := Grass
		if i%2 == 0 {
			kind = Flower
		}
		place(cfg.FinishX-oc.SprintStart+float64(i)*oc.SprintSpacing, kind)
	}
	return obstacles
}

// SeedsFor derives generator seeds from a run seed. Zero keeps cfg's seeds.
func SeedsFor(cfg config.SeedConfig, seed int64) config.SeedConfig {
	if seed == 0 {
		return cfg
	}
	s := uint32(seed) ^ uint32(seed>>32)
	return config.SeedConfig{
		Ground:    s,
		Clouds:    s*31 + 7,
		Obstacles: s*17 + 99,
	}
}
