package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/clapjump/internal/audio"
)

//go:embed defaults/clap.yaml
var defaultClapYAML []byte

//go:embed defaults/pony.yaml
var defaultPonyYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultClapConfig returns the game tuning of the detector.
func DefaultClapConfig() ClapConfig {
	return ClapConfig{
		Detector: DetectorConfig{
			Sensitivity:       1.15,
			SensitivityStep:   0.05,
			BaseThreshold:     0.055,
			NoiseFloor:        0.012,
			Cooldown:          320 * time.Millisecond,
			MinPeakSeparation: 80 * time.Millisecond,
		},
		Capture: audio.DefaultCaptureConfig(),
	}
}

// DefaultPonyConfig returns the Pixel Pony layout and physics.
func DefaultPonyConfig() PonyConfig {
	return PonyConfig{
		World: PonyWorld{
			Height:       540,
			GroundY:      410,
			Gravity:      1300,
			RunSpeed:     220,
			JumpVelocity: 560,
			FallKillY:    560,
			StartX:       140,
			PonyWidth:    28,
			PonyHeight:   32,
			FinishSize:   120,
		},
		Level: LevelConfig{
			FinishX:      5600,
			Tail:         900,
			SegmentWidth: 200,
			SafeZone:     600,
			PitBelow:     0.14,
			RiverBelow:   0.23,
			Clouds: CloudConfig{
				Count:         26,
				StartX:        800,
				Spacing:       190,
				JitterX:       160,
				BaseY:         190,
				JitterY:       140,
				PlatformAbove: 0.35,
				PlatformW:     120,
				PlatformH:     26,
				DecorW:        90,
				DecorH:        22,
				DecorBodyW:    40,
				DecorBodyH:    6,
			},
			Obstacles: ObstacleConfig{
				StartX:        680,
				Spacing:       260,
				EndMargin:     260,
				GrassBelow:    0.55,
				JitterX:       90,
				SensorBefore:  12,
				SensorAfter:   34,
				SprintCount:   5,
				SprintStart:   760,
				SprintSpacing: 130,
			},
			Seeds: SeedConfig{Ground: 42, Clouds: 7, Obstacles: 99},
		},
		Scoring: PonyScoring{
			PassBase:       10,
			ComboFactor:    2,
			ComboCap:       30,
			DistanceFactor: 0.06,
		},
		View: PonyView{
			CellWidth:  12,
			PonyColumn: 14,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "time", MaxAt: 3600},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    5,
			PipeSpacing:  40,
			MinGapSize:   8,
			MaxGapSize:   12,
			TopMargin:    3,
			BottomMargin: 3,
		},
		Player: FlappyPlayer{X: 10, Width: 2, Height: 2},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 50},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     4,
				SpacingReduction: 15,
			},
		},
	}
}

// DefaultYAML returns the embedded default file for name ("clap", "pony"
// or "flappy").
func DefaultYAML(name string) []byte {
	switch name {
	case "clap":
		return defaultClapYAML
	case "pony":
		return defaultPonyYAML
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
