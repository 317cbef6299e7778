// Package config loads YAML configuration for the clap detector and the
// games, and manages difficulty progression.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/clapjump/internal/audio"
	"github.com/vovakirdan/clapjump/internal/clap"
)

// ClapConfig configures microphone capture and the onset detector.
type ClapConfig struct {
	Detector DetectorConfig      `yaml:"detector"`
	Capture  audio.CaptureConfig `yaml:"capture"`
}

// DetectorConfig holds the detector tuning. Durations are written as
// strings such as "320ms".
type DetectorConfig struct {
	Sensitivity       float64       `yaml:"sensitivity"`
	SensitivityStep   float64       `yaml:"sensitivity_step"` // change per +/- key press
	BaseThreshold     float64       `yaml:"base_threshold"`
	NoiseFloor        float64       `yaml:"noise_floor"`
	Cooldown          time.Duration `yaml:"cooldown"`
	MinPeakSeparation time.Duration `yaml:"min_peak_separation"`
}

// Validate checks values the detector cannot work with.
func (c ClapConfig) Validate() error {
	var errs []error
	if c.Detector.BaseThreshold <= 0 {
		errs = append(errs, fmt.Errorf("detector.base_threshold must be positive, got %v", c.Detector.BaseThreshold))
	}
	if c.Detector.NoiseFloor < 0 {
		errs = append(errs, fmt.Errorf("detector.noise_floor must not be negative, got %v", c.Detector.NoiseFloor))
	}
	if c.Detector.Cooldown < 0 || c.Detector.MinPeakSeparation < 0 {
		errs = append(errs, errors.New("detector gates must not be negative"))
	}
	if c.Capture.WindowSize < 0 || c.Capture.SampleRate < 0 || c.Capture.FramesPerBuffer < 0 {
		errs = append(errs, errors.New("capture sizes must not be negative"))
	}
	return errors.Join(errs...)
}

// DetectorSettings converts the file form into a clap.Config without
// callbacks, clock or logger.
func (c ClapConfig) DetectorSettings() clap.Config {
	return clap.Config{
		Sensitivity:       c.Detector.Sensitivity,
		BaseThreshold:     c.Detector.BaseThreshold,
		NoiseFloor:        c.Detector.NoiseFloor,
		Cooldown:          c.Detector.Cooldown,
		MinPeakSeparation: c.Detector.MinPeakSeparation,
		Capture:           c.Capture,
	}
}

// PonyConfig configures the Pixel Pony Clap Jump game. World values are in
// pixels and seconds; the renderer scales them to terminal cells.
type PonyConfig struct {
	World      PonyWorld        `yaml:"world"`
	Level      LevelConfig      `yaml:"level"`
	Scoring    PonyScoring      `yaml:"scoring"`
	View       PonyView         `yaml:"view"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PonyWorld holds physics and body dimensions.
type PonyWorld struct {
	Height       float64 `yaml:"height"`
	GroundY      float64 `yaml:"ground_y"`
	Gravity      float64 `yaml:"gravity"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	FallKillY    float64 `yaml:"fall_kill_y"`
	StartX       float64 `yaml:"start_x"`
	PonyWidth    float64 `yaml:"pony_width"`
	PonyHeight   float64 `yaml:"pony_height"`
	FinishSize   float64 `yaml:"finish_size"`
}

// LevelConfig drives procedural level generation.
type LevelConfig struct {
	FinishX      float64        `yaml:"finish_x"`
	Tail         float64        `yaml:"tail"` // world extends this far past the finish
	SegmentWidth float64        `yaml:"segment_width"`
	SafeZone     float64        `yaml:"safe_zone"` // no gaps this close to start or finish
	PitBelow     float64        `yaml:"pit_below"`
	RiverBelow   float64        `yaml:"river_below"`
	Clouds       CloudConfig    `yaml:"clouds"`
	Obstacles    ObstacleConfig `yaml:"obstacles"`
	Seeds        SeedConfig     `yaml:"seeds"`
}

// CloudConfig places cloud platforms.
type CloudConfig struct {
	Count         int     `yaml:"count"`
	StartX        float64 `yaml:"start_x"`
	Spacing       float64 `yaml:"spacing"`
	JitterX       float64 `yaml:"jitter_x"`
	BaseY         float64 `yaml:"base_y"`
	JitterY       float64 `yaml:"jitter_y"`
	PlatformAbove float64 `yaml:"platform_above"` // roll above this is a full platform
	PlatformW     float64 `yaml:"platform_w"`
	PlatformH     float64 `yaml:"platform_h"`
	DecorW        float64 `yaml:"decor_w"`
	DecorH        float64 `yaml:"decor_h"`
	DecorBodyW    float64 `yaml:"decor_body_w"`
	DecorBodyH    float64 `yaml:"decor_body_h"`
}

// ObstacleConfig places grass and flower obstacles.
type ObstacleConfig struct {
	StartX        float64 `yaml:"start_x"`
	Spacing       float64 `yaml:"spacing"`
	EndMargin     float64 `yaml:"end_margin"`
	GrassBelow    float64 `yaml:"grass_below"`
	JitterX       float64 `yaml:"jitter_x"`
	SensorBefore  float64 `yaml:"sensor_before"`
	SensorAfter   float64 `yaml:"sensor_after"`
	SprintCount   int     `yaml:"sprint_count"`
	SprintStart   float64 `yaml:"sprint_start"` // distance before the finish
	SprintSpacing float64 `yaml:"sprint_spacing"`
}

// SeedConfig seeds the three level generators.
type SeedConfig struct {
	Ground    uint32 `yaml:"ground"`
	Clouds    uint32 `yaml:"clouds"`
	Obstacles uint32 `yaml:"obstacles"`
}

// PonyScoring holds score rules.
type PonyScoring struct {
	PassBase       int     `yaml:"pass_base"`
	ComboFactor    int     `yaml:"combo_factor"`
	ComboCap       int     `yaml:"combo_cap"`
	DistanceFactor float64 `yaml:"distance_factor"`
}

// PonyView maps world pixels to terminal cells.
type PonyView struct {
	CellWidth  float64 `yaml:"cell_width"`  // pixels per column
	PonyColumn int     `yaml:"pony_column"` // screen column the camera keeps the pony at
}

// FlappyConfig configures the Flappy game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters in cells per tick.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// FlappyPlayer defines the bird's hitbox.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DifficultyConfig defines difficulty progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty grows.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which difficulty peaks
}

// ScalingConfig defines the effect of full difficulty.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	GapReduction     int     `yaml:"gap_reduction"`
	SpacingReduction int     `yaml:"spacing_reduction"`
}

// DifficultyPreset is a named difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values give "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the starting level of a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts d for preset. An empty preset leaves d unchanged.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
