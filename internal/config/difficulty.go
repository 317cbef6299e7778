package config

// Minimum playable values, whatever the difficulty.
const (
	minGap     = 4
	minSpacing = 15
)

// DifficultyManager derives game parameters from score or elapsed ticks.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampUnit(cfg.InitialLevel)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether difficulty progresses during play.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [0, 1], interpolated from the initial
// level towards 1 as score or ticks approach Progression.MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	return d.cfg.InitialLevel + clampUnit(progress)*(1-d.cfg.InitialLevel)
}

// Speed scales baseSpeed up to baseSpeed*(1+SpeedMultiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize shrinks baseGap by up to GapReduction.
func (d *DifficultyManager) GapSize(baseGap, score, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.GapReduction))
	return max(baseGap-reduction, minGap)
}

// Spacing shrinks baseSpacing by up to SpacingReduction.
func (d *DifficultyManager) Spacing(baseSpacing, score, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.SpacingReduction))
	return max(baseSpacing-reduction, minSpacing)
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}
