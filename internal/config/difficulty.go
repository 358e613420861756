package config

// DifficultyManager turns a score or a tick count into a difficulty level and
// the scroll speed that goes with it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for cfg. The initial level is
// clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		start: min(max(cfg.InitialLevel, 0), 1),
	}
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [0, 1]. It rises linearly from the initial
// level and reaches 1 once the score (or tick count) hits max_at.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.start
	}

	var reached float64
	switch d.cfg.Progression.Type {
	case "score":
		reached = float64(score)
	case "time":
		reached = float64(ticks)
	default:
		return d.start
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	progress := min(max(reached/maxAt, 0), 1)
	return d.start + progress*(1-d.start)
}

// Speed scales baseSpeed by the current level, up to
// baseSpeed * (1 + speed_multiplier) at full difficulty.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks uint64) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}
