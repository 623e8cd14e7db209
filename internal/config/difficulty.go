package config

import "math"

// LevelCount is the number of displayed levels.
const LevelCount = 10

// DifficultyManager turns progress into a difficulty level and gravity
// timing.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// SetInitialLevel overrides the starting level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0, 1)
}

// SetEnabled turns progression on or off.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether difficulty changes during play.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Progress picks the counter the progression type follows. Time-based
// progression reads ticks instead and ignores this value.
func (d *DifficultyManager) Progress(score, lines int) int {
	if d.cfg.Progression.Type == ProgressionScore {
		return score
	}
	return lines
}

// Level returns the difficulty level in [0, 1]. progress is lines cleared or
// points (see Progress); ticks feeds time-based progression.
func (d *DifficultyManager) Level(progress, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var p float64
	switch d.cfg.Progression.Type {
	case ProgressionLines, ProgressionScore:
		p = float64(progress) / maxAt
	case ProgressionTime:
		p = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	p = clampF(p, 0, 1)
	return d.initialLevel + p*(1-d.initialLevel)
}

// LevelNumber maps Level onto 1..LevelCount for display.
func (d *DifficultyManager) LevelNumber(progress, ticks int) int {
	return 1 + int(d.Level(progress, ticks)*float64(LevelCount-1)+0.5)
}

// GravityInterval returns how many ticks pass between gravity steps. It
// starts at base and shrinks as the level rises, never below minInterval.
func (d *DifficultyManager) GravityInterval(base, minInterval, progress, ticks int) int {
	level := d.Level(progress, ticks)
	speed := 1 + level*d.cfg.Scaling.SpeedMultiplier
	if speed < 1 {
		speed = 1
	}
	interval := int(math.Round(float64(base) / speed))
	if interval < minInterval {
		interval = minInterval
	}
	if interval > base {
		interval = base
	}
	return interval
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
