// Package config loads game settings from YAML and turns difficulty
// settings into gravity timing.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// TetrisConfig is everything a Tetris run can be tuned with.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Pieces     PiecesConfig     `yaml:"pieces"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Gravity    GravityConfig    `yaml:"gravity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sizes the well.
type BoardConfig struct {
	Width    int `yaml:"width"`
	SpawnRow int `yaml:"spawn_row"` // Anchor row of new pieces, counted up from the floor
}

// PiecesConfig selects how pieces are dealt and rotated.
type PiecesConfig struct {
	Randomizer string `yaml:"randomizer"` // "uniform" or "bag"
	WallKicks  bool   `yaml:"wall_kicks"`
	Preview    bool   `yaml:"preview"` // Show the next piece
}

// ScoringConfig is the points table for 1..4 simultaneous clears.
type ScoringConfig struct {
	Single int `yaml:"single"`
	Double int `yaml:"double"`
	Triple int `yaml:"triple"`
	Tetris int `yaml:"tetris"`
}

// GravityConfig holds drop intervals in simulation ticks.
type GravityConfig struct {
	BaseInterval     int `yaml:"base_interval"`      // At difficulty level 0
	MinInterval      int `yaml:"min_interval"`       // Floor reached at high levels
	SoftDropInterval int `yaml:"soft_drop_interval"` // While down is held
}

// DifficultyConfig defines how the game speeds up.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Progression types.
const (
	ProgressionLines = "lines"
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "score", "time" or "none"
	MaxAt int    `yaml:"max_at"` // Lines, points or ticks at which the top level is reached
}

// ScalingConfig sets how much faster gravity gets at the top level.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// DifficultyPreset is a named difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the starting level for a preset.
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

// ApplyTetrisPreset adjusts cfg for a difficulty preset. The fixed preset
// keeps the initial level and turns progression off.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Pieces.Preview = true
	case DifficultyHard:
		cfg.Gravity.SoftDropInterval = 1
	}
}

// Validate reports the first setting the engine or game loop cannot run with.
// Errors wrap tetris.ErrInvalidConfiguration.
func (c TetrisConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{tetris.ErrInvalidConfiguration}, args...)...)
	}

	if c.Board.Width < tetris.MinWidth {
		return invalid("board.width %d is below %d", c.Board.Width, tetris.MinWidth)
	}
	if c.Board.SpawnRow < 0 {
		return invalid("board.spawn_row %d is negative", c.Board.SpawnRow)
	}
	switch c.Pieces.Randomizer {
	case "", tetris.RandomizerUniform, tetris.RandomizerBag:
	default:
		return invalid("pieces.randomizer %q", c.Pieces.Randomizer)
	}
	if c.Scoring.Single < 0 || c.Scoring.Double < 0 || c.Scoring.Triple < 0 || c.Scoring.Tetris < 0 {
		return invalid("scoring values must not be negative")
	}
	if c.Gravity.MinInterval < 1 || c.Gravity.BaseInterval < c.Gravity.MinInterval {
		return invalid("gravity needs 1 <= min_interval <= base_interval, got %d and %d",
			c.Gravity.MinInterval, c.Gravity.BaseInterval)
	}
	if c.Gravity.SoftDropInterval < 1 {
		return invalid("gravity.soft_drop_interval must be at least 1")
	}
	switch c.Difficulty.Progression.Type {
	case ProgressionLines, ProgressionScore, ProgressionTime, ProgressionNone:
	default:
		return invalid("difficulty.progression.type %q", c.Difficulty.Progression.Type)
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		return invalid("difficulty.initial_level %.2f is outside [0, 1]", c.Difficulty.InitialLevel)
	}
	return nil
}

// ScoreTable converts the scoring section for the engine.
func (c TetrisConfig) ScoreTable() tetris.ScoreTable {
	return tetris.ScoreTable{
		Single: c.Scoring.Single,
		Double: c.Scoring.Double,
		Triple: c.Scoring.Triple,
		Tetris: c.Scoring.Tetris,
	}
}

// ToEngineConfig builds the engine configuration with the given picker.
func (c TetrisConfig) ToEngineConfig(picker tetris.Picker) tetris.Config {
	return tetris.Config{
		Width:     c.Board.Width,
		SpawnRow:  c.Board.SpawnRow,
		WallKicks: c.Pieces.WallKicks,
		Scoring:   c.ScoreTable(),
		Picker:    picker,
	}
}
