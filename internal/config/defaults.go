package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches the
// embedded defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:    10,
			SpawnRow: tetris.DefaultSpawnRow,
		},
		Pieces: PiecesConfig{
			Randomizer: tetris.RandomizerUniform,
			WallKicks:  true,
			Preview:    true,
		},
		Scoring: ScoringConfig{
			Single: 100,
			Double: 300,
			Triple: 500,
			Tetris: 800,
		},
		Gravity: GravityConfig{
			BaseInterval:     48,
			MinInterval:      3,
			SoftDropInterval: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  ProgressionLines,
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 12.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
