package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseTetris(GetDefaultYAML("tetris"))
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultTetrisConfig().Validate(); err != nil {
		t.Errorf("DefaultTetrisConfig().Validate() = %v, expected nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
	}{
		{"narrow board", func(c *TetrisConfig) { c.Board.Width = 3 }},
		{"negative spawn row", func(c *TetrisConfig) { c.Board.SpawnRow = -1 }},
		{"unknown randomizer", func(c *TetrisConfig) { c.Pieces.Randomizer = "gumball" }},
		{"negative score", func(c *TetrisConfig) { c.Scoring.Double = -5 }},
		{"zero min interval", func(c *TetrisConfig) { c.Gravity.MinInterval = 0 }},
		{"base below min", func(c *TetrisConfig) { c.Gravity.BaseInterval = 2 }},
		{"zero soft drop", func(c *TetrisConfig) { c.Gravity.SoftDropInterval = 0 }},
		{"unknown progression", func(c *TetrisConfig) { c.Difficulty.Progression.Type = "moon" }},
		{"initial level above one", func(c *TetrisConfig) { c.Difficulty.InitialLevel = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tetris.ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestParseTetrisLayersOverDefaults(t *testing.T) {
	cfg, err := ParseTetris([]byte("board:\n  width: 12\npieces:\n  randomizer: bag\n"))
	if err != nil {
		t.Fatalf("ParseTetris: %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("Board.Width = %d, expected 12", cfg.Board.Width)
	}
	if cfg.Pieces.Randomizer != tetris.RandomizerBag {
		t.Errorf("Pieces.Randomizer = %q, expected bag", cfg.Pieces.Randomizer)
	}
	if cfg.Board.SpawnRow != tetris.DefaultSpawnRow {
		t.Errorf("Board.SpawnRow = %d, expected default %d", cfg.Board.SpawnRow, tetris.DefaultSpawnRow)
	}
	if cfg.Scoring.Tetris != 800 {
		t.Errorf("Scoring.Tetris = %d, expected 800", cfg.Scoring.Tetris)
	}
}

func TestParseTetrisRejectsBadInput(t *testing.T) {
	if _, err := ParseTetris([]byte("board: [")); err == nil {
		t.Error("malformed YAML should fail")
	}

	cfg, err := ParseTetris([]byte("board:\n  width: 2\n"))
	if !errors.Is(err, tetris.ErrInvalidConfiguration) {
		t.Errorf("ParseTetris error = %v, expected ErrInvalidConfiguration", err)
	}
	if cfg.Board.Width != 10 {
		t.Errorf("failed parse should return defaults, got width %d", cfg.Board.Width)
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("board:\n  spawn_row: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg.Board.SpawnRow != 16 {
		t.Errorf("Board.SpawnRow = %d, expected 16", cfg.Board.SpawnRow)
	}

	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestLoadTetrisSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadTetris("")
	if err != nil {
		t.Fatalf("LoadTetris: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Error("with no files present the embedded defaults should load")
	}

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", "tetris.yaml"), []byte("board:\n  width: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTetris("")
	if cfg.Board.Width != 8 {
		t.Errorf("local config: Board.Width = %d, expected 8", cfg.Board.Width)
	}

	userDir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "tetris.yaml"), []byte("board:\n  width: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTetris("")
	if cfg.Board.Width != 6 {
		t.Errorf("user config should win: Board.Width = %d, expected 6", cfg.Board.Width)
	}

	// An invalid user file falls through to the next location.
	if err := os.WriteFile(filepath.Join(userDir, "tetris.yaml"), []byte("board:\n  width: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadTetris("")
	if cfg.Board.Width != 8 {
		t.Errorf("invalid user config should be skipped: Board.Width = %d, expected 8", cfg.Board.Width)
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%.1f", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Gravity.SoftDropInterval != 1 {
		t.Errorf("hard preset: SoftDropInterval = %d, expected 1", cfg.Gravity.SoftDropInterval)
	}

	ApplyTetrisPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) = %v", name, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestToEngineConfig(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Board.Width = 12
	cfg.Pieces.WallKicks = false

	picker := tetris.NewSequencePicker(tetris.KindO)
	ec := cfg.ToEngineConfig(picker)

	if ec.Width != 12 || ec.SpawnRow != tetris.DefaultSpawnRow || ec.WallKicks {
		t.Errorf("ToEngineConfig = %+v", ec)
	}
	if ec.Scoring != tetris.DefaultScoreTable() {
		t.Errorf("Scoring = %+v, expected default table", ec.Scoring)
	}
	if ec.Picker != picker {
		t.Error("picker should be passed through")
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("engine config should validate: %v", err)
	}
}
