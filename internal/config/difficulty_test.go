package config

import "testing"

func linesDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressionLines, MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 9},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(linesDifficulty())

	tests := []struct {
		progress int
		expected float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tt := range tests {
		if got := d.Level(tt.progress, 0); got != tt.expected {
			t.Errorf("Level(%d, 0) = %.2f, expected %.2f", tt.progress, got, tt.expected)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	d := NewDifficultyManager(linesDifficulty())
	d.SetInitialLevel(0.5)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at start = %.2f, expected 0.5", got)
	}
	if got := d.Level(50, 0); got != 0.75 {
		t.Errorf("Level halfway = %.2f, expected 0.75", got)
	}

	d.SetInitialLevel(3)
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("initial level should clamp to 1, got %.2f", got)
	}
}

func TestDifficultyProgressionTypes(t *testing.T) {
	cfg := linesDifficulty()
	cfg.Progression.Type = ProgressionScore
	d := NewDifficultyManager(cfg)
	if p := d.Progress(1200, 7); p != 1200 {
		t.Errorf("score progression: Progress = %d, expected 1200", p)
	}

	cfg.Progression.Type = ProgressionLines
	d = NewDifficultyManager(cfg)
	if p := d.Progress(1200, 7); p != 7 {
		t.Errorf("lines progression: Progress = %d, expected 7", p)
	}

	cfg.Progression.Type = ProgressionTime
	d = NewDifficultyManager(cfg)
	if got := d.Level(0, 50); got != 0.5 {
		t.Errorf("time progression: Level(0, 50) = %.2f, expected 0.5", got)
	}

	cfg.Progression.Type = ProgressionNone
	d = NewDifficultyManager(cfg)
	if d.IsEnabled() {
		t.Error("progression none should report disabled")
	}
	if got := d.Level(100, 100); got != 0 {
		t.Errorf("disabled progression: Level = %.2f, expected 0", got)
	}
}

func TestGravityInterval(t *testing.T) {
	d := NewDifficultyManager(linesDifficulty())

	tests := []struct {
		name     string
		progress int
		expected int
	}{
		{"level zero uses base", 0, 40},
		{"half way", 50, 7},   // 40 / (1 + 0.5*9) = 7.27
		{"top level", 100, 4}, // 40 / 10
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.GravityInterval(40, 2, tt.progress, 0); got != tt.expected {
				t.Errorf("GravityInterval = %d, expected %d", got, tt.expected)
			}
		})
	}

	if got := d.GravityInterval(40, 6, 100, 0); got != 6 {
		t.Errorf("GravityInterval should not go below min, got %d", got)
	}
}

func TestGravityIntervalMonotonic(t *testing.T) {
	d := NewDifficultyManager(linesDifficulty())
	prev := d.GravityInterval(48, 3, 0, 0)
	for lines := 1; lines <= 120; lines++ {
		got := d.GravityInterval(48, 3, lines, 0)
		if got > prev {
			t.Fatalf("interval grew from %d to %d at %d lines", prev, got, lines)
		}
		prev = got
	}
}

func TestLevelNumber(t *testing.T) {
	d := NewDifficultyManager(linesDifficulty())
	if n := d.LevelNumber(0, 0); n != 1 {
		t.Errorf("LevelNumber at start = %d, expected 1", n)
	}
	if n := d.LevelNumber(100, 0); n != LevelCount {
		t.Errorf("LevelNumber at top = %d, expected %d", n, LevelCount)
	}
}
