package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '█', core.ColorCyan)
	s.SetColored(3, 0, '█', core.ColorCyan)
	s.SetColored(4, 0, '█', core.ColorOrange)
	s.DrawText(0, 1, "score")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d has width %d, want 6", i, w)
		}
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "score") {
		t.Errorf("plain text lost: %q", out)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault, core.ColorRed, core.ColorGreen, core.ColorYellow,
		core.ColorBlue, core.ColorMagenta, core.ColorCyan, core.ColorWhite,
		core.ColorOrange, core.ColorGray, core.ColorBrightWhite,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
}
