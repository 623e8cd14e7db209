package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Visual characters.
const (
	blockChar = '█'
	ghostChar = '░'
	flashChar = '▓'
	trailChar = '·'
)

const (
	cellWidth = 2  // Screen columns per board cell
	panelW    = 16 // Side panel with score and preview
)

// kindColors maps a piece color index to a screen color.
var kindColors = [engine.KindCount]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindO: core.ColorYellow,
	engine.KindT: core.ColorMagenta,
	engine.KindS: core.ColorGreen,
	engine.KindZ: core.ColorRed,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
}

func pieceColor(c int) core.Color {
	if c < 0 || c >= len(kindColors) {
		return core.ColorWhite
	}
	return kindColors[c]
}

// layout is the screen placement of the well and side panel.
type layout struct {
	well        core.Rect
	panelX      int
	visibleRows int
}

func (g *Game) layout() layout {
	wellW := g.cfg.Board.Width*cellWidth + 2
	visible := core.Min(g.cfg.Board.SpawnRow+4, g.screenH-3)
	totalW := wellW + 1 + panelW
	left := core.Max(0, (g.screenW-totalW)/2)
	return layout{
		well:        core.NewRect(left, 1, wellW, visible+2),
		panelX:      left + wellW + 2,
		visibleRows: visible,
	}
}

// checkScreenSize needs room for the whole well width and every row up to
// the spawn row.
func (g *Game) checkScreenSize() {
	l := g.layout()
	minW := l.well.W + 1 + panelW
	minRows := core.Max(g.cfg.Board.SpawnRow, 4)
	g.tooSmall = g.screenW < minW || l.visibleRows < minRows
}

// toScreen converts a board cell to the screen position of its left half.
func (l layout) toScreen(x, y int) (int, int, bool) {
	if y < 0 || y >= l.visibleRows {
		return 0, 0, false
	}
	return l.well.X + 1 + x*cellWidth, l.well.Y + l.visibleRows - y, true
}

func (l layout) drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	sx, sy, ok := l.toScreen(x, y)
	if !ok || !l.well.Inset(1).Contains(sx, sy) {
		return
	}
	dst.SetColored(sx, sy, r, c)
	dst.SetColored(sx+1, sy, r, c)
}

// Render draws the game.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightWhite)
	dst.DrawBoxColored(l.well, core.ColorGray)

	g.renderStack(dst, l)
	if !g.eng.GameOver() {
		g.renderTrail(dst, l)
		g.renderGhost(dst, l)
		g.renderActive(dst, l)
	}
	g.renderPopups(dst, l)
	g.renderPanel(dst, l)
	g.renderOverlays(dst, l)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderStack(dst *core.Screen, l layout) {
	s := g.scene
	for y := 0; y < s.Height(); y++ {
		flashing := s.Flashing(y)
		for _, c := range s.Row(y) {
			switch {
			case flashing:
				l.drawCell(dst, c.X, y, flashChar, core.ColorBrightWhite)
			case s.Collapsing():
				cx, cy := s.CollapseOffset(c.X, y)
				l.drawCell(dst, cx, cy, blockChar, pieceColor(c.Color))
			default:
				l.drawCell(dst, c.X, y, blockChar, pieceColor(c.Color))
			}
		}
	}
}

func (g *Game) renderTrail(dst *core.Screen, l layout) {
	for _, c := range g.scene.TrailCells() {
		l.drawCell(dst, c.X, c.Y, trailChar, pieceColor(c.Color))
	}
}

func (g *Game) renderGhost(dst *core.Screen, l layout) {
	ghost, ok := g.eng.Ghost()
	if !ok {
		return
	}
	for _, c := range ghost.Cells() {
		l.drawCell(dst, c.X, c.Y, ghostChar, core.ColorGray)
	}
}

func (g *Game) renderActive(dst *core.Screen, l layout) {
	piece, ok := g.eng.Active()
	if !ok {
		return
	}
	for _, c := range piece.Cells() {
		l.drawCell(dst, c.X, c.Y, blockChar, pieceColor(c.Color))
	}
}

func (g *Game) renderPopups(dst *core.Screen, l layout) {
	for _, p := range g.scene.Popups() {
		_, sy, ok := l.toScreen(0, p.Row+g.scene.PopupOffset(p))
		if !ok {
			continue
		}
		color := core.ColorBrightWhite
		if p.Age*2 >= g.scene.ticks(popupSeconds) {
			color = core.ColorGray
		}
		x := l.well.X + (l.well.W-len(p.Text))/2
		dst.DrawTextColored(x, sy, p.Text, color)
	}
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	x, y := l.panelX, l.well.Y
	label := func(name string, value int) {
		dst.DrawTextColored(x, y, name, core.ColorGray)
		dst.DrawText(x, y+1, fmt.Sprintf("%d", value))
		y += 3
	}
	label("SCORE", g.eng.Score())
	label("LINES", g.eng.Lines())
	label("LEVEL", g.Level())

	if !g.cfg.Pieces.Preview || g.eng.GameOver() {
		return
	}
	dst.DrawTextColored(x, y, "NEXT", core.ColorGray)
	next := g.eng.Next()
	for _, o := range (engine.Tetromino{Kind: next}).Cells() {
		sx := x + o.X*cellWidth
		sy := y + 1 + (2 - o.Y)
		dst.SetColored(sx, sy, blockChar, pieceColor(next.Color()))
		dst.SetColored(sx+1, sy, blockChar, pieceColor(next.Color()))
	}
}

func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	inner := l.well.Inset(1)
	center := func(y int, text string, c core.Color) {
		dst.DrawTextColored(inner.X+(inner.W-len([]rune(text)))/2, y, text, c)
	}
	mid := inner.Y + inner.H/2

	switch {
	case g.eng.GameOver():
		center(mid-1, "GAME OVER", core.ColorRed)
		center(mid, fmt.Sprintf("Score %d", g.eng.Score()), core.ColorBrightWhite)
		center(mid+2, "R restart", core.ColorGray)
		center(mid+3, "Q quit", core.ColorGray)
	case g.paused:
		center(mid, "PAUSED", core.ColorYellow)
		center(mid+1, "P resume", core.ColorGray)
	}
}
