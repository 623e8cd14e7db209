package tetris

import engine "github.com/vovakirdan/tui-tetris/internal/tetris"

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick   uint64
	Mode   string
	Phase  string
	Score  int
	Lines  int
	Level  int
	Pieces int
	Board  [][]int // Row 0 is the floor; 0 is empty, otherwise color index + 1
	Active engine.TetrisState
	Next   string
	Paused bool
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	board := g.eng.Board()
	grid := make([][]int, board.Height())
	for y := range grid {
		grid[y] = make([]int, board.Width())
		for x := range grid[y] {
			if c := board.Cell(x, y); c.Filled {
				grid[y][x] = c.Color + 1
			}
		}
	}

	active, _ := g.eng.Active()
	return Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Phase:  g.eng.Phase().String(),
		Score:  g.eng.Score(),
		Lines:  g.eng.Lines(),
		Level:  g.Level(),
		Pieces: g.eng.Pieces(),
		Board:  grid,
		Active: active,
		Next:   g.eng.Next().String(),
		Paused: g.paused,
	}
}
