// Package tetris implements the falling-block game-state engine: piece
// tables, the locked-cell grid, collision and merge rules, line clears and
// scoring. It has no rendering dependencies; presentation layers subscribe
// to the events the Engine publishes.
package tetris

import (
	"errors"
	"fmt"
)

// MinWidth is the smallest board width that fits every piece footprint.
const MinWidth = 4

// ErrInvalidConfiguration is returned when an engine or board is built
// from unusable parameters.
var ErrInvalidConfiguration = errors.New("tetris: invalid configuration")

// Cell is a single grid position. Color is a piece color index (0..6) and is
// meaningful only when Filled is set.
type Cell struct {
	Filled bool
	Color  int
}

// Row is one horizontal line of the board, always Board.Width() long.
type Row []Cell

// full reports whether every column of the row is occupied.
func (r Row) full() bool {
	for _, c := range r {
		if !c.Filled {
			return false
		}
	}
	return true
}

// empty reports whether no column of the row is occupied.
func (r Row) empty() bool {
	for _, c := range r {
		if c.Filled {
			return false
		}
	}
	return true
}

// Board is a fixed-width grid that grows upward. Row 0 is the floor.
// Positions above the highest stored row are treated as empty.
type Board struct {
	width int
	rows  []Row
}

// NewBoard creates an empty board with the given column count.
func NewBoard(width int) (*Board, error) {
	if width < MinWidth {
		return nil, fmt.Errorf("%w: board width %d is below minimum %d", ErrInvalidConfiguration, width, MinWidth)
	}
	return &Board{width: width}, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of stored rows (highest occupied row + 1).
func (b *Board) Height() int {
	return len(b.rows)
}

// IsInBounds reports whether column x lies inside the board.
func (b *Board) IsInBounds(x int) bool {
	return x >= 0 && x < b.width
}

// IsOccupied reports whether (x, y) holds a locked cell.
func (b *Board) IsOccupied(x, y int) bool {
	if y < 0 || y >= len(b.rows) || !b.IsInBounds(x) {
		return false
	}
	return b.rows[y][x].Filled
}

// Cell returns the cell at (x, y), or an empty cell outside recorded rows.
func (b *Board) Cell(x, y int) Cell {
	if !b.IsOccupied(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// SetCell locks a cell, appending empty rows until row y exists.
// Out-of-range columns and negative rows are ignored.
func (b *Board) SetCell(x, y, color int) {
	if y < 0 || !b.IsInBounds(x) {
		return
	}
	for len(b.rows) <= y {
		b.rows = append(b.rows, make(Row, b.width))
	}
	b.rows[y][x] = Cell{Filled: true, Color: color}
}

// FullRows returns the indices of completely filled rows in ascending order.
func (b *Board) FullRows() []int {
	var full []int
	for y, row := range b.rows {
		if row.full() {
			full = append(full, y)
		}
	}
	return full
}

// RemoveRows deletes the given rows (ascending, no duplicates) and shifts the
// rows above them down. The returned ShiftMap tells callers where each
// surviving row went; it is the only way row indices of locked cells change.
func (b *Board) RemoveRows(rows []int) ShiftMap {
	newRows, shift := CollapseRows(b.rows, rows)
	b.rows = newRows
	return shift
}

// Rows returns a deep copy of the stored rows, floor first.
func (b *Board) Rows() []Row {
	out := make([]Row, len(b.rows))
	for i, row := range b.rows {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{width: b.width, rows: b.Rows()}
}

// ShiftMap maps an old row index to its index after a removal.
// Removed rows map to -1. Rows at or above len(ShiftMap) keep their
// distance from the top and are resolved with Resolve.
type ShiftMap []int

// Resolve returns the new index of an old row, or -1 if it was removed.
// Rows beyond the recorded range shift by the total number of removed rows.
func (s ShiftMap) Resolve(row int) int {
	if row < 0 {
		return -1
	}
	if row < len(s) {
		return s[row]
	}
	removed := 0
	for _, n := range s {
		if n < 0 {
			removed++
		}
	}
	return row - removed
}

// CollapseRows is the pure form of row removal. It returns a new row slice
// without the rows listed in remove and the shift mapping from old to new
// indices: each kept row moves down by the number of removed rows strictly
// below it. Empty rows left on top are trimmed. Invalid or unsorted indices
// are skipped.
func CollapseRows(rows []Row, remove []int) ([]Row, ShiftMap) {
	shift := make(ShiftMap, len(rows))
	drop := make(map[int]bool, len(remove))
	last := -1
	for _, r := range remove {
		if r <= last || r >= len(rows) {
			continue
		}
		drop[r] = true
		last = r
	}

	kept := make([]Row, 0, len(rows)-len(drop))
	removedBelow := 0
	for y, row := range rows {
		if drop[y] {
			shift[y] = -1
			removedBelow++
			continue
		}
		shift[y] = y - removedBelow
		kept = append(kept, row)
	}

	for len(kept) > 0 && kept[len(kept)-1].empty() {
		kept = kept[:len(kept)-1]
	}
	return kept, shift
}
