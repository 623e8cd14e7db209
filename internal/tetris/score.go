package tetris

// ScoreTable awards points for rows cleared by a single merge.
type ScoreTable struct {
	Single int
	Double int
	Triple int
	// Tetris applies to four or more rows.
	Tetris int
}

// DefaultScoreTable returns the classic 100/300/500/800 table.
func DefaultScoreTable() ScoreTable {
	return ScoreTable{
		Single: 100,
		Double: 300,
		Triple: 500,
		Tetris: 800,
	}
}

// Delta returns the points for clearing the given number of rows at once.
func (t ScoreTable) Delta(rows int) int {
	switch {
	case rows <= 0:
		return 0
	case rows == 1:
		return t.Single
	case rows == 2:
		return t.Double
	case rows == 3:
		return t.Triple
	default:
		return t.Tetris
	}
}

// valid reports whether every entry is non-negative, which keeps the
// running score monotonic.
func (t ScoreTable) valid() bool {
	return t.Single >= 0 && t.Double >= 0 && t.Triple >= 0 && t.Tetris >= 0
}
