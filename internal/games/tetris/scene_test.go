package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

func mergeRow(s *Scene, y int, xs ...int) {
	var ev engine.MergeEvent
	for i := range ev.Cells {
		x := xs[i%len(xs)]
		ev.Cells[i] = engine.CellPos{X: x, Y: y, Color: y}
	}
	s.Handle(ev)
}

func TestSceneAppliesShiftAfterFlash(t *testing.T) {
	s := NewScene(10, 1)
	mergeRow(s, 0, 0)
	mergeRow(s, 1, 0, 1, 2, 3)
	mergeRow(s, 2, 1)
	mergeRow(s, 3, 0, 1, 2, 3)
	mergeRow(s, 4, 2)
	require.Equal(t, 5, s.Height())

	s.Handle(engine.LinesClearedEvent{
		Rows:       []int{1, 3},
		ScoreDelta: 300,
		Score:      300,
		Shift:      engine.ShiftMap{0, -1, 1, -1, 2},
	})

	assert.True(t, s.Busy())
	assert.True(t, s.Flashing(1))
	assert.True(t, s.Flashing(3))
	assert.False(t, s.Flashing(2))
	assert.Equal(t, 5, s.Height(), "rows stay in place while they flash")

	for s.Busy() {
		s.Update()
	}

	assert.Equal(t, 3, s.Height())
	assert.Equal(t, 0, s.Row(0)[0].X)
	assert.Equal(t, 1, s.Row(1)[0].X, "row between the clears drops one")
	assert.Equal(t, 2, s.Row(2)[0].X, "row above both clears drops two")
	assert.Equal(t, 4, s.Row(2)[0].Color)
}

func TestSceneFlashDuration(t *testing.T) {
	s := NewScene(60, 1)
	mergeRow(s, 0, 0, 1, 2, 3)
	s.Handle(engine.LinesClearedEvent{Rows: []int{0}, ScoreDelta: 100, Shift: engine.ShiftMap{-1}})

	updates := 0
	for s.Busy() {
		s.Update()
		updates++
	}
	assert.Equal(t, 12, updates, "0.2s at 60 ticks per second")
}

func TestSceneMergeSettlesPendingFlash(t *testing.T) {
	s := NewScene(60, 1)
	mergeRow(s, 0, 0, 1, 2, 3)
	mergeRow(s, 1, 0)
	s.Handle(engine.LinesClearedEvent{Rows: []int{0}, Shift: engine.ShiftMap{-1, 0}})

	mergeRow(s, 1, 3)

	assert.False(t, s.Busy())
	assert.Equal(t, 2, s.Height())
	assert.Len(t, s.Row(0), 4, "old row 1 moved down before the new cells landed")
	assert.Equal(t, 3, s.Row(1)[0].X)
}

func TestSceneTracksActivePiece(t *testing.T) {
	s := NewScene(60, 1)
	s.Handle(engine.SpawnEvent{Kind: engine.KindL, X: 3, Y: 20, Color: engine.KindL.Color(), Next: engine.KindS})
	s.Handle(engine.MoveEvent{DX: -1})
	s.Handle(engine.MoveEvent{DY: -1})
	s.Handle(engine.RotateEvent{Rotation: 1, KickX: 1, KickY: 0})

	p, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 19, p.Y)
	assert.Equal(t, engine.Rotation(1), p.Rotation)
	assert.Equal(t, engine.KindS, s.Next())

	s.Handle(engine.MergeEvent{})
	_, ok = s.Active()
	assert.False(t, ok)
}

func TestSceneDropTrail(t *testing.T) {
	s := NewScene(60, 1)
	s.Handle(engine.SpawnEvent{Kind: engine.KindO, X: 3, Y: -1, Color: 1})

	s.Handle(engine.DropEvent{Distance: 0, MaxDistance: 20})
	assert.Empty(t, s.TrailCells(), "no trail without movement")

	s.Handle(engine.DropEvent{Distance: 20, MaxDistance: 20})
	cells := s.TrailCells()
	assert.Len(t, cells, 40, "two columns, twenty rows each")
	for _, c := range cells {
		assert.GreaterOrEqual(t, c.Y, 2, "trail starts above the piece")
	}

	// The longest drop lasts 0.4s.
	for i := 0; i < 23; i++ {
		s.Update()
	}
	assert.NotEmpty(t, s.TrailCells())
	s.Update()
	assert.Empty(t, s.TrailCells())
}

func TestSceneCollapseIsDeterministic(t *testing.T) {
	build := func() *Scene {
		s := NewScene(60, 99)
		for y := 0; y < 8; y++ {
			mergeRow(s, y, 0, 1)
		}
		s.Handle(engine.GameOverEvent{Score: 0})
		for i := 0; i < 45; i++ {
			s.Update()
		}
		return s
	}

	a, b := build(), build()
	require.True(t, a.Collapsing())
	for y := 0; y < 8; y++ {
		ax, ay := a.CollapseOffset(1, y)
		bx, by := b.CollapseOffset(1, y)
		assert.Equal(t, ax, bx)
		assert.Equal(t, ay, by)
		assert.LessOrEqual(t, ay, y)
	}

	x, y := a.CollapseOffset(1, 0)
	assert.Equal(t, 1, x, "the floor row does not drift")
	assert.Equal(t, 0, y)
}
