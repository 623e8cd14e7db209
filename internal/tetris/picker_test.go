package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagPickerDealsEveryKind(t *testing.T) {
	p := NewBagPicker(42)

	for bag := 0; bag < 5; bag++ {
		seen := make(map[Kind]int)
		for i := 0; i < KindCount; i++ {
			peek := p.Peek()
			k := p.Next()
			assert.Equal(t, peek, k)
			seen[k]++
		}
		assert.Len(t, seen, KindCount, "bag %d", bag)
	}
}

func TestPickerDeterminism(t *testing.T) {
	for _, name := range []string{RandomizerUniform, RandomizerBag} {
		t.Run(name, func(t *testing.T) {
			a, err := NewPicker(name, 7)
			require.NoError(t, err)
			b, err := NewPicker(name, 7)
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				assert.Equal(t, a.Next(), b.Next(), "draw %d", i)
			}
		})
	}
}

func TestUniformPickerRange(t *testing.T) {
	p := NewUniformPicker(1)
	seen := make(map[Kind]bool)
	for i := 0; i < 500; i++ {
		peek := p.Peek()
		k := p.Next()
		require.True(t, k.Valid())
		assert.Equal(t, peek, k)
		seen[k] = true
	}
	assert.Len(t, seen, KindCount)
}

func TestSequencePickerCycles(t *testing.T) {
	p := NewSequencePicker(KindS, KindZ)
	assert.Equal(t, KindS, p.Next())
	assert.Equal(t, KindZ, p.Peek())
	assert.Equal(t, KindZ, p.Next())
	assert.Equal(t, KindS, p.Next())

	empty := NewSequencePicker()
	assert.Equal(t, KindI, empty.Next())
}

func TestNewPickerUnknown(t *testing.T) {
	_, err := NewPicker("gumball", 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	p, err := NewPicker("", 0)
	require.NoError(t, err)
	assert.IsType(t, &UniformPicker{}, p)
}

func TestScoreTableDelta(t *testing.T) {
	table := DefaultScoreTable()
	tests := []struct {
		rows int
		want int
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
		{5, 800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Delta(tt.rows), "rows=%d", tt.rows)
	}
}
