package tetris

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven tetromino shapes.
// The kind's numeric value doubles as its color index.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct tetromino kinds.
const KindCount = 7

// AllKinds lists every kind in table order.
var AllKinds = [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

var kindNames = [KindCount]string{"I", "O", "T", "S", "Z", "J", "L"}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < KindCount
}

// Color returns the color index used for cells of this kind.
func (k Kind) Color() int {
	return int(k)
}

// ParseKind parses a single-letter kind name, case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("tetris: unknown piece kind %q", s)
}

// Rotation is a rotation state: 0 spawn, 1 clockwise, 2 flipped, 3 counter-clockwise.
type Rotation int

// Rotate returns the rotation reached by turning dir quarter turns
// (positive is clockwise).
func (r Rotation) Rotate(dir int) Rotation {
	return Rotation(((int(r)+dir)%4 + 4) % 4)
}

// Offset is a cell position relative to a piece anchor. Y points up.
type Offset struct {
	X, Y int
}

// shapes holds the four cell offsets of every kind in every rotation.
// Offsets sit inside a 4x4 box anchored at its bottom-left corner and follow
// the SRS orientation of each state.
var shapes = [KindCount][4][4]Offset{
	KindI: {
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 3}, {2, 2}, {2, 1}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{1, 3}, {1, 2}, {1, 1}, {1, 0}},
	},
	KindO: {
		{{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		{{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		{{1, 2}, {2, 2}, {1, 1}, {2, 1}},
		{{1, 2}, {2, 2}, {1, 1}, {2, 1}},
	},
	KindT: {
		{{1, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {1, 1}, {2, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		{{1, 2}, {0, 1}, {1, 1}, {1, 0}},
	},
	KindS: {
		{{1, 2}, {2, 2}, {0, 1}, {1, 1}},
		{{1, 2}, {1, 1}, {2, 1}, {2, 0}},
		{{1, 1}, {2, 1}, {0, 0}, {1, 0}},
		{{0, 2}, {0, 1}, {1, 1}, {1, 0}},
	},
	KindZ: {
		{{0, 2}, {1, 2}, {1, 1}, {2, 1}},
		{{2, 2}, {1, 1}, {2, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {1, 0}, {2, 0}},
		{{1, 2}, {0, 1}, {1, 1}, {0, 0}},
	},
	KindJ: {
		{{0, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {2, 2}, {1, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 0}},
		{{1, 2}, {1, 1}, {0, 0}, {1, 0}},
	},
	KindL: {
		{{2, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {1, 1}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 0}},
		{{0, 2}, {1, 2}, {1, 1}, {1, 0}},
	},
}

// Tetromino is a piece kind in a rotation state. It carries no position;
// TetrisState pairs it with an anchor.
type Tetromino struct {
	Kind     Kind
	Rotation Rotation
}

// Cells returns the four cell offsets for the current kind and rotation.
func (t Tetromino) Cells() [4]Offset {
	return shapes[t.Kind][t.Rotation.Rotate(0)]
}

// X returns the x offset of cell i.
func (t Tetromino) X(i int) int {
	return t.Cells()[i].X
}

// Y returns the y offset of cell i.
func (t Tetromino) Y(i int) int {
	return t.Cells()[i].Y
}

// Rotated returns the tetromino turned dir quarter turns.
func (t Tetromino) Rotated(dir int) Tetromino {
	return Tetromino{Kind: t.Kind, Rotation: t.Rotation.Rotate(dir)}
}

// SRS wall-kick tests, indexed by the starting rotation for clockwise turns.
// Counter-clockwise turns use the negated tests of the reverse transition.
var (
	kicksJLSTZ = [4][5]Offset{
		{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}}, // 0 -> 1
		{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},     // 1 -> 2
		{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},    // 2 -> 3
		{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},  // 3 -> 0
	}
	kicksI = [4][5]Offset{
		{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // 0 -> 1
		{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // 1 -> 2
		{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // 2 -> 3
		{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // 3 -> 0
	}
	noKick = []Offset{{0, 0}}
)

// Kicks returns the ordered anchor offsets to test when rotating kind from
// one state to an adjacent one. The first test is always (0, 0).
func Kicks(kind Kind, from, to Rotation) []Offset {
	if kind == KindO {
		return noKick
	}
	table := &kicksJLSTZ
	if kind == KindI {
		table = &kicksI
	}

	from, to = from.Rotate(0), to.Rotate(0)
	switch {
	case to == from.Rotate(1):
		tests := table[from]
		return tests[:]
	case to == from.Rotate(-1):
		reverse := table[to]
		tests := make([]Offset, len(reverse))
		for i, o := range reverse {
			tests[i] = Offset{X: -o.X, Y: -o.Y}
		}
		return tests
	default:
		return noKick
	}
}
