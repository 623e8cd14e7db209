package tetris

import (
	"fmt"
	"math/rand"
)

// Picker selects the kind of each new piece.
type Picker interface {
	// Next consumes and returns the next kind.
	Next() Kind
	// Peek returns the kind Next will return, without consuming it.
	Peek() Kind
}

// Randomizer names accepted by NewPicker.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// NewPicker builds a seeded picker by randomizer name.
func NewPicker(name string, seed int64) (Picker, error) {
	switch name {
	case "", RandomizerUniform:
		return NewUniformPicker(seed), nil
	case RandomizerBag:
		return NewBagPicker(seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfiguration, name)
	}
}

// UniformPicker draws every kind independently with equal probability.
type UniformPicker struct {
	rng  *rand.Rand
	next Kind
}

// NewUniformPicker creates a uniform picker. Equal seeds give equal sequences.
func NewUniformPicker(seed int64) *UniformPicker {
	p := &UniformPicker{rng: rand.New(rand.NewSource(seed))}
	p.next = p.draw()
	return p
}

func (p *UniformPicker) draw() Kind {
	return Kind(p.rng.Intn(KindCount))
}

// Next returns the next kind.
func (p *UniformPicker) Next() Kind {
	k := p.next
	p.next = p.draw()
	return k
}

// Peek returns the upcoming kind.
func (p *UniformPicker) Peek() Kind {
	return p.next
}

// BagPicker deals all seven kinds in a shuffled order before reshuffling.
type BagPicker struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagPicker creates a 7-bag picker. Equal seeds give equal sequences.
func NewBagPicker(seed int64) *BagPicker {
	return &BagPicker{rng: rand.New(rand.NewSource(seed))}
}

func (p *BagPicker) refill() {
	p.bag = append(p.bag[:0], AllKinds[:]...)
	p.rng.Shuffle(len(p.bag), func(i, j int) {
		p.bag[i], p.bag[j] = p.bag[j], p.bag[i]
	})
}

// Next returns the next kind from the bag.
func (p *BagPicker) Next() Kind {
	if len(p.bag) == 0 {
		p.refill()
	}
	k := p.bag[0]
	p.bag = p.bag[1:]
	return k
}

// Peek returns the upcoming kind.
func (p *BagPicker) Peek() Kind {
	if len(p.bag) == 0 {
		p.refill()
	}
	return p.bag[0]
}

// SequencePicker replays a fixed list of kinds, cycling when exhausted.
type SequencePicker struct {
	kinds []Kind
	pos   int
}

// NewSequencePicker creates a picker over kinds. An empty list yields KindI forever.
func NewSequencePicker(kinds ...Kind) *SequencePicker {
	return &SequencePicker{kinds: kinds}
}

// Next returns the next kind in the sequence.
func (p *SequencePicker) Next() Kind {
	k := p.Peek()
	if len(p.kinds) > 0 {
		p.pos = (p.pos + 1) % len(p.kinds)
	}
	return k
}

// Peek returns the upcoming kind.
func (p *SequencePicker) Peek() Kind {
	if len(p.kinds) == 0 {
		return KindI
	}
	return p.kinds[p.pos]
}
