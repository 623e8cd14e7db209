package tetris

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kamstrup/intmap"

	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Effect timings, in seconds.
const (
	flashSeconds    = 0.2
	popupSeconds    = 2.0
	collapseSeconds = 1.5
	popupRise       = 4 // Rows a score popup climbs while fading
)

// SceneCell is one locked cell in the scene's row index.
type SceneCell struct {
	X     int
	Color int
}

// Popup is a floating "+points" label.
type Popup struct {
	Text string
	Row  int
	Age  int
}

type flash struct {
	rows  []int
	shift engine.ShiftMap
	left  int
}

type trail struct {
	cells []engine.CellPos
	left  int
	total int
}

type collapse struct {
	dirs []int // Horizontal drift per row: -1, 0 or 1
	age  int
}

// Scene is the visual side of a run. It is driven only by engine events
// and keeps its own copy of the locked cells, indexed by row, so effects can
// outlive the engine's instant updates: cleared rows flash before the stack
// above them drops.
type Scene struct {
	rows   *intmap.Map[int, []SceneCell]
	height int

	active    engine.TetrisState
	hasActive bool
	next      engine.Kind

	flash    *flash
	popups   []Popup
	trail    *trail
	collapse *collapse

	tickRate int
	rng      *rand.Rand
	unsub    func()
}

// NewScene creates an empty scene. tickRate converts effect durations to
// ticks; seed drives the game-over collapse.
func NewScene(tickRate int, seed int64) *Scene {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scene{
		rows:     intmap.New[int, []SceneCell](32),
		tickRate: tickRate,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Attach subscribes the scene to eng, replacing any previous engine.
func (s *Scene) Attach(eng *engine.Engine) {
	if s.unsub != nil {
		s.unsub()
	}
	s.unsub = eng.Subscribe(s.Handle)
}

// Detach stops listening to the engine.
func (s *Scene) Detach() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *Scene) ticks(seconds float64) int {
	return max(1, int(math.Round(seconds*float64(s.tickRate))))
}

// Handle applies one engine event.
func (s *Scene) Handle(ev engine.Event) {
	switch e := ev.(type) {
	case engine.SpawnEvent:
		s.active = engine.TetrisState{
			Tetromino: engine.Tetromino{Kind: e.Kind, Rotation: e.Rotation},
			X:         e.X,
			Y:         e.Y,
			Color:     e.Color,
		}
		s.hasActive = true
		s.next = e.Next

	case engine.MoveEvent:
		s.active.X += e.DX
		s.active.Y += e.DY

	case engine.RotateEvent:
		s.active.Rotation = e.Rotation
		s.active.X += e.KickX
		s.active.Y += e.KickY

	case engine.DropEvent:
		s.startTrail(e)

	case engine.MergeEvent:
		s.settle()
		s.hasActive = false
		for _, c := range e.Cells {
			s.add(c.Y, SceneCell{X: c.X, Color: c.Color})
		}

	case engine.LinesClearedEvent:
		s.settle()
		s.flash = &flash{rows: e.Rows, shift: e.Shift, left: s.ticks(flashSeconds)}
		if len(e.Rows) > 0 {
			s.popups = append(s.popups, Popup{Text: fmt.Sprintf("+%d", e.ScoreDelta), Row: e.Rows[0]})
		}

	case engine.GameOverEvent:
		s.settle()
		s.hasActive = false
		s.trail = nil
		dirs := make([]int, s.height)
		for i := range dirs {
			dirs[i] = s.rng.Intn(3) - 1
		}
		s.collapse = &collapse{dirs: dirs}
	}
}

func (s *Scene) add(row int, c SceneCell) {
	cells, _ := s.rows.Get(row)
	s.rows.Put(row, append(cells, c))
	if row >= s.height {
		s.height = row + 1
	}
}

// startTrail records the columns the piece fell through. The trail lasts
// between 0.1s and 0.4s, longer for longer drops.
func (s *Scene) startTrail(e engine.DropEvent) {
	if e.Distance <= 0 || !s.hasActive {
		return
	}
	percent := 0.0
	if e.MaxDistance > 1 {
		percent = float64(e.Distance-1) / float64(e.MaxDistance-1)
	}
	total := s.ticks(percent*0.3 + 0.1)

	piece := make(map[[2]int]bool, 4)
	for _, c := range s.active.Cells() {
		piece[[2]int{c.X, c.Y}] = true
	}
	var cells []engine.CellPos
	for _, c := range s.active.Cells() {
		for d := 1; d <= e.Distance; d++ {
			if piece[[2]int{c.X, c.Y + d}] {
				break
			}
			cells = append(cells, engine.CellPos{X: c.X, Y: c.Y + d, Color: c.Color})
		}
	}
	s.trail = &trail{cells: cells, left: total, total: total}
}

// settle finishes a pending row flash: cleared rows disappear and the rows
// above move down according to the shift map.
func (s *Scene) settle() {
	if s.flash == nil {
		return
	}
	shift := s.flash.shift
	s.flash = nil

	rebuilt := intmap.New[int, []SceneCell](max(s.height, 1))
	height := 0
	for y := 0; y < s.height; y++ {
		cells, ok := s.rows.Get(y)
		if !ok || len(cells) == 0 {
			continue
		}
		ny := shift.Resolve(y)
		if ny < 0 {
			continue
		}
		rebuilt.Put(ny, cells)
		if ny >= height {
			height = ny + 1
		}
	}
	s.rows = rebuilt
	s.height = height
}

// Update advances every running effect by one tick.
func (s *Scene) Update() {
	if s.flash != nil {
		s.flash.left--
		if s.flash.left <= 0 {
			s.settle()
		}
	}

	if s.trail != nil {
		s.trail.left--
		if s.trail.left <= 0 {
			s.trail = nil
		}
	}

	popupTicks := s.ticks(popupSeconds)
	live := s.popups[:0]
	for _, p := range s.popups {
		p.Age++
		if p.Age < popupTicks {
			live = append(live, p)
		}
	}
	s.popups = live

	if s.collapse != nil && s.collapse.age < s.ticks(collapseSeconds) {
		s.collapse.age++
	}
}

// Busy reports whether an effect is holding the game, i.e. rows are flashing.
func (s *Scene) Busy() bool {
	return s.flash != nil
}

// Height returns the number of rows the scene currently tracks.
func (s *Scene) Height() int {
	return s.height
}

// Row returns the locked cells of row y in the order they were merged.
func (s *Scene) Row(y int) []SceneCell {
	cells, _ := s.rows.Get(y)
	return cells
}

// Flashing reports whether row y is a cleared row still fading out.
func (s *Scene) Flashing(y int) bool {
	if s.flash == nil {
		return false
	}
	for _, r := range s.flash.rows {
		if r == y {
			return true
		}
	}
	return false
}

// Popups returns the live score popups.
func (s *Scene) Popups() []Popup {
	return s.popups
}

// PopupOffset returns how many rows popup p has risen.
func (s *Scene) PopupOffset(p Popup) int {
	return p.Age * popupRise / s.ticks(popupSeconds)
}

// Active returns the piece as tracked from spawn, move and rotate events.
func (s *Scene) Active() (engine.TetrisState, bool) {
	return s.active, s.hasActive
}

// Next returns the upcoming kind announced by the last spawn.
func (s *Scene) Next() engine.Kind {
	return s.next
}

// TrailCells returns the drop trail, empty once it has faded.
func (s *Scene) TrailCells() []engine.CellPos {
	if s.trail == nil {
		return nil
	}
	return s.trail.cells
}

// Collapsing reports whether the game-over collapse has started.
func (s *Scene) Collapsing() bool {
	return s.collapse != nil
}

// CollapseOffset returns where a cell originally at (x, y) is drawn during
// the game-over collapse: rows slide apart sideways, higher rows further,
// and sink toward the floor.
func (s *Scene) CollapseOffset(x, y int) (int, int) {
	if s.collapse == nil || y >= len(s.collapse.dirs) {
		return x, y
	}
	age := s.collapse.age
	dx := s.collapse.dirs[y] * y * age / (2 * s.tickRate)
	dy := max(0, y-age*y/s.ticks(collapseSeconds))
	return x + dx, dy
}
