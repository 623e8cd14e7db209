package tetris

import "fmt"

// Phase is the state-machine position of an Engine.
type Phase int

const (
	// PhaseSpawning is the momentary state before a new piece is placed.
	PhaseSpawning Phase = iota
	// PhaseActive means a piece is falling and accepts moves.
	PhaseActive
	// PhaseMergePending is held while a settled piece is merged and rows cleared.
	PhaseMergePending
	// PhaseGameOver is terminal; every mutating call becomes a no-op.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseActive:
		return "active"
	case PhaseMergePending:
		return "merge-pending"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// gravityDY is the anchor change applied by one gravity step.
const gravityDY = -1

// DefaultSpawnRow is the anchor row new pieces appear at.
const DefaultSpawnRow = 20

// Config controls an Engine.
type Config struct {
	Width     int        // Board column count, at least MinWidth
	SpawnRow  int        // Anchor row of new pieces
	WallKicks bool       // Try SRS kicks before rejecting a rotation
	Scoring   ScoreTable // Points per simultaneous clear
	Picker    Picker     // Next-piece strategy; uniform with seed 0 when nil
}

// DefaultConfig returns a 10-wide board with SRS kicks and classic scoring.
func DefaultConfig() Config {
	return Config{
		Width:     10,
		SpawnRow:  DefaultSpawnRow,
		WallKicks: true,
		Scoring:   DefaultScoreTable(),
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Width < MinWidth {
		return fmt.Errorf("%w: board width %d is below minimum %d", ErrInvalidConfiguration, c.Width, MinWidth)
	}
	if c.SpawnRow < 0 {
		return fmt.Errorf("%w: spawn row %d is negative", ErrInvalidConfiguration, c.SpawnRow)
	}
	if !c.Scoring.valid() {
		return fmt.Errorf("%w: score table has negative entries", ErrInvalidConfiguration)
	}
	return nil
}

// TetrisState is the active falling piece: a tetromino at an anchor.
type TetrisState struct {
	Tetromino
	X, Y  int
	Color int
}

// Cells returns the absolute board positions of the piece's four cells.
func (s TetrisState) Cells() [4]CellPos {
	var out [4]CellPos
	for i, o := range s.Tetromino.Cells() {
		out[i] = CellPos{X: s.X + o.X, Y: s.Y + o.Y, Color: s.Color}
	}
	return out
}

// TickResult summarizes what a Tick did.
type TickResult struct {
	Moved      bool // Piece fell one row
	Merged     bool // Piece locked into the board
	Cleared    int  // Rows removed by the merge
	ScoreDelta int
	GameOver   bool
}

type subscription struct {
	id int
	fn Listener
}

// Engine is the game state machine. It owns the board and the active piece
// and is not safe for concurrent use; a single driving loop must serialize
// all calls.
type Engine struct {
	cfg    Config
	board  *Board
	picker Picker

	phase  Phase
	active TetrisState
	score  int
	lines  int
	pieces int

	listeners []subscription
	nextSubID int
}

// New creates an engine in PhaseSpawning. Call Start (or Spawn) to place
// the first piece.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, err := NewBoard(cfg.Width)
	if err != nil {
		return nil, err
	}
	picker := cfg.Picker
	if picker == nil {
		picker = NewUniformPicker(0)
	}
	return &Engine{
		cfg:    cfg,
		board:  board,
		picker: picker,
		phase:  PhaseSpawning,
	}, nil
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	e.nextSubID++
	id := e.nextSubID
	e.listeners = append(e.listeners, subscription{id: id, fn: l})
	return func() {
		for i, s := range e.listeners {
			if s.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(ev Event) {
	for _, s := range e.listeners {
		s.fn(ev)
	}
}

// Start places the first piece. It does nothing once play has begun.
func (e *Engine) Start() {
	if e.phase == PhaseSpawning && e.pieces == 0 {
		e.Spawn()
	}
}

// Spawn places the next piece at the spawn anchor. If that position already
// collides with locked cells the engine enters PhaseGameOver, publishes
// GameOverEvent and returns false; the board is left untouched.
// Spawn is a no-op while a piece is active or after game over.
func (e *Engine) Spawn() (TetrisState, bool) {
	switch e.phase {
	case PhaseActive:
		return e.active, true
	case PhaseGameOver:
		return TetrisState{}, false
	}

	kind := e.picker.Next()
	st := TetrisState{
		Tetromino: Tetromino{Kind: kind},
		X:         (e.cfg.Width - 4) / 2,
		Y:         e.cfg.SpawnRow,
		Color:     kind.Color(),
	}
	if !e.fits(st.Tetromino, st.X, st.Y) {
		e.phase = PhaseGameOver
		e.active = TetrisState{}
		e.emit(GameOverEvent{Score: e.score, Lines: e.lines})
		return TetrisState{}, false
	}

	e.active = st
	e.phase = PhaseActive
	e.pieces++
	e.emit(SpawnEvent{
		Kind:     st.Kind,
		Rotation: st.Rotation,
		X:        st.X,
		Y:        st.Y,
		Color:    st.Color,
		Next:     e.picker.Peek(),
	})
	return st, true
}

// fits reports whether t anchored at (x, y) lies inside the board columns,
// at non-negative rows and clear of locked cells.
func (e *Engine) fits(t Tetromino, x, y int) bool {
	for _, o := range t.Cells() {
		cx, cy := x+o.X, y+o.Y
		if !e.board.IsInBounds(cx) || cy < 0 || e.board.IsOccupied(cx, cy) {
			return false
		}
	}
	return true
}

// TryMove translates the active piece by (dx, dy). A rejected move leaves
// the state unchanged and returns false.
func (e *Engine) TryMove(dx, dy int) bool {
	if e.phase != PhaseActive {
		return false
	}
	x, y := e.active.X+dx, e.active.Y+dy
	if !e.fits(e.active.Tetromino, x, y) {
		return false
	}
	e.active.X, e.active.Y = x, y
	e.emit(MoveEvent{DX: dx, DY: dy})
	return true
}

// TryRotate turns the active piece clockwise.
func (e *Engine) TryRotate() bool {
	return e.rotate(1)
}

// TryRotateCCW turns the active piece counter-clockwise.
func (e *Engine) TryRotateCCW() bool {
	return e.rotate(-1)
}

func (e *Engine) rotate(dir int) bool {
	if e.phase != PhaseActive {
		return false
	}
	from := e.active.Tetromino
	to := from.Rotated(dir)

	tests := noKick
	if e.cfg.WallKicks {
		tests = Kicks(from.Kind, from.Rotation, to.Rotation)
	}
	for _, k := range tests {
		x, y := e.active.X+k.X, e.active.Y+k.Y
		if !e.fits(to, x, y) {
			continue
		}
		e.active.Tetromino = to
		e.active.X, e.active.Y = x, y
		e.emit(RotateEvent{Rotation: to.Rotation, KickX: k.X, KickY: k.Y})
		return true
	}
	return false
}

// Tick applies one gravity step. When the piece cannot fall it is merged
// into the board, full rows are cleared and scored, and the next piece is
// spawned. Events are published in the order merge, lines-cleared, spawn
// (or game-over).
func (e *Engine) Tick() TickResult {
	if e.phase != PhaseActive {
		return TickResult{GameOver: e.phase == PhaseGameOver}
	}
	if e.TryMove(0, gravityDY) {
		return TickResult{Moved: true}
	}

	res := TickResult{Merged: true}
	e.phase = PhaseMergePending

	cells := e.active.Cells()
	for _, c := range cells {
		e.board.SetCell(c.X, c.Y, c.Color)
	}
	e.active = TetrisState{}
	e.emit(MergeEvent{Cells: cells})

	if full := e.board.FullRows(); len(full) > 0 {
		res.Cleared = len(full)
		res.ScoreDelta = e.cfg.Scoring.Delta(len(full))
		e.score += res.ScoreDelta
		e.lines += len(full)
		shift := e.board.RemoveRows(full)
		e.emit(LinesClearedEvent{
			Rows:       full,
			ScoreDelta: res.ScoreDelta,
			Score:      e.score,
			Shift:      shift,
		})
	}

	e.phase = PhaseSpawning
	_, ok := e.Spawn()
	res.GameOver = !ok
	return res
}

// Drop moves the active piece down until it rests on the stack or floor and
// returns the distance travelled. The piece stays active; the next Tick locks it.
func (e *Engine) Drop() int {
	if e.phase != PhaseActive {
		return 0
	}
	distance := 0
	for e.TryMove(0, gravityDY) {
		distance++
	}
	e.emit(DropEvent{Distance: distance, MaxDistance: e.cfg.SpawnRow})
	return distance
}

// Ghost returns where the active piece would land if dropped now.
func (e *Engine) Ghost() (TetrisState, bool) {
	if e.phase != PhaseActive {
		return TetrisState{}, false
	}
	g := e.active
	for e.fits(g.Tetromino, g.X, g.Y+gravityDY) {
		g.Y += gravityDY
	}
	return g, true
}

// Phase returns the current state-machine phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// GameOver reports whether the engine reached its terminal phase.
func (e *Engine) GameOver() bool {
	return e.phase == PhaseGameOver
}

// Active returns the falling piece, if any.
func (e *Engine) Active() (TetrisState, bool) {
	return e.active, e.phase == PhaseActive
}

// Next returns the kind of the piece that will spawn next.
func (e *Engine) Next() Kind {
	return e.picker.Peek()
}

// Score returns the running score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the total number of rows cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// Pieces returns how many pieces have spawned.
func (e *Engine) Pieces() int {
	return e.pieces
}

// Board returns a copy of the locked-cell grid.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
