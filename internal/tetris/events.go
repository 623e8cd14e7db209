package tetris

// Event is a state change published by the Engine. Events are immutable
// values; listeners must not modify slices they carry.
type Event interface {
	tetrisEvent()
}

// CellPos is a locked cell position with its color index.
type CellPos struct {
	X, Y  int
	Color int
}

// SpawnEvent is published when a new active piece enters the board.
type SpawnEvent struct {
	Kind     Kind
	Rotation Rotation
	X, Y     int
	Color    int
	Next     Kind // Kind of the piece after this one
}

func (SpawnEvent) tetrisEvent() {}

// MoveEvent is published when the active piece is translated.
type MoveEvent struct {
	DX, DY int
}

func (MoveEvent) tetrisEvent() {}

// RotateEvent is published when the active piece rotates. KickX/KickY is the
// anchor adjustment applied by a wall kick, zero for a plain rotation.
type RotateEvent struct {
	Rotation     Rotation
	KickX, KickY int
}

func (RotateEvent) tetrisEvent() {}

// DropEvent is published after a hard drop with the rows travelled.
// MaxDistance is the largest possible drop (the spawn height), useful for
// scaling animation length.
type DropEvent struct {
	Distance    int
	MaxDistance int
}

func (DropEvent) tetrisEvent() {}

// MergeEvent is published when the active piece locks into the board.
type MergeEvent struct {
	Cells [4]CellPos
}

func (MergeEvent) tetrisEvent() {}

// LinesClearedEvent is published after full rows are removed. Rows are the
// removed indices in ascending order, as they were before removal. Shift maps
// pre-removal row indices to post-removal ones.
type LinesClearedEvent struct {
	Rows       []int
	ScoreDelta int
	Score      int // Running total after this clear
	Shift      ShiftMap
}

func (LinesClearedEvent) tetrisEvent() {}

// GameOverEvent is published once, when a spawn collides with locked cells.
type GameOverEvent struct {
	Score int
	Lines int
}

func (GameOverEvent) tetrisEvent() {}

// Listener receives engine events synchronously, in publication order.
// Listeners must not call mutating Engine methods.
type Listener func(Event)

// Recorder collects every event it receives.
type Recorder struct {
	Events []Event
}

// Listen appends ev to the recording. Pass it to Engine.Subscribe.
func (r *Recorder) Listen(ev Event) {
	r.Events = append(r.Events, ev)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Kinds returns a short name per recorded event, for compact assertions.
func (r *Recorder) Kinds() []string {
	names := make([]string, len(r.Events))
	for i, ev := range r.Events {
		names[i] = EventName(ev)
	}
	return names
}

// EventName returns the wire-style name of an event.
func EventName(ev Event) string {
	switch ev.(type) {
	case SpawnEvent:
		return "spawn"
	case MoveEvent:
		return "move"
	case RotateEvent:
		return "rotate"
	case DropEvent:
		return "drop"
	case MergeEvent:
		return "merge"
	case LinesClearedEvent:
		return "lines-cleared"
	case GameOverEvent:
		return "game-over"
	default:
		return "unknown"
	}
}
