package feed

import (
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Message is one engine event on the wire.
type Message struct {
	Session string `json:"session"`
	Seq     uint64 `json:"seq"`
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
}

type cell struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Color int `json:"color"`
}

type spawnData struct {
	Kind     string `json:"kind"`
	Rotation int    `json:"rotation"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Color    int    `json:"color"`
	Next     string `json:"next"`
}

type moveData struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

type rotateData struct {
	Rotation int `json:"rotation"`
	KickX    int `json:"kick_x"`
	KickY    int `json:"kick_y"`
}

type dropData struct {
	Distance    int `json:"distance"`
	MaxDistance int `json:"max_distance"`
}

type mergeData struct {
	Cells []cell `json:"cells"`
}

type linesClearedData struct {
	Rows       []int `json:"rows"`
	ScoreDelta int   `json:"score_delta"`
	Score      int   `json:"score"`
	Shift      []int `json:"shift"`
}

type gameOverData struct {
	Score int `json:"score"`
	Lines int `json:"lines"`
}

// eventData converts ev into its JSON payload.
func eventData(ev engine.Event) any {
	switch e := ev.(type) {
	case engine.SpawnEvent:
		return spawnData{
			Kind:     e.Kind.String(),
			Rotation: int(e.Rotation),
			X:        e.X,
			Y:        e.Y,
			Color:    e.Color,
			Next:     e.Next.String(),
		}
	case engine.MoveEvent:
		return moveData{DX: e.DX, DY: e.DY}
	case engine.RotateEvent:
		return rotateData{Rotation: int(e.Rotation), KickX: e.KickX, KickY: e.KickY}
	case engine.DropEvent:
		return dropData{Distance: e.Distance, MaxDistance: e.MaxDistance}
	case engine.MergeEvent:
		cells := make([]cell, len(e.Cells))
		for i, c := range e.Cells {
			cells[i] = cell{X: c.X, Y: c.Y, Color: c.Color}
		}
		return mergeData{Cells: cells}
	case engine.LinesClearedEvent:
		return linesClearedData{
			Rows:       append([]int(nil), e.Rows...),
			ScoreDelta: e.ScoreDelta,
			Score:      e.Score,
			Shift:      append([]int(nil), e.Shift...),
		}
	case engine.GameOverEvent:
		return gameOverData{Score: e.Score, Lines: e.Lines}
	}
	return nil
}
