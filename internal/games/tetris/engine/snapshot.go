package engine

import (
	"strings"
	"time"
)

// Cell is one occupied grid cell.
type Cell struct {
	Coord Coord
	Tag   Tag
}

// PieceState describes the active piece for drawing.
type PieceState struct {
	Active   bool
	Kind     ShapeKind
	Rotation RotationState
	Position Coord
	Cells    [CellsPerShape]Coord // absolute coordinates
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Clock        time.Duration
	Bounds       Bounds
	Cells        []Cell // every occupied cell, active piece included
	Piece        PieceState
	Ghost        Ghost
	GameOver     bool
	LinesCleared int
	PiecesLocked int
}

// Snapshot captures the current state. The ghost is recomputed on every call.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Clock:        e.clock,
		Bounds:       e.grid.Bounds(),
		Cells:        make([]Cell, 0, e.grid.Len()),
		GameOver:     e.gameOver,
		LinesCleared: e.linesCleared,
		PiecesLocked: e.piecesLocked,
	}

	e.grid.Each(func(c Coord, tag Tag) {
		snap.Cells = append(snap.Cells, Cell{Coord: c, Tag: tag})
	})

	if !e.gameOver {
		snap.Piece = PieceState{
			Active:   true,
			Kind:     e.piece.Kind(),
			Rotation: e.piece.Rotation,
			Position: e.piece.Position,
			Cells:    e.piece.Absolute(),
		}
		snap.Ghost = e.Ghost()
	}

	return snap
}

// String draws the board as text, top row first: '#' for occupied, '.' for empty.
// Used by the replay command and by tests.
func (s Snapshot) String() string {
	occupied := make(map[Coord]bool, len(s.Cells))
	for _, c := range s.Cells {
		occupied[c.Coord] = true
	}

	var sb strings.Builder
	sb.Grow((s.Bounds.Width + 1) * s.Bounds.Height)
	for row := s.Bounds.YMax() - 1; row >= s.Bounds.Min.Y; row-- {
		for col := s.Bounds.Min.X; col < s.Bounds.XMax(); col++ {
			if occupied[Coord{X: col, Y: row}] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if row > s.Bounds.Min.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
