package engine

import "time"

// Piece is the active piece. The engine reinitializes the same value for every spawn.
type Piece struct {
	Shape    *ShapeDefinition
	Rotation RotationState
	Position Coord
	Cells    [CellsPerShape]Coord // current offsets relative to Position

	stepTime time.Duration // absolute deadline of the next forced step
	lockTime time.Duration // time since the last successful move or rotation
}

// Initialize resets the piece to the spawn orientation of def at pos.
func (p *Piece) Initialize(def *ShapeDefinition, pos Coord, stepTime time.Duration) {
	p.Shape = def
	p.Rotation = 0
	p.Position = pos
	p.Cells = def.Cells
	p.stepTime = stepTime
	p.lockTime = 0
}

// Kind returns the piece's shape kind.
func (p Piece) Kind() ShapeKind {
	return p.Shape.Kind
}

// Absolute returns the grid coordinates the piece occupies.
func (p Piece) Absolute() [CellsPerShape]Coord {
	return translate(p.Cells, p.Position)
}

// StepTime returns the absolute time of the next forced step.
func (p Piece) StepTime() time.Duration {
	return p.stepTime
}

// LockTime returns the time accumulated since the piece last moved.
func (p Piece) LockTime() time.Duration {
	return p.lockTime
}

func translate(cells [CellsPerShape]Coord, pos Coord) [CellsPerShape]Coord {
	var out [CellsPerShape]Coord
	for i, c := range cells {
		out[i] = c.Add(pos)
	}
	return out
}
