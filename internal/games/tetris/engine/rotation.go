package engine

// RotationState counts clockwise quarter turns from the spawn orientation, modulo 4.
type RotationState int

// Direction of a quarter turn.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Turn returns the state after one quarter turn in dir.
func (r RotationState) Turn(dir Direction) RotationState {
	return RotationState(wrap(int(r)+int(dir), 4))
}

// RotateCells returns the offsets of cells after one quarter turn in dir. The input is not
// modified. Corner-pivot shapes (I, O) shift by (-1/2, -1/2), rotate and take the ceiling;
// the rest rotate about the cell center and round to nearest.
//
// All arithmetic is done in half units (coordinates doubled), so it is exact.
func RotateCells(kind ShapeKind, cells [CellsPerShape]Coord, dir Direction) [CellsPerShape]Coord {
	var out [CellsPerShape]Coord
	d := int(dir)
	for i, c := range cells {
		hx, hy := 2*c.X, 2*c.Y
		if kind.cornerPivot() {
			hx--
			hy--
		}
		// Clockwise in a row-up frame: (x, y) -> (y, -x).
		rx, ry := hy*d, -hx*d
		if kind.cornerPivot() {
			out[i] = Coord{X: ceilHalf(rx), Y: ceilHalf(ry)}
		} else {
			out[i] = Coord{X: roundHalf(rx), Y: roundHalf(ry)}
		}
	}
	return out
}

// KickCandidates returns the translations to try, in order, when rotating out of state from.
// The trivial (0,0) translation is always first.
func KickCandidates(def *ShapeDefinition, from RotationState, dir Direction) []Coord {
	row := def.KickRow(from, dir)
	if len(row) > 0 && row[0] == (Coord{}) {
		return row
	}
	out := make([]Coord, 0, len(row)+1)
	out = append(out, Coord{})
	return append(out, row...)
}

// kickIndex maps a (state, direction) transition to a kick table row.
func kickIndex(from RotationState, dir Direction, rows int) int {
	idx := int(from) * 2
	if dir < 0 {
		idx--
	}
	return wrap(idx, rows)
}

// ceilHalf returns ceil(h/2).
func ceilHalf(h int) int {
	if h >= 0 {
		return (h + 1) / 2
	}
	return -(-h / 2)
}

// roundHalf returns h/2 rounded to the nearest integer, halves away from zero.
func roundHalf(h int) int {
	if h >= 0 {
		return (h + 1) / 2
	}
	return -((-h + 1) / 2)
}

// wrap returns v modulo n in [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
