package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	cat := DefaultCatalog()

	for _, kind := range AllShapes {
		for _, dir := range []Direction{Clockwise, CounterClockwise} {
			def := cat.Shape(kind)
			cells := def.Cells
			state := RotationState(0)
			for i := 0; i < 4; i++ {
				cells = RotateCells(kind, cells, dir)
				state = state.Turn(dir)
			}
			assert.Equal(t, def.Cells, cells, "%s dir=%d offsets", kind, dir)
			assert.Equal(t, RotationState(0), state, "%s dir=%d state", kind, dir)
		}
	}
}

func TestRotateInverse(t *testing.T) {
	cat := DefaultCatalog()

	for _, kind := range AllShapes {
		cells := cat.Shape(kind).Cells
		back := RotateCells(kind, RotateCells(kind, cells, Clockwise), CounterClockwise)
		assert.Equal(t, cells, back, "%s clockwise then counter-clockwise", kind)
	}
}

func TestRotateKnownShapes(t *testing.T) {
	tests := []struct {
		name string
		kind ShapeKind
		dir  Direction
		want [CellsPerShape]Coord
	}{
		{
			name: "T clockwise points right",
			kind: ShapeT,
			dir:  Clockwise,
			want: [4]Coord{{1, 0}, {0, 1}, {0, 0}, {0, -1}},
		},
		{
			name: "T counter-clockwise points left",
			kind: ShapeT,
			dir:  CounterClockwise,
			want: [4]Coord{{-1, 0}, {0, -1}, {0, 0}, {0, 1}},
		},
		{
			name: "I clockwise becomes column x=1",
			kind: ShapeI,
			dir:  Clockwise,
			want: [4]Coord{{1, 2}, {1, 1}, {1, 0}, {1, -1}},
		},
		{
			name: "I counter-clockwise becomes column x=0",
			kind: ShapeI,
			dir:  CounterClockwise,
			want: [4]Coord{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
		},
		{
			name: "O keeps its square",
			kind: ShapeO,
			dir:  Clockwise,
			want: [4]Coord{{1, 1}, {1, 0}, {0, 1}, {0, 0}},
		},
	}

	cat := DefaultCatalog()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotateCells(tc.kind, cat.Shape(tc.kind).Cells, tc.dir)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRotateCellsDoesNotMutate(t *testing.T) {
	cells := standardCells[ShapeJ]
	orig := cells
	_ = RotateCells(ShapeJ, cells, Clockwise)
	assert.Equal(t, orig, cells)
}

func TestKickIndex(t *testing.T) {
	tests := []struct {
		from RotationState
		dir  Direction
		want int
	}{
		{0, Clockwise, 0},
		{1, CounterClockwise, 1},
		{1, Clockwise, 2},
		{2, CounterClockwise, 3},
		{2, Clockwise, 4},
		{3, CounterClockwise, 5},
		{3, Clockwise, 6},
		{0, CounterClockwise, 7},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, kickIndex(tc.from, tc.dir, 8), "from=%d dir=%d", tc.from, tc.dir)
	}
}

func TestKickCandidatesStartWithZero(t *testing.T) {
	def := &ShapeDefinition{
		Kind:  ShapeT,
		Cells: standardCells[ShapeT],
		Kicks: [][]Coord{{{1, 0}}, {{-1, 0}}},
	}

	got := KickCandidates(def, 0, Clockwise)
	assert.Equal(t, []Coord{{0, 0}, {1, 0}}, got)

	std := DefaultCatalog().Shape(ShapeT)
	assert.Equal(t, Coord{}, KickCandidates(std, 2, CounterClockwise)[0])
	assert.Len(t, KickCandidates(std, 2, CounterClockwise), 5)
}

func TestHalfRounding(t *testing.T) {
	tests := []struct {
		h           int
		ceil, round int
	}{
		{4, 2, 2},
		{3, 2, 2},
		{1, 1, 1},
		{0, 0, 0},
		{-1, 0, -1},
		{-3, -1, -2},
		{-4, -2, -2},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.ceil, ceilHalf(tc.h), "ceilHalf(%d)", tc.h)
		assert.Equal(t, tc.round, roundHalf(tc.h), "roundHalf(%d)", tc.h)
	}
}

func TestRotationStateTurn(t *testing.T) {
	assert.Equal(t, RotationState(1), RotationState(0).Turn(Clockwise))
	assert.Equal(t, RotationState(3), RotationState(0).Turn(CounterClockwise))
	assert.Equal(t, RotationState(0), RotationState(3).Turn(Clockwise))
}
