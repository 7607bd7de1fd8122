package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ShapeKind identifies one of the seven tetrominoes.
type ShapeKind int

const (
	ShapeI ShapeKind = iota
	ShapeO
	ShapeT
	ShapeJ
	ShapeL
	ShapeS
	ShapeZ
)

// ShapeCount is the size of the closed shape set.
const ShapeCount = 7

// CellsPerShape is the number of cells every shape occupies.
const CellsPerShape = 4

// AllShapes lists every kind in catalog order.
var AllShapes = [ShapeCount]ShapeKind{ShapeI, ShapeO, ShapeT, ShapeJ, ShapeL, ShapeS, ShapeZ}

var shapeNames = [ShapeCount]string{"I", "O", "T", "J", "L", "S", "Z"}

// String returns the single-letter name of the shape.
func (k ShapeKind) String() string {
	if k < 0 || int(k) >= ShapeCount {
		return "?"
	}
	return shapeNames[k]
}

// Valid reports whether k is one of the seven kinds.
func (k ShapeKind) Valid() bool {
	return k >= 0 && int(k) < ShapeCount
}

// ParseShapeKind converts a letter (case-insensitive) into a ShapeKind.
func ParseShapeKind(s string) (ShapeKind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range shapeNames {
		if name == s {
			return ShapeKind(i), true
		}
	}
	return 0, false
}

// cornerPivot reports whether the shape rotates about a cell corner rather than a cell center.
func (k ShapeKind) cornerPivot() bool {
	return k == ShapeI || k == ShapeO
}

// Construction errors. Wrapped with detail; match with errors.Is.
var (
	ErrInvalidShape   = errors.New("engine: invalid shape definition")
	ErrEmptyKickTable = errors.New("engine: empty wall kick table")
)

// ShapeDefinition is the immutable description of one shape.
type ShapeDefinition struct {
	Kind  ShapeKind
	Cells [CellsPerShape]Coord // offsets at rotation state 0
	Kicks [][]Coord            // wall kick rows, see KickRow
}

// KickRow returns the ordered kick candidates for rotating out of state from in direction dir.
func (d *ShapeDefinition) KickRow(from RotationState, dir Direction) []Coord {
	return d.Kicks[kickIndex(from, dir, len(d.Kicks))]
}

// Catalog holds one definition per kind. It is read-only after construction
// and shared by every piece.
type Catalog struct {
	shapes [ShapeCount]*ShapeDefinition
}

// ShapeSpec is the raw, unvalidated form of a shape definition.
type ShapeSpec struct {
	Kind  ShapeKind `json:"kind"`
	Cells []Coord   `json:"cells"`
	Kicks [][]Coord `json:"kicks,omitempty"`
}

// NewCatalog validates specs and builds a catalog. Kinds missing from specs fall back to
// the standard definition.
func NewCatalog(specs ...ShapeSpec) (*Catalog, error) {
	cat := &Catalog{}
	for _, k := range AllShapes {
		def := standardDefinition(k)
		cat.shapes[k] = &def
	}

	for _, spec := range specs {
		if !spec.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidShape, spec.Kind)
		}
		if len(spec.Cells) != CellsPerShape {
			return nil, fmt.Errorf("%w: %s has %d cells, want %d",
				ErrInvalidShape, spec.Kind, len(spec.Cells), CellsPerShape)
		}
		seen := make(map[Coord]bool, CellsPerShape)
		for _, c := range spec.Cells {
			if seen[c] {
				return nil, fmt.Errorf("%w: %s repeats cell %s", ErrInvalidShape, spec.Kind, c)
			}
			seen[c] = true
		}

		def := ShapeDefinition{Kind: spec.Kind}
		copy(def.Cells[:], spec.Cells)

		if spec.Kicks == nil {
			def.Kicks = standardKicks(spec.Kind)
		} else {
			if len(spec.Kicks) == 0 {
				return nil, fmt.Errorf("%w: %s has no rows", ErrEmptyKickTable, spec.Kind)
			}
			def.Kicks = make([][]Coord, len(spec.Kicks))
			for i, row := range spec.Kicks {
				if len(row) == 0 {
					return nil, fmt.Errorf("%w: %s row %d", ErrEmptyKickTable, spec.Kind, i)
				}
				def.Kicks[i] = append([]Coord(nil), row...)
			}
		}
		cat.shapes[spec.Kind] = &def
	}

	return cat, nil
}

// DefaultCatalog returns the standard seven-shape catalog.
func DefaultCatalog() *Catalog {
	cat, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return cat
}

// Shape returns the definition for k.
func (c *Catalog) Shape(k ShapeKind) *ShapeDefinition {
	return c.shapes[k]
}

// Overrides returns the shapes that differ from the standard set, in kind order.
// NewCatalog(c.Overrides()...) rebuilds an equivalent catalog.
func (c *Catalog) Overrides() []ShapeSpec {
	var specs []ShapeSpec
	for _, k := range AllShapes {
		def := c.shapes[k]
		std := standardDefinition(k)
		if def.Cells == std.Cells && slices.EqualFunc(def.Kicks, std.Kicks, func(a, b []Coord) bool { return slices.Equal(a, b) }) {
			continue
		}
		specs = append(specs, ShapeSpec{
			Kind:  k,
			Cells: slices.Clone(def.Cells[:]),
			Kicks: def.Kicks,
		})
	}
	return specs
}

func standardDefinition(k ShapeKind) ShapeDefinition {
	return ShapeDefinition{
		Kind:  k,
		Cells: standardCells[k],
		Kicks: standardKicks(k),
	}
}

func standardKicks(k ShapeKind) [][]Coord {
	if k == ShapeI {
		return kicksI
	}
	return kicksJLOSTZ
}

var standardCells = [ShapeCount][CellsPerShape]Coord{
	ShapeI: {{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
	ShapeO: {{0, 1}, {1, 1}, {0, 0}, {1, 0}},
	ShapeT: {{0, 1}, {-1, 0}, {0, 0}, {1, 0}},
	ShapeJ: {{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	ShapeL: {{1, 1}, {-1, 0}, {0, 0}, {1, 0}},
	ShapeS: {{0, 1}, {1, 1}, {-1, 0}, {0, 0}},
	ShapeZ: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
}

// Rows alternate clockwise/counter-clockwise per source state: 0>1, 1>0, 1>2, 2>1, 2>3, 3>2, 3>0, 0>3.
var kicksI = [][]Coord{
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

var kicksJLOSTZ = [][]Coord{
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}
