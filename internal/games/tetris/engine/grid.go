package engine

import (
	"github.com/kamstrup/intmap"
)

// Tag is the opaque per-cell visual tag. The engine stores the locked shape's
// kind plus one; zero is never written for an occupied cell.
type Tag uint8

// TagFor returns the tag the engine writes for cells of kind k.
func TagFor(k ShapeKind) Tag {
	return Tag(k) + 1
}

// Kind recovers the shape kind from a tag written by the engine.
func (t Tag) Kind() (ShapeKind, bool) {
	k := ShapeKind(int(t) - 1)
	return k, k.Valid()
}

// cellKey packs a coordinate into a single integer map key.
type cellKey uint64

func keyOf(c Coord) cellKey {
	return cellKey(uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Y))))
}

// Grid is the occupancy surface. Cells are addressed by Coord; anything never set reads empty.
type Grid struct {
	bounds Bounds
	cells  *intmap.Map[cellKey, Tag]
}

// NewGrid creates an empty grid with the given bounds.
func NewGrid(bounds Bounds) *Grid {
	return &Grid{
		bounds: bounds,
		cells:  intmap.New[cellKey, Tag](bounds.Width * bounds.Height),
	}
}

// Bounds returns the fixed grid rectangle.
func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// IsOccupied returns true if c has been set and not cleared.
func (g *Grid) IsOccupied(c Coord) bool {
	_, ok := g.cells.Get(keyOf(c))
	return ok
}

// Tag returns the tag stored at c.
func (g *Grid) Tag(c Coord) (Tag, bool) {
	return g.cells.Get(keyOf(c))
}

// Set marks c occupied. No bounds validation.
func (g *Grid) Set(c Coord, tag Tag) {
	g.cells.Put(keyOf(c), tag)
}

// Clear marks c empty.
func (g *Grid) Clear(c Coord) {
	g.cells.Del(keyOf(c))
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return g.cells.Len()
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	g.cells = intmap.New[cellKey, Tag](g.bounds.Width * g.bounds.Height)
}

// IsLineFull returns true if every column of row is occupied.
func (g *Grid) IsLineFull(row int) bool {
	for col := g.bounds.Min.X; col < g.bounds.XMax(); col++ {
		if !g.IsOccupied(Coord{X: col, Y: row}) {
			return false
		}
	}
	return true
}

// ClearLines removes every full row, collapsing the rows above it, and returns how many
// rows were removed. The scan runs bottom-up and re-examines a row after each collapse,
// so stacked full rows clear in a single call.
func (g *Grid) ClearLines() int {
	cleared := 0
	row := g.bounds.Min.Y
	for row < g.bounds.YMax() {
		if g.IsLineFull(row) {
			g.collapse(row)
			cleared++
		} else {
			row++
		}
	}
	return cleared
}

// collapse clears row and shifts every row above it down by one.
func (g *Grid) collapse(row int) {
	top := g.bounds.YMax() - 1
	for r := row; r < top; r++ {
		for col := g.bounds.Min.X; col < g.bounds.XMax(); col++ {
			g.copyCell(Coord{X: col, Y: r + 1}, Coord{X: col, Y: r})
		}
	}
	// Nothing exists above the bounds, so the top row always comes in empty.
	for col := g.bounds.Min.X; col < g.bounds.XMax(); col++ {
		g.Clear(Coord{X: col, Y: top})
	}
}

func (g *Grid) copyCell(from, to Coord) {
	if tag, ok := g.Tag(from); ok {
		g.Set(to, tag)
	} else {
		g.Clear(to)
	}
}

// Each calls fn for every occupied cell inside the bounds, bottom row first, left to right.
func (g *Grid) Each(fn func(c Coord, tag Tag)) {
	for row := g.bounds.Min.Y; row < g.bounds.YMax(); row++ {
		for col := g.bounds.Min.X; col < g.bounds.XMax(); col++ {
			c := Coord{X: col, Y: row}
			if tag, ok := g.Tag(c); ok {
				fn(c, tag)
			}
		}
	}
}

// IsValidPlacement reports whether cells translated by pos all lie inside the bounds on
// empty cells. Cells listed in ignore count as empty; the engine passes the active piece's
// committed cells there so the piece never blocks itself.
func (g *Grid) IsValidPlacement(cells [CellsPerShape]Coord, pos Coord, ignore []Coord) bool {
	for _, c := range cells {
		abs := c.Add(pos)
		if !g.bounds.Contains(abs) {
			return false
		}
		if g.IsOccupied(abs) && !contains(ignore, abs) {
			return false
		}
	}
	return true
}

func contains(cells []Coord, c Coord) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
