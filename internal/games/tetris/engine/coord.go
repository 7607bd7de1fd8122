// Package engine implements the falling-block rules: the occupancy grid, shape catalog,
// rotation with wall kicks, gravity/lock timing, line clearing and ghost projection.
//
// The package has no rendering or input dependencies. Callers drive it with
// Engine.Tick and read state back through Snapshot.
package engine

import "fmt"

// Coord is a (column, row) pair. Rows increase upward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Bounds is a fixed width x height rectangle centered on the origin.
// Min is inclusive; the max corner is exclusive.
type Bounds struct {
	Min    Coord
	Width  int
	Height int
}

// NewBounds creates bounds with minimum corner (-w/2, -h/2).
func NewBounds(width, height int) Bounds {
	return Bounds{
		Min:    Coord{X: -width / 2, Y: -height / 2},
		Width:  width,
		Height: height,
	}
}

// XMax returns the exclusive right edge.
func (b Bounds) XMax() int {
	return b.Min.X + b.Width
}

// YMax returns the exclusive top edge.
func (b Bounds) YMax() int {
	return b.Min.Y + b.Height
}

// Contains returns true if c lies inside the bounds.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.Min.X && c.X < b.XMax() && c.Y >= b.Min.Y && c.Y < b.YMax()
}

// Floor returns the first row below the bounds. Ghost projection never probes past it.
func (b Bounds) Floor() int {
	return -b.Height/2 - 1
}
