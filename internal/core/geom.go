// Package core provides the platform types shared by games and front ends.
// It has no terminal or Bubble Tea dependencies so game adapters stay testable.
package core

// Rect is an axis-aligned rectangle in screen coordinates (y grows downward).
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// CenterIn returns a w x h rectangle centered inside r, clamped to r's origin.
func (r Rect) CenterIn(w, h int) Rect {
	return Rect{
		X: r.X + max((r.W-w)/2, 0),
		Y: r.Y + max((r.H-h)/2, 0),
		W: w,
		H: h,
	}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
