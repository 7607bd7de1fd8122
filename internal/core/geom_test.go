package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 3, false},
		{2, 2, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"one cell", NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{"collapses to empty", NewRect(0, 0, 3, 3), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.n); got != tt.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tt.n, got, tt.expected)
			}
		})
	}
}

func TestRectCenterIn(t *testing.T) {
	screen := NewRect(0, 0, 80, 24)

	got := screen.CenterIn(22, 22)
	if got != NewRect(29, 1, 22, 22) {
		t.Errorf("CenterIn(22, 22) = %+v", got)
	}

	// Larger than the container pins to the origin.
	got = NewRect(5, 5, 10, 10).CenterIn(20, 20)
	if got.X != 5 || got.Y != 5 {
		t.Errorf("CenterIn oversize origin = (%d, %d), expected (5, 5)", got.X, got.Y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.expected)
		}
	}
}
