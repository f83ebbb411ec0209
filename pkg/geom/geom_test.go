package geom

import "testing"

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		n    int
		want Rect
	}{
		{"border width", Rect{X: 10, Y: 20, W: 100, H: 80}, 2, Rect{X: 12, Y: 22, W: 96, H: 76}},
		{"zero inset", Rect{X: 5, Y: 5, W: 10, H: 10}, 0, Rect{X: 5, Y: 5, W: 10, H: 10}},
		{"collapses when too narrow", Rect{X: 0, Y: 0, W: 3, H: 50}, 2, Rect{X: 1, Y: 25}},
		{"collapses when too short", Rect{X: 0, Y: 0, W: 50, H: 2}, 2, Rect{X: 25, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.n); got != tt.want {
				t.Errorf("Inset(%d) = %+v, want %+v", tt.n, got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 3, Y: 4, W: 10, H: 20}
	if got := r.Right(); got != 13 {
		t.Errorf("Right() = %d, want 13", got)
	}
	if got := r.Bottom(); got != 24 {
		t.Errorf("Bottom() = %d, want 24", got)
	}
	if r.Empty() {
		t.Error("Empty() = true for non-empty rect")
	}
	if !(Rect{W: 0, H: 10}).Empty() {
		t.Error("Empty() = false for zero-width rect")
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, false},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, false},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() not symmetric: = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{9, 3, 3},
		{10, 3, 4},
		{-1, 3, 0},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
