// Package geom provides the small integer geometry types shared by the
// layout planner and the renderer.
package geom

// Rect is an axis-aligned rectangle in pixel coordinates.
// X and Y locate the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset returns the rectangle shrunk by n pixels on every side.
// A rectangle too small to inset collapses to zero size at its center.
func (r Rect) Inset(n int) Rect {
	if r.W < 2*n || r.H < 2*n {
		return Rect{X: r.X + r.W/2, Y: r.Y + r.H/2}
	}
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Intersects reports whether r and s share any area.
func (r Rect) Intersects(s Rect) bool {
	return r.X < s.Right() && s.X < r.Right() && r.Y < s.Bottom() && s.Y < r.Bottom()
}

// CeilDiv returns ceil(a/b) for positive b.
func CeilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
