// Package crop implements the per-image crop model: a persistent crop
// rectangle in percentage space plus the interactive editor that
// adjusts a transient pending rectangle and composes it into the
// persistent one on commit.
//
// All rectangles are percentages (0-100) of the owning image's current
// crop space, not absolute pixels. Composing a pending crop re-expresses
// it relative to the original image, so repeated crops zoom
// progressively without losing precision against the original pixel
// grid.
package crop

import (
	"image"
	"math"
)

const (
	// Step is the interactive adjustment increment in percentage points.
	Step = 0.5

	// MinSize is the smallest width or height, in percentage points,
	// that interactive shrinking allows.
	MinSize = 6

	// maxOrigin and maxExtent bound the per-frame sanitize clamp.
	// The far edge is held just short of 100 so a crop rectangle can
	// never collapse the remaining image to nothing.
	maxOrigin = 98
	maxExtent = 99.9999
)

// Rect is a crop rectangle in percentage space. X and Y locate the
// upper-left corner of the crop area, W and H its size.
type Rect struct {
	X, Y, W, H float64
}

// Uncropped returns the full-image default crop.
func Uncropped() Rect {
	return Rect{X: 0, Y: 0, W: 100, H: 100}
}

// IsFull reports whether r is the full-image default.
func (r Rect) IsFull() bool {
	return r == Uncropped()
}

// Compose applies a pending crop drawn in r's coordinate space and
// returns the combined crop expressed relative to the original image.
//
// Each factor uses r's values before any of them is replaced, so the
// result is independent of field order:
//
//	new.x = r.x + p.x * r.w / 100
//	new.w = p.w * r.w / 100
//	new.y = r.y + p.y * r.h / 100
//	new.h = p.h * r.h / 100
func (r Rect) Compose(p Rect) Rect {
	return Rect{
		X: r.X + p.X*r.W/100,
		Y: r.Y + p.Y*r.H/100,
		W: p.W * r.W / 100,
		H: p.H * r.H / 100,
	}
}

// Sanitize clamps the rectangle so its origin stays within [0, 98] on
// both axes and its far edge stays below 100. It guards against
// accumulated floating-point drift and is idempotent.
func (r Rect) Sanitize() Rect {
	if r.X < 0 {
		r.X = 0
	}
	if r.X > maxOrigin {
		r.X = maxOrigin
	}
	if r.X+r.W >= maxExtent {
		r.W = maxExtent - r.X
	}

	if r.Y < 0 {
		r.Y = 0
	}
	if r.Y > maxOrigin {
		r.Y = maxOrigin
	}
	if r.Y+r.H >= maxExtent {
		r.H = maxExtent - r.Y
	}
	return r
}

// PixelRegion converts the percentage rectangle into source pixel
// coordinates for an image of the given size. Offsets and extents are
// rounded to nearest (ties to even) independently, keeping repeated
// crops aligned with the original pixel grid.
func (r Rect) PixelRegion(width, height int) image.Rectangle {
	x0 := int(math.RoundToEven(float64(width) * r.X / 100))
	y0 := int(math.RoundToEven(float64(height) * r.Y / 100))
	w := int(math.RoundToEven(float64(width) * r.W / 100))
	h := int(math.RoundToEven(float64(height) * r.H / 100))
	return image.Rect(x0, y0, x0+w, y0+h)
}
