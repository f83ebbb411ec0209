package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/geom"
	"github.com/imgrid/imgrid/pkg/layout"
)

// Tile renders the crop-selected sub-region of src scaled to w x h.
// Returns nil when the target has no area.
func Tile(src image.Image, c crop.Rect, w, h int) image.Image {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}
	b := src.Bounds()
	region := c.PixelRegion(b.Dx(), b.Dy()).Add(b.Min)
	return imaging.Resize(imaging.Crop(src, region), w, h, imaging.Lanczos)
}

// Target returns the rectangle pane i's image renders into: the full
// pane when borders are disabled, otherwise the inset content pane.
func Target(p layout.Plan, i int, b Border) geom.Rect {
	if b.None {
		return p.Full[i]
	}
	return p.Content[i]
}

// Overlay describes the in-progress crop rectangle drawn over the
// selected pane while crop mode is active.
type Overlay struct {
	Pane    int
	Pending crop.Rect
}

// Option configures Compose.
type Option func(*renderer)

type renderer struct {
	border  Border
	overlay *Overlay
}

// WithBorder sets the pane border. The default is a GREEN border.
func WithBorder(b Border) Option {
	return func(r *renderer) { r.border = b }
}

// WithOverlay draws the pending crop rectangle over the given pane.
func WithOverlay(pane int, pending crop.Rect) Option {
	return func(r *renderer) { r.overlay = &Overlay{Pane: pane, Pending: pending} }
}

// Compose draws every tile into its pane on a black canvas of the
// plan's used size and returns the finished image.
//
// tiles[i] belongs to pane i and must already be scaled to the pane's
// target rectangle (see [Target]); nil entries render nothing. Borders
// are drawn for the first len(tiles) panes only, so panes beyond the
// image count stay black.
func Compose(p layout.Plan, tiles []image.Image, opts ...Option) image.Image {
	r := renderer{border: DefaultBorder()}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(p.UsedWidth, p.UsedHeight)
	dc.SetColor(color.Black)
	dc.Clear()

	for i := 0; i < p.PaneCount(); i++ {
		dest := Target(p, i, r.border)

		if i < len(tiles) && tiles[i] != nil && !dest.Empty() {
			dc.DrawImage(tiles[i], dest.X, dest.Y)
		}

		if i < len(tiles) && !r.border.None {
			drawBorder(dc, p.Full[i], r.border.Color)
		}

		if r.overlay != nil && r.overlay.Pane == i && !dest.Empty() {
			drawOverlay(dc, dest, r.overlay.Pending)
		}
	}

	return dc.Image()
}

// drawBorder strokes a BorderWidth frame just inside the full pane.
func drawBorder(dc *gg.Context, full geom.Rect, col color.RGBA) {
	inset := float64(layout.BorderWidth) / 2
	dc.SetColor(col)
	dc.SetLineWidth(layout.BorderWidth)
	dc.DrawRectangle(float64(full.X)+inset, float64(full.Y)+inset,
		float64(full.W)-2*inset, float64(full.H)-2*inset)
	dc.Stroke()
}

// drawOverlay strokes a one-pixel black rectangle mapping the pending
// crop into the pane's own coordinate space.
func drawOverlay(dc *gg.Context, dest geom.Rect, pending crop.Rect) {
	o := geom.Rect{
		X: dest.X + int(float64(dest.W)*pending.X/100),
		Y: dest.Y + int(float64(dest.H)*pending.Y/100),
		W: int(float64(dest.W) * pending.W / 100),
		H: int(float64(dest.H) * pending.H / 100),
	}
	if o.Empty() {
		return
	}
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(o.X)+0.5, float64(o.Y)+0.5, float64(o.W)-1, float64(o.H)-1)
	dc.Stroke()
}
