package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/layout"
)

func solid(w, h int, c color.NRGBA) image.Image {
	return imaging.New(w, h, c)
}

func pixel(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestTile(t *testing.T) {
	src := solid(100, 100, red)

	tile := Tile(src, crop.Rect{X: 25, Y: 25, W: 50, H: 50}, 30, 20)
	if tile == nil {
		t.Fatal("Tile() = nil")
	}
	b := tile.Bounds()
	if b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("tile size = %dx%d, want 30x20", b.Dx(), b.Dy())
	}
	if got := pixel(tile, 15, 10); got.R != 255 {
		t.Errorf("tile center = %+v, want red", got)
	}
}

func TestTileDegenerate(t *testing.T) {
	src := solid(10, 10, red)
	if Tile(src, crop.Uncropped(), 0, 20) != nil {
		t.Error("Tile() with zero width should be nil")
	}
	if Tile(nil, crop.Uncropped(), 10, 10) != nil {
		t.Error("Tile() with nil source should be nil")
	}
}

func TestComposeCanvasSize(t *testing.T) {
	p := layout.PlanPanes(layout.ModeEqual, 4, 325, 245, 2)
	canvas := Compose(p, make([]image.Image, 4), WithBorder(NoBorder()))

	b := canvas.Bounds()
	if b.Dx() != p.UsedWidth || b.Dy() != p.UsedHeight {
		t.Errorf("canvas = %dx%d, want used size %dx%d", b.Dx(), b.Dy(), p.UsedWidth, p.UsedHeight)
	}
	if got := pixel(canvas, 0, 0); got != black {
		t.Errorf("empty canvas pixel = %+v, want black", got)
	}
}

func TestComposeDrawsTileAndBorder(t *testing.T) {
	p := layout.PlanPanes(layout.ModeEqual, 1, 320, 240, 1)
	border, err := ParseBorder("GREEN")
	if err != nil {
		t.Fatal(err)
	}

	dest := Target(p, 0, border)
	if dest != p.Content[0] {
		t.Fatalf("Target() = %+v, want content pane %+v", dest, p.Content[0])
	}
	tiles := []image.Image{solid(dest.W, dest.H, red)}

	canvas := Compose(p, tiles, WithBorder(border))

	// Left border band is two pixels wide.
	if got := pixel(canvas, 1, 120); got.G != 255 || got.R != 0 {
		t.Errorf("border pixel = %+v, want green", got)
	}
	// Content center shows the tile.
	if got := pixel(canvas, 160, 120); got.R != 255 {
		t.Errorf("content pixel = %+v, want red", got)
	}
}

func TestComposeNoBorderFillsFullPane(t *testing.T) {
	p := layout.PlanPanes(layout.ModeEqual, 1, 320, 240, 1)
	b := NoBorder()

	dest := Target(p, 0, b)
	if dest != p.Full[0] {
		t.Fatalf("Target() = %+v, want full pane %+v", dest, p.Full[0])
	}
	tiles := []image.Image{solid(dest.W, dest.H, red)}

	canvas := Compose(p, tiles, WithBorder(b))
	if got := pixel(canvas, 0, 0); got.R != 255 {
		t.Errorf("corner pixel = %+v, want red with no border", got)
	}
}

func TestComposeMissingImageKeepsBorder(t *testing.T) {
	p := layout.PlanPanes(layout.ModeEqual, 2, 640, 240, 2)
	border, err := ParseBorder("RED")
	if err != nil {
		t.Fatal(err)
	}

	// Slot 0 failed to decode: nil tile, pane stays black, border still drawn.
	tiles := []image.Image{nil, solid(p.Content[1].W, p.Content[1].H, red)}
	canvas := Compose(p, tiles, WithBorder(border))

	if got := pixel(canvas, 160, 120); got != black {
		t.Errorf("empty slot center = %+v, want black", got)
	}
	if got := pixel(canvas, 1, 120); got.R != 255 {
		t.Errorf("empty slot border = %+v, want red", got)
	}
}

func TestComposeSurplusPanesUndecorated(t *testing.T) {
	// Three images in a 2x2 grid leave one pane without a slot; it gets
	// neither image nor border.
	p := layout.PlanPanes(layout.ModeEqual, 3, 640, 480, 2)
	border, err := ParseBorder("WHITE")
	if err != nil {
		t.Fatal(err)
	}

	tiles := make([]image.Image, 3)
	canvas := Compose(p, tiles, WithBorder(border))

	surplus := p.Full[3]
	if got := pixel(canvas, surplus.X+1, surplus.Y+120); got != black {
		t.Errorf("surplus pane border area = %+v, want black", got)
	}
}

func TestComposeOverlay(t *testing.T) {
	p := layout.PlanPanes(layout.ModeEqual, 1, 320, 240, 1)
	border, err := ParseBorder("GREEN")
	if err != nil {
		t.Fatal(err)
	}
	dest := Target(p, 0, border)
	tiles := []image.Image{solid(dest.W, dest.H, red)}

	pending := crop.Rect{X: 25, Y: 25, W: 50, H: 50}
	canvas := Compose(p, tiles, WithBorder(border), WithOverlay(0, pending))

	// Overlay left edge in pane-local space: 2 + 316*25/100 = 81.
	if got := pixel(canvas, 81, 120); got != black {
		t.Errorf("overlay edge pixel = %+v, want black", got)
	}
	// Inside the overlay the tile shows through.
	if got := pixel(canvas, 160, 120); got.R != 255 {
		t.Errorf("overlay interior = %+v, want red", got)
	}
}

func TestComposeFirstDouble(t *testing.T) {
	p := layout.PlanPanes(layout.ModeFirstDouble, 3, 900, 600, 3)
	b := NoBorder()

	tiles := make([]image.Image, 3)
	for i := range tiles {
		dest := Target(p, i, b)
		tiles[i] = solid(dest.W, dest.H, red)
	}
	canvas := Compose(p, tiles, WithBorder(b))

	// The enlarged first pane spans two cells in each direction.
	if got := pixel(canvas, 599, 599); got.R != 255 {
		t.Errorf("double pane far corner = %+v, want red", got)
	}
	if got := pixel(canvas, 700, 120); got.R != 255 {
		t.Errorf("single pane = %+v, want red", got)
	}
}
