package compose

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/errors"
	imgio "github.com/imgrid/imgrid/pkg/io"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/render"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func writeTestImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := imgio.Write(path, img); err != nil {
		t.Fatal(err)
	}
}

func pixel(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNewDefaults(t *testing.T) {
	s, err := New([]string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if s.Cols() != 2 || s.Rows() != 2 {
		t.Errorf("grid = %dx%d, want 2x2", s.Cols(), s.Rows())
	}
	w, h := s.CanvasSize()
	if w != 640 || h != 480 {
		t.Errorf("canvas = %dx%d, want 640x480", w, h)
	}
	if s.OutputPath() != "out.jpg" {
		t.Errorf("OutputPath() = %q, want out.jpg", s.OutputPath())
	}
	if s.Border().Name != "GREEN" {
		t.Errorf("border = %q, want GREEN", s.Border().Name)
	}
	if s.Editing() {
		t.Error("new session should not be editing")
	}
	for i, im := range s.Images() {
		if !im.Crop.IsFull() {
			t.Errorf("image %d initial crop = %+v, want uncropped", i, im.Crop)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tooMany := make([]string, MaxImages+1)
	for i := range tooMany {
		tooMany[i] = "a.jpg"
	}

	tests := []struct {
		name     string
		paths    []string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "no images",
			paths:    nil,
			opts:     Options{},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "too many images",
			paths:    tooMany,
			opts:     Options{},
			wantCode: errors.ErrCodeTooManyImages,
		},
		{
			name:     "bad output extension",
			paths:    []string{"a.jpg"},
			opts:     Options{OutputPath: "out.gif"},
			wantCode: errors.ErrCodeInvalidOutput,
		},
		{
			name:     "conflicting sizes",
			paths:    []string{"a.jpg"},
			opts:     Options{Sizing: layout.Sizing{ImageWidth: 400, CanvasWidth: 800}},
			wantCode: errors.ErrCodeConflictingSize,
		},
		{
			name:     "cols out of range",
			paths:    []string{"a.jpg"},
			opts:     Options{Cols: 11},
			wantCode: errors.ErrCodeInvalidCols,
		},
		{
			name:     "preset crop too small",
			paths:    []string{"a.jpg"},
			opts:     Options{Crops: []CropSpec{{Index: 0, Rect: crop.Rect{X: 10, Y: 10, W: 2, H: 50}}}},
			wantCode: errors.ErrCodeInvalidCrop,
		},
		{
			name:     "negative crop index",
			paths:    []string{"a.jpg"},
			opts:     Options{Crops: []CropSpec{{Index: -1, Rect: crop.Rect{X: 25, Y: 25, W: 50, H: 50}}}},
			wantCode: errors.ErrCodeInvalidCrop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.paths, tt.opts)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("New() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestNewPresetCrops(t *testing.T) {
	want := crop.Rect{X: 10, Y: 20, W: 30, H: 40}
	s, err := New([]string{"a.jpg", "b.jpg"}, Options{
		Crops: []CropSpec{
			{Index: 1, Rect: want},
			{Index: 5, Rect: crop.Rect{X: 25, Y: 25, W: 50, H: 50}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := s.Images()[1].Crop; got != want {
		t.Errorf("preset crop = %+v, want %+v", got, want)
	}
	if !s.Images()[0].Crop.IsFull() {
		t.Errorf("untouched slot crop = %+v, want uncropped", s.Images()[0].Crop)
	}
}

func TestColsBounds(t *testing.T) {
	s, err := New([]string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !s.FewerCols() || s.Cols() != 1 {
		t.Errorf("after FewerCols() cols = %d, want 1", s.Cols())
	}
	if s.FewerCols() {
		t.Error("FewerCols() below the minimum should refuse")
	}
	for s.MoreCols() {
	}
	if s.Cols() != 10 {
		t.Errorf("cols after widening to the limit = %d, want 10", s.Cols())
	}

	d, err := New([]string{"a.jpg"}, Options{Mode: layout.ModeFirstDouble})
	if err != nil {
		t.Fatal(err)
	}
	if d.FewerCols() {
		t.Error("double-size layout should refuse to drop below two columns")
	}
}

func TestCheckLayoutAcrossColumns(t *testing.T) {
	paths := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	for _, mode := range []layout.Mode{layout.ModeEqual, layout.ModeFirstDouble} {
		s, err := New(paths, Options{Mode: mode})
		if err != nil {
			t.Fatal(err)
		}

		// Every reachable column count must keep a pane free for each
		// image, at either end of the range and everywhere between.
		for s.FewerCols() {
		}
		for {
			if err := s.CheckLayout(); err != nil {
				t.Errorf("mode %d CheckLayout() at %d columns: %v", mode, s.Cols(), err)
			}
			if !s.MoreCols() {
				break
			}
		}
	}
}

func TestSetCanvasSize(t *testing.T) {
	s, err := New([]string{"a.jpg"}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if s.SetCanvasSize(0, 100) {
		t.Error("SetCanvasSize() with zero width should refuse")
	}
	if s.SetCanvasSize(320, 240) {
		t.Error("SetCanvasSize() with unchanged size should report false")
	}
	if !s.SetCanvasSize(800, 600) {
		t.Error("SetCanvasSize() with new size should report true")
	}
	if w, h := s.CanvasSize(); w != 800 || h != 600 {
		t.Errorf("canvas = %dx%d, want 800x600", w, h)
	}
}

func TestCropLifecycle(t *testing.T) {
	s, err := New([]string{"a.jpg", "b.jpg"}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if s.CommitCrop() {
		t.Error("CommitCrop() while idle should report false")
	}
	if s.ResetCrop() {
		t.Error("ResetCrop() while idle should report false")
	}

	s.NextImage()
	if !s.Editing() || s.SelectedIndex() != 0 {
		t.Fatalf("after NextImage() editing=%v index=%d, want editing image 0", s.Editing(), s.SelectedIndex())
	}
	s.MoveCrop(crop.Left)
	if got := s.PendingCrop().X; got != 24.5 {
		t.Errorf("pending X after move = %v, want 24.5", got)
	}

	s.NextImage()
	if s.SelectedIndex() != 1 {
		t.Errorf("selection = %d, want 1", s.SelectedIndex())
	}
	if got := s.PendingCrop().X; got != 25 {
		t.Errorf("pending X after selection change = %v, want reset to 25", got)
	}

	if !s.CommitCrop() {
		t.Fatal("CommitCrop() while editing should report true")
	}
	if s.Editing() {
		t.Error("commit should leave editing")
	}
	want := crop.Rect{X: 25, Y: 25, W: 50, H: 50}
	if got := s.Images()[1].Crop; got != want {
		t.Errorf("committed crop = %+v, want %+v", got, want)
	}

	// The selection survives, so editing resumes at the same image.
	s.NextImage()
	if s.SelectedIndex() != 1 {
		t.Errorf("selection after re-entering = %d, want 1", s.SelectedIndex())
	}
	if !s.ResetCrop() {
		t.Error("ResetCrop() with a committed crop should report true")
	}
	if !s.Images()[1].Crop.IsFull() {
		t.Errorf("crop after reset = %+v, want uncropped", s.Images()[1].Crop)
	}
	if s.ResetCrop() {
		t.Error("second ResetCrop() should report false")
	}
	if !s.Editing() {
		t.Error("reset should keep editing active")
	}
}

func TestResetAllCrops(t *testing.T) {
	s, err := New([]string{"a.jpg", "b.jpg"}, Options{
		Crops: []CropSpec{
			{Index: 0, Rect: crop.Rect{X: 10, Y: 10, W: 50, H: 50}},
			{Index: 1, Rect: crop.Rect{X: 20, Y: 20, W: 40, H: 40}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !s.ResetAllCrops() {
		t.Error("ResetAllCrops() with committed crops should report true")
	}
	for i, im := range s.Images() {
		if !im.Crop.IsFull() {
			t.Errorf("image %d crop = %+v, want uncropped", i, im.Crop)
		}
	}
	if s.ResetAllCrops() {
		t.Error("ResetAllCrops() with nothing to reset should report false")
	}
}

func TestFrame(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeTestImage(t, good, imaging.New(80, 60, red))
	missing := filepath.Join(dir, "missing.png")

	s, err := New([]string{good, missing}, Options{
		Border: render.NoBorder(),
		Sizing: layout.Sizing{ImageWidth: 40, ImageHeight: 30},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Images()[0].Width != 80 || s.Images()[0].Height != 60 {
		t.Errorf("loaded size = %dx%d, want 80x60", s.Images()[0].Width, s.Images()[0].Height)
	}
	if s.Images()[1].Loaded() {
		t.Error("unreadable image should stay unloaded")
	}

	frame, err := s.Frame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b := frame.Bounds()
	if b.Dx() != 80 || b.Dy() != 30 {
		t.Errorf("frame = %dx%d, want 80x30", b.Dx(), b.Dy())
	}
	if got := pixel(frame, 20, 15); got.R != 255 {
		t.Errorf("loaded pane = %+v, want red", got)
	}
	if got := pixel(frame, 60, 15); got != black {
		t.Errorf("unloaded pane = %+v, want black", got)
	}
}

func TestFrameRebuildsTilesAfterReset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "split.png")
	split := imaging.Paste(imaging.New(80, 60, red), imaging.New(40, 60, blue), image.Pt(40, 0))
	writeTestImage(t, path, split)

	s, err := New([]string{path}, Options{
		Border: render.NoBorder(),
		Sizing: layout.Sizing{ImageWidth: 40, ImageHeight: 30},
		Crops:  []CropSpec{{Index: 0, Rect: crop.Rect{X: 50, Y: 0, W: 50, H: 100}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	frame, err := s.Frame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := pixel(frame, 10, 15); got.B != 255 {
		t.Errorf("cropped pane left = %+v, want blue from the right image half", got)
	}

	s.ResetAllCrops()
	frame, err = s.Frame(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := pixel(frame, 10, 15); got.R != 255 {
		t.Errorf("reset pane left = %+v, want red from the full image", got)
	}
	if got := pixel(frame, 30, 15); got.B != 255 {
		t.Errorf("reset pane right = %+v, want blue from the full image", got)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	writeTestImage(t, src, imaging.New(32, 24, red))
	out := filepath.Join(dir, "combined.png")

	s, err := New([]string{src}, Options{
		OutputPath: out,
		Sizing:     layout.Sizing{ImageWidth: 32, ImageHeight: 24},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	s.NextImage()
	if err := s.Write(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Editing() {
		t.Error("Write() should cancel crop editing")
	}

	img, err := imgio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("written size = %dx%d, want 32x24", b.Dx(), b.Dy())
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New([]string{"a.jpg"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(ctx); err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}
