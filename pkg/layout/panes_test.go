package layout

import (
	"testing"

	"github.com/imgrid/imgrid/pkg/geom"
)

func TestPlanPanesEqual(t *testing.T) {
	p := PlanPanes(ModeEqual, 4, 640, 480, 2)

	if p.Rows != 2 || p.Cols != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", p.Rows, p.Cols)
	}
	if p.CellW != 320 || p.CellH != 240 {
		t.Fatalf("cell = %dx%d, want 320x240", p.CellW, p.CellH)
	}
	if p.UsedWidth != 640 || p.UsedHeight != 480 {
		t.Errorf("used = %dx%d, want 640x480", p.UsedWidth, p.UsedHeight)
	}

	wantFull := []geom.Rect{
		{0, 0, 320, 240},
		{320, 0, 320, 240},
		{0, 240, 320, 240},
		{320, 240, 320, 240},
	}
	if p.PaneCount() != len(wantFull) {
		t.Fatalf("PaneCount() = %d, want %d", p.PaneCount(), len(wantFull))
	}
	for i, want := range wantFull {
		if p.Full[i] != want {
			t.Errorf("Full[%d] = %+v, want %+v", i, p.Full[i], want)
		}
	}

	wantContent0 := geom.Rect{X: 2, Y: 2, W: 316, H: 236}
	if p.Content[0] != wantContent0 {
		t.Errorf("Content[0] = %+v, want %+v", p.Content[0], wantContent0)
	}
}

func TestPlanPanesFirstDouble(t *testing.T) {
	p := PlanPanes(ModeFirstDouble, 5, 900, 900, 3)

	if p.Rows != 3 {
		t.Fatalf("Rows = %d, want 3", p.Rows)
	}
	if p.CellW != 300 || p.CellH != 300 {
		t.Fatalf("cell = %dx%d, want 300x300", p.CellW, p.CellH)
	}

	wantFull := []geom.Rect{
		{0, 0, 600, 600},     // enlarged first pane covers rows 0-1, cols 0-1
		{600, 0, 300, 300},   // row 0, col 2
		{600, 300, 300, 300}, // row 1, col 2
		{0, 600, 300, 300},
		{300, 600, 300, 300},
		{600, 600, 300, 300},
	}
	if p.PaneCount() != len(wantFull) {
		t.Fatalf("PaneCount() = %d, want %d", p.PaneCount(), len(wantFull))
	}
	for i, want := range wantFull {
		if p.Full[i] != want {
			t.Errorf("Full[%d] = %+v, want %+v", i, p.Full[i], want)
		}
	}
}

func TestPlanPanesDoubleNoOverlap(t *testing.T) {
	p := PlanPanes(ModeFirstDouble, 8, 1200, 900, 4)
	for i := 0; i < p.PaneCount(); i++ {
		for j := i + 1; j < p.PaneCount(); j++ {
			if p.Full[i].Intersects(p.Full[j]) {
				t.Errorf("Full[%d] %+v overlaps Full[%d] %+v", i, p.Full[i], j, p.Full[j])
			}
		}
	}
}

func TestPlanPanesRemainder(t *testing.T) {
	p := PlanPanes(ModeEqual, 4, 325, 245, 2)

	if p.CellW != 162 || p.CellH != 122 {
		t.Fatalf("cell = %dx%d, want 162x122", p.CellW, p.CellH)
	}
	if p.UsedWidth != 324 || p.UsedHeight != 244 {
		t.Errorf("used = %dx%d, want 324x244", p.UsedWidth, p.UsedHeight)
	}
}

func TestPlanPanesContentInset(t *testing.T) {
	p := PlanPanes(ModeFirstDouble, 5, 900, 900, 3)
	for i, full := range p.Full {
		want := full.Inset(BorderWidth)
		if p.Content[i] != want {
			t.Errorf("Content[%d] = %+v, want %+v", i, p.Content[i], want)
		}
	}
}

func TestPlanPanesCapacity(t *testing.T) {
	for _, mode := range []Mode{ModeEqual, ModeFirstDouble} {
		minCols, maxCols := mode.Bounds()
		for n := 1; n <= 12; n++ {
			for cols := minCols; cols <= maxCols; cols++ {
				p := PlanPanes(mode, n, 1000, 800, cols)
				if p.PaneCount() < n {
					t.Errorf("%v PlanPanes(n=%d, cols=%d): PaneCount() = %d < %d images",
						mode, n, cols, p.PaneCount(), n)
				}
				if mode == ModeEqual && p.PaneCount() != p.Rows*p.Cols {
					t.Errorf("equal-size PaneCount() = %d, want rows*cols = %d",
						p.PaneCount(), p.Rows*p.Cols)
				}
				if len(p.Full) != len(p.Content) {
					t.Errorf("len(Full) = %d, len(Content) = %d", len(p.Full), len(p.Content))
				}
				for i, full := range p.Full {
					if full.X < 0 || full.Y < 0 || full.Right() > p.UsedWidth || full.Bottom() > p.UsedHeight {
						t.Errorf("%v PlanPanes(n=%d, cols=%d): Full[%d] = %+v outside used canvas %dx%d",
							mode, n, cols, i, full, p.UsedWidth, p.UsedHeight)
					}
				}
			}
		}
	}
}

func TestPlanPanesNoImages(t *testing.T) {
	p := PlanPanes(ModeEqual, 0, 640, 480, 2)
	if p.PaneCount() != 0 {
		t.Errorf("PaneCount() = %d, want 0", p.PaneCount())
	}
}
