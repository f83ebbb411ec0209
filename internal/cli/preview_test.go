package cli

import (
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRenderHalfBlocks(t *testing.T) {
	frame := imaging.New(8, 4, color.NRGBA{R: 255, A: 255})

	out := renderHalfBlocks(frame, 8, 4)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n != 8 {
			t.Errorf("line %d has %d cells, want 8", i, n)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output should end with a newline")
	}
}

func TestRenderHalfBlocksFitsAspect(t *testing.T) {
	// 80x60 into 40 columns: the width caps the scale, so the preview is
	// 40x30 pixels, two pixel rows per line.
	frame := imaging.New(80, 60, color.NRGBA{G: 255, A: 255})

	out := renderHalfBlocks(frame, 40, 100)

	if lines := strings.Count(out, "\n"); lines != 15 {
		t.Errorf("line count = %d, want 15", lines)
	}
}

func TestRenderHalfBlocksOddHeight(t *testing.T) {
	// An odd pixel height leaves the last line with only a top pixel.
	frame := imaging.New(6, 3, color.NRGBA{B: 255, A: 255})

	out := renderHalfBlocks(frame, 6, 3)

	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("line count = %d, want 2", lines)
	}
}

func TestRenderHalfBlocksMinimums(t *testing.T) {
	frame := imaging.New(4, 4, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	out := renderHalfBlocks(frame, 0, 0)

	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("line count = %d, want 1", lines)
	}
	if !strings.Contains(out, "▀") {
		t.Error("output should contain at least one cell")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{255, 0, 0, "#ff0000"},
		{0, 255, 128, "#00ff80"},
		{0, 0, 0, "#000000"},
		{255, 255, 255, "#ffffff"},
	}

	for _, tt := range tests {
		if got := hexColor(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("hexColor(%d, %d, %d) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}
