package layout

import (
	"fmt"

	"github.com/imgrid/imgrid/pkg/errors"
	"github.com/imgrid/imgrid/pkg/geom"
)

// Mode selects the grid policy. The numeric values are part of the CLI
// surface (-l flag) and of reconstructed batch command lines.
type Mode int

const (
	// ModeEqual lays out every image in a uniform grid cell.
	ModeEqual Mode = 1
	// ModeFirstDouble enlarges the first image to a 2x2 block of cells.
	ModeFirstDouble Mode = 2
)

// Default sizing applied when configuration supplies no size at all.
const (
	DefaultImageWidth  = 320
	DefaultImageHeight = 240

	// DefaultAspectRatio derives a missing height from a supplied width.
	// Derived sizes feed reconstructed command lines, so the truncated
	// constant must not be replaced with 4.0/3.0.
	DefaultAspectRatio = 1.333333
)

// BorderWidth is the inset, in pixels, between a full pane and its
// content pane on each side.
const BorderWidth = 2

// ParseMode converts the numeric CLI value into a Mode.
func ParseMode(n int) (Mode, error) {
	m := Mode(n)
	if !m.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidLayout, "layout %d not supported", n)
	}
	return m, nil
}

// Valid reports whether m is a supported layout mode.
func (m Mode) Valid() bool {
	return m == ModeEqual || m == ModeFirstDouble
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeEqual:
		return "equal-size"
	case ModeFirstDouble:
		return "first-double-size"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Bounds returns the inclusive valid column range for the mode. The
// double-size layout consumes columns 0 and 1 with its enlarged first
// pane, so it needs at least two columns to be well formed.
func (m Mode) Bounds() (minCols, maxCols int) {
	if m == ModeFirstDouble {
		return 2, 10
	}
	return 1, 10
}

// DefaultCols returns the column count used when none is configured.
// The values are fixed empirical defaults.
func (m Mode) DefaultCols(imageCount int) int {
	if m == ModeFirstDouble {
		if imageCount == 1 {
			return 2
		}
		return 3
	}
	switch imageCount {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	case 4:
		return 2
	default:
		return 3
	}
}

// Rows returns the row count needed to place imageCount images in cols
// columns. In double-size mode the enlarged first pane covers a 2x2
// block, so the first two rows jointly hold 1 + 2*(cols-2) images and
// any overflow spills into additional full rows.
func (m Mode) Rows(imageCount, cols int) int {
	if m == ModeFirstDouble {
		imagesInFirstTwoRows := 1 + 2*(cols-2)
		if imagesInFirstTwoRows >= imageCount {
			return 2
		}
		return 2 + geom.CeilDiv(imageCount-imagesInFirstTwoRows, cols)
	}
	return geom.CeilDiv(imageCount, cols)
}

// Sizing carries the size constraints supplied by configuration.
// Zero values mean "not supplied". When an image or canvas width is
// supplied without its height, the height is derived.
type Sizing struct {
	ImageWidth   int
	ImageHeight  int
	CanvasWidth  int
	CanvasHeight int
}

// Initial is the resolved starting geometry for a session.
type Initial struct {
	Cols         int
	Rows         int
	CanvasWidth  int
	CanvasHeight int
}

// Resolve validates the configured column count (or picks the default),
// then derives the initial canvas size from the supplied constraints.
//
// Exactly one of the per-image size and the canvas size may be given.
// With neither, each image gets 320x240 and the canvas is sized to hold
// the full grid. A width given without a height implies the height via
// DefaultAspectRatio; for a canvas width the derivation additionally
// scales by rows/cols so individual cells keep roughly 4:3 shape.
func Resolve(mode Mode, imageCount, cols int, s Sizing) (Initial, error) {
	if !mode.Valid() {
		return Initial{}, errors.New(errors.ErrCodeInvalidLayout, "layout %d not supported", int(mode))
	}

	minCols, maxCols := mode.Bounds()
	if cols > 0 {
		if cols < minCols || cols > maxCols {
			return Initial{}, errors.New(errors.ErrCodeInvalidCols, "cols %d not in range %d - %d", cols, minCols, maxCols)
		}
	} else {
		cols = mode.DefaultCols(imageCount)
	}
	rows := mode.Rows(imageCount, cols)

	if s.ImageWidth != 0 && s.CanvasWidth != 0 {
		return Initial{}, errors.New(errors.ErrCodeConflictingSize, "image size and canvas size are mutually exclusive")
	}

	canvasW, canvasH := s.CanvasWidth, s.CanvasHeight
	if canvasW == 0 && canvasH == 0 {
		imgW, imgH := s.ImageWidth, s.ImageHeight
		if imgW == 0 {
			imgW, imgH = DefaultImageWidth, DefaultImageHeight
		} else if imgH == 0 {
			imgH = int(float64(imgW) / DefaultAspectRatio)
		}
		canvasW = imgW * cols
		canvasH = imgH * rows
	} else if canvasW != 0 && canvasH == 0 {
		canvasH = int(float64(canvasW) / DefaultAspectRatio * float64(rows) / float64(cols))
	}

	if err := errors.ValidateDimensions(canvasW, canvasH); err != nil {
		return Initial{}, err
	}

	return Initial{Cols: cols, Rows: rows, CanvasWidth: canvasW, CanvasHeight: canvasH}, nil
}
