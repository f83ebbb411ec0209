// Package compose orchestrates compositing sessions for imgrid.
//
// This package implements the complete load → plan → tile → compose
// pipeline shared by the batch, interactive, and serve entry points. By
// centralizing this logic, every entry point produces identical output
// for identical settings.
//
// # Architecture
//
// A session moves through four stages:
//
//  1. Load: Decode the source images (once, up front)
//  2. Plan: Compute the pane grid for the current canvas and columns
//  3. Tile: Crop and scale each image to its pane
//  4. Compose: Draw tiles, borders, and the crop overlay onto the canvas
//
// Tiles are cached per image slot and invalidated when their inputs
// change: committing or resetting a crop invalidates that slot, while
// column and canvas size changes invalidate every slot.
//
// # Usage
//
// Create a session and write the composite:
//
//	sess, err := compose.New(paths, compose.Options{
//	    Mode:       layout.ModeEqual,
//	    OutputPath: "out.jpg",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sess.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := sess.Write(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Interactive callers render frames instead and feed editing actions:
//
//	sess.NextImage()
//	sess.MoveCrop(crop.Left)
//	frame, err := sess.Frame(ctx)
package compose

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/imgrid/imgrid/pkg/crop"
	"github.com/imgrid/imgrid/pkg/errors"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Config, and Serve
// =============================================================================

const (
	// MaxImages is the fixed image slot capacity of a session.
	MaxImages = 1000

	// MaxImageDim caps the longest side of a decoded image. Larger
	// images are downscaled on load.
	MaxImageDim = errors.MaxDimension

	// DefaultOutputPath is used when no output filename is configured.
	DefaultOutputPath = "out.jpg"
)

// =============================================================================
// Options - Session Configuration
// =============================================================================

// CropSpec preseeds one image slot with a committed crop, typically from
// a reconstructed batch command line.
type CropSpec struct {
	Index int
	Rect  crop.Rect
}

// Options contains all configuration for a compositing session.
type Options struct {
	// Mode selects the grid policy. Zero means equal-size.
	Mode layout.Mode

	// Cols fixes the column count. Zero derives it from the image count.
	Cols int

	// Sizing carries the per-image or canvas size constraints. At most
	// one of the two pairs may be supplied.
	Sizing layout.Sizing

	// Border selects the pane border color. The zero value means the
	// default GREEN border; use render.NoBorder to disable borders.
	Border render.Border

	// OutputPath is the output filename. The extension selects the
	// encoder.
	OutputPath string

	// Crops preseeds committed crops by image index.
	Crops []CropSpec

	// Logger receives progress and warning output. Nil discards it.
	Logger *log.Logger
}

// setDefaults fills unset option fields in place.
func (o *Options) setDefaults() {
	if o.Mode == 0 {
		o.Mode = layout.ModeEqual
	}
	if o.OutputPath == "" {
		o.OutputPath = DefaultOutputPath
	}
	if o.Border == (render.Border{}) {
		o.Border = render.DefaultBorder()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
