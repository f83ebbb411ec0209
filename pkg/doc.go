// Package pkg provides the core libraries for imgrid image compositing.
//
// # Overview
//
// Imgrid composites independently sized raster images into one tiled
// canvas and lets a user crop each source interactively before the
// result is written. The pkg directory is organized into three main
// areas:
//
//  1. Domain logic (grid layout, crop model, composition sessions)
//  2. Rasterization (tile rendering, canvas assembly, image IO)
//  3. Infrastructure (caching, configuration, errors, observability)
//
// # Architecture
//
// The typical data flow through imgrid:
//
//	Image files
//	     ↓
//	[io] package (decode, EXIF orientation)
//	     ↓
//	[layout] package (grid policy → pane rectangles)
//	     ↓
//	[compose] package (session state, tile cache, crop editing)
//	     ↓
//	[render] package (tiles + borders + overlay → canvas)
//	     ↓
//	JPEG/PNG output
//
// # Quick Start
//
// Compose a grid and write it to a file:
//
//	import (
//	    "context"
//	    "github.com/imgrid/imgrid/pkg/compose"
//	    "github.com/imgrid/imgrid/pkg/layout"
//	)
//
//	// 1. Configure a session
//	sess, _ := compose.New(paths, compose.Options{
//	    Mode:       layout.ModeEqual,
//	    OutputPath: "out.jpg",
//	})
//
//	// 2. Decode the sources
//	_ = sess.Load(context.Background())
//
//	// 3. Write the composite
//	_ = sess.Write(context.Background())
//
// # Main Packages
//
// ## Domain Logic
//
// [layout] - The grid layout engine. Two policies (equal cells, first
// image doubled), column bounds and defaults, row counts, canvas size
// derivation, and the per-frame pane planner.
//
// [crop] - The crop model. Percentage rectangles relative to the current
// crop space, composition of stacked crops, sanitization, and the
// interactive editor state machine (select, move, resize, commit).
//
// [compose] - Composition sessions shared by the batch, interactive, and
// serve entry points: image slots, per-slot tile caching with precise
// invalidation, crop editing, and batch command-line reconstruction.
//
// [geom] - Integer rectangles and the shared aspect-ratio helpers.
//
// ## Rasterization
//
// [render] - Tile rendering (crop select and scale), canvas assembly,
// the border palette, and the crop overlay.
//
// [io] - Image IO: format detection by extension, JPEG/PNG decoding with
// EXIF auto-orientation, and encoding.
//
// ## Infrastructure
//
// [cache] - Byte caches for encoded composites: memory, file, Redis, and
// null backends behind one interface, plus deterministic composite keys.
//
// [config] - TOML settings file with discovery under XDG_CONFIG_HOME.
//
// [errors] - Structured errors with stable machine-readable codes.
//
// [observability] - Hook interfaces for session, cache, and HTTP events
// with no-op defaults.
//
// [buildinfo] - Version information injected at build time.
//
// # Common Workflows
//
// Preseed crops from a recorded command line:
//
//	opts.Crops = append(opts.Crops, compose.CropSpec{
//	    Index: 0,
//	    Rect:  crop.Rect{X: 10, Y: 10, W: 80, H: 80},
//	})
//
// Edit crops interactively:
//
//	sess.NextImage()          // select image 0, centered pending crop
//	sess.MoveCrop(crop.Left)  // nudge the pending rectangle
//	sess.CommitCrop()         // fold it into the committed crop
//
// Cache encoded composites in the serve path:
//
//	key := cache.CompositeKey("composite", "png", cols, width, height)
//	if data, ok, _ := backend.Get(ctx, key); ok {
//	    return data
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example          # Examples only
//
// [layout]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/layout
// [crop]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/crop
// [compose]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/compose
// [geom]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/geom
// [render]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/render
// [io]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/io
// [cache]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/imgrid/imgrid/pkg/buildinfo
package pkg
