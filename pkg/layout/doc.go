// Package layout converts an image count plus size constraints into a
// concrete grid of placement rectangles.
//
// # Overview
//
// Two policies are supported:
//
//   - [ModeEqual]: every pane is the same size, row-major.
//   - [ModeFirstDouble]: the first pane spans a 2x2 block of cells in the
//     top-left corner and the remaining panes fill the rest row-major.
//
// The package answers three questions, in order:
//
//  1. Shape ([Mode.Bounds], [Mode.DefaultCols], [Mode.Rows]): how many
//     columns are legal, which column count to pick when none is
//     configured, and how many rows that implies.
//  2. Size ([Resolve]): the initial canvas dimensions, derived from
//     either a per-image size or a canvas size (never both).
//  3. Placement ([PlanPanes]): the ordered pane rectangles for a given
//     canvas, recomputed every frame because canvas size and column
//     count are mutable at runtime.
//
// The column defaults and the double-size row arithmetic are fixed
// empirical rules, not derived from an optimization. Batch command
// reconstruction depends on them bit for bit, so they must not be
// "improved".
package layout
