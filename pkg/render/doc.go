// Package render turns a pane plan plus per-image tiles into the final
// composed canvas.
//
// # Overview
//
// Rendering is split in two halves so the session can cache the
// expensive half per image slot:
//
//   - [Tile]: crop src to its percentage rectangle and scale the result
//     to the pane's target size. This is the cacheable unit; it only
//     changes when the image's crop or the pane geometry changes.
//   - [Compose]: place every tile on a black canvas, stroke pane
//     borders, and draw the crop-mode overlay rectangle.
//
// # Panes and borders
//
// A tile is drawn into its pane's content rectangle when borders are
// enabled, or into the full rectangle when the border is NONE (see
// [Target]). Borders are stroked only for panes that hold an image
// slot; surplus panes of the grid stay black.
//
// # Usage
//
//	plan := layout.PlanPanes(mode, n, w, h, cols)
//	tiles := make([]image.Image, n)
//	for i, img := range images {
//		dest := render.Target(plan, i, border)
//		tiles[i] = render.Tile(img, crops[i], dest.W, dest.H)
//	}
//	canvas := render.Compose(plan, tiles, render.WithBorder(border))
package render
