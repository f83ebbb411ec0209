package layout

import "github.com/imgrid/imgrid/pkg/geom"

// Plan is the placement result for one frame. Pane i holds image i; the
// pane slices always have equal length. Full rectangles are
// border-inclusive, content rectangles are inset by BorderWidth on each
// side. Cell sizes use integer division, so UsedWidth/UsedHeight may be
// slightly smaller than the requested canvas; the remainder is unused.
type Plan struct {
	Full    []geom.Rect
	Content []geom.Rect

	Rows, Cols   int
	CellW, CellH int

	UsedWidth  int
	UsedHeight int
}

// PaneCount returns the number of placement rectangles in the plan.
// Callers must verify PaneCount() >= imageCount; a shortfall indicates
// a layout bug, not a user error.
func (p Plan) PaneCount() int { return len(p.Full) }

// PlanPanes computes the ordered placement rectangles for every grid
// cell of the given canvas.
//
// Equal-size mode emits rows x cols uniform panes row-major. Double-size
// mode first emits one enlarged pane of 2x2 cells at the origin, then
// row-major emits the remaining cells, skipping the 2x2 block already
// covered by the enlarged pane.
func PlanPanes(mode Mode, imageCount, canvasW, canvasH, cols int) Plan {
	rows := mode.Rows(imageCount, cols)
	if rows <= 0 || cols <= 0 {
		return Plan{Rows: rows, Cols: cols}
	}

	cellW := canvasW / cols
	cellH := canvasH / rows

	p := Plan{
		Rows:       rows,
		Cols:       cols,
		CellW:      cellW,
		CellH:      cellH,
		UsedWidth:  cellW * cols,
		UsedHeight: cellH * rows,
	}

	add := func(r geom.Rect) {
		p.Full = append(p.Full, r)
		p.Content = append(p.Content, r.Inset(BorderWidth))
	}

	if mode == ModeFirstDouble {
		add(geom.Rect{X: 0, Y: 0, W: 2 * cellW, H: 2 * cellH})
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if r <= 1 && c <= 1 {
					continue
				}
				add(geom.Rect{X: c * cellW, Y: r * cellH, W: cellW, H: cellH})
			}
		}
		return p
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			add(geom.Rect{X: c * cellW, Y: r * cellH, W: cellW, H: cellH})
		}
	}
	return p
}
