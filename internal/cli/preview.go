package cli

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// renderHalfBlocks renders frame as terminal text, two vertical pixels
// per character cell using the upper-half-block glyph. The frame is
// scaled to fit a grid of cells columns by rows pixel rows, preserving
// aspect ratio. Every returned line ends with a newline.
func renderHalfBlocks(frame image.Image, cells, rows int) string {
	if cells < 1 {
		cells = 1
	}
	if rows < 2 {
		rows = 2
	}

	small := imaging.Fit(frame, cells, rows, imaging.Box)
	w := small.Bounds().Dx()
	h := small.Bounds().Dy()

	var b strings.Builder
	style := lipgloss.NewStyle()
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := small.NRGBAAt(x, y)
			cell := style.Foreground(lipgloss.Color(hexColor(top.R, top.G, top.B)))
			if y+1 < h {
				bottom := small.NRGBAAt(x, y+1)
				cell = cell.Background(lipgloss.Color(hexColor(bottom.R, bottom.G, bottom.B)))
			}
			b.WriteString(cell.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// hexColor formats an RGB triple as a lipgloss hex color string.
func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
