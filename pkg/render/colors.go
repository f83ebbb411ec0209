package render

import (
	"image/color"
	"strings"

	"github.com/imgrid/imgrid/pkg/errors"
)

// Border selects the pane border color, or disables borders entirely.
// Name preserves the spelling supplied by the user because reconstructed
// batch command lines echo it back.
type Border struct {
	Name  string
	Color color.RGBA
	None  bool
}

// paletteEntry order matters: it is the order shown in help text and
// shell completion.
type paletteEntry struct {
	name string
	col  color.RGBA
}

var palette = []paletteEntry{
	{"PURPLE", color.RGBA{R: 128, G: 0, B: 128, A: 255}},
	{"BLUE", color.RGBA{R: 0, G: 0, B: 255, A: 255}},
	{"LIGHT_BLUE", color.RGBA{R: 173, G: 216, B: 230, A: 255}},
	{"GREEN", color.RGBA{R: 0, G: 255, B: 0, A: 255}},
	{"YELLOW", color.RGBA{R: 255, G: 255, B: 0, A: 255}},
	{"ORANGE", color.RGBA{R: 255, G: 128, B: 0, A: 255}},
	{"PINK", color.RGBA{R: 255, G: 105, B: 180, A: 255}},
	{"RED", color.RGBA{R: 255, G: 0, B: 0, A: 255}},
	{"GRAY", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	{"WHITE", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	{"BLACK", color.RGBA{R: 0, G: 0, B: 0, A: 255}},
}

// DefaultBorder returns the GREEN border applied when none is configured.
func DefaultBorder() Border {
	b, _ := ParseBorder("GREEN")
	return b
}

// NoBorder returns a Border that disables border drawing.
func NoBorder() Border {
	return Border{Name: "NONE", None: true}
}

// ParseBorder resolves a palette color name, case-insensitively. The
// name NONE disables borders.
func ParseBorder(name string) (Border, error) {
	if strings.EqualFold(name, "NONE") {
		return Border{Name: name, None: true}, nil
	}
	for _, e := range palette {
		if strings.EqualFold(e.name, name) {
			return Border{Name: name, Color: e.col}, nil
		}
	}
	return Border{}, errors.New(errors.ErrCodeInvalidBorder, "border color %q not in palette", name)
}

// PaletteNames returns the selectable border color names, NONE first.
func PaletteNames() []string {
	names := make([]string, 0, len(palette)+1)
	names = append(names, "NONE")
	for _, e := range palette {
		names = append(names, e.name)
	}
	return names
}
