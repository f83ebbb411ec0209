package compose

import (
	"image"

	"github.com/imgrid/imgrid/pkg/crop"
)

// Image is one source image slot. Pixels stay nil until Load runs and
// remain nil when decoding fails; such slots still occupy a pane, which
// renders as an empty bordered rectangle. Crop is the committed crop,
// always expressed relative to the original pixels.
type Image struct {
	Path   string
	Pixels image.Image
	Width  int
	Height int
	Crop   crop.Rect
}

// Loaded reports whether the slot holds decoded pixels.
func (im *Image) Loaded() bool {
	return im.Pixels != nil
}
