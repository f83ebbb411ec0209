package errors

import (
	"strings"
	"unicode"
)

// MaxDimension bounds any single canvas or image dimension. It matches
// the texture size limit of common GPU backends so composites stay
// renderable everywhere.
const MaxDimension = 16384

// ValidateOutputPath validates an output filename supplied on the
// command line or in a config file. The extension selects the encoder,
// so only .jpg and .png are accepted.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidOutput, "output filename cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidOutput, "output filename contains invalid characters")
		}
	}

	if len(path) <= 4 || (!strings.HasSuffix(path, ".jpg") && !strings.HasSuffix(path, ".png")) {
		return New(ErrCodeInvalidOutput, "output filename %q must have .jpg or .png extension", path)
	}

	return nil
}

// ValidateDimensions validates a width/height pair supplied by
// configuration. Zero means "not supplied" and is checked elsewhere;
// here both values must be positive and within the renderable range.
func ValidateDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidGeometry, "size %dx%d must be positive", w, h)
	}
	if w > MaxDimension || h > MaxDimension {
		return New(ErrCodeInvalidGeometry, "size %dx%d exceeds maximum dimension %d", w, h, MaxDimension)
	}
	return nil
}

// ValidateCropValues validates a crop rectangle supplied at the CLI
// boundary. Values are percentages of the image's coordinate space.
// Interactive editing clamps less strictly; these rules apply only to
// preset crops.
func ValidateCropValues(x, y, w, h float64) error {
	if w < 5 || h < 5 {
		return New(ErrCodeInvalidCrop, "crop %gx%g too small, width and height must be at least 5 percent", w, h)
	}
	if x < 0 || y < 0 || x+w > 100 || y+h > 100 {
		return New(ErrCodeInvalidCrop, "crop x=%g y=%g w=%g h=%g exceeds image bounds", x, y, w, h)
	}
	return nil
}

// ValidateImageCount validates the number of input images against the
// fixed slot capacity.
func ValidateImageCount(n, max int) error {
	if n > max {
		return New(ErrCodeTooManyImages, "%d images supplied, maximum is %d", n, max)
	}
	return nil
}
