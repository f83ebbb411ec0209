package io

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/imgrid/imgrid/pkg/errors"
)

// Decode reads one JPEG or PNG image from r. The decoded pixels are
// independent of r, which is not closed.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode image")
	}
	return img, nil
}

// Load reads the image file at path. EXIF orientation is applied, so
// the returned image is upright regardless of how the camera stored it.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "read %s", path)
	}
	return img, nil
}
