package io

import (
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/imgrid/imgrid/pkg/errors"
)

// Format identifies an output encoding.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// jpegQuality balances file size against visible artifacts in
// composited photos.
const jpegQuality = 90

// FormatForPath selects the output encoder from the filename
// extension. Only .jpg and .png are accepted.
func FormatForPath(path string) (Format, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return "", err
	}
	if strings.HasSuffix(path, ".png") {
		return FormatPNG, nil
	}
	return FormatJPEG, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		return errors.New(errors.ErrCodeEncodeFailed, "unsupported format %q", string(f))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode %s", string(f))
	}
	return nil
}

// Write encodes img into the file at path, selecting the format from
// the extension. The file is created or truncated.
func Write(path string, img image.Image) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "create %s", path)
	}

	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "close %s", path)
	}
	return nil
}
