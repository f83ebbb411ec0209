// Package io decodes input images and encodes composed canvases.
//
// # Overview
//
// The compositor treats file handling as a thin boundary around the
// layout and crop engine. This package is that boundary:
//
//   - [Load] / [Decode] read a JPEG or PNG into an image.Image,
//     honoring EXIF orientation so photos composite the way cameras
//     display them.
//   - [Write] / [Encode] store a composed canvas, picking the encoder
//     from the output filename extension.
//
// # Formats
//
// Only JPEG and PNG are supported on both sides. The output extension
// is validated up front (see [FormatForPath]), so a bad filename fails
// at configuration time, not after a long interactive session.
//
// # Errors
//
// Load failures return DECODE_FAILED errors. Callers composing many
// images treat them as warnings: the failed slot renders as an empty
// pane and composition continues, since a partial result beats
// aborting the whole run. Write failures return ENCODE_FAILED and are
// always fatal to the write operation.
package io
