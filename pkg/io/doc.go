// Package io reads foreground images and writes composited results.
//
// # Formats
//
// Any format registered with the standard image package can be read; the
// imaging codecs register PNG, JPEG, GIF, TIFF and BMP. Results are always
// written as PNG so transparency survives.
//
// Decoded images are normalized to *image.NRGBA, the layout the compositor
// expects. Dimensions are checked against the synthesis limits from the
// image header before the pixels are decoded:
//
//	img, err := io.ImportImage("logo.png")
//	if errors.Is(err, errors.ErrCodeResourceBound) {
//	    // too large to process
//	}
//
// # Batches
//
// [ListImages] returns the PNG files of a directory, matched by a
// case-insensitive ".png" suffix and sorted by name, which is the order in
// which batch runs process them.
package io
