package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate turns img counter-clockwise by degrees and grows the canvas to
// hold the whole result. Uncovered corners are filled with bg.
// Rotations by multiples of 90 degrees are lossless.
func Rotate(img image.Image, degrees float64, bg color.Color) *image.NRGBA {
	return imaging.Rotate(img, degrees, bg)
}

// RotateKeep turns img counter-clockwise by degrees about its center
// without changing its size.
func RotateKeep(img image.Image, degrees float64, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	return CropCenter(Rotate(img, degrees, bg), b.Dx(), b.Dy())
}

// CropCenter cuts a w×h region from the center of img. The top-left corner
// of the region is at ((W-w)/2, (H-h)/2) with integer division.
func CropCenter(img image.Image, w, h int) *image.NRGBA {
	return imaging.CropCenter(img, w, h)
}

// Crop cuts the w×h region whose top-left corner is (x, y).
func Crop(img image.Image, x, y, w, h int) *image.NRGBA {
	min := img.Bounds().Min
	return imaging.Crop(img, image.Rect(x, y, x+w, y+h).Add(min))
}

// Shear applies the affine map that samples output pixel (x, y) from input
// position (x + sx*y, sy*x + y), keeping the canvas size. Pixels whose
// source falls outside img are filled with bg.
func Shear(img image.Image, sx, sy float64, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	dst := Fill(b.Dx(), b.Dy(), bg)

	// Transform wants the source-to-destination matrix, the inverse of
	// [[1 sx] [sy 1]].
	det := 1 - sx*sy
	if det == 0 {
		return dst
	}
	s2d := f64.Aff3{
		1 / det, -sx / det, 0,
		-sy / det, 1 / det, 0,
	}
	xdraw.BiLinear.Transform(dst, s2d, img, b, xdraw.Src, nil)
	return dst
}

// Downsample shrinks a supersampled image to w×h with a Lanczos filter.
func Downsample(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Resample scales img to w×h with Catmull-Rom interpolation.
func Resample(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
