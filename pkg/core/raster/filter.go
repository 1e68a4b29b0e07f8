package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// smoothMore is the 5×5 smoothing kernel applied after supersampled line
// drawing. It is normalized by its sum when convolved.
var smoothMore = [25]float64{
	1, 1, 1, 1, 1,
	1, 5, 5, 5, 1,
	1, 5, 44, 5, 1,
	1, 5, 5, 5, 1,
	1, 1, 1, 1, 1,
}

// SmoothMore applies a strong center-weighted 5×5 smoothing filter.
func SmoothMore(img image.Image) *image.NRGBA {
	return imaging.Convolve5x5(img, smoothMore, &imaging.ConvolveOptions{Normalize: true})
}

// Blur applies a Gaussian blur with the given standard deviation.
// A non-positive sigma returns an unmodified copy.
func Blur(img image.Image, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Blur(img, sigma)
}
