// Package fractal implements the two fractal synthesizers: an escape-time
// Mandelbrot renderer and recursively subdivided nested polygons.
package fractal

import (
	"image"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/gradient"
)

// Mandelbrot view limits used when zoom or center are left unset.
const (
	MinZoom    = 0.8
	MaxZoom    = 3.5
	MinCenterX = -1.0
	MaxCenterX = 0.5
	MinCenterY = -0.5
	MaxCenterY = 0.5
)

// DefaultMaxIter is the default escape-time iteration limit.
const DefaultMaxIter = 100

// MandelbrotOptions configures the Mandelbrot view.
type MandelbrotOptions struct {
	MaxIter int
	// Zoom magnifies the view; zero picks a random zoom in [MinZoom, MaxZoom].
	Zoom float64
	// Center is the point of the complex plane at the canvas center; nil
	// picks a random point in the default window.
	Center *complex128
}

// EscapeTime iterates z = z² + c from z = c and returns the number of
// iterations performed before |z|² reached 4, capped at maxIter.
func EscapeTime(c complex128, maxIter int) int {
	cx, cy := real(c), imag(c)
	zx, zy := cx, cy
	i := 0
	for zx*zx+zy*zy < 4 && i < maxIter {
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
		i++
	}
	return i
}

// Mandelbrot renders a w×h view of the Mandelbrot set, coloring each pixel
// by its escape time along ramp. The horizontal extent of the view is
// 3.5/zoom and the vertical extent 2/zoom.
func Mandelbrot(w, h int, ramp gradient.Ramp, opts MandelbrotOptions, rng *rand.Rand) *image.NRGBA {
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = uniform(rng, MinZoom, MaxZoom)
	}
	var center complex128
	if opts.Center != nil {
		center = *opts.Center
	} else {
		cx := uniform(rng, MinCenterX, MaxCenterX)
		cy := uniform(rng, MinCenterY, MaxCenterY)
		center = complex(cx, cy)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	spanX, spanY := 3.5/zoom, 2.0/zoom
	for y := 0; y < h; y++ {
		im := (float64(y)/float64(h)-0.5)*spanY + imag(center)
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			re := (float64(x)/float64(w)-0.5)*spanX + real(center)
			n := EscapeTime(complex(re, im), maxIter)
			c := gradient.Map(float64(n)/float64(maxIter), ramp)
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, 0xff
		}
	}
	return img
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
