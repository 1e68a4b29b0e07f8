package pattern

import (
	"image"
	"math"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// DefaultNumRays is the sector count of [Rays].
const DefaultNumRays = 24

// Rays splits the canvas into numRays equal sectors around its center and
// fills every odd sector with c1 on a c0 canvas. Sector 0 starts at three
// o'clock and sectors advance clockwise.
func Rays(w, h int, c0, c1 colorspace.Color, numRays int) *image.NRGBA {
	if numRays <= 0 {
		numRays = DefaultNumRays
	}
	cx, cy := w/2, h/2
	r := math.Hypot(float64(cx), float64(cy))
	step := 360 / float64(numRays)

	dc := raster.NewContext(w, h, c0)
	dc.SetColor(c1)
	for i := 1; i < numRays; i += 2 {
		raster.PieSlice(dc, float64(cx), float64(cy), r, float64(i)*step, float64(i+1)*step)
	}
	dc.Fill()
	return raster.Snapshot(dc)
}
