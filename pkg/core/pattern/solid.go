package pattern

import (
	"image"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// Solid returns a w×h canvas filled with c.
func Solid(w, h int, c colorspace.Color) *image.NRGBA {
	return raster.Fill(w, h, c)
}
