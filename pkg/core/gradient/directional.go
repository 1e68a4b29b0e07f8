package gradient

import (
	"image"
	"math"
	"strings"

	"github.com/spa-dev/rbgen/pkg/errors"
)

// Direction selects how a directional gradient maps pixels to positions.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Diagonal   Direction = "diagonal"
	Radial     Direction = "radial"
)

// Directions lists the supported gradient directions.
var Directions = []Direction{Horizontal, Vertical, Diagonal, Radial}

// ParseDirection converts a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Directions {
		if d == known {
			return d, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "unknown gradient direction: %q (must be one of: horizontal, vertical, diagonal, radial)", s)
}

// Position returns the ramp position of pixel (x, y) on a w×h canvas.
//
//	horizontal  x/w
//	vertical    y/h
//	diagonal    distance from the top-left corner over the diagonal length
//	radial      distance from (w/2, h/2) over max(w,h)/2, capped at 1
func (d Direction) Position(x, y, w, h int) float64 {
	switch d {
	case Vertical:
		return float64(y) / float64(h)
	case Diagonal:
		return math.Hypot(float64(x), float64(y)) / math.Hypot(float64(w), float64(h))
	case Radial:
		maxR := max(w, h) / 2
		if maxR < 1 {
			maxR = 1
		}
		dist := math.Hypot(float64(x-w/2), float64(y-h/2))
		return math.Min(1, dist/float64(maxR))
	default:
		return float64(x) / float64(w)
	}
}

// Directional renders an opaque w×h gradient along ramp.
func Directional(w, h int, ramp Ramp, d Direction) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := Map(d.Position(x, y, w, h), ramp)
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, 0xff
		}
	}
	return img
}
