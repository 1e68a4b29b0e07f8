package pattern

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// Shape names a filled figure drawn by the shape generators.
type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeRectangle Shape = "rectangle"
	ShapeTriangle  Shape = "triangle"
	ShapePolygon   Shape = "polygon"
	ShapeSquare    Shape = "square"
)

// Shape generator defaults.
const (
	DefaultNumShapes = 50
	DefaultMaxSize   = 100
	MinShapeSize     = 20
	DefaultNumRings  = 10

	ringExtent = 0.75
)

// DefaultShapeTypes are the figures scattered by [GeometricShapes] when
// none are given.
var DefaultShapeTypes = []Shape{ShapeCircle, ShapeTriangle, ShapePolygon}

// RingShapes are the figures [ConcentricShapes] can draw.
var RingShapes = []Shape{ShapeCircle, ShapeSquare}

// ShapesOptions configures [GeometricShapes].
type ShapesOptions struct {
	NumShapes  int
	MaxSize    int
	ShapeTypes []Shape
}

// ConcentricOptions configures [ConcentricShapes].
type ConcentricOptions struct {
	NumRings int
	// Shape is circle or square; empty picks one at random.
	Shape Shape
}

// GeometricShapes scatters NumShapes filled figures over a black canvas.
// Each figure gets a random center anywhere on the canvas, a radius in
// [MinShapeSize, MaxSize] and a color blended between c0 and c1 at a random
// position. Triangles are rotated randomly; polygons have 4 to 8 sides.
func GeometricShapes(w, h int, c0, c1 colorspace.Color, opts ShapesOptions, rng *rand.Rand) *image.NRGBA {
	maxSize := max(opts.MaxSize, MinShapeSize)
	types := opts.ShapeTypes
	if len(types) == 0 {
		types = DefaultShapeTypes
	}

	dc := raster.NewContext(w, h, color.Black)
	for i := 0; i < opts.NumShapes; i++ {
		shape := choice(rng, types)
		x := float64(randInt(rng, 0, w))
		y := float64(randInt(rng, 0, h))
		size := float64(randInt(rng, MinShapeSize, maxSize))
		dc.SetColor(gradient.Lerp(c0, c1, rng.Float64()))

		switch shape {
		case ShapeCircle:
			dc.DrawCircle(x, y, size)
		case ShapeRectangle, ShapeSquare:
			dc.DrawRectangle(x-size, y-size, 2*size, 2*size)
		case ShapeTriangle:
			raster.Polygon(dc, regularPolygon(x, y, size, 3, uniform(rng, 0, 2*math.Pi)))
		case ShapePolygon:
			raster.Polygon(dc, regularPolygon(x, y, size, randInt(rng, 4, 8), 0))
		}
		dc.Fill()
	}
	return raster.Snapshot(dc)
}

// ConcentricShapes draws NumRings nested circles or squares around the
// canvas center, largest first, so every ring shows as a band. Ring i of n
// has radius i/n of three quarters of the longer canvas side and color
// Lerp(c0, c1, i/n).
func ConcentricShapes(w, h int, c0, c1 colorspace.Color, opts ConcentricOptions, rng *rand.Rand) *image.NRGBA {
	shape := opts.Shape
	if shape == "" {
		shape = choice(rng, RingShapes)
	}
	n := opts.NumRings
	cx, cy := float64(w/2), float64(h/2)
	maxR := float64(max(w, h)) * ringExtent

	dc := raster.NewContext(w, h, color.Black)
	for i := n; i > 0; i-- {
		t := float64(i) / float64(n)
		r := t * maxR
		dc.SetColor(gradient.Lerp(c0, c1, t))
		if shape == ShapeSquare || shape == ShapeRectangle {
			dc.DrawRectangle(cx-r, cy-r, 2*r, 2*r)
		} else {
			dc.DrawCircle(cx, cy, r)
		}
		dc.Fill()
	}
	return raster.Snapshot(dc)
}

func regularPolygon(cx, cy, r float64, sides int, phase float64) []raster.Point {
	pts := make([]raster.Point, sides)
	for i := range pts {
		a := phase + 2*math.Pi*float64(i)/float64(sides)
		pts[i] = raster.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}
