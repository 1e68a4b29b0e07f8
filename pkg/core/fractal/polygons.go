package fractal

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// Polygon subdivision defaults.
const (
	DefaultLineWidth = 3
	DefaultDepth     = 4

	polygonBlurSigma = 0.5
	vertexJitter     = 0.05 // radians
	centerJitter     = 3.0  // pixels
)

// Coloring chooses how nested polygon outlines are colored.
type Coloring string

const (
	// ColoringLinear blends two distinct ramp colors at a random position.
	ColoringLinear Coloring = "linear"
	// ColoringRadial blends a random center color toward a random edge
	// color by the polygon's size relative to the canvas.
	ColoringRadial Coloring = "radial"
	// ColoringVertex picks one ramp color per polygon.
	ColoringVertex Coloring = "vertex"
)

// Colorings lists the polygon coloring strategies.
var Colorings = []Coloring{ColoringLinear, ColoringRadial, ColoringVertex}

// PolygonOptions configures nested polygon synthesis.
type PolygonOptions struct {
	LineWidth int
	Depth     int
	// Coloring is picked at random when empty.
	Coloring Coloring
}

// polygonTask is one pending polygon on the work stack.
type polygonTask struct {
	x, y  float64
	size  float64
	depth int
	sides int // zero until the root picks a side count
}

// NestedPolygons draws a polygon at the canvas center and, at each of its
// vertices, a child polygon of about half its size, down to opts.Depth
// levels. Outlines are stroked on a transparent canvas and softened with
// a light blur; pixels no outline reaches stay fully transparent.
//
// The recursion is driven by an explicit LIFO stack and terminates when the
// stack drains; records at depth zero or with size below one pixel are
// dropped.
func NestedPolygons(w, h int, ramp gradient.Ramp, opts PolygonOptions, rng *rand.Rand) *image.NRGBA {
	lineWidth := opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	coloring := opts.Coloring
	if coloring == "" {
		coloring = Colorings[rng.IntN(len(Colorings))]
	}

	dc := raster.NewContext(w, h, color.Transparent)
	dc.SetLineWidth(float64(lineWidth))

	stack := []polygonTask{{
		x:     float64(w / 2),
		y:     float64(h / 2),
		size:  float64(min(w, h)) / 2,
		depth: opts.Depth,
	}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if task.depth <= 0 || task.size < 1 {
			continue
		}

		sides := task.sides
		if sides == 0 {
			sides = 3 + rng.IntN(6)
		}
		step := 2 * math.Pi / float64(sides)
		vertices := make([]raster.Point, sides)
		for i := range vertices {
			ax := float64(i)*step + uniform(rng, -vertexJitter, vertexJitter)
			ay := float64(i)*step + uniform(rng, -vertexJitter, vertexJitter)
			vertices[i] = raster.Point{
				X: task.x + task.size*math.Cos(ax),
				Y: task.y + task.size*math.Sin(ay),
			}
		}

		dc.SetColor(polygonColor(coloring, ramp, task.size, w, h, rng))
		raster.Polygon(dc, vertices)
		dc.Stroke()

		childSize := task.size * uniform(rng, 0.45, 0.55)
		for _, v := range vertices {
			stack = append(stack, polygonTask{
				x:     v.X + uniform(rng, -centerJitter, centerJitter),
				y:     v.Y + uniform(rng, -centerJitter, centerJitter),
				size:  childSize,
				depth: task.depth - 1,
				sides: sides,
			})
		}
	}

	return raster.Blur(raster.Snapshot(dc), polygonBlurSigma)
}

func polygonColor(coloring Coloring, ramp gradient.Ramp, size float64, w, h int, rng *rand.Rand) colorspace.Color {
	switch coloring {
	case ColoringLinear:
		if len(ramp) < 2 {
			return ramp[0]
		}
		i := rng.IntN(len(ramp))
		j := rng.IntN(len(ramp) - 1)
		if j >= i {
			j++
		}
		return gradient.Lerp(ramp[i], ramp[j], rng.Float64())
	case ColoringRadial:
		center := ramp[rng.IntN(len(ramp))]
		edge := ramp[rng.IntN(len(ramp))]
		t := math.Min(size/float64(w), size/float64(h))
		return gradient.Lerp(center, edge, t)
	default:
		return ramp[rng.IntN(len(ramp))]
	}
}
