package pattern

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/fogleman/gg"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// Line generators draw at this multiple of the output size and downsample.
const Supersample = 2

const (
	vanishingPoints = 3
	minLinesPerVP   = 15
	maxLinesPerVP   = 25
	minLineWidth    = 2
	maxLineWidth    = 5

	minWaves        = 10
	maxWaves        = 20
	minWaveAmp      = 10
	minWaveFreq     = 0.005
	maxWaveFreq     = 0.05
	waveStrokeAlpha = 200
)

type edge int

const (
	edgeLeft edge = iota
	edgeRight
	edgeTop
	edgeBottom
)

var edges = []edge{edgeLeft, edgeRight, edgeTop, edgeBottom}

// Lines draws three fans of c1 line segments on c0. Each fan converges on
// a vanishing point in the outer third of a random side of the canvas and
// holds 15 to 25 segments that start on random canvas edges.
func Lines(w, h int, c0, c1 colorspace.Color, rng *rand.Rand) *image.NRGBA {
	hw, hh := w*Supersample, h*Supersample
	dc := raster.NewContext(hw, hh, c0)
	dc.SetColor(c1)

	vps := make([]raster.Point, vanishingPoints)
	for i := range vps {
		vps[i] = vanishingPoint(w, h, rng)
	}
	for _, vp := range vps {
		n := randInt(rng, minLinesPerVP, maxLinesPerVP)
		for i := 0; i < n; i++ {
			start := edgePoint(hw, hh, rng)
			dc.SetLineWidth(float64(randInt(rng, minLineWidth, maxLineWidth)))
			dc.DrawLine(start.X, start.Y, vp.X, vp.Y)
			dc.Stroke()
		}
	}
	return finishSupersampled(dc, w, h)
}

// WavyLines draws 10 to 20 parallel sine curves of c1 on c0. The curves
// share amplitude, frequency, phase and heading, and each passes through
// its own random anchor point. Strokes are drawn at alpha 200 over c0.
func WavyLines(w, h int, c0, c1 colorspace.Color, rng *rand.Rand) *image.NRGBA {
	hw, hh := w*Supersample, h*Supersample
	dc := raster.NewContext(hw, hh, c0)
	dc.SetColor(c1.NRGBA(waveStrokeAlpha))
	dc.SetLineJoinRound()

	count := randInt(rng, minWaves, maxWaves)
	amplitude := float64(randInt(rng, minWaveAmp, max(h/5, minWaveAmp)) * Supersample)
	frequency := uniform(rng, minWaveFreq, maxWaveFreq) / Supersample
	phase := uniform(rng, 0, 2*math.Pi)
	heading := uniform(rng, 0, 2*math.Pi)
	cos, sin := math.Cos(heading), math.Sin(heading)

	for k := 0; k < count; k++ {
		sx := float64(randInt(rng, 0, hw))
		sy := float64(randInt(rng, 0, hh))

		pts := make([]raster.Point, 0, hw)
		for i := -hw; i < hw; i += 2 * Supersample {
			fi := float64(i)
			off := amplitude * math.Sin(frequency*fi+phase)
			pts = append(pts, raster.Point{
				X: sx + fi*cos + off*sin,
				Y: sy + fi*sin - off*cos,
			})
		}
		dc.SetLineWidth(float64(randInt(rng, minLineWidth, maxLineWidth) * Supersample))
		raster.Polyline(dc, pts)
		dc.Stroke()
	}
	return finishSupersampled(dc, w, h)
}

func vanishingPoint(w, h int, rng *rand.Rand) raster.Point {
	hw, hh := w*Supersample, h*Supersample
	var x, y int
	switch choice(rng, edges) {
	case edgeLeft:
		x = randInt(rng, 0, (w/3)*Supersample)
		y = randInt(rng, 0, hh)
	case edgeRight:
		x = randInt(rng, (2*w/3)*Supersample, hw)
		y = randInt(rng, 0, hh)
	case edgeTop:
		x = randInt(rng, 0, hw)
		y = randInt(rng, 0, (h/3)*Supersample)
	default:
		x = randInt(rng, 0, hw)
		y = randInt(rng, (2*h/3)*Supersample, hh)
	}
	return raster.Point{X: float64(x), Y: float64(y)}
}

func edgePoint(w, h int, rng *rand.Rand) raster.Point {
	var x, y int
	switch choice(rng, edges) {
	case edgeLeft:
		y = randInt(rng, 0, h)
	case edgeRight:
		x, y = w, randInt(rng, 0, h)
	case edgeTop:
		x = randInt(rng, 0, w)
	default:
		x, y = randInt(rng, 0, w), h
	}
	return raster.Point{X: float64(x), Y: float64(y)}
}

func finishSupersampled(dc *gg.Context, w, h int) *image.NRGBA {
	return raster.SmoothMore(raster.Downsample(dc.Image(), w, h))
}
