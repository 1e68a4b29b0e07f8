package pattern

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/raster"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// WaveType is the profile of one wave layer.
type WaveType string

const (
	WaveSine     WaveType = "sine"
	WaveTriangle WaveType = "triangle"
	// WaveRipple is a sine whose height falls off quadratically away from
	// the middle of the span.
	WaveRipple WaveType = "ripple"
)

// WaveTypes lists every wave profile.
var WaveTypes = []WaveType{WaveSine, WaveTriangle, WaveRipple}

// Orientation is the axis waves run along.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ParseOrientation accepts "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case Horizontal, Vertical:
		return o, nil
	}
	return "", errors.New(errors.ErrCodeInvalidParameter, "invalid wave direction %q (want horizontal or vertical)", s)
}

// Wave defaults.
const (
	DefaultNumWaves      = 10
	DefaultMinWaveHeight = 10.0
	DefaultMaxWaveHeight = 50.0

	waveMargin = 0.15
	waveStep   = 2
)

// WavesOptions configures [Waves].
type WavesOptions struct {
	NumWaves int
	// HeightRange bounds the amplitude of each wave. [0, 0] draws flat
	// bands.
	HeightRange [2]float64
	// Types lists the profiles to pick from; empty means all of them.
	Types       []WaveType
	Orientation Orientation
}

// DefaultWavesOptions returns the options of the default waves.
func DefaultWavesOptions() WavesOptions {
	return WavesOptions{
		NumWaves:    DefaultNumWaves,
		HeightRange: [2]float64{DefaultMinWaveHeight, DefaultMaxWaveHeight},
		Orientation: Horizontal,
	}
}

// Waves stacks NumWaves filled wave bands. Each layer picks a random
// profile, height, frequency and phase, sits at its share of the canvas
// thickness plus a small jitter, and is colored by its layer index between
// c0 and c1. The canvas is grown by 15% on every side while drawing and
// the margin is cut away afterwards.
func Waves(w, h int, c0, c1 colorspace.Color, opts WavesOptions, rng *rand.Rand) *image.NRGBA {
	types := opts.Types
	if len(types) == 0 {
		types = WaveTypes
	}
	lo, hi := opts.HeightRange[0], opts.HeightRange[1]
	n := opts.NumWaves
	horizontal := opts.Orientation != Vertical

	mx, my := int(waveMargin*float64(w)), int(waveMargin*float64(h))
	ew, eh := w+2*mx, h+2*my

	base := choice(rng, []colorspace.Color{c0, c1})
	dc := raster.NewContext(ew, eh, base)

	span, thickness := ew, eh
	if !horizontal {
		span, thickness = eh, ew
	}
	fspan, fthick := float64(span), float64(thickness)

	for layer := 0; layer < n; layer++ {
		kind := choice(rng, types)
		height := uniform(rng, lo, hi)
		freq := uniform(rng, 1, 5) / fspan
		phase := uniform(rng, 0, 2*math.Pi)
		band := fthick / float64(n)
		pos := fthick*float64(layer)/float64(n) + uniform(rng, -band/4, band/4)

		t := 0.5
		if n > 1 {
			t = float64(layer) / float64(n-1)
		}
		dc.SetColor(gradient.Lerp(c0, c1, t))

		pts := make([]raster.Point, 0, span/waveStep+4)
		if horizontal {
			pts = append(pts, raster.Point{X: 0, Y: fthick})
		} else {
			pts = append(pts, raster.Point{X: 0, Y: 0})
		}
		for i := 0; i <= span; i += waveStep {
			a := waveOffset(kind, float64(i), fspan, height, freq, phase)
			if horizontal {
				pts = append(pts, raster.Point{X: float64(i), Y: pos + a})
			} else {
				pts = append(pts, raster.Point{X: pos + a, Y: float64(i)})
			}
		}
		if horizontal {
			pts = append(pts, raster.Point{X: fspan, Y: fthick})
		} else {
			pts = append(pts, raster.Point{X: fthick, Y: fspan}, raster.Point{X: fthick, Y: 0})
		}

		raster.Polygon(dc, pts)
		dc.Fill()
	}

	return raster.Crop(raster.Snapshot(dc), mx, my, w, h)
}

// waveOffset returns the displacement of a wave profile at position i
// along a span.
func waveOffset(kind WaveType, i, span, height, freq, phase float64) float64 {
	switch kind {
	case WaveTriangle:
		x := math.Mod(freq*i+phase/(2*math.Pi), 1)
		return height * (4*math.Abs(x-0.5) - 1)
	case WaveRipple:
		d := math.Abs(i-span/2) / (span / 2)
		return height * (1 - d*d) * math.Sin(freq*i*2*math.Pi+phase)
	default:
		return height * math.Sin(freq*i*2*math.Pi+phase)
	}
}
