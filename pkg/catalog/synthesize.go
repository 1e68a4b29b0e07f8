package catalog

import (
	"image"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/compose"
	"github.com/spa-dev/rbgen/pkg/core/fractal"
	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/pattern"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Canvas limits. Generators allocate oversized working canvases (up to
// four times the output area), so requests are bounded per side and in
// total.
const (
	MaxDimension = 8192
	MaxPixels    = 1 << 25
	// MaxMarblePixels bounds marble, which keeps four float64 noise fields
	// over 1.44 times the output area alive at once.
	MaxMarblePixels = 1 << 23
)

// Request describes one background.
type Request struct {
	Params Params
	Colors []colorspace.Color
	Width  int
	Height int
	// Seed makes the output reproducible. Nil draws a fresh seed per call.
	Seed *uint64
}

// Mode returns the mode of the request's parameters.
func (r Request) Mode() Mode {
	if r.Params == nil {
		return ""
	}
	return r.Params.Mode()
}

// Validate checks every precondition of r.
func (r Request) Validate() error {
	if r.Params == nil {
		return errors.New(errors.ErrCodeInvalidMode, "no background mode selected")
	}
	m := r.Params.Mode()
	maxPixels := MaxPixels
	if m == ModeMarble {
		maxPixels = MaxMarblePixels
	}
	if err := errors.ValidateDimensions(r.Width, r.Height, MaxDimension, maxPixels); err != nil {
		return err
	}
	if len(r.Colors) < m.MinColors() {
		return errors.New(errors.ErrCodeInvalidParameter, "%s needs at least %d colors (got %d)", m, m.MinColors(), len(r.Colors))
	}
	return ValidateParams(r.Params)
}

// NewRand returns the random source for one call: seeded when seed is set,
// otherwise seeded from the runtime's random state.
func NewRand(seed *uint64) *rand.Rand {
	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewPCG(s, s^0xdeadbeef))
}

// Synthesize renders the background described by req.
func Synthesize(req Request) (*image.NRGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rng := NewRand(req.Seed)
	w, h := req.Width, req.Height
	ramp := gradient.Ramp(req.Colors)
	c0 := req.Colors[0]
	c1 := c0
	if len(req.Colors) > 1 {
		c1 = req.Colors[1]
	}

	switch p := req.Params.(type) {
	case *SolidParams:
		return pattern.Solid(w, h, c0), nil
	case *StripedParams:
		return pattern.Striped(w, h, c0, c1, pattern.StripedOptions{
			MinWidth: p.MinStripeWidth,
			MaxWidth: p.MaxStripeWidth,
			Angle:    p.Angle,
		}, rng), nil
	case *CheckeredParams:
		return pattern.Checkered(w, h, c0, c1, pattern.CheckeredOptions{SquareSize: p.SquareSize, Angle: p.Angle}, rng), nil
	case *PerspectiveCheckeredParams:
		return pattern.PerspectiveCheckered(w, h, c0, c1, pattern.PerspectiveOptions{SquareSize: p.SquareSize}, rng)
	case *MandelbrotParams:
		opts := fractal.MandelbrotOptions{MaxIter: p.MaxIter, Zoom: p.Zoom}
		if len(p.Center) == 2 {
			c := complex(p.Center[0], p.Center[1])
			opts.Center = &c
		}
		return fractal.Mandelbrot(w, h, ramp, opts, rng), nil
	case *NestedPolygonsParams:
		return fractal.NestedPolygons(w, h, ramp, fractal.PolygonOptions{
			LineWidth: p.LineWidth,
			Depth:     p.Depth,
			Coloring:  p.Coloring,
		}, rng), nil
	case *GeometricShapesParams:
		return pattern.GeometricShapes(w, h, c0, c1, pattern.ShapesOptions{
			NumShapes:  p.NumShapes,
			MaxSize:    p.MaxSize,
			ShapeTypes: p.ShapeTypes,
		}, rng), nil
	case *ConcentricShapesParams:
		return pattern.ConcentricShapes(w, h, c0, c1, pattern.ConcentricOptions{NumRings: p.NumRings, Shape: p.ShapeType}, rng), nil
	case *LineParams:
		return pattern.Lines(w, h, c0, c1, rng), nil
	case *WavyLineParams:
		return pattern.WavyLines(w, h, c0, c1, rng), nil
	case *PerlinNoiseParams:
		return pattern.PerlinNoise(w, h, ramp, pattern.NoiseOptions{Scale: p.Scale, Octaves: p.Octaves}, rng)
	case *GradientParams:
		return gradient.Directional(w, h, ramp, p.Direction), nil
	case *RadialPatternParams:
		return pattern.Rays(w, h, c0, c1, p.NumRays), nil
	case *MarbleParams:
		return pattern.Marble(w, h, ramp, pattern.MarbleOptions{
			Turbulence: p.Turbulence,
			Scale:      p.Scale,
			Octaves:    p.Octaves,
			VeinScale:  p.VeinScale,
		}, rng)
	case *CloudParams:
		return pattern.Cloud(w, h, ramp, pattern.NoiseOptions{Scale: p.Scale, Octaves: p.Octaves}, rng)
	case *WavesParams:
		return pattern.Waves(w, h, c0, c1, pattern.WavesOptions{
			NumWaves:    p.NumWaves,
			HeightRange: [2]float64{p.WaveHeightRange[0], p.WaveHeightRange[1]},
			Types:       p.WaveTypes,
			Orientation: p.Direction,
		}, rng), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidMode, "no generator for mode %q", req.Params.Mode())
}

// Apply renders a background the size of fg and merges fg over it with the
// mode's blend rule. req.Width and req.Height are taken from fg.
func Apply(fg image.Image, req Request) (*image.NRGBA, error) {
	b := fg.Bounds()
	req.Width, req.Height = b.Dx(), b.Dy()
	bg, err := Synthesize(req)
	if err != nil {
		return nil, err
	}
	return compose.Compose(bg, fg, BlendRule(req.Mode())), nil
}
