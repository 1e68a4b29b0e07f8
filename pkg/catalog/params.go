package catalog

import (
	"bytes"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/spa-dev/rbgen/pkg/core/fractal"
	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/pattern"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Params is the option record of one mode. Each mode has exactly one
// implementation, so a Params value also identifies its mode.
type Params interface {
	Mode() Mode
	params()
}

// checker is implemented by records with constraints struct tags cannot
// express.
type checker interface {
	check() error
}

// =============================================================================
// Tilings
// =============================================================================

type SolidParams struct{}

type StripedParams struct {
	MinStripeWidth int `toml:"min_stripe_width" json:"min_stripe_width" validate:"gte=1,lte=4096"`
	MaxStripeWidth int `toml:"max_stripe_width" json:"max_stripe_width" validate:"gtefield=MinStripeWidth,lte=4096"`
	// Angle fixes the rotation in degrees; unset rotates randomly.
	Angle *float64 `toml:"angle" json:"angle,omitempty"`
}

type CheckeredParams struct {
	SquareSize int      `toml:"square_size" json:"square_size" validate:"gte=1,lte=4096"`
	Angle      *float64 `toml:"angle" json:"angle,omitempty"`
}

type PerspectiveCheckeredParams struct {
	SquareSize int `toml:"square_size" json:"square_size" validate:"gte=1,lte=4096"`
}

// =============================================================================
// Fractals
// =============================================================================

type MandelbrotParams struct {
	MaxIter int `toml:"max_iter" json:"max_iter" validate:"gte=1,lte=10000"`
	// Zoom of zero picks a random zoom.
	Zoom float64 `toml:"zoom" json:"zoom" validate:"gte=0"`
	// Center is [re, im]; empty picks a random center.
	Center []float64 `toml:"center" json:"center,omitempty" validate:"omitempty,len=2"`
}

type NestedPolygonsParams struct {
	LineWidth int              `toml:"line_width" json:"line_width" validate:"gte=1,lte=64"`
	Depth     int              `toml:"depth" json:"depth" validate:"gte=0,lte=6"`
	Coloring  fractal.Coloring `toml:"coloring" json:"coloring,omitempty" validate:"omitempty,oneof=linear radial vertex"`
}

// =============================================================================
// Shapes, lines and waves
// =============================================================================

type GeometricShapesParams struct {
	NumShapes  int             `toml:"num_shapes" json:"num_shapes" validate:"gte=0,lte=10000"`
	MaxSize    int             `toml:"max_size" json:"max_size" validate:"gte=20,lte=4096"`
	ShapeTypes []pattern.Shape `toml:"shape_types" json:"shape_types,omitempty" validate:"omitempty,unique,dive,oneof=circle rectangle triangle polygon"`
}

type ConcentricShapesParams struct {
	NumRings  int           `toml:"num_rings" json:"num_rings" validate:"gte=1,lte=1000"`
	ShapeType pattern.Shape `toml:"shape_type" json:"shape_type,omitempty" validate:"omitempty,oneof=circle square"`
}

type LineParams struct{}

type WavyLineParams struct{}

type WavesParams struct {
	NumWaves        int                 `toml:"num_waves" json:"num_waves" validate:"gte=1,lte=500"`
	WaveHeightRange []float64           `toml:"wave_height_range" json:"wave_height_range" validate:"len=2,dive,gte=0"`
	WaveTypes       []pattern.WaveType  `toml:"wave_types" json:"wave_types,omitempty" validate:"omitempty,unique,dive,oneof=sine triangle ripple"`
	Direction       pattern.Orientation `toml:"direction" json:"direction" validate:"oneof=horizontal vertical"`
}

func (p *WavesParams) check() error {
	if p.WaveHeightRange[0] > p.WaveHeightRange[1] {
		return errors.New(errors.ErrCodeInvalidParameter, "wave_height_range must be [min, max] (got %v)", p.WaveHeightRange)
	}
	return nil
}

// =============================================================================
// Gradients and textures
// =============================================================================

type GradientParams struct {
	Direction gradient.Direction `toml:"direction" json:"direction" validate:"oneof=horizontal vertical diagonal radial"`
}

type RadialPatternParams struct {
	NumRays int `toml:"num_rays" json:"num_rays" validate:"gte=1,lte=720"`
}

type PerlinNoiseParams struct {
	Scale   float64 `toml:"scale" json:"scale" validate:"gt=0,lte=100"`
	Octaves int     `toml:"octaves" json:"octaves" validate:"gte=1,lte=12"`
}

type MarbleParams struct {
	Turbulence float64 `toml:"turbulence" json:"turbulence" validate:"gte=0,lte=1000"`
	Scale      float64 `toml:"scale" json:"scale" validate:"gt=0,lte=100"`
	Octaves    int     `toml:"octaves" json:"octaves" validate:"gte=1,lte=12"`
	VeinScale  float64 `toml:"vein_scale" json:"vein_scale" validate:"gt=0"`
}

type CloudParams struct {
	Scale   float64 `toml:"scale" json:"scale" validate:"gt=0,lte=100"`
	Octaves int     `toml:"octaves" json:"octaves" validate:"gte=1,lte=12"`
}

func (*SolidParams) Mode() Mode                { return ModeSolid }
func (*StripedParams) Mode() Mode              { return ModeStriped }
func (*CheckeredParams) Mode() Mode            { return ModeCheckered }
func (*PerspectiveCheckeredParams) Mode() Mode { return ModePerspectiveCheckered }
func (*MandelbrotParams) Mode() Mode           { return ModeMandelbrot }
func (*NestedPolygonsParams) Mode() Mode       { return ModeNestedPolygons }
func (*GeometricShapesParams) Mode() Mode      { return ModeGeometricShapes }
func (*ConcentricShapesParams) Mode() Mode     { return ModeConcentricShapes }
func (*LineParams) Mode() Mode                 { return ModeLine }
func (*WavyLineParams) Mode() Mode             { return ModeWavyLine }
func (*PerlinNoiseParams) Mode() Mode          { return ModePerlinNoise }
func (*GradientParams) Mode() Mode             { return ModeGradient }
func (*RadialPatternParams) Mode() Mode        { return ModeRadialPattern }
func (*MarbleParams) Mode() Mode               { return ModeMarble }
func (*CloudParams) Mode() Mode                { return ModeCloud }
func (*WavesParams) Mode() Mode                { return ModeWaves }

func (*SolidParams) params()                {}
func (*StripedParams) params()              {}
func (*CheckeredParams) params()            {}
func (*PerspectiveCheckeredParams) params() {}
func (*MandelbrotParams) params()           {}
func (*NestedPolygonsParams) params()       {}
func (*GeometricShapesParams) params()      {}
func (*ConcentricShapesParams) params()     {}
func (*LineParams) params()                 {}
func (*WavyLineParams) params()             {}
func (*PerlinNoiseParams) params()          {}
func (*GradientParams) params()             {}
func (*RadialPatternParams) params()        {}
func (*MarbleParams) params()               {}
func (*CloudParams) params()                {}
func (*WavesParams) params()                {}

// DefaultParams returns the default option record of m, or nil for an
// unknown mode.
func DefaultParams(m Mode) Params {
	switch m {
	case ModeSolid:
		return &SolidParams{}
	case ModeStriped:
		return &StripedParams{MinStripeWidth: pattern.DefaultMinStripeWidth, MaxStripeWidth: pattern.DefaultMaxStripeWidth}
	case ModeCheckered:
		return &CheckeredParams{SquareSize: pattern.DefaultSquareSize}
	case ModePerspectiveCheckered:
		return &PerspectiveCheckeredParams{SquareSize: pattern.DefaultPerspectiveSquareSize}
	case ModeMandelbrot:
		return &MandelbrotParams{MaxIter: fractal.DefaultMaxIter}
	case ModeNestedPolygons:
		return &NestedPolygonsParams{LineWidth: fractal.DefaultLineWidth, Depth: fractal.DefaultDepth}
	case ModeGeometricShapes:
		return &GeometricShapesParams{NumShapes: pattern.DefaultNumShapes, MaxSize: pattern.DefaultMaxSize}
	case ModeConcentricShapes:
		return &ConcentricShapesParams{NumRings: pattern.DefaultNumRings}
	case ModeLine:
		return &LineParams{}
	case ModeWavyLine:
		return &WavyLineParams{}
	case ModePerlinNoise:
		return &PerlinNoiseParams{Scale: pattern.DefaultPerlinScale, Octaves: pattern.DefaultPerlinOctaves}
	case ModeGradient:
		return &GradientParams{Direction: gradient.Horizontal}
	case ModeRadialPattern:
		return &RadialPatternParams{NumRays: pattern.DefaultNumRays}
	case ModeMarble:
		return &MarbleParams{
			Turbulence: pattern.DefaultMarbleTurbulence,
			Scale:      pattern.DefaultMarbleScale,
			Octaves:    pattern.DefaultMarbleOctaves,
			VeinScale:  pattern.DefaultVeinScale,
		}
	case ModeCloud:
		return &CloudParams{Scale: pattern.DefaultCloudScale, Octaves: pattern.DefaultCloudOctaves}
	case ModeWaves:
		return &WavesParams{
			NumWaves:        pattern.DefaultNumWaves,
			WaveHeightRange: []float64{pattern.DefaultMinWaveHeight, pattern.DefaultMaxWaveHeight},
			Direction:       pattern.Horizontal,
		}
	}
	return nil
}

// RandomParams returns the option record used when a mode is picked at
// random: defaults with the mode's signature option varied.
func RandomParams(m Mode, rng *rand.Rand) Params {
	p := DefaultParams(m)
	switch p := p.(type) {
	case *GradientParams:
		p.Direction = gradient.Directions[rng.IntN(len(gradient.Directions))]
	case *RadialPatternParams:
		p.NumRays = 4 + rng.IntN(29)
	case *PerlinNoiseParams:
		p.Scale = 0.05 + 0.25*rng.Float64()
		p.Octaves = 3 + rng.IntN(6)
	case *MarbleParams:
		p.Turbulence = 3 + 5*rng.Float64()
	case *CloudParams:
		p.Scale = 10 + 20*rng.Float64()
		p.Octaves = 3 + rng.IntN(4)
	}
	return p
}

// ValidateParams checks p against its constraints.
func ValidateParams(p Params) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "parameters are required")
	}
	if err := errors.ValidateStruct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "%s", p.Mode())
	}
	if c, ok := p.(checker); ok {
		return c.check()
	}
	return nil
}

// DecodeParams parses TOML option text for m on top of the mode's defaults.
// Unknown keys and values failing validation are INVALID_PARAMETER errors.
//
//	p, err := catalog.DecodeParams(catalog.ModeCheckered, "square_size = 30")
func DecodeParams(m Mode, text string) (Params, error) {
	p := DefaultParams(m)
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidMode, "unknown background mode: %q", m)
	}
	md, err := toml.Decode(text, p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "decode %s options", m)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidParameter, "unknown %s option(s): %s", m, strings.Join(keys, ", "))
	}
	if err := ValidateParams(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeParamsMap decodes an option table already parsed from a larger
// document, such as a [modes.<name>] section of a config file.
func DecodeParamsMap(m Mode, opts map[string]any) (Params, error) {
	if len(opts) == 0 {
		return DecodeParams(m, "")
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(opts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameter, err, "encode %s options", m)
	}
	return DecodeParams(m, buf.String())
}

// EncodeParams renders p as TOML option text accepted by [DecodeParams].
func EncodeParams(p Params) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode %s options", p.Mode())
	}
	return buf.String(), nil
}
