package pattern

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/gradient"
	"github.com/spa-dev/rbgen/pkg/core/noise"
	"github.com/spa-dev/rbgen/pkg/core/raster"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Texture defaults.
const (
	DefaultPerlinScale   = 0.1
	DefaultPerlinOctaves = 6

	DefaultCloudScale   = 0.5
	DefaultCloudOctaves = 4

	DefaultMarbleTurbulence = 5.0
	DefaultMarbleScale      = 0.05
	DefaultMarbleOctaves    = 5
	DefaultVeinScale        = 25.0
)

const (
	cloudGamma     = 2.2
	cloudLargeSide = 512

	marbleExpand       = 1.2
	marbleGamma        = 1.2
	marbleBlur         = 1.2
	marbleBlendJitter  = 0.1
	marbleSurfaceGain  = 6
	marbleDither       = 1.5
	marbleDirectionKey = 42
)

// NoiseOptions configures the noise-driven textures.
type NoiseOptions struct {
	Scale   float64
	Octaves int
}

// MarbleOptions configures [Marble]. Every field is used as given; start
// from [DefaultMarbleOptions] to change only some of them.
type MarbleOptions struct {
	// Turbulence scales the displacement of base noise lookups. Zero
	// samples the base field undisplaced.
	Turbulence float64
	Scale      float64
	Octaves    int
	VeinScale  float64
}

// DefaultPerlinOptions returns the options of the default perlin texture.
func DefaultPerlinOptions() NoiseOptions {
	return NoiseOptions{Scale: DefaultPerlinScale, Octaves: DefaultPerlinOctaves}
}

// DefaultCloudOptions returns the options of the default cloud texture.
func DefaultCloudOptions() NoiseOptions {
	return NoiseOptions{Scale: DefaultCloudScale, Octaves: DefaultCloudOctaves}
}

// DefaultMarbleOptions returns the options of the default marble.
func DefaultMarbleOptions() MarbleOptions {
	return MarbleOptions{
		Turbulence: DefaultMarbleTurbulence,
		Scale:      DefaultMarbleScale,
		Octaves:    DefaultMarbleOctaves,
		VeinScale:  DefaultVeinScale,
	}
}

// PerlinNoise maps a noise field straight onto the ramp.
func PerlinNoise(w, h int, ramp gradient.Ramp, opts NoiseOptions, rng *rand.Rand) (*image.NRGBA, error) {
	field, err := noise.Generate(rng, noise.Options{Width: w, Height: h, Scale: opts.Scale, Octaves: opts.Octaves})
	if err != nil {
		return nil, err
	}
	return fieldImage(field, func(i int, t float64) [3]uint8 {
		c := gradient.Map(t, ramp)
		return [3]uint8{c.R, c.G, c.B}
	}), nil
}

// Cloud raises a noise field to the power 2.2 before mapping it onto the
// ramp, leaving sparse bright patches, then softens it with a Gaussian blur
// that is stronger on canvases longer than 512 pixels.
func Cloud(w, h int, ramp gradient.Ramp, opts NoiseOptions, rng *rand.Rand) (*image.NRGBA, error) {
	field, err := noise.Generate(rng, noise.Options{Width: w, Height: h, Scale: opts.Scale, Octaves: opts.Octaves})
	if err != nil {
		return nil, err
	}
	img := fieldImage(field, func(i int, t float64) [3]uint8 {
		c := gradient.Map(math.Pow(t, cloudGamma), ramp)
		return [3]uint8{c.R, c.G, c.B}
	})
	sigma := 1.5
	if max(w, h) > cloudLargeSide {
		sigma = 2.0
	}
	return raster.Blur(img, sigma), nil
}

// Marble renders veined stone. A direction field built from two coarse
// noise fields displaces lookups into a base noise field; the displaced
// value bends a diagonal sine vein pattern whose local frequency follows a
// third field, and a fourth adds fine detail. The texture is mapped onto
// the ramp, blurred, and given a faint noisy surface before the
// bottom-right w×h region of the 1.2× canvas is returned.
func Marble(w, h int, ramp gradient.Ramp, opts MarbleOptions, rng *rand.Rand) (*image.NRGBA, error) {
	if opts.Turbulence < 0 || opts.VeinScale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"marble needs turbulence >= 0 and vein_scale > 0 (got %v, %v)", opts.Turbulence, opts.VeinScale)
	}
	ew, eh := int(float64(w)*marbleExpand), int(float64(h)*marbleExpand)
	gen := func(r *rand.Rand, scale float64, octaves int) (*noise.Field, error) {
		return noise.Generate(r, noise.Options{Width: ew, Height: eh, Scale: scale, Octaves: octaves})
	}

	// The two direction fields are folded into one angle field so that at
	// most four full-size fields are alive at once.
	angles, err := gen(rng, opts.Scale/3, 2)
	if err != nil {
		return nil, err
	}
	dirY, err := gen(rand.New(rand.NewPCG(marbleDirectionKey, marbleDirectionKey^0xdeadbeef)), opts.Scale/3, 2)
	if err != nil {
		return nil, err
	}
	for i, v := range dirY.Values {
		angles.Values[i] = (angles.Values[i] + v) * math.Pi
	}

	base, err := gen(rng, opts.Scale, opts.Octaves)
	if err != nil {
		return nil, err
	}
	veins, err := gen(rng, opts.Scale*2, 2)
	if err != nil {
		return nil, err
	}
	detail, err := gen(rng, opts.Scale*4, 3)
	if err != nil {
		return nil, err
	}

	// texture overwrites veins in place: each pixel reads its own vein
	// value before writing.
	texture := veins
	for y := 0; y < eh; y++ {
		for x := 0; x < ew; x++ {
			angle := angles.At(x, y)
			dist := opts.Turbulence * base.At(x, y)
			sx := wrap(int(float64(x)+math.Cos(angle)*dist), ew)
			sy := wrap(int(float64(y)+math.Sin(angle)*dist), eh)

			freq := 1 + veins.At(x, y)*0.5
			v := math.Sin(((float64(x)+float64(y)*0.5)/opts.VeinScale + base.At(sx, sy)*2) * freq)
			texture.Set(x, y, (v*0.7+0.7+detail.At(x, y)*0.3)*0.5)
		}
	}

	n := len(ramp)
	img := fieldImage(texture, func(i int, v float64) [3]uint8 {
		t := math.Pow(math.Max(0, math.Min(1, v)), marbleGamma)
		if n <= 2 {
			c := gradient.Map(t, ramp)
			return [3]uint8{c.R, c.G, c.B}
		}
		seg := float64(n - 1)
		idx := min(int(t*seg*0.9999), n-2)
		blend := t*seg - float64(idx) + (detail.Values[i]-0.5)*marbleBlendJitter
		c := gradient.Lerp(ramp[idx], ramp[idx+1], math.Max(0, math.Min(1, blend)))
		return [3]uint8{c.R, c.G, c.B}
	})
	img = raster.Blur(img, marbleBlur)

	surface, err := gen(rng, opts.Scale*8, 2)
	if err != nil {
		return nil, err
	}
	for i, s := range surface.Values {
		d := int((s-0.5)*marbleSurfaceGain + uniform(rng, -marbleDither, marbleDither))
		p := img.Pix[i*4 : i*4+3]
		for c := range p {
			p[c] = clampByte(int(p[c]) + d)
		}
	}

	return raster.Crop(img, ew-w, eh-h, w, h), nil
}

// fieldImage converts a scalar field into an opaque image, coloring value
// i of the field with color(i, value).
func fieldImage(f *noise.Field, color func(i int, v float64) [3]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, v := range f.Values {
		c := color(i, v)
		p := img.Pix[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = c[0], c[1], c[2], 0xff
	}
	return img
}

// wrap reduces i into [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
