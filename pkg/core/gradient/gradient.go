// Package gradient maps scalar positions in [0, 1] onto color ramps and
// renders directional gradients.
//
// Interpolation truncates toward zero per channel, matching how every
// synthesizer in rbgen quantizes blended colors. At t=0 and t=1 the ramp
// endpoints are returned exactly.
package gradient

import (
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Ramp is an ordered list of colors spanning positions 0..1.
type Ramp []colorspace.Color

// Validate reports an INVALID_PARAMETER error if the ramp holds fewer than
// minColors entries.
func (r Ramp) Validate(minColors int) error {
	if len(r) < minColors {
		return errors.New(errors.ErrCodeInvalidParameter, "need at least %d colors (got %d)", minColors, len(r))
	}
	return nil
}

// First returns the first color of the ramp.
func (r Ramp) First() colorspace.Color { return r[0] }

// Last returns the last color of the ramp.
func (r Ramp) Last() colorspace.Color { return r[len(r)-1] }

// Lerp blends c0 toward c1 by t, truncating each channel.
func Lerp(c0, c1 colorspace.Color, t float64) colorspace.Color {
	return colorspace.Color{
		R: lerpChannel(c0.R, c1.R, t),
		G: lerpChannel(c0.G, c1.G, t),
		B: lerpChannel(c0.B, c1.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := int(float64(a)*(1-t) + float64(b)*t)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Map returns the color at position t along ramp. t is clamped to [0, 1].
// With more than two colors the ramp is split into equal segments and t is
// blended within its segment.
func Map(t float64, ramp Ramp) colorspace.Color {
	t = clamp01(t)
	switch n := len(ramp); n {
	case 0:
		return colorspace.Color{}
	case 1:
		return ramp[0]
	case 2:
		return Lerp(ramp[0], ramp[1], t)
	default:
		pos := t * float64(n-1)
		idx := int(pos)
		if idx > n-2 {
			idx = n - 2
		}
		return Lerp(ramp[idx], ramp[idx+1], pos-float64(idx))
	}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0 || t != t:
		return 0
	case t > 1:
		return 1
	}
	return t
}
