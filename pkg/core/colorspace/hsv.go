package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Hue offsets, in degrees, of the derived color-theory schemes.
const (
	AnalogousDegrees          = 30.0
	TriadicDegrees            = 120.0
	TetradicDegrees           = 90.0
	SplitComplementaryDegrees = 198.0 // complement plus 0.05 turn
	MonochromaticShift        = 0.2
)

// Complementary returns the 255-minus-component inverse of c.
// Applying it twice returns c.
func Complementary(c Color) Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// RotateHue shifts the hue of c by degrees, wrapping around the color wheel.
// Saturation and value are preserved.
func RotateHue(c Color, degrees float64) Color {
	h, s, v := c.colorful().Hsv()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(h, s, v))
}

// ShiftBrightness adds delta to the HSV value of c, clamped to [0, 1].
func ShiftBrightness(c Color, delta float64) Color {
	h, s, v := c.colorful().Hsv()
	v = math.Max(0, math.Min(1, v+delta))
	return fromColorful(colorful.Hsv(h, s, v))
}

// HSV returns the hue of c in turns ([0, 1)) with saturation and value in [0, 1].
func HSV(c Color) (h, s, v float64) {
	h, s, v = c.colorful().Hsv()
	return h / 360, s, v
}

// FromHSV builds a color from hue in turns and saturation and value in [0, 1].
func FromHSV(h, s, v float64) Color {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	return fromColorful(colorful.Hsv(h*360, s, v))
}

// Analogous returns the neighbor of c 30 degrees around the wheel.
func Analogous(c Color) Color { return RotateHue(c, AnalogousDegrees) }

// Triadic returns the color a third of a turn from c.
func Triadic(c Color) Color { return RotateHue(c, TriadicDegrees) }

// Tetradic returns the color a quarter turn from c.
func Tetradic(c Color) Color { return RotateHue(c, TetradicDegrees) }

// SplitComplementary returns the color just past the complement of c.
func SplitComplementary(c Color) Color { return RotateHue(c, SplitComplementaryDegrees) }

// Monochromatic returns c with its value raised by [MonochromaticShift],
// or lowered when up is false.
func Monochromatic(c Color, up bool) Color {
	if up {
		return ShiftBrightness(c, MonochromaticShift)
	}
	return ShiftBrightness(c, -MonochromaticShift)
}
