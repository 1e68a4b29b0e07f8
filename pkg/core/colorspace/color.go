// Package colorspace provides the RGB color value used throughout rbgen and
// the color-theory derivations (complement, hue rotation, brightness shift)
// that palettes are built from.
//
// Colors are opaque 8-bit RGB triples. Alpha is attached only when a color
// is written into a pixel buffer, via [Color.NRGBA].
//
// Hue arithmetic goes through HSV using go-colorful. Reconstructed channels
// are rounded to the nearest integer, so rotating a color by a full turn
// returns it unchanged up to ±1 per channel.
package colorspace

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// NRGBA returns the color with the given alpha attached.
func (c Color) NRGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Opaque returns the color with full alpha.
func (c Color) Opaque() color.NRGBA {
	return c.NRGBA(0xff)
}

// FromColor converts any color.Color to a Color, dropping alpha.
// Premultiplied values are un-premultiplied first.
func FromColor(col color.Color) Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// String returns the color as a lowercase #rrggbb hex string.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the forms
// understood by [Parse].
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse reads a color written as "#rrggbb", "rrggbb", "#rgb" or "r,g,b".
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		return parseTriple(s)
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func parseTriple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("invalid color %q: want r,g,b", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: component %d: %w", s, i, err)
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ParseList parses a separator-delimited list of colors. Hex colors may be
// separated by commas or spaces; r,g,b triples must be separated by
// semicolons or spaces.
func ParseList(s string) ([]Color, error) {
	var fields []string
	if strings.Contains(s, ";") || !strings.Contains(s, "#") && strings.Count(s, ",") >= 2 {
		fields = strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ' ' })
	} else {
		fields = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	}

	out := make([]Color, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
