// Package catalog is the public face of the synthesis engine. It names the
// background modes, carries a typed parameter record per mode and
// dispatches a request to the generator that implements it.
//
// # Usage
//
//	req := catalog.Request{
//	    Params: catalog.DefaultParams(catalog.ModeCheckered),
//	    Colors: []colorspace.Color{{R: 30, G: 60, B: 90}, {R: 200, G: 230, B: 240}},
//	}
//	out, err := catalog.Apply(foreground, req)
//
// Requests are validated before any pixel work: an unknown mode is an
// INVALID_MODE error, a bad option or color count is INVALID_PARAMETER and
// an oversized canvas is RESOURCE_BOUND.
package catalog

import (
	"strings"

	"github.com/spa-dev/rbgen/pkg/core/compose"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Mode identifies a background generator.
type Mode string

const (
	ModeSolid                Mode = "solid"
	ModeStriped              Mode = "striped"
	ModeCheckered            Mode = "checkered"
	ModePerspectiveCheckered Mode = "perspective_checkered"
	ModeMandelbrot           Mode = "mandelbrot"
	ModeNestedPolygons       Mode = "nested_polygons"
	ModeGeometricShapes      Mode = "geometric_shapes"
	ModeConcentricShapes     Mode = "concentric_shapes"
	ModeLine                 Mode = "line"
	ModeWavyLine             Mode = "wavy_line"
	ModePerlinNoise          Mode = "perlin_noise"
	ModeGradient             Mode = "gradient"
	ModeRadialPattern        Mode = "radial_pattern"
	ModeMarble               Mode = "marble"
	ModeCloud                Mode = "cloud"
	ModeWaves                Mode = "waves"
)

var modes = []Mode{
	ModeSolid,
	ModeStriped,
	ModeCheckered,
	ModePerspectiveCheckered,
	ModeMandelbrot,
	ModeNestedPolygons,
	ModeGeometricShapes,
	ModeConcentricShapes,
	ModeLine,
	ModeWavyLine,
	ModePerlinNoise,
	ModeGradient,
	ModeRadialPattern,
	ModeMarble,
	ModeCloud,
	ModeWaves,
}

var descriptions = map[Mode]string{
	ModeSolid:                "single flat color",
	ModeStriped:              "rotated stripes of random width",
	ModeCheckered:            "rotated checkerboard",
	ModePerspectiveCheckered: "checkerboard floor receding into the distance",
	ModeMandelbrot:           "escape-time Mandelbrot view",
	ModeNestedPolygons:       "recursively nested polygon outlines",
	ModeGeometricShapes:      "scattered circles, triangles and polygons",
	ModeConcentricShapes:     "nested rings of circles or squares",
	ModeLine:                 "line fans converging on three vanishing points",
	ModeWavyLine:             "parallel sine curves",
	ModePerlinNoise:          "smooth value noise",
	ModeGradient:             "linear, diagonal or radial gradient",
	ModeRadialPattern:        "alternating rays around the center",
	ModeMarble:               "veined marble texture",
	ModeCloud:                "soft cloud texture",
	ModeWaves:                "layered filled waves",
}

// Modes returns every mode in catalog order.
func Modes() []Mode {
	return append([]Mode(nil), modes...)
}

// ParseMode converts a mode name. Unknown names are INVALID_MODE errors.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown background mode: %q", s)
}

// Valid reports whether m names a catalog mode.
func (m Mode) Valid() bool {
	_, ok := descriptions[m]
	return ok
}

// Description returns a one-line summary of the mode.
func (m Mode) Description() string {
	return descriptions[m]
}

// MinColors is the number of colors the mode needs.
func (m Mode) MinColors() int {
	if m == ModeSolid {
		return 1
	}
	return 2
}

// BlendRule returns how the mode's background is merged with a foreground.
// The line modes blend partially transparent foreground pixels; every other
// mode copies any visible foreground pixel as is.
func BlendRule(m Mode) compose.Rule {
	switch m {
	case ModeLine, ModeWavyLine:
		return compose.RuleBlend
	default:
		return compose.RuleMask
	}
}
