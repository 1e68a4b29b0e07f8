package gradient

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
)

var (
	red   = colorspace.Color{R: 255}
	green = colorspace.Color{G: 255}
	blue  = colorspace.Color{B: 255}
)

func TestLerpEndpoints(t *testing.T) {
	c0 := colorspace.Color{R: 150, G: 75, B: 50}
	c1 := colorspace.Color{R: 3, G: 200, B: 251}
	assert.Equal(t, c0, Lerp(c0, c1, 0))
	assert.Equal(t, c1, Lerp(c0, c1, 1))
}

func TestLerpTruncates(t *testing.T) {
	// 0*(0.5) + 255*0.5 = 127.5
	assert.Equal(t, colorspace.Color{R: 127, G: 127, B: 127},
		Lerp(colorspace.Color{}, colorspace.Color{R: 255, G: 255, B: 255}, 0.5))
	assert.Equal(t, colorspace.Color{R: 25}, Lerp(colorspace.Color{}, colorspace.Color{R: 255}, 0.1))
}

func TestMap(t *testing.T) {
	ramp := Ramp{red, green, blue}

	tests := []struct {
		name string
		t    float64
		want colorspace.Color
	}{
		{"start", 0, red},
		{"middle", 0.5, green},
		{"end", 1, blue},
		{"quarter", 0.25, colorspace.Color{R: 127, G: 127}},
		{"clamped low", -3, red},
		{"clamped high", 7, blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Map(tt.t, ramp))
		})
	}

	assert.Equal(t, red, Map(0.7, Ramp{red}))
	assert.Equal(t, colorspace.Color{}, Map(0.7, nil))
	assert.Equal(t, blue, Map(1, Ramp{red, blue}))
}

func TestRampValidate(t *testing.T) {
	assert.NoError(t, Ramp{red, blue}.Validate(2))
	err := Ramp{red}.Validate(2)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
	assert.Equal(t, red, Ramp{red, blue}.First())
	assert.Equal(t, blue, Ramp{red, blue}.Last())
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	got, err := ParseDirection(" Radial ")
	require.NoError(t, err)
	assert.Equal(t, Radial, got)

	_, err = ParseDirection("sideways")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter))
}

func TestDirectional(t *testing.T) {
	ramp := Ramp{red, blue}

	t.Run("horizontal", func(t *testing.T) {
		img := Directional(10, 4, ramp, Horizontal)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 3))
		// x=5 of 10 -> t=0.5
		assert.Equal(t, color.NRGBA{127, 0, 127, 255}, img.NRGBAAt(5, 0))
		assert.Equal(t, img.NRGBAAt(9, 0), img.NRGBAAt(9, 3))
	})

	t.Run("vertical", func(t *testing.T) {
		img := Directional(4, 10, ramp, Vertical)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(3, 0))
		assert.Equal(t, img.NRGBAAt(0, 7), img.NRGBAAt(3, 7))
	})

	t.Run("diagonal", func(t *testing.T) {
		img := Directional(8, 8, ramp, Diagonal)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
		assert.Greater(t, img.NRGBAAt(7, 7).B, img.NRGBAAt(3, 3).B)
	})

	t.Run("radial", func(t *testing.T) {
		img := Directional(9, 9, ramp, Radial)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(4, 4))
		// corners are beyond max radius and saturate to the last color
		assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(0, 0))
	})

	t.Run("single pixel", func(t *testing.T) {
		img := Directional(1, 1, ramp, Radial)
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
	})
}
