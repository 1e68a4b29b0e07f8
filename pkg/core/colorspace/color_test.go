package colorspace

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplementaryIsInvolution(t *testing.T) {
	for _, c := range []Color{
		{0, 0, 0}, {255, 255, 255}, {150, 75, 50}, {12, 200, 99}, {1, 2, 3},
	} {
		assert.Equal(t, c, Complementary(Complementary(c)), "color %v", c)
	}
	assert.Equal(t, Color{105, 180, 205}, Complementary(Color{150, 75, 50}))
}

func TestRotateHueFullTurn(t *testing.T) {
	for _, c := range []Color{
		{150, 75, 50}, {40, 90, 140}, {250, 200, 150}, {128, 128, 128}, {0, 0, 0}, {255, 0, 0},
	} {
		got := RotateHue(c, 360)
		assert.InDelta(t, int(c.R), int(got.R), 1, "R of %v", c)
		assert.InDelta(t, int(c.G), int(got.G), 1, "G of %v", c)
		assert.InDelta(t, int(c.B), int(got.B), 1, "B of %v", c)
	}
}

func TestRotateHuePrimaries(t *testing.T) {
	red := Color{255, 0, 0}
	assert.Equal(t, Color{0, 255, 0}, Triadic(red))
	assert.Equal(t, Color{0, 0, 255}, Triadic(Triadic(red)))
	assert.Equal(t, Color{255, 128, 0}, Analogous(red))
	assert.Equal(t, Color{255, 0, 0}, RotateHue(red, -360))
	assert.Equal(t, Color{255, 0, 255}, RotateHue(red, -60))
}

func TestRotateHueKeepsGray(t *testing.T) {
	gray := Color{128, 128, 128}
	assert.Equal(t, gray, Tetradic(gray))
	assert.Equal(t, gray, SplitComplementary(gray))
}

func TestShiftBrightnessClamps(t *testing.T) {
	white := Color{255, 255, 255}
	assert.Equal(t, white, ShiftBrightness(white, 0.5))
	assert.Equal(t, Color{0, 0, 0}, ShiftBrightness(Color{40, 40, 40}, -1))

	darker := Monochromatic(Color{200, 100, 50}, false)
	assert.Less(t, darker.R, uint8(200))
	lighter := Monochromatic(Color{100, 50, 25}, true)
	assert.Greater(t, lighter.R, uint8(100))
}

func TestHSVRoundTrip(t *testing.T) {
	h, s, v := HSV(Color{0, 0, 255})
	assert.InDelta(t, 2.0/3.0, h, 1e-9)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.InDelta(t, 1.0, v, 1e-9)
	assert.Equal(t, Color{0, 0, 255}, FromHSV(h+1, s, v))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff8000", Color{255, 128, 0}, false},
		{"FF8000", Color{255, 128, 0}, false},
		{"#f80", Color{255, 136, 0}, false},
		{"10, 20, 30", Color{10, 20, 30}, false},
		{"#ff80", Color{}, true},
		{"#gg0000", Color{}, true},
		{"1,2", Color{}, true},
		{"1,2,300", Color{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("#ff0000,#00ff00 #0000ff")
	require.NoError(t, err)
	assert.Equal(t, []Color{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}, got)

	got, err = ParseList("255,0,0;0,0,255")
	require.NoError(t, err)
	assert.Equal(t, []Color{{255, 0, 0}, {0, 0, 255}}, got)

	_, err = ParseList("#ff0000,nope")
	assert.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	c := Color{1, 2, 254}
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#0102fe", string(text))

	var back Color
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, c, back)
}

func TestColorModel(t *testing.T) {
	c := Color{10, 20, 30}
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, c.Opaque())
	assert.Equal(t, color.NRGBA{10, 20, 30, 7}, c.NRGBA(7))
	assert.Equal(t, c, FromColor(color.RGBA{10, 20, 30, 255}))
	assert.Equal(t, c, FromColor(c))
}
