package noise

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestGenerateRange(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"perlin defaults", Options{Width: 64, Height: 48, Scale: 0.1, Octaves: 6}},
		{"cloud defaults", Options{Width: 40, Height: 40, Scale: 0.5, Octaves: 4}},
		{"single octave", Options{Width: 10, Height: 30, Scale: 0.05, Octaves: 1}},
		{"one pixel", Options{Width: 1, Height: 1, Scale: 1, Octaves: 3}},
		{"one row", Options{Width: 17, Height: 1, Scale: 0.3, Octaves: 2}},
		{"high persistence", Options{Width: 20, Height: 20, Scale: 0.2, Octaves: 3, Persistence: 0.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Generate(seeded(1), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.opts.Width, f.Width)
			assert.Equal(t, tt.opts.Height, f.Height)
			require.Len(t, f.Values, tt.opts.Width*tt.opts.Height)

			lo, hi := f.Bounds()
			assert.GreaterOrEqual(t, lo, 0.0)
			assert.LessOrEqual(t, hi, 1.0)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Width: 32, Height: 24, Scale: 0.1, Octaves: 4}

	a, err := Generate(seeded(7), opts)
	require.NoError(t, err)
	b, err := Generate(seeded(7), opts)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)

	c, err := Generate(seeded(8), opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Values, c.Values)
}

func TestGenerateIsNotFlat(t *testing.T) {
	f, err := Generate(seeded(3), Options{Width: 64, Height: 64, Scale: 0.1, Octaves: 6})
	require.NoError(t, err)
	lo, hi := f.Bounds()
	assert.Greater(t, hi-lo, 0.05)
}

func TestGenerateCapsLattice(t *testing.T) {
	assert.Equal(t, MaxLattice, latticeDim(64, 50))
	assert.Equal(t, 102, latticeDim(2, 50))
	assert.Equal(t, MaxLattice, latticeDim(10, 1e300))

	f, err := Generate(seeded(1), Options{Width: 64, Height: 2, Scale: 50, Octaves: 1})
	require.NoError(t, err)
	lo, hi := f.Bounds()
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, 1.0)
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{Width: 0, Height: 5, Scale: 0.1, Octaves: 1}},
		{"zero scale", Options{Width: 5, Height: 5, Scale: 0, Octaves: 1}},
		{"negative scale", Options{Width: 5, Height: 5, Scale: -1, Octaves: 1}},
		{"zero octaves", Options{Width: 5, Height: 5, Scale: 0.1, Octaves: 0}},
		{"negative persistence", Options{Width: 5, Height: 5, Scale: 0.1, Octaves: 2, Persistence: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(seeded(1), tt.opts)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameter), "got %v", err)
		})
	}
}

func TestLinspaceEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, linspaceAt(0, 10, 5))
	assert.Equal(t, 4.0, linspaceAt(9, 10, 5))
	assert.Equal(t, 0.0, linspaceAt(0, 1, 5))

	for _, s := range samplePositions(7, 3) {
		assert.Less(t, s.i0, 3)
		assert.Less(t, s.i1, 3)
		assert.GreaterOrEqual(t, s.f, 0.0)
		assert.Less(t, s.f, 1.0)
	}
}

func TestFieldMap(t *testing.T) {
	f := NewField(2, 2)
	f.Set(1, 1, 0.5)
	f.Map(func(v float64) float64 { return v * 2 })
	assert.Equal(t, 1.0, f.At(1, 1))
	assert.Equal(t, 0.0, f.At(0, 1))
}
