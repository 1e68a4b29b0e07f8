package palette

import (
	"math/rand/v2"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func inBase(c colorspace.Color) bool {
	for _, s := range Base {
		if s.Color == c {
			return true
		}
	}
	return false
}

func TestBasePalette(t *testing.T) {
	assert.Len(t, Base, 40)
	seen := map[colorspace.Color]bool{}
	for _, s := range Base {
		assert.Positive(t, s.Weight, s.Name)
		assert.False(t, seen[s.Color], "duplicate %s", s.Name)
		seen[s.Color] = true
	}
	assert.Equal(t, 62, totalWeight)
}

func TestGeneratePairBaseIsDistinct(t *testing.T) {
	rng := seeded(1)
	for i := 0; i < 200; i++ {
		p := GeneratePair(StrategyBase, rng)
		require.NotEqual(t, p[0], p[1])
		require.True(t, inBase(p[0]) && inBase(p[1]))
	}
}

func TestGeneratePairTheory(t *testing.T) {
	derive := map[Strategy]func(colorspace.Color) []colorspace.Color{
		StrategyComplementary: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.Complementary(c)}
		},
		StrategyAnalogous: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.Analogous(c)}
		},
		StrategyTriadic: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.Triadic(c)}
		},
		StrategyTetradic: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.Tetradic(c)}
		},
		StrategySplitComplementary: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.SplitComplementary(c)}
		},
		StrategyMonochromatic: func(c colorspace.Color) []colorspace.Color {
			return []colorspace.Color{colorspace.Monochromatic(c, true), colorspace.Monochromatic(c, false)}
		},
	}

	for strategy, fn := range derive {
		t.Run(string(strategy), func(t *testing.T) {
			rng := seeded(4)
			swapped := 0
			for i := 0; i < 100; i++ {
				p := GeneratePair(strategy, rng)
				base, accent := p[0], p[1]
				if !inBase(base) || !containsColor(fn(base), accent) {
					base, accent = accent, base
					swapped++
				}
				require.True(t, inBase(base), "pair %v has no palette color", p)
				require.Contains(t, fn(base), accent)
			}
			assert.Positive(t, swapped, "order is randomized")
			assert.Less(t, swapped, 100)
		})
	}
}

func containsColor(list []colorspace.Color, c colorspace.Color) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}

func TestGenerateColorPairDeterministic(t *testing.T) {
	a, b := seeded(9), seeded(9)
	for i := 0; i < 20; i++ {
		assert.Equal(t, GenerateColorPair(a), GenerateColorPair(b))
	}
}

func TestThemedScheme(t *testing.T) {
	colors, err := ThemedScheme("ocean", seeded(1))
	require.NoError(t, err)
	require.Len(t, colors, 2)

	pairs, ok := NewRegistry().Pairs("ocean")
	require.True(t, ok)
	assert.Contains(t, pairs, Pair{colors[0], colors[1]})

	colors, err = ThemedScheme("", seeded(2))
	require.NoError(t, err)
	assert.Len(t, colors, 2)

	_, err = ThemedScheme("neon", seeded(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme))
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"autumn", "desert", "forest", "ocean", "twilight"}, NewRegistry().Names())
}

func TestRegistryMergeFromTOML(t *testing.T) {
	var cfg struct {
		Themes map[string]ThemeConfig `toml:"themes"`
	}
	_, err := toml.Decode(`
[themes.harbor]
pairs = [["#1e3c5a", "#78b4d2"], ["0a1e2d", "70,180,190"]]
`, &cfg)
	require.NoError(t, err)

	r := NewRegistry()
	require.NoError(t, r.Merge(cfg.Themes))

	pairs, ok := r.Pairs("harbor")
	require.True(t, ok)
	assert.Equal(t, []Pair{
		{rgb(30, 60, 90), rgb(120, 180, 210)},
		{rgb(10, 30, 45), rgb(70, 180, 190)},
	}, pairs)
	assert.Contains(t, r.Names(), "harbor")
}

func TestRegistryRejectsBadThemes(t *testing.T) {
	r := NewRegistry()

	err := r.Merge(map[string]ThemeConfig{"empty": {}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme))

	err = r.Register("Bad Name", []Pair{{rgb(1, 2, 3), rgb(4, 5, 6)}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme))
}
