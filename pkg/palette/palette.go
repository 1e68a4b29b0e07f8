// Package palette picks background colors: a weighted palette of base
// colors, color-theory pair generation and named themes.
package palette

import (
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
)

// Swatch is a palette color and its relative selection weight.
type Swatch struct {
	Color  colorspace.Color
	Weight int
	Name   string
}

// Pair is an ordered two-color scheme: a base color and an accent.
type Pair [2]colorspace.Color

// Colors returns the pair as a slice.
func (p Pair) Colors() []colorspace.Color {
	return []colorspace.Color{p[0], p[1]}
}

func rgb(r, g, b uint8) colorspace.Color { return colorspace.Color{R: r, G: g, B: b} }

// Base is the weighted palette generated pairs are drawn from.
var Base = []Swatch{
	// Earthy tones
	{rgb(150, 75, 50), 2, "warm brown"},
	{rgb(100, 150, 100), 2, "forest green"},
	{rgb(180, 160, 140), 2, "light earth"},
	{rgb(200, 180, 140), 2, "sandy beige"},
	{rgb(160, 140, 120), 2, "soft taupe"},

	// Neutrals
	{rgb(140, 140, 140), 2, "neutral gray"},
	{rgb(90, 110, 120), 2, "slate gray"},
	{rgb(255, 255, 255), 3, "pure white"},
	{rgb(240, 240, 235), 3, "warm white"},
	{rgb(220, 220, 220), 3, "soft light gray"},
	{rgb(200, 200, 200), 3, "gentle medium gray"},
	{rgb(180, 180, 180), 3, "stone gray"},

	// Soft pastels
	{rgb(170, 140, 190), 2, "muted lavender"},
	{rgb(190, 170, 200), 2, "misty mauve"},
	{rgb(220, 200, 180), 2, "warm off-white"},
	{rgb(120, 160, 180), 2, "subtle ocean blue"},
	{rgb(180, 100, 80), 2, "muted coral"},

	// Dusk
	{rgb(110, 90, 160), 1, "twilight purple"},
	{rgb(60, 100, 150), 1, "deep blue"},
	{rgb(180, 140, 100), 1, "golden dusk"},
	{rgb(200, 110, 80), 1, "sunset orange"},

	// Vibrant accents
	{rgb(240, 180, 100), 1, "golden amber"},
	{rgb(210, 100, 120), 1, "vintage rose"},
	{rgb(70, 180, 190), 1, "teal"},
	{rgb(230, 130, 60), 1, "burnt orange"},
	{rgb(80, 170, 90), 1, "spring green"},

	// Primaries and secondaries
	{rgb(255, 0, 0), 1, "red"},
	{rgb(0, 255, 0), 1, "green"},
	{rgb(0, 0, 255), 1, "blue"},
	{rgb(255, 255, 0), 1, "yellow"},
	{rgb(255, 0, 255), 1, "magenta"},
	{rgb(0, 255, 255), 1, "cyan"},

	// Rich colors
	{rgb(90, 40, 80), 1, "deep plum"},
	{rgb(35, 55, 75), 1, "midnight navy"},
	{rgb(200, 160, 60), 1, "old gold"},
	{rgb(140, 30, 40), 1, "burgundy"},
	{rgb(30, 70, 45), 1, "deep forest"},
	{rgb(150, 95, 30), 1, "copper brown"},
	{rgb(220, 190, 220), 1, "lilac"},
	{rgb(190, 210, 200), 1, "mint sage"},
}

// Strategy is a way of deriving a color pair.
type Strategy string

const (
	StrategyBase               Strategy = "base_palette"
	StrategyComplementary      Strategy = "complementary"
	StrategyAnalogous          Strategy = "analogous"
	StrategyTriadic            Strategy = "triadic"
	StrategyMonochromatic      Strategy = "monochromatic"
	StrategySplitComplementary Strategy = "split_comp"
	StrategyTetradic           Strategy = "tetradic"
)

// strategies lists each strategy once per unit of weight.
var strategies = []Strategy{
	StrategyBase, StrategyBase, StrategyBase,
	StrategyComplementary, StrategyComplementary,
	StrategyAnalogous, StrategyAnalogous,
	StrategyTriadic,
	StrategyMonochromatic, StrategyMonochromatic,
	StrategySplitComplementary,
	StrategyTetradic,
}

// GenerateColorPair draws a strategy by weight and derives a pair with it.
func GenerateColorPair(rng *rand.Rand) Pair {
	return GeneratePair(strategies[rng.IntN(len(strategies))], rng)
}

// GeneratePair derives a pair with the given strategy. Base-palette pairs
// are two distinct weighted draws. Color-theory pairs combine a weighted
// base draw with its derived color and come out in either order with equal
// probability.
func GeneratePair(s Strategy, rng *rand.Rand) Pair {
	if s == StrategyBase {
		first := pickWeighted(rng)
		for {
			second := pickWeighted(rng)
			if second != first {
				return Pair{first, second}
			}
		}
	}

	base := pickWeighted(rng)
	var accent colorspace.Color
	switch s {
	case StrategyComplementary:
		accent = colorspace.Complementary(base)
	case StrategyAnalogous:
		accent = colorspace.Analogous(base)
	case StrategyTriadic:
		accent = colorspace.Triadic(base)
	case StrategyMonochromatic:
		accent = colorspace.Monochromatic(base, rng.IntN(2) == 0)
	case StrategySplitComplementary:
		accent = colorspace.SplitComplementary(base)
	default:
		accent = colorspace.Tetradic(base)
	}

	if rng.Float64() < 0.5 {
		return Pair{accent, base}
	}
	return Pair{base, accent}
}

var totalWeight = func() int {
	n := 0
	for _, s := range Base {
		n += s.Weight
	}
	return n
}()

func pickWeighted(rng *rand.Rand) colorspace.Color {
	r := rng.IntN(totalWeight)
	for _, s := range Base {
		if r < s.Weight {
			return s.Color
		}
		r -= s.Weight
	}
	return Base[len(Base)-1].Color
}
