// Package pattern implements the geometric background synthesizers:
// tilings, shapes, line and wave fields, rays, noise textures and solid
// fills.
//
// Generators that rotate or shear their output draw on an oversized canvas,
// transform it and cut the result back to the requested size, so no
// transform edge ever reaches the visible area. Every generator returns a
// fully opaque *image.NRGBA of exactly w×h pixels and takes its randomness
// from the *rand.Rand passed in.
package pattern

import (
	"math/rand/v2"
)

// uniform returns a float drawn uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// randInt returns an integer drawn uniformly from [lo, hi], inclusive.
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

func choice[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
