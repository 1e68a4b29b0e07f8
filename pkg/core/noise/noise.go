// Package noise generates multi-octave value-noise fields.
//
// Each octave is a lattice of uniform random values in [-1, 1] that is
// stretched over the output grid with bilinear interpolation. Octave i uses
// frequency scale*2^i and amplitude persistence^i; the weighted sum is
// normalized into [0, 1]. The lattice is capped at [MaxLattice] cells per
// side, which bounds memory regardless of scale and canvas size.
//
// All randomness comes from the *rand.Rand passed in, so a seeded generator
// yields identical fields.
package noise

import (
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/errors"
)

// MaxLattice is the largest lattice dimension an octave may allocate.
const MaxLattice = 2048

// DefaultPersistence is the amplitude falloff between octaves.
const DefaultPersistence = 0.5

// Options configures a noise field.
type Options struct {
	Width   int
	Height  int
	Scale   float64 // base lattice cells per pixel
	Octaves int
	// Persistence is the amplitude multiplier per octave. Zero means
	// DefaultPersistence.
	Persistence float64
}

// Field is a row-major grid of values in [0, 1].
type Field struct {
	Width  int
	Height int
	Values []float64
}

// NewField allocates a zeroed field.
func NewField(w, h int) *Field {
	return &Field{Width: w, Height: h, Values: make([]float64, w*h)}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Set stores v at (x, y).
func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// Map applies fn to every value in place and returns f.
func (f *Field) Map(fn func(float64) float64) *Field {
	for i, v := range f.Values {
		f.Values[i] = fn(v)
	}
	return f
}

// Bounds returns the minimum and maximum values of the field.
func (f *Field) Bounds() (lo, hi float64) {
	if len(f.Values) == 0 {
		return 0, 0
	}
	lo, hi = f.Values[0], f.Values[0]
	for _, v := range f.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func (o *Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "noise dimensions must be positive (got %dx%d)", o.Width, o.Height)
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidParameter, "noise scale must be positive (got %v)", o.Scale)
	}
	if o.Octaves < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "noise octaves must be at least 1 (got %d)", o.Octaves)
	}
	if o.Persistence < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "noise persistence must not be negative (got %v)", o.Persistence)
	}
	return nil
}

// Generate builds a noise field, drawing lattice values from rng.
func Generate(rng *rand.Rand, opts Options) (*Field, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	persistence := opts.Persistence
	if persistence == 0 {
		persistence = DefaultPersistence
	}

	w, h := opts.Width, opts.Height
	sum := make([]float64, w*h)
	amplitude, frequency, total := 1.0, opts.Scale, 0.0

	for i := 0; i < opts.Octaves; i++ {
		if i > 0 {
			frequency *= 2
			amplitude *= persistence
		}
		lat := newLattice(rng, latticeDim(w, frequency), latticeDim(h, frequency))
		lat.accumulate(sum, w, h, amplitude)
		total += amplitude
	}

	f := &Field{Width: w, Height: h, Values: sum}
	for i, v := range sum {
		f.Values[i] = clamp01((v + total) / (2 * total))
	}
	return f, nil
}

// latticeDim returns the lattice size covering n pixels at the given
// frequency, including one cell of padding on each side.
func latticeDim(n int, frequency float64) int {
	d := float64(n)*frequency + 2
	if d >= MaxLattice {
		return MaxLattice
	}
	return int(d)
}

type lattice struct {
	w, h   int
	values []float64
}

func newLattice(rng *rand.Rand, w, h int) *lattice {
	l := &lattice{w: w, h: h, values: make([]float64, w*h)}
	for i := range l.values {
		l.values[i] = rng.Float64()*2 - 1
	}
	return l
}

// accumulate adds amplitude times the lattice, resampled onto a w×h grid,
// into dst. Sample positions are spaced evenly from the first to the last
// lattice node, so lookups never leave the lattice.
func (l *lattice) accumulate(dst []float64, w, h int, amplitude float64) {
	xs := samplePositions(w, l.w)
	for y := 0; y < h; y++ {
		gy := linspaceAt(y, h, l.h)
		y0 := int(gy)
		y1 := min(y0+1, l.h-1)
		fy := gy - float64(y0)
		row0 := l.values[y0*l.w : (y0+1)*l.w]
		row1 := l.values[y1*l.w : (y1+1)*l.w]

		for x, s := range xs {
			top := row0[s.i0]*(1-s.f) + row0[s.i1]*s.f
			bottom := row1[s.i0]*(1-s.f) + row1[s.i1]*s.f
			dst[y*w+x] += (top*(1-fy) + bottom*fy) * amplitude
		}
	}
}

type sample struct {
	i0, i1 int
	f      float64
}

func samplePositions(n, dim int) []sample {
	out := make([]sample, n)
	for i := range out {
		g := linspaceAt(i, n, dim)
		i0 := int(g)
		out[i] = sample{i0: i0, i1: min(i0+1, dim-1), f: g - float64(i0)}
	}
	return out
}

// linspaceAt returns the i-th of n evenly spaced points from 0 to dim-1.
func linspaceAt(i, n, dim int) float64 {
	if n == 1 {
		return 0
	}
	g := float64(i) * float64(dim-1) / float64(n-1)
	return math.Min(g, float64(dim-1))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
