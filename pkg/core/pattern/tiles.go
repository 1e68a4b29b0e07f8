package pattern

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/core/raster"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// Tiling defaults.
const (
	DefaultSquareSize            = 20
	DefaultPerspectiveSquareSize = 40
	DefaultMinStripeWidth        = 10
	DefaultMaxStripeWidth        = 30

	perspectiveExpand = 2
	perspectiveShrink = 0.8
	maxShearX         = 0.3
	maxShearY         = 0.1
	maxTilt           = 10.0 // degrees
)

// CheckeredOptions configures [Checkered].
type CheckeredOptions struct {
	SquareSize int
	// Angle fixes the rotation in degrees. Nil draws one from [0, 360).
	Angle *float64
}

// StripedOptions configures [Striped].
type StripedOptions struct {
	MinWidth int
	MaxWidth int
	// Angle fixes the rotation in degrees. Nil draws one from [0, 360).
	Angle *float64
}

// PerspectiveOptions configures [PerspectiveCheckered].
type PerspectiveOptions struct {
	SquareSize int
}

// Checkered renders a rotated two-color checkerboard. Squares of c1 sit
// where the sum of the square's column and row index is even; c0 fills the
// rest.
func Checkered(w, h int, c0, c1 colorspace.Color, opts CheckeredOptions, rng *rand.Rand) *image.NRGBA {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultSquareSize
	}
	angle := rotation(opts.Angle, rng)

	win := newWindow(w, h)
	img := raster.Fill(win.size, win.size, c0)
	drawChecks(img, win.off, win.off, size, c1)
	return win.finish(img, angle, c0)
}

// Striped renders rotated vertical stripes of c1 on c0. Each stripe width
// is drawn from [MinWidth, MaxWidth] and is followed by a gap of the same
// width.
func Striped(w, h int, c0, c1 colorspace.Color, opts StripedOptions, rng *rand.Rand) *image.NRGBA {
	lo, hi := opts.MinWidth, opts.MaxWidth
	if lo <= 0 {
		lo = DefaultMinStripeWidth
	}
	if hi < lo {
		hi = max(lo, DefaultMaxStripeWidth)
	}

	win := newWindow(w, h)
	img := raster.Fill(win.size, win.size, c0)
	// Stripe widths are drawn across the whole expanded canvas so the
	// sequence does not depend on which part of it is visible.
	for x := 0; x < win.full; {
		sw := randInt(rng, lo, hi)
		raster.FillRect(img, x-win.off, 0, x+sw-win.off, win.size, c1)
		x += sw * 2
	}

	angle := rotation(opts.Angle, rng)
	return win.finish(img, angle, c0)
}

// PerspectiveCheckered renders a checkerboard seen in depth: the pattern is
// sheared, tilted by a few degrees and pulled through a homography that
// narrows the far edge toward a vanishing point at the top center.
// Areas the transforms uncover are filled with c0.
func PerspectiveCheckered(w, h int, c0, c1 colorspace.Color, opts PerspectiveOptions, rng *rand.Rand) (*image.NRGBA, error) {
	size := opts.SquareSize
	if size <= 0 {
		size = DefaultPerspectiveSquareSize
	}
	ew, eh := w*perspectiveExpand, h*perspectiveExpand

	img := raster.Fill(ew, eh, c0)
	drawChecks(img, 0, 0, size, c1)

	sx := uniform(rng, -maxShearX, maxShearX)
	sy := uniform(rng, -maxShearY, maxShearY)
	img = raster.Shear(img, sx, sy, c0)
	img = raster.RotateKeep(img, uniform(rng, -maxTilt, maxTilt), c0)

	fw, fh := float64(ew), float64(eh)
	vx := float64(ew / 2)
	src := [4]raster.Point{{X: 0, Y: 0}, {X: fw, Y: 0}, {X: fw, Y: fh}, {X: 0, Y: fh}}
	dst := [4]raster.Point{
		{X: vx - perspectiveShrink*fw, Y: 0},
		{X: vx + perspectiveShrink*fw, Y: 0},
		{X: fw, Y: fh},
		{X: 0, Y: fh},
	}
	m, err := raster.SolveHomography(dst, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "perspective transform")
	}
	img = raster.WarpPerspective(img, m, c0)

	return raster.CropCenter(img, w, h), nil
}

// drawChecks paints the c1 squares of a checkerboard anchored at the
// origin of a larger virtual canvas; (ox, oy) is the position of img inside
// that canvas. Each square covers size+1 pixels per side, so neighbouring
// c1 squares touch at their corners.
func drawChecks(img *image.NRGBA, ox, oy, size int, c1 colorspace.Color) {
	b := img.Bounds()
	x0 := max(0, (ox/size-1)*size)
	y0 := max(0, (oy/size-1)*size)
	for x := x0; x < ox+b.Dx(); x += size {
		for y := y0; y < oy+b.Dy(); y += size {
			if (x/size+y/size)%2 == 0 {
				raster.FillRect(img, x-ox, y-oy, x+size-ox, y+size-oy, c1)
			}
		}
	}
}

func rotation(fixed *float64, rng *rand.Rand) float64 {
	if fixed != nil {
		return *fixed
	}
	return uniform(rng, 0, 360)
}

// window is the square part of a rotation canvas that can still reach the
// output. A tiling nominally spans a square of twice the output diagonal;
// only a window slightly larger than the diagonal around its center is
// visible after any rotation, so only that window is drawn.
type window struct {
	w, h int
	full int // side of the nominal canvas
	size int // side of the drawn window
	off  int // offset of the window inside the nominal canvas
}

func newWindow(w, h int) window {
	diag := int(math.Hypot(float64(w), float64(h)))
	full := 2 * diag
	size := diag + 4
	if size%2 != 0 {
		size++
	}
	size = min(size, full)
	return window{w: w, h: h, full: full, size: size, off: (full - size) / 2}
}

// finish rotates the window about its center and cuts out the output.
func (win window) finish(img *image.NRGBA, angle float64, bg colorspace.Color) *image.NRGBA {
	return raster.CropCenter(raster.Rotate(img, angle, bg), win.w, win.h)
}
