// Package compose merges a synthesized background with a foreground image
// using the foreground's alpha channel.
package compose

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/spa-dev/rbgen/pkg/core/raster"
)

// Rule selects how foreground alpha is applied.
type Rule int

const (
	// RuleMask keeps the background wherever the foreground alpha is zero
	// and copies the foreground pixel unchanged everywhere else.
	RuleMask Rule = iota
	// RuleBlend mixes all four channels of foreground and background,
	// weighted by the foreground alpha.
	RuleBlend
)

func (r Rule) String() string {
	if r == RuleBlend {
		return "blend"
	}
	return "mask"
}

// Compose returns a new image the size of fg with fg merged over bg by
// rule. bg is resampled to fg's size first when the sizes differ. Neither
// input is modified.
func Compose(bg, fg image.Image, rule Rule) *image.NRGBA {
	fb := fg.Bounds()
	w, h := fb.Dx(), fb.Dy()

	var out *image.NRGBA
	if bb := bg.Bounds(); bb.Dx() != w || bb.Dy() != h {
		out = raster.Resample(bg, w, h)
	} else {
		out = imaging.Clone(bg)
	}
	front := imaging.Clone(fg)

	for i := 0; i < len(out.Pix); i += 4 {
		f := front.Pix[i : i+4 : i+4]
		a := f[3]
		if a == 0 {
			continue
		}
		d := out.Pix[i : i+4 : i+4]
		if rule == RuleMask || a == 0xff {
			copy(d, f)
			continue
		}
		for c := range d {
			d[c] = mix(f[c], d[c], a)
		}
	}
	return out
}

// mix blends fg over bg by alpha a with rounding.
func mix(fg, bg, a uint8) uint8 {
	return uint8((uint32(fg)*uint32(a) + uint32(bg)*uint32(255-a) + 127) / 255)
}
