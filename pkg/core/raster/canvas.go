// Package raster holds the canvas operations shared by the synthesizers:
// filled canvases, vector drawing contexts, rotation, cropping, shear and
// perspective warps, and smoothing filters.
//
// Vector drawing goes through fogleman/gg; pixel transforms and filters use
// disintegration/imaging and golang.org/x/image/draw. Every function returns
// a new *image.NRGBA whose bounds start at the origin.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Fill returns a w×h canvas filled with c.
func Fill(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// FillRect paints the inclusive rectangle [x0, x1]×[y0, y1] with c,
// clipped to the canvas.
func FillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.Color) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// NewContext returns a w×h antialiased drawing context cleared to bg.
func NewContext(w, h int, bg color.Color) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()
	return dc
}

// Snapshot copies the current contents of dc into a new NRGBA image.
func Snapshot(dc *gg.Context) *image.NRGBA {
	return imaging.Clone(dc.Image())
}

// Point is a position on a canvas in pixel coordinates.
type Point struct {
	X, Y float64
}

// Polygon adds a closed polygon through pts to the current path of dc.
func Polygon(dc *gg.Context, pts []Point) {
	if len(pts) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}

// Polyline adds an open path through pts to the current path of dc.
func Polyline(dc *gg.Context, pts []Point) {
	if len(pts) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
}

// PieSlice adds a closed circular sector centered at (cx, cy) to the current
// path of dc. Angles are in degrees, measured clockwise from three o'clock.
func PieSlice(dc *gg.Context, cx, cy, r, startDeg, endDeg float64) {
	dc.NewSubPath()
	dc.MoveTo(cx, cy)
	dc.DrawArc(cx, cy, r, gg.Radians(startDeg), gg.Radians(endDeg))
	dc.ClosePath()
}
