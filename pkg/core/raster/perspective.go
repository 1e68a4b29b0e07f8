package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Homography holds the eight coefficients (a..h) of a projective map from
// output coordinates to input coordinates:
//
//	u = (a*x + b*y + c) / (g*x + h*y + 1)
//	v = (d*x + e*y + f) / (g*x + h*y + 1)
type Homography [8]float64

// Apply maps (x, y) through the homography.
func (m Homography) Apply(x, y float64) (u, v float64) {
	w := m[6]*x + m[7]*y + 1
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// SolveHomography finds the map sending each point of dst to the matching
// point of src. It fails when the quads are degenerate.
func SolveHomography(dst, src [4]Point) (Homography, error) {
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		p, q := dst[i], src[i]
		a[2*i] = [9]float64{p.X, p.Y, 1, 0, 0, 0, -q.X * p.X, -q.X * p.Y, q.X}
		a[2*i+1] = [9]float64{0, 0, 0, p.X, p.Y, 1, -q.Y * p.X, -q.Y * p.Y, q.Y}
	}

	// Gaussian elimination with partial pivoting on the augmented matrix.
	for col := 0; col < 8; col++ {
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return Homography{}, fmt.Errorf("degenerate quadrilateral")
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := col + 1; r < 8; r++ {
			f := a[r][col] / a[col][col]
			for k := col; k < 9; k++ {
				a[r][k] -= f * a[col][k]
			}
		}
	}

	var m Homography
	for r := 7; r >= 0; r-- {
		sum := a[r][8]
		for k := r + 1; k < 8; k++ {
			sum -= a[r][k] * m[k]
		}
		m[r] = sum / a[r][r]
	}
	return m, nil
}

// WarpPerspective resamples img through m with bilinear interpolation.
// Output pixels whose source falls outside img are set to bg.
func WarpPerspective(img image.Image, m Homography, bg color.Color) *image.NRGBA {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBAModel.Convert(bg).(color.NRGBA)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u, v := m.Apply(float64(x)+0.5, float64(y)+0.5)
			dst.SetNRGBA(x, y, bilinear(src, u-0.5, v-0.5, fill))
		}
	}
	return dst
}

// bilinear samples src at a continuous pixel position, clamping to the edge
// within half a pixel of the border and returning fill beyond it.
func bilinear(src *image.NRGBA, fx, fy float64, fill color.NRGBA) color.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if math.IsNaN(fx) || math.IsNaN(fy) || fx < -0.5 || fy < -0.5 || fx > float64(w)-0.5 || fy > float64(h)-0.5 {
		return fill
	}
	fx = math.Max(0, math.Min(fx, float64(w-1)))
	fy = math.Max(0, math.Min(fy, float64(h-1)))

	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	p00 := src.NRGBAAt(x0, y0)
	p10 := src.NRGBAAt(x1, y0)
	p01 := src.NRGBAAt(x0, y1)
	p11 := src.NRGBAAt(x1, y1)

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-tx) + float64(b)*tx
		bottom := float64(c)*(1-tx) + float64(d)*tx
		return uint8(math.Round(top*(1-ty) + bottom*ty))
	}
	return color.NRGBA{
		R: mix(p00.R, p10.R, p01.R, p11.R),
		G: mix(p00.G, p10.G, p01.G, p11.G),
		B: mix(p00.B, p10.B, p01.B, p11.B),
		A: mix(p00.A, p10.A, p01.A, p11.A),
	}
}
