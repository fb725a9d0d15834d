// Package warp applies displacement fields to frames via inverse-mapping
// resampling: every output pixel interpolates the source image at
// (x+dx, y+dy) with a Catmull-Rom cubic kernel and reflect-border
// extension, so the output is fully covered regardless of field magnitude.
package warp

import (
	"image"

	"github.com/yichengup/ComfyUI-VideoTransition/internal/field"
)

// Remap resamples src through the displacement field. src must be a
// zero-origin frame with the same dimensions as the field; the result is a
// new fully-opaque frame of the same size. An identity (all-zero) field
// reproduces src bit-for-bit.
func Remap(src *image.NRGBA, f *field.Field) *image.NRGBA {
	w, h := f.Width, f.Height
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	maxX := float64(w - 1)
	maxY := float64(h - 1)

	for y := 0; y < h; y++ {
		row := y * f.Width
		for x := 0; x < w; x++ {
			sx := float64(x) + float64(f.Dx[row+x])
			sy := float64(y) + float64(f.Dy[row+x])

			// Sampling coordinates are clamped into the canvas; out-of-range
			// kernel taps are handled by reflection below.
			if sx < 0 {
				sx = 0
			} else if sx > maxX {
				sx = maxX
			}
			if sy < 0 {
				sy = 0
			} else if sy > maxY {
				sy = maxY
			}

			di := dst.PixOffset(x, y)
			sampleBicubic(src, sx, sy, dst.Pix[di:di+4])
		}
	}

	return dst
}

// sampleBicubic interpolates src at a non-integer coordinate over a 4x4
// neighborhood and writes the RGBA result into out.
func sampleBicubic(src *image.NRGBA, sx, sy float64, out []byte) {
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	x0 := int(sx)
	y0 := int(sy)
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	var wx, wy [4]float64
	cubicWeights(fx, &wx)
	cubicWeights(fy, &wy)

	var r, g, b float64
	for j := 0; j < 4; j++ {
		yj := reflect(y0+j-1, h)
		rowWeight := wy[j]
		if rowWeight == 0 {
			continue
		}
		base := yj * src.Stride
		for i := 0; i < 4; i++ {
			weight := rowWeight * wx[i]
			if weight == 0 {
				continue
			}
			xi := reflect(x0+i-1, w)
			p := base + xi*4
			r += weight * float64(src.Pix[p])
			g += weight * float64(src.Pix[p+1])
			b += weight * float64(src.Pix[p+2])
		}
	}

	out[0] = clampByte(r)
	out[1] = clampByte(g)
	out[2] = clampByte(b)
	out[3] = 0xff
}

// cubicWeights fills w with Catmull-Rom kernel weights for the four taps
// around a sample at fractional offset t in [0, 1). The weights sum to 1.
func cubicWeights(t float64, w *[4]float64) {
	w[0] = catmullRom(1 + t)
	w[1] = catmullRom(t)
	w[2] = catmullRom(1 - t)
	w[3] = catmullRom(2 - t)
}

// catmullRom is the cubic BC-spline kernel with B=0, C=0.5.
func catmullRom(t float64) float64 {
	if t < 0 {
		t = -t
	}
	if t < 1 {
		return (1.5*t-2.5)*t*t + 1
	}
	if t < 2 {
		return ((-0.5*t+2.5)*t-4)*t + 2
	}
	return 0
}

// reflect folds an out-of-range index back into [0, n) by mirroring across
// the borders, edge pixel included (fedcba|abcdefgh|hgfedcb).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
