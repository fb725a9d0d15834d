// Package blend computes the progress-driven weights for the two warped
// frames and composites them pointwise. Both inputs are fully covered and
// opaque, and the weights always sum to exactly 1, which is what keeps the
// background from ever bleeding through mid-transition.
package blend

import "image"

// Weights returns the blend weights (w1, w2) for the first and second clip
// at the given progress. w2 follows a smoothstep curve and w1 is its
// complement; both are clamped to [0, 1] and renormalized so that
// w1 + w2 == 1 exactly, absorbing floating-point drift.
func Weights(progress float64) (w1, w2 float64) {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	// Smoothstep is applied to w2 only; w1 is derived as the complement.
	// The resulting fade profile is intentionally asymmetric.
	w2 = smoothstep(progress)
	w1 = 1.0 - w2

	w1 = clamp01(w1)
	w2 = clamp01(w2)

	if total := w1 + w2; total > 0 {
		w1 /= total
		w2 /= total
	}
	return w1, w2
}

// smoothstep is the cubic easing 3t²−2t³ with zero derivative at both ends.
func smoothstep(t float64) float64 {
	return 3*t*t - 2*t*t*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Composite blends two zero-origin frames of identical dimensions:
// out = w1·f1 + w2·f2 per channel. Alpha is forced opaque.
func Composite(f1, f2 *image.NRGBA, w1, w2 float64) *image.NRGBA {
	out := image.NewNRGBA(f1.Rect)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = mix(f1.Pix[i], f2.Pix[i], w1, w2)
		out.Pix[i+1] = mix(f1.Pix[i+1], f2.Pix[i+1], w1, w2)
		out.Pix[i+2] = mix(f1.Pix[i+2], f2.Pix[i+2], w1, w2)
		out.Pix[i+3] = 0xff
	}
	return out
}

func mix(a, b byte, w1, w2 float64) byte {
	v := w1*float64(a) + w2*float64(b) + 0.5
	if v > 255 {
		return 255
	}
	return byte(v)
}
