// Package transform implements the scale-recovery move applied to the
// second clip: a simulated zoom that starts at max scale and settles to
// normal as the transition completes, produced by a centered crop and an
// area-filter resize back to canvas size.
package transform

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// scaleEpsilon is the dead zone around scale 1.0 where the transform is
// skipped entirely.
const scaleEpsilon = 0.01

// RecoveryScale returns the zoom factor for a given progress: maxScale at
// progress 0, 1.0 at progress 1, clamped into [0.8, maxScale].
func RecoveryScale(progress, maxScale float64) float64 {
	scale := maxScale - progress*(maxScale-1.0)
	if scale > maxScale {
		scale = maxScale
	}
	if scale < 0.8 {
		scale = 0.8
	}
	return scale
}

// ScaleRecovery applies the zoom-recovery to a frame. The crop window never
// exceeds the frame bounds and the result is always exactly the input size,
// fully covered. When the scale is within scaleEpsilon of 1.0 the input is
// returned unchanged.
func ScaleRecovery(img *image.NRGBA, progress, maxScale float64) *image.NRGBA {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	scale := RecoveryScale(progress, maxScale)
	if math.Abs(scale-1.0) < scaleEpsilon {
		return img
	}

	// scale > 1 zooms in (smaller crop window), scale < 1 zooms out.
	cropW := int(float64(w) / scale)
	cropH := int(float64(h) / scale)
	if cropW > w {
		cropW = w
	}
	if cropH > h {
		cropH = h
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}

	cropped := imaging.CropCenter(img, cropW, cropH)
	return imaging.Resize(cropped, w, h, imaging.Box)
}
