package blend

import (
	"image"
	"math"
	"testing"
)

// Weights must sum to 1 for any progress, including out-of-range values.
func TestWeightsSum(t *testing.T) {
	for i := -100; i <= 1100; i++ {
		p := float64(i) / 1000
		w1, w2 := Weights(p)

		if math.Abs(w1+w2-1) > 1e-6 {
			t.Fatalf("Weights(%v): w1+w2 = %v, expected 1", p, w1+w2)
		}
		if w1 < 0 || w1 > 1 || w2 < 0 || w2 > 1 {
			t.Fatalf("Weights(%v) out of range: %v, %v", p, w1, w2)
		}
	}
}

func TestWeightsEndpoints(t *testing.T) {
	if w1, w2 := Weights(0); w1 != 1 || w2 != 0 {
		t.Errorf("Weights(0) = (%v, %v), expected (1, 0)", w1, w2)
	}
	if w1, w2 := Weights(1); w1 != 0 || w2 != 1 {
		t.Errorf("Weights(1) = (%v, %v), expected (0, 1)", w1, w2)
	}
	if w1, w2 := Weights(0.5); math.Abs(w1-0.5) > 1e-9 || math.Abs(w2-0.5) > 1e-9 {
		t.Errorf("Weights(0.5) = (%v, %v), expected (0.5, 0.5)", w1, w2)
	}
}

// Smoothstep eases w2 below the linear ramp in the first half and above it
// in the second half.
func TestWeightsEasing(t *testing.T) {
	_, w2 := Weights(0.25)
	if w2 >= 0.25 {
		t.Errorf("Expected eased w2 < 0.25 at progress 0.25, got %v", w2)
	}

	_, w2 = Weights(0.75)
	if w2 <= 0.75 {
		t.Errorf("Expected eased w2 > 0.75 at progress 0.75, got %v", w2)
	}
}

func TestWeightsMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 100; i++ {
		_, w2 := Weights(float64(i) / 100)
		if w2 < prev {
			t.Fatalf("w2 decreased at progress %v: %v < %v", float64(i)/100, w2, prev)
		}
		prev = w2
	}
}

func solid(w, h int, r, g, b byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 0xff
	}
	return img
}

func TestCompositeHalf(t *testing.T) {
	red := solid(16, 16, 255, 0, 0)
	blue := solid(16, 16, 0, 0, 255)

	out := Composite(red, blue, 0.5, 0.5)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 128 || out.Pix[i+1] != 0 || out.Pix[i+2] != 128 || out.Pix[i+3] != 0xff {
			t.Fatalf("Pixel %d = %v, expected (128, 0, 128, 255)", i/4, out.Pix[i:i+4])
		}
	}
}

func TestCompositeEndpoints(t *testing.T) {
	red := solid(8, 8, 255, 0, 0)
	blue := solid(8, 8, 0, 0, 255)

	out := Composite(red, blue, 1, 0)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 || out.Pix[i+2] != 0 {
			t.Fatalf("Composite with w1=1 should equal the first frame, pixel %d = %v", i/4, out.Pix[i:i+4])
		}
	}

	out = Composite(red, blue, 0, 1)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 || out.Pix[i+2] != 255 {
			t.Fatalf("Composite with w2=1 should equal the second frame, pixel %d = %v", i/4, out.Pix[i:i+4])
		}
	}
}

// Composited frames are always fully opaque.
func TestCompositeOpaque(t *testing.T) {
	out := Composite(solid(8, 8, 1, 2, 3), solid(8, 8, 4, 5, 6), 0.3, 0.7)
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0xff {
			t.Fatal("Alpha must always be 255")
		}
	}
}
