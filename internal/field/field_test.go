package field

import (
	"testing"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    Style
		wantErr bool
	}{
		{"swirl", Swirl, false},
		{"squeeze_h", SqueezeH, false},
		{"squeeze_v", SqueezeV, false},
		{"liquid", Liquid, false},
		{"wave", Wave, false},
		{"", 0, true},
		{"sworl", 0, true},
		{"zoom", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, err := ParseStyle(tt.name)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if style != tt.want {
					t.Errorf("Expected %v, got %v", tt.want, style)
				}
				if style.String() != tt.name {
					t.Errorf("String() roundtrip failed: %s", style.String())
				}
			}
		})
	}
}

// The first clip must be undistorted at progress 0, the second at progress 1.
func TestRampEndpoints(t *testing.T) {
	cases := []struct {
		role     Role
		progress float64
	}{
		{First, 0},
		{Second, 1},
	}

	for _, style := range Styles() {
		for _, c := range cases {
			f := Generate(64, 48, Params{
				Style:     style,
				Intensity: 1.0,
				Speed:     1.0,
				Progress:  c.progress,
				Role:      c.role,
			})

			if mean := f.MeanAbsDisplacement(); mean != 0 {
				t.Errorf("%v role=%v progress=%v: expected zero field, mean displacement %v",
					style, c.role, c.progress, mean)
			}
			f.Release()
		}
	}
}

// Increasing warp intensity must strictly increase the mean displacement
// magnitude at fixed progress.
func TestIntensityMonotonic(t *testing.T) {
	intensities := []float64{0.1, 0.2, 0.4}

	for _, style := range Styles() {
		prev := -1.0
		for _, intensity := range intensities {
			f := Generate(64, 64, Params{
				Style:     style,
				Intensity: intensity,
				Speed:     1.0,
				Progress:  0.6,
				Role:      First,
			})
			mean := f.MeanAbsDisplacement()
			f.Release()

			if mean <= prev {
				t.Errorf("%v: mean displacement %v at intensity %v not greater than %v",
					style, mean, intensity, prev)
			}
			t.Logf("%v intensity=%.2f mean=%.4f", style, intensity, mean)
			prev = mean
		}
	}
}

// The two roles rotate the swirl in opposite directions.
func TestSwirlRotationSign(t *testing.T) {
	size := 64
	// Точка на горизонтальной оси справа от центра: положительный твист
	// смещает её вниз (+y), отрицательный — вверх.
	x, y := size/2+10, size/2

	first := Generate(size, size, Params{Style: Swirl, Intensity: 0.5, Speed: 1, Progress: 0.5, Role: First})
	defer first.Release()
	second := Generate(size, size, Params{Style: Swirl, Intensity: 0.5, Speed: 1, Progress: 0.5, Role: Second})
	defer second.Release()

	i := y*size + x
	if first.Dy[i] <= 0 {
		t.Errorf("First clip swirl should rotate positively, dy = %v", first.Dy[i])
	}
	if second.Dy[i] >= 0 {
		t.Errorf("Second clip swirl should rotate negatively, dy = %v", second.Dy[i])
	}
}

func TestSqueezeAxes(t *testing.T) {
	h := Generate(48, 32, Params{Style: SqueezeH, Intensity: 1, Speed: 1, Progress: 0.5, Role: First})
	defer h.Release()
	for i, v := range h.Dy {
		if v != 0 {
			t.Fatalf("squeeze_h must not displace vertically, Dy[%d] = %v", i, v)
		}
	}

	v := Generate(48, 32, Params{Style: SqueezeV, Intensity: 1, Speed: 1, Progress: 0.5, Role: First})
	defer v.Release()
	for i, val := range v.Dx {
		if val != 0 {
			t.Fatalf("squeeze_v must not displace horizontally, Dx[%d] = %v", i, val)
		}
	}
}

func TestGenerateDimensions(t *testing.T) {
	f := Generate(33, 17, Params{Style: Liquid, Intensity: 0.5, Speed: 1, Progress: 0.3, Role: Second})
	defer f.Release()

	if f.Width != 33 || f.Height != 17 {
		t.Errorf("Unexpected field size %dx%d", f.Width, f.Height)
	}
	if len(f.Dx) != 33*17 || len(f.Dy) != 33*17 {
		t.Errorf("Unexpected buffer lengths %d, %d", len(f.Dx), len(f.Dy))
	}
}
