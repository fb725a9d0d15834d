package field

import (
	"fmt"
	"math"

	"github.com/yichengup/ComfyUI-VideoTransition/internal/system"
)

// Style selects the displacement pattern of the transition.
type Style int

const (
	Swirl Style = iota
	SqueezeH
	SqueezeV
	Liquid
	Wave
)

var styleNames = map[Style]string{
	Swirl:    "swirl",
	SqueezeH: "squeeze_h",
	SqueezeV: "squeeze_v",
	Liquid:   "liquid",
	Wave:     "wave",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle resolves a style name to its Style value. Unknown names are
// rejected here, at configuration time; there is no silent fallback to a
// zero field.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown warp style: %q (supported: swirl, squeeze_h, squeeze_v, liquid, wave)", name)
}

// Styles returns all supported styles in declaration order.
func Styles() []Style {
	return []Style{Swirl, SqueezeH, SqueezeV, Liquid, Wave}
}

// Role identifies which of the two clips a field belongs to. It determines
// the direction and timing of the distortion-intensity ramp, not the field
// shape: the first clip distorts progressively as progress runs 0→1, the
// second starts fully distorted and recovers.
type Role int

const (
	First Role = iota
	Second
)

// ramp returns the distortion ramp and the rotation sign for the role.
func (r Role) ramp(progress float64) (ramp, sign float64) {
	if r == First {
		return progress, 1
	}
	return 1 - progress, -1
}

// Params describes one field evaluation.
type Params struct {
	Style     Style
	Intensity float64
	Speed     float64
	Progress  float64
	Role      Role
}

// Field is a per-pixel displacement field: the output pixel (x, y) samples
// the source at (x+Dx[y*Width+x], y+Dy[y*Width+x]). Fields are transient,
// one per output frame; call Release when done to return the buffers to the
// shared pool.
type Field struct {
	Width, Height int
	Dx, Dy        []float32
}

func newField(width, height int) *Field {
	n := width * height
	return &Field{
		Width:  width,
		Height: height,
		Dx:     system.GetFloats(n),
		Dy:     system.GetFloats(n),
	}
}

// Release returns the field buffers to the pool. The field must not be used
// afterwards.
func (f *Field) Release() {
	system.PutFloats(f.Dx)
	system.PutFloats(f.Dy)
	f.Dx, f.Dy = nil, nil
}

// MeanAbsDisplacement returns the mean of |dx|+|dy| over all pixels.
func (f *Field) MeanAbsDisplacement() float64 {
	sum := 0.0
	for i := range f.Dx {
		sum += math.Abs(float64(f.Dx[i])) + math.Abs(float64(f.Dy[i]))
	}
	return sum / float64(len(f.Dx))
}

// Generate produces the displacement field for one output frame. Style must
// be one of the declared constants; ParseStyle guards the external surface,
// so an out-of-range value here is a programming error and panics.
func Generate(width, height int, p Params) *Field {
	f := newField(width, height)
	ramp, sign := p.Role.ramp(p.Progress)
	timeFactor := p.Progress * p.Speed * 2 * math.Pi

	switch p.Style {
	case Swirl:
		f.swirl(p.Intensity*2, ramp*sign)
	case SqueezeH:
		f.squeezeH(p.Intensity * ramp * 58)
	case SqueezeV:
		f.squeezeV(p.Intensity * ramp * 58)
	case Liquid:
		f.liquid(p.Intensity*ramp*30, timeFactor)
	case Wave:
		f.wave(p.Intensity*ramp*40, timeFactor)
	default:
		panic(fmt.Sprintf("field: unhandled style %v", p.Style))
	}
	return f
}

// swirl rotates each pixel about the canvas center. The twist angle is
// largest at the center and decays to zero at the corner radius through a
// smoothstep falloff; amount carries ramp and rotation direction.
func (f *Field) swirl(swirlIntensity, amount float64) {
	cx := float64(f.Width) / 2
	cy := float64(f.Height) / 2
	maxRadius := math.Sqrt(cx*cx + cy*cy)

	for y := 0; y < f.Height; y++ {
		dy := float64(y) - cy
		row := y * f.Width
		for x := 0; x < f.Width; x++ {
			dx := float64(x) - cx
			dist := math.Sqrt(dx*dx + dy*dy)

			influence := 0.0
			if dist > 0 {
				u := 1.0 - dist/maxRadius
				if u < 0 {
					u = 0
				} else if u > 1 {
					u = 1
				}
				influence = u * u * (3 - 2*u)
			}

			twist := (dist / maxRadius) * swirlIntensity * math.Pi * influence * amount
			sin, cos := math.Sincos(twist)

			f.Dx[row+x] = float32(dx*cos - dy*sin - dx)
			f.Dy[row+x] = float32(dx*sin + dy*cos - dy)
		}
	}
}

// squeezeH displaces pixels horizontally by a sine of three full periods
// across the width.
func (f *Field) squeezeH(amount float64) {
	cx := float64(f.Width) / 2

	profile := make([]float32, f.Width)
	for x := 0; x < f.Width; x++ {
		profile[x] = float32(math.Sin((float64(x)-cx)/float64(f.Width)*math.Pi*3) * amount)
	}

	for y := 0; y < f.Height; y++ {
		row := y * f.Width
		copy(f.Dx[row:row+f.Width], profile)
		for x := 0; x < f.Width; x++ {
			f.Dy[row+x] = 0
		}
	}
}

// squeezeV is the vertical counterpart of squeezeH.
func (f *Field) squeezeV(amount float64) {
	cy := float64(f.Height) / 2

	for y := 0; y < f.Height; y++ {
		v := float32(math.Sin((float64(y)-cy)/float64(f.Height)*math.Pi*3) * amount)
		row := y * f.Width
		for x := 0; x < f.Width; x++ {
			f.Dx[row+x] = 0
			f.Dy[row+x] = v
		}
	}
}

// liquid sums four traveling waves, two per axis, at two spatial
// frequencies. Horizontal displacement depends only on x and vertical only
// on y, so both profiles are precomputed once per frame.
func (f *Field) liquid(amount, timeFactor float64) {
	xProfile := make([]float32, f.Width)
	for x := 0; x < f.Width; x++ {
		wave1 := math.Sin(float64(x)*0.02+timeFactor) * amount
		wave3 := math.Sin(float64(x)*0.03+timeFactor*1.3) * amount * 0.4
		xProfile[x] = float32(wave1 + wave3)
	}

	for y := 0; y < f.Height; y++ {
		wave2 := math.Cos(float64(y)*0.02+timeFactor*0.7) * amount * 0.8
		wave4 := math.Cos(float64(y)*0.03+timeFactor*0.5) * amount * 0.3
		v := float32(wave2 + wave4)

		row := y * f.Width
		copy(f.Dx[row:row+f.Width], xProfile)
		for x := 0; x < f.Width; x++ {
			f.Dy[row+x] = v
		}
	}
}

// wave sums three traveling waves. The vertical displacement is driven by
// horizontal frequencies and vice versa, cross-coupling the axes.
func (f *Field) wave(amount, timeFactor float64) {
	yProfile := make([]float32, f.Width)
	for x := 0; x < f.Width; x++ {
		wave1 := math.Sin(float64(x)*0.03+timeFactor) * amount
		wave2 := math.Sin(float64(x)*0.05+timeFactor*1.5) * amount * 0.6
		yProfile[x] = float32(wave1 + wave2)
	}

	for y := 0; y < f.Height; y++ {
		wave3 := math.Sin(float64(y)*0.02+timeFactor*0.8) * amount * 0.4
		v := float32(wave3)

		row := y * f.Width
		copy(f.Dy[row:row+f.Width], yProfile)
		for x := 0; x < f.Width; x++ {
			f.Dx[row+x] = v
		}
	}
}
