package clip

import (
	"fmt"
	"image"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// SolidClip is a constant-color frame sequence. Useful as a transition
// endpoint (fade from or into a solid) and in tests.
type SolidClip struct {
	frames int
	img    *image.NRGBA
}

// NewSolidClip builds a clip of n identical frames filled with a CSS color
// ("#ff0000", "#f00", "red", "rgb(...)").
func NewSolidClip(colorSpec string, n, width, height int) (*SolidClip, error) {
	if n < 1 {
		return nil, fmt.Errorf("клип должен содержать хотя бы один кадр, запрошено %d", n)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("некорректный размер кадра %dx%d", width, height)
	}

	c, err := css.Parse(colorSpec)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить цвет %q: %w", colorSpec, err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill := color.NRGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 0xff,
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = fill.R
		img.Pix[i+1] = fill.G
		img.Pix[i+2] = fill.B
		img.Pix[i+3] = fill.A
	}

	return &SolidClip{frames: n, img: img}, nil
}

func (c *SolidClip) FrameCount() int {
	return c.frames
}

func (c *SolidClip) Frame(index int) (image.Image, error) {
	if index < 0 || index >= c.frames {
		return nil, fmt.Errorf("индекс кадра %d вне диапазона [0, %d)", index, c.frames)
	}
	return c.img, nil
}

func (c *SolidClip) Close() error {
	return nil
}
