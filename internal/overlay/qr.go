// Package overlay stamps diagnostic marks onto output frames. The QR stamp
// encodes the frame index so that an encoded video can be checked for
// dropped or reordered frames by scanning the corner of each frame.
package overlay

import (
	"fmt"
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

const qrMargin = 8

// StampFrameIndex draws a QR code containing "frame:NNNNNN" into the
// bottom-right corner of the frame, in place.
func StampFrameIndex(frame *image.NRGBA, index int) error {
	w := frame.Rect.Dx()
	h := frame.Rect.Dy()

	size := w / 6
	if h/6 < size {
		size = h / 6
	}
	if size < 21 {
		size = 21
	}

	code, err := qrcode.New(fmt.Sprintf("frame:%06d", index), qrcode.Low)
	if err != nil {
		return fmt.Errorf("qr generation failed for frame %d: %w", index, err)
	}
	code.DisableBorder = true
	img := code.Image(size)

	offset := image.Pt(w-size-qrMargin, h-size-qrMargin)
	if offset.X < 0 || offset.Y < 0 {
		offset = image.Pt(0, 0)
	}
	rect := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(size, size))}
	draw.Draw(frame, rect, img, img.Bounds().Min, draw.Src)

	return nil
}
