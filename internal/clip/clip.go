package clip

import (
	"fmt"
	"image"
)

// Clip is an ordered, non-empty, read-only sequence of frames. Frames are
// referenced, never mutated, by the transition engine; Frame must be safe
// for concurrent calls.
type Clip interface {
	FrameCount() int
	Frame(index int) (image.Image, error)
	Close() error
}

// MemoryClip holds an in-memory frame sequence.
type MemoryClip struct {
	frames []image.Image
}

// FromImages wraps an already-decoded frame sequence.
func FromImages(frames []image.Image) (*MemoryClip, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("клип не содержит кадров")
	}
	return &MemoryClip{frames: frames}, nil
}

func (c *MemoryClip) FrameCount() int {
	return len(c.frames)
}

func (c *MemoryClip) Frame(index int) (image.Image, error) {
	if index < 0 || index >= len(c.frames) {
		return nil, fmt.Errorf("индекс кадра %d вне диапазона [0, %d)", index, len(c.frames))
	}
	return c.frames[index], nil
}

func (c *MemoryClip) Close() error {
	return nil
}
