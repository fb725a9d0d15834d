package timeline

import "math"

// Progress returns the output progress value for frame i of total.
// A single-frame output pins progress to 0.
func Progress(i, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(i) / float64(total-1)
}

// FrameIndex maps an output progress value to a source frame index
// within a clip of the given length. The result is always in [0, length-1]
// and is monotonic non-decreasing in progress.
func FrameIndex(progress float64, length int) int {
	if length <= 1 {
		return 0
	}
	idx := int(math.Round(progress * float64(length-1)))
	if idx < 0 {
		return 0
	}
	if idx > length-1 {
		return length - 1
	}
	return idx
}
