package engine

import (
	"fmt"
	"time"
)

// ConsoleReporter prints batch progress in the same format the rest of the
// pipeline uses, с оценкой оставшегося времени.
type ConsoleReporter struct{}

func (ConsoleReporter) BatchDone(framesDone, totalFrames int, elapsed time.Duration) {
	progress := float64(framesDone) / float64(totalFrames) * 100

	if framesDone < totalFrames {
		eta := elapsed.Seconds() / float64(framesDone) * float64(totalFrames-framesDone)
		fmt.Printf("[>] Кадры %d/%d (%.1f%%) — осталось ~%.1fs\n", framesDone, totalFrames, progress, eta)
	} else {
		fmt.Printf("[>] Рендеринг завершен: %d/%d кадров за %.2fs\n", framesDone, totalFrames, elapsed.Seconds())
	}
}
