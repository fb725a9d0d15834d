package engine

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/yichengup/ComfyUI-VideoTransition/internal/blend"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/clip"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/config"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/field"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/system"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/timeline"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/transform"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/warp"
)

// Reporter receives progress notifications at batch boundaries. The engine
// itself never writes to the console: the caller injects an observer, or
// passes nil to silence progress entirely.
type Reporter interface {
	BatchDone(framesDone, totalFrames int, elapsed time.Duration)
}

type nopReporter struct{}

func (nopReporter) BatchDone(int, int, time.Duration) {}

// Transition renders a displacement-field transition between two clips.
// Конфигурация и клипы неизменяемы на протяжении всего запуска.
type Transition struct {
	cfg      *config.Config
	style    field.Style
	clip1    clip.Clip
	clip2    clip.Clip
	reporter Reporter
}

// New validates the configuration and builds a Transition. Все фатальные
// ошибки конфигурации (неизвестный стиль, NaN, пустые клипы, нулевой
// холст) ловятся здесь, до обработки первого кадра.
func New(cfg *config.Config, clip1, clip2 clip.Clip, reporter Reporter) (*Transition, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не задана")
	}

	style, err := field.ParseStyle(cfg.Style)
	if err != nil {
		return nil, err
	}

	if cfg.TotalFrames < 1 {
		return nil, fmt.Errorf("total_frames должен быть >= 1, получено %d", cfg.TotalFrames)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("некорректный размер холста %dx%d", cfg.Width, cfg.Height)
	}
	if err := checkFinitePositive("warp_intensity", cfg.WarpIntensity); err != nil {
		return nil, err
	}
	if err := checkFinitePositive("warp_speed", cfg.WarpSpeed); err != nil {
		return nil, err
	}
	if math.IsNaN(cfg.MaxScale) || math.IsInf(cfg.MaxScale, 0) {
		return nil, fmt.Errorf("max_scale должен быть конечным числом, получено %v", cfg.MaxScale)
	}
	if cfg.MaxScale < 1.0 {
		return nil, fmt.Errorf("max_scale должен быть >= 1.0, получено %v", cfg.MaxScale)
	}
	if clip1 == nil || clip2 == nil {
		return nil, fmt.Errorf("оба клипа должны быть заданы")
	}
	if clip1.FrameCount() < 1 || clip2.FrameCount() < 1 {
		return nil, fmt.Errorf("клипы не должны быть пустыми (%d и %d кадров)",
			clip1.FrameCount(), clip2.FrameCount())
	}

	if reporter == nil {
		reporter = nopReporter{}
	}

	return &Transition{
		cfg:      cfg,
		style:    style,
		clip1:    clip1,
		clip2:    clip2,
		reporter: reporter,
	}, nil
}

// Run computes the full output sequence: exactly TotalFrames composited
// frames at canvas resolution, in strict index order. Кадры внутри батча
// считаются параллельно (каждый кадр — чистая функция от индекса), батчи
// ограничивают пиковую память; отмена контекста проверяется на границах
// батчей, кадр никогда не прерывается посреди стадий.
func (t *Transition) Run(ctx context.Context) ([]*image.NRGBA, error) {
	total := t.cfg.TotalFrames
	output := make([]*image.NRGBA, total)

	batchSize := t.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = autoBatchSize(t.cfg.Width, t.cfg.Height)
	}

	workers := t.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	for batchStart := 0; batchStart < total; batchStart += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batchEnd := batchStart + batchSize
		if batchEnd > total {
			batchEnd = total
		}

		g := new(errgroup.Group)
		g.SetLimit(workers)
		for i := batchStart; i < batchEnd; i++ {
			i := i
			g.Go(func() error {
				frame, err := t.renderFrame(i)
				if err != nil {
					return fmt.Errorf("кадр %d: %w", i, err)
				}
				output[i] = frame
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		t.reporter.BatchDone(batchEnd, total, time.Since(start))
	}

	return output, nil
}

// renderFrame выполняет четыре стадии для одного выходного кадра:
// поле -> ресемплинг -> восстановление масштаба -> смешивание.
func (t *Transition) renderFrame(i int) (*image.NRGBA, error) {
	progress := timeline.Progress(i, t.cfg.TotalFrames)
	w, h := t.cfg.Width, t.cfg.Height

	src1, err := t.clip1.Frame(timeline.FrameIndex(progress, t.clip1.FrameCount()))
	if err != nil {
		return nil, err
	}
	src2, err := t.clip2.Frame(timeline.FrameIndex(progress, t.clip2.FrameCount()))
	if err != nil {
		return nil, err
	}

	frame1 := imaging.Resize(src1, w, h, imaging.Box)
	frame2 := imaging.Resize(src2, w, h, imaging.Box)

	field1 := field.Generate(w, h, field.Params{
		Style:     t.style,
		Intensity: t.cfg.WarpIntensity,
		Speed:     t.cfg.WarpSpeed,
		Progress:  progress,
		Role:      field.First,
	})
	field2 := field.Generate(w, h, field.Params{
		Style:     t.style,
		Intensity: t.cfg.WarpIntensity,
		Speed:     t.cfg.WarpSpeed,
		Progress:  progress,
		Role:      field.Second,
	})

	warped1 := warp.Remap(frame1, field1)
	warped2 := warp.Remap(frame2, field2)
	field1.Release()
	field2.Release()

	if t.cfg.ScaleRecovery {
		warped2 = transform.ScaleRecovery(warped2, progress, t.cfg.MaxScale)
	}

	w1, w2 := blend.Weights(progress)
	return blend.Composite(warped1, warped2, w1, w2), nil
}

// autoBatchSize подбирает размер батча по доступной памяти: на кадр в
// обработке приходится около 12 холстов RGBA (кадры, поля, промежуточные
// буферы), под пайплайн отводится четверть свободной памяти.
func autoBatchSize(width, height int) int {
	const (
		defaultBatch = 5
		maxBatch     = 20
	)

	available := system.AvailableMemory()
	if available == 0 {
		return defaultBatch
	}

	frameBytes := uint64(width) * uint64(height) * 4 * 12
	batch := int(available / 4 / frameBytes)
	if batch < 1 {
		return 1
	}
	if batch > maxBatch {
		return maxBatch
	}
	return batch
}

func checkFinitePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s должен быть конечным числом, получено %v", name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%s должен быть > 0, получено %v", name, v)
	}
	return nil
}
