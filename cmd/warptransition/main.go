package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yichengup/ComfyUI-VideoTransition/internal/clip"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/config"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/engine"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/overlay"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/preset"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/system"
	"github.com/yichengup/ComfyUI-VideoTransition/internal/video"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/clip1", "input/clip2", "output", "presets"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	input1Ptr := flag.String("input1", "", "Первый клип: видео, папка с кадрами или solid:#цвет (по умолчанию: самое свежее видео в input/clip1/)")
	input2Ptr := flag.String("input2", "", "Второй клип: видео, папка с кадрами или solid:#цвет (по умолчанию: самое свежее видео в input/clip2/)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	stylePtr := flag.String("style", "swirl", "Стиль искажения: swirl, squeeze_h, squeeze_v, liquid, wave")
	framesPtr := flag.Int("frames", 60, "Количество кадров перехода")
	fpsPtr := flag.Int("fps", 30, "FPS")
	intensityPtr := flag.Float64("intensity", 0.5, "Интенсивность искажения (> 0)")
	speedPtr := flag.Float64("speed", 1.0, "Скорость искажения (> 0)")
	maxScalePtr := flag.Float64("max-scale", 1.3, "Максимальный зум второго клипа (>= 1.0)")
	scaleRecoveryPtr := flag.Bool("scale-recovery", true, "Восстановление масштаба второго клипа")
	widthPtr := flag.Int("width", 640, "Ширина холста")
	heightPtr := flag.Int("height", 640, "Высота холста")
	batchPtr := flag.Int("batch", 0, "Размер батча (0 — авто по доступной памяти)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	bgPtr := flag.String("bg", "#000000", "Цвет для solid-клипов (CSS: #rrggbb, имя цвета)")
	presetPtr := flag.String("preset", "", "Путь к YAML-пресету (latest — самый свежий в presets/)")
	savePresetPtr := flag.Bool("save-preset", false, "Сохранить текущие параметры как пресет")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	debugQRPtr := flag.Bool("debug-qr", false, "Впечатывать QR-код с номером кадра (проверка точности кадров)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	cfg := &config.Config{
		Style:         *stylePtr,
		TotalFrames:   *framesPtr,
		FPS:           *fpsPtr,
		WarpIntensity: *intensityPtr,
		WarpSpeed:     *speedPtr,
		MaxScale:      *maxScalePtr,
		ScaleRecovery: *scaleRecoveryPtr,
		Width:         *widthPtr,
		Height:        *heightPtr,
		BatchSize:     *batchPtr,
		Workers:       *workersPtr,
		Background:    *bgPtr,
		DebugQR:       *debugQRPtr,
		ShowStats:     *statsPtr,
		BuildVersion:  "warptransition-1.0",
	}

	// Пресет перекрывает параметры командной строки
	if *presetPtr != "" {
		presetPath := *presetPtr
		if presetPath == "latest" {
			latest, err := preset.FindLatestPreset()
			if err != nil {
				log.Fatalf("[-] Ошибка поиска пресета: %v", err)
			}
			presetPath = latest
		}
		p, err := preset.ReadPreset(presetPath)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения пресета: %v", err)
		}
		p.Apply(cfg)
		fmt.Printf("[*] Используется пресет: %s\n", presetPath)
	}

	if *savePresetPtr {
		path := preset.GeneratePresetPath()
		if err := preset.WritePreset(preset.FromConfig(cfg), path); err != nil {
			log.Fatalf("[-] Ошибка сохранения пресета: %v", err)
		}
		fmt.Printf("[+++] Пресет сохранен: %s\n", path)
	}

	clip1, name1, err := openClip(*input1Ptr, "input/clip1", cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка первого клипа: %v", err)
	}
	defer clip1.Close()

	clip2, name2, err := openClip(*input2Ptr, "input/clip2", cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка второго клипа: %v", err)
	}
	defer clip2.Close()

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75 // Хорошее качество для VideoToolbox
		case "h264_nvenc":
			quality = 28 // Эквивалент CRF для NVENC
		default:
			quality = 23 // Стандартный CRF для x264
		}
	}
	cfg.Quality = quality

	finalOutput := *outputPtr
	if finalOutput == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cfg.Style, timestamp))
	}
	cfg.OutputVideo = finalOutput

	transition, err := engine.New(cfg, clip1, clip2, engine.ConsoleReporter{})
	if err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	fmt.Println("--- [WARP TRANSITION ENGINE] ---")
	fmt.Printf("[*] Клипы: %s (%d кадров) -> %s (%d кадров)\n", name1, clip1.FrameCount(), name2, clip2.FrameCount())
	fmt.Printf("[*] Стиль: %s | Кадров перехода: %d | %dx%d @ %d FPS\n",
		cfg.Style, cfg.TotalFrames, cfg.Width, cfg.Height, cfg.FPS)
	fmt.Println("--------------------------------")

	startTime := time.Now()

	renderStart := time.Now()
	frames, err := transition.Run(context.Background())
	if err != nil {
		log.Fatalf("[-] Ошибка рендеринга: %v", err)
	}
	renderTime := time.Since(renderStart)

	if cfg.DebugQR {
		for i, frame := range frames {
			if err := overlay.StampFrameIndex(frame, i); err != nil {
				log.Printf("[!] Не удалось впечатать QR в кадр %d: %v", i, err)
			}
		}
	}

	fmt.Println("[*] Кодирование финального видео...")
	encodeStart := time.Now()
	encoder := &video.FFmpegEncoder{EncoderName: cfg.VideoEncoder, Quality: cfg.Quality}
	if err := encoder.Encode(context.Background(), frames, cfg.OutputVideo, cfg.FPS); err != nil {
		log.Fatalf("[-] Ошибка кодирования: %v", err)
	}
	encodeTime := time.Since(encodeStart)

	totalTime := time.Since(startTime)
	if cfg.ShowStats {
		printStats(cfg, len(frames), totalTime, renderTime, encodeTime)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}

// openClip открывает клип по спецификации: solid:#цвет, видеофайл или
// папка с изображениями. Пустая спецификация — самое свежее видео в
// папке по умолчанию.
func openClip(spec, defaultDir string, cfg *config.Config) (clip.Clip, string, error) {
	if spec == "" {
		latest, err := system.FindLatestVideo(defaultDir)
		if err != nil {
			return nil, "", fmt.Errorf("%v. Положите клип в %s/", err, defaultDir)
		}
		spec = latest
		fmt.Printf("[*] Выбран файл: %s\n", spec)
	}

	if strings.HasPrefix(spec, "solid:") {
		colorSpec := strings.TrimPrefix(spec, "solid:")
		if colorSpec == "" {
			colorSpec = cfg.Background
		}
		c, err := clip.NewSolidClip(colorSpec, cfg.TotalFrames, cfg.Width, cfg.Height)
		return c, spec, err
	}

	fi, err := os.Stat(spec)
	if err != nil {
		return nil, "", err
	}

	if fi.IsDir() || isImageFile(spec) {
		c, err := clip.NewImageDirClip(spec)
		return c, spec, err
	}

	c, err := clip.NewVideoClip(spec)
	return c, spec, err
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func printStats(cfg *config.Config, frameCount int, totalTime, renderTime, encodeTime time.Duration) {
	fps := float64(frameCount) / totalTime.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding (GPU/CPU): %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		cfg.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), fps,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Style: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		cfg.Style,
		frameCount,
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
