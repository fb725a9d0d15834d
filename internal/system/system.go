package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// AvailableMemory возвращает объем доступной оперативной памяти в байтах.
// При ошибке возвращает 0 — вызывающая сторона использует значение по умолчанию.
func AvailableMemory() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[!] Не удалось получить информацию о памяти: %v", err)
		return 0
	}
	return vm.Available
}

var videoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".avi"}

// FindLatestVideo находит самый свежий видеофайл в папке.
func FindLatestVideo(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isVideo := false
		for _, ext := range videoExtensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isVideo = true
				break
			}
		}
		if isVideo {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено видеофайлов", dir)
	}

	return latestFile, nil
}

// ProbeVideoSize возвращает размеры первого видеопотока файла через ffprobe.
func ProbeVideoSize(path string) (width, height int, err error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe error: %v (%s)", err, strings.TrimSpace(string(out)))
	}

	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%dx%d", &width, &height)
	if err != nil {
		return 0, 0, fmt.Errorf("не удалось распарсить размеры видео %q: %v", strings.TrimSpace(string(out)), err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("некорректные размеры видео: %dx%d", width, height)
	}

	return width, height, nil
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)

	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}
