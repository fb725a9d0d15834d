package video

import (
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
)

// Encoder превращает готовую последовательность кадров в видеофайл.
// Ядро перехода ничего не знает о контейнерах и кодеках — это внешний
// коллаборатор пайплайна.
type Encoder interface {
	Encode(ctx context.Context, frames []*image.NRGBA, videoPath string, fps int) error
}

type FFmpegEncoder struct {
	EncoderName string
	Quality     int
}

// Encode кормит ffmpeg сырыми RGBA-кадрами через stdin (без I/O на диск)
// и кодирует их в один проход.
func (e *FFmpegEncoder) Encode(ctx context.Context, frames []*image.NRGBA, videoPath string, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("нет кадров для кодирования")
	}

	width := frames[0].Rect.Dx()
	height := frames[0].Rect.Dy()

	args := e.buildFFmpegArgs(width, height, videoPath, fps)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	for i, frame := range frames {
		if err := e.writeRawRGBA(stdin, frame, width); err != nil {
			stdin.Close()
			cmd.Wait()
			return fmt.Errorf("write raw error at frame %d: %w", i, err)
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w", err)
	}

	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(width, height int, videoPath string, fps int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", e.EncoderName,
	}

	// Качество в зависимости от энкодера
	switch e.EncoderName {
	case "h264_videotoolbox":
		bitrate := e.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", e.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", e.Quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

func (e *FFmpegEncoder) writeRawRGBA(w io.Writer, frame *image.NRGBA, width int) error {
	// Кадры пайплайна всегда zero-origin с плотным stride, но на всякий
	// случай пишем построчно, если stride шире строки.
	if frame.Stride == width*4 && frame.Rect.Min.X == 0 && frame.Rect.Min.Y == 0 {
		_, err := w.Write(frame.Pix)
		return err
	}

	rowBytes := width * 4
	for y := frame.Rect.Min.Y; y < frame.Rect.Max.Y; y++ {
		offset := frame.PixOffset(frame.Rect.Min.X, y)
		if _, err := w.Write(frame.Pix[offset : offset+rowBytes]); err != nil {
			return err
		}
	}
	return nil
}
