package clip

import (
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/yichengup/ComfyUI-VideoTransition/internal/system"
)

// VideoClip декодирует видеофайл в память целиком через ffmpeg
// (rawvideo по stdout). Клип поставляется один раз на запрос и дальше
// только читается, поэтому полная декодация вперед безопасна и делает
// Frame бесплатным и потокобезопасным.
type VideoClip struct {
	path   string
	frames []*image.NRGBA
}

func NewVideoClip(path string) (*VideoClip, error) {
	width, height, err := system.ProbeVideoSize(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения размеров %s: %w", path, err)
	}

	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-an",
		"-")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ошибка запуска ffmpeg: %w", err)
	}

	var frames []*image.NRGBA
	for {
		frame := image.NewNRGBA(image.Rect(0, 0, width, height))
		_, err := io.ReadFull(stdout, frame.Pix)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			// Хвост меньше кадра: поток закончился посреди кадра, отбрасываем.
			break
		}
		if err != nil {
			cmd.Wait()
			return nil, fmt.Errorf("ошибка чтения кадра %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg завершился с ошибкой: %w", err)
	}
	if len(frames) == 0 {
		return nil, &EmptyClipError{Path: path}
	}

	return &VideoClip{path: path, frames: frames}, nil
}

func (c *VideoClip) FrameCount() int {
	return len(c.frames)
}

func (c *VideoClip) Frame(index int) (image.Image, error) {
	if index < 0 || index >= len(c.frames) {
		return nil, fmt.Errorf("индекс кадра %d вне диапазона [0, %d)", index, len(c.frames))
	}
	return c.frames[index], nil
}

func (c *VideoClip) Close() error {
	c.frames = nil
	return nil
}
