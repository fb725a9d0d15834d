package clip

import (
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// ImageDirClip reads an ordered frame sequence from a directory of images
// (sorted by filename) or from a single image file.
type ImageDirClip struct {
	paths []string
}

func NewImageDirClip(path string) (*ImageDirClip, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := filepath.Ext(entry.Name())
				if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
					paths = append(paths, filepath.Join(path, entry.Name()))
				}
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, &EmptyClipError{Path: path}
	}

	return &ImageDirClip{paths: paths}, nil
}

func (c *ImageDirClip) FrameCount() int {
	return len(c.paths)
}

func (c *ImageDirClip) Frame(index int) (image.Image, error) {
	return imaging.Open(c.paths[index])
}

func (c *ImageDirClip) Close() error {
	return nil
}

// EmptyClipError is returned when a clip source yields no frames.
type EmptyClipError struct {
	Path string
}

func (e *EmptyClipError) Error() string {
	return "в источнике " + e.Path + " нет кадров"
}
