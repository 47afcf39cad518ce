// Package debug provides developer utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes frames read back from the GPU as PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots creates a writer saving into dir (created on demand).
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
}

// CaptureFromPixels saves RGBA pixels read from OpenGL (bottom row first)
// and returns the file path.
func (s *Screenshots) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return s.save(FlipPixels(pixels, width, height))
}

// FlipPixels copies bottom-up RGBA rows into a top-down image.
func FlipPixels(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img
}

func (s *Screenshots) save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := s.filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return path, nil
}

// filename is prefix_date_time.millis.png inside dir.
func (s *Screenshots) filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(s.dir, name)
}
