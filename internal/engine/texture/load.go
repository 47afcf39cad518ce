// Package texture loads images from disk or over HTTP and prepares them for
// upload as GPU textures.
package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"io"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// DefaultMaxSize bounds the longer side of a loaded texture.
const DefaultMaxSize = 2048

// maxDownload caps remote image bodies.
const maxDownload = 64 << 20

// ErrEmptySource is returned when no source was given.
var ErrEmptySource = errors.New("texture: empty source")

// Result is the outcome of an asynchronous load.
type Result struct {
	Image *image.RGBA
	Err   error
}

// Load reads source (a file path or http(s) URL), decodes it and returns
// it prepared for upload: at most maxSize on its longer side (0 means
// DefaultMaxSize) with rows ordered bottom first.
func Load(ctx context.Context, source string, maxSize int) (*image.RGBA, error) {
	data, err := read(ctx, source)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Prepare(img, maxSize), nil
}

// LoadAsync runs Load on a goroutine. The channel receives exactly one
// Result and is then closed.
func LoadAsync(ctx context.Context, source string, maxSize int) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		img, err := Load(ctx, source, maxSize)
		ch <- Result{Image: img, Err: err}
	}()
	return ch
}

func read(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return data, nil
}

// Prepare converts img to RGBA, downsizes it with Catmull-Rom so the longer
// side is at most maxSize, and flips it so the first row is the bottom one.
func Prepare(img image.Image, maxSize int) *image.RGBA {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	src := img.Bounds()
	w, h := fit(src.Dx(), src.Dy(), maxSize)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, src, draw.Src, nil)
	}
	FlipVertical(rgba)
	return rgba
}

// fit scales (w, h) down to fit within maxSize, keeping the aspect ratio.
func fit(w, h, maxSize int) (int, int) {
	if w <= maxSize && h <= maxSize {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	row := make([]byte, b.Dx()*4)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:len(row)]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:len(row)]
		copy(row, t)
		copy(t, u)
		copy(u, row)
	}
}
