package texture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// gradient returns an image whose top row is red and bottom row is blue.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{B: 255, A: 255}
		if y == 0 {
			c = color.RGBA{R: 255, A: 255}
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writeFile(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	src := gradient(8, 4)
	tests := []struct {
		name   string
		encode func(f *os.File) error
	}{
		{"bg.png", func(f *os.File) error { return png.Encode(f, src) }},
		{"bg.tiff", func(f *os.File) error { return tiff.Encode(f, src, nil) }},
		{"bg.bmp", func(f *os.File) error { return bmp.Encode(f, src) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.encode)

			img, err := Load(context.Background(), path, 0)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
				t.Fatalf("size = %v", img.Bounds())
			}
			// Flipped: the red top row is now last.
			if got := img.RGBAAt(0, 3); got.R != 255 || got.B != 0 {
				t.Errorf("last row = %v, want red", got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	if _, err := Load(context.Background(), "", 0); !errors.Is(err, ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestLoadGarbage(t *testing.T) {
	path := writeFile(t, "junk.tiff", func(f *os.File) error {
		_, err := f.Write([]byte("not an image"))
		return err
	})
	if _, err := Load(context.Background(), path, 0); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		png.Encode(w, gradient(4, 4))
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/bg.png", 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	if _, err := Load(context.Background(), srv.URL+"/missing.png", 0); err == nil {
		t.Error("expected error for 404")
	}
}

func TestLoadCancelled(t *testing.T) {
	path := writeFile(t, "bg.png", func(f *os.File) error { return png.Encode(f, gradient(2, 2)) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, path, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadAsync(t *testing.T) {
	path := writeFile(t, "bg.png", func(f *os.File) error { return png.Encode(f, gradient(2, 2)) })

	res, ok := <-LoadAsync(context.Background(), path, 0)
	if !ok || res.Err != nil || res.Image == nil {
		t.Fatalf("result = %+v, ok = %v", res, ok)
	}

	_, ok = <-LoadAsync(context.Background(), "", 0)
	if !ok {
		t.Fatal("failed load must still deliver a result")
	}
}

func TestPrepareDownscales(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 64, 64, 32},
		{50, 100, 64, 32, 64},
		{10, 10, 64, 10, 10},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		img := Prepare(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.max)
		if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
			t.Errorf("Prepare(%dx%d, %d) = %v, want %dx%d", tt.w, tt.h, tt.max, img.Bounds(), tt.wantW, tt.wantH)
		}
	}
}

func TestFlipVertical(t *testing.T) {
	img := gradient(3, 3)
	FlipVertical(img)
	if img.RGBAAt(1, 2).R != 255 || img.RGBAAt(1, 0).B != 255 {
		t.Error("rows not reversed")
	}
}
