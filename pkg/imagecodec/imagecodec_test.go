package imagecodec

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	px, err := Decode(encodePNG(t, img), "a.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if px.Width != 2 || px.Height != 1 {
		t.Errorf("size = %dx%d, want 2x1", px.Width, px.Height)
	}
	want := []byte{200, 100, 50, 1, 2, 3}
	if !bytes.Equal(px.RGB, want) {
		t.Errorf("RGB = %v, want %v", px.RGB, want)
	}
}

func TestDecodeGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(0, 1, color.Gray{Y: 250})

	px, err := Decode(encodePNG(t, img), "g.png")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{10, 10, 10, 250, 250, 250}
	if !bytes.Equal(px.RGB, want) {
		t.Errorf("RGB = %v, want %v", px.RGB, want)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"), "slides/broken.png")
	if !errors.Is(err, errors.ErrCodeImageDecode) {
		t.Fatalf("error = %v, want IMAGE_DECODE", err)
	}
	if got := errors.GetPath(err); got != "slides/broken.png" {
		t.Errorf("path = %q, want slides/broken.png", got)
	}
}

func TestDirReadImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "slides"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 3)))
	if err := os.WriteFile(filepath.Join(dir, "slides", "s.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	src := Dir(dir)

	px, err := Load(ctx, src, "slides/s.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if px.Width != 4 || px.Height != 3 || len(px.RGB) != 4*3*3 {
		t.Errorf("pixels = %dx%d len %d", px.Width, px.Height, len(px.RGB))
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", "slides/missing.png"},
		{"traversal", "../outside.png"},
		{"absolute", "/etc/hosts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.ReadImage(ctx, tt.path)
			if !errors.Is(err, errors.ErrCodeImageRead) {
				t.Fatalf("error = %v, want IMAGE_READ", err)
			}
			if errors.GetPath(err) != tt.path {
				t.Errorf("path = %q, want %q", errors.GetPath(err), tt.path)
			}
		})
	}
}

func TestMemory(t *testing.T) {
	m := Memory{"a.png": []byte("x")}
	if _, err := m.ReadImage(context.Background(), "a.png"); err != nil {
		t.Errorf("ReadImage: %v", err)
	}
	if _, err := m.ReadImage(context.Background(), "b.png"); !errors.Is(err, errors.ErrCodeImageRead) {
		t.Errorf("error = %v, want IMAGE_READ", err)
	}
}

func TestDataURI(t *testing.T) {
	data := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 1, 1)))

	first := DataURI(data)
	if !strings.HasPrefix(first, "data:image/png;base64,") {
		t.Errorf("DataURI prefix = %q", first[:30])
	}
	if second := DataURI(data); first != second {
		t.Error("DataURI is not deterministic")
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), "image/jpeg"},
		{"gif", []byte("GIF89a...."), "image/gif"},
		{"tiff", []byte("II*\x00\x08\x00"), "image/tiff"},
		{"unknown", []byte("hello"), "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MediaType(tt.data); got != tt.want {
				t.Errorf("MediaType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	data := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 16, 9)))
	w, h, err := DecodeConfig(data, "x.png")
	if err != nil || w != 16 || h != 9 {
		t.Errorf("DecodeConfig() = %d, %d, %v", w, h, err)
	}
}
