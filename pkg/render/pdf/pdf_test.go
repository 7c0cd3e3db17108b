package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wudi/pdfkit/ir"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// pngOfWidth encodes a w x 2 image so tests can tell slides apart by width.
func pngOfWidth(t *testing.T, w int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, 2))
	for x := 0; x < w; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: 10, B: 20, A: 255})
		img.SetNRGBA(x, 1, color.NRGBA{R: 5, G: uint8(x), B: 30, A: 100})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// fixture returns a project whose render order is main-a, main-b, sub-c,
// sub-d, with image widths 1, 2, 3, 4 in that order.
func fixture(t *testing.T) (*project.Project, imagecodec.Memory) {
	t.Helper()
	p := &project.Project{
		AspectRatio: project.AspectWide,
		Slides: []project.Slide{
			{ID: "sub-d", Index: 3, ImagePath: "d.png"},
			{ID: "main-b", Index: 1, IsMain: true, ImagePath: "b.png"},
			{ID: "sub-c", Index: 2, ImagePath: "c.png",
				Hotspots: []project.Hotspot{{ID: "h", LinkType: project.LinkSlide, TargetID: "main-b"}}},
			{ID: "main-a", Index: 0, IsMain: true, ImagePath: "a.png"},
		},
	}
	src := imagecodec.Memory{
		"a.png": pngOfWidth(t, 1),
		"b.png": pngOfWidth(t, 2),
		"c.png": pngOfWidth(t, 3),
		"d.png": pngOfWidth(t, 4),
	}
	return p, src
}

func TestPageSizeFor(t *testing.T) {
	tests := []struct {
		ratio        string
		wantW, wantH float64
	}{
		{"4:3", 297, 222.75},
		{"16:9", 340, 191.25},
		{"21:9", 340, 191.25},
		{"", 340, 191.25},
	}
	for _, tt := range tests {
		got := PageSizeFor(tt.ratio)
		if math.Abs(got.Width/mmToPt-tt.wantW) > 1e-9 || math.Abs(got.Height/mmToPt-tt.wantH) > 1e-9 {
			t.Errorf("PageSizeFor(%q) = %.2fx%.2f mm, want %vx%v", tt.ratio, got.Width/mmToPt, got.Height/mmToPt, tt.wantW, tt.wantH)
		}
	}
}

func TestAssembleOrderAndSize(t *testing.T) {
	p, src := fixture(t)
	slides := navigation.RenderOrder(p.ActiveSlides())

	tr := &tracker{sink: progress.Discard, total: 2 * len(slides)}
	pixels, err := decodeAll(context.Background(), slides, src, 3, tr)
	if err != nil {
		t.Fatalf("decodeAll: %v", err)
	}
	doc, err := assemble(slides, pixels, PageStandard, "deck", tr)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if len(doc.Pages) != 4 {
		t.Fatalf("pages = %d, want 4", len(doc.Pages))
	}
	for i, page := range doc.Pages {
		if page.MediaBox.URX != PageStandard.Width || page.MediaBox.URY != PageStandard.Height {
			t.Errorf("page %d media box = %+v", i, page.MediaBox)
		}
		if page.Resources == nil || len(page.Resources.XObjects) != 1 {
			t.Fatalf("page %d: want exactly one image", i)
		}
		for _, x := range page.Resources.XObjects {
			if x.Width != i+1 || x.Height != 2 {
				t.Errorf("page %d image = %dx%d, want %dx2", i, x.Width, x.Height, i+1)
			}
			if len(x.Data) != x.Width*x.Height*3 {
				t.Errorf("page %d: %d samples, want RGB without alpha", i, len(x.Data))
			}
		}
	}
}

func TestRender(t *testing.T) {
	p, src := fixture(t)

	var mu sync.Mutex
	var events []progress.Event
	sink := progress.Func(func(e progress.Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	data, err := Render(context.Background(), p, src, Options{Workers: 2, Progress: sink})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:8])
	}

	parsed, err := ir.NewDefault().Parse(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed.Pages) != 4 {
		t.Errorf("pages = %d, want 4", len(parsed.Pages))
	}

	if len(events) != 8 {
		t.Fatalf("progress events = %d, want 8", len(events))
	}
	for i, e := range events {
		if e.Total != 8 || e.Current != i+1 {
			t.Errorf("event %d = %+v", i, e)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	p, src := fixture(t)
	a, err := Render(context.Background(), p, src, Options{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(context.Background(), p, src, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("renders differ")
	}
}

func TestRenderErrors(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		p, src := fixture(t)
		delete(src, "c.png")
		delete(src, "d.png")
		_, err := Render(context.Background(), p, src, Options{})
		if !errors.Is(err, errors.ErrCodeImageRead) {
			t.Fatalf("error = %v, want IMAGE_READ", err)
		}
		// The earliest failing slide in render order is reported.
		if got := errors.GetPath(err); got != "c.png" {
			t.Errorf("path = %q, want c.png", got)
		}
	})

	t.Run("corrupt image", func(t *testing.T) {
		p, src := fixture(t)
		src["b.png"] = []byte("not a png")
		_, err := Render(context.Background(), p, src, Options{})
		if !errors.Is(err, errors.ErrCodeImageDecode) || errors.GetPath(err) != "b.png" {
			t.Errorf("error = %v, want IMAGE_DECODE for b.png", err)
		}
	})

	t.Run("no slides", func(t *testing.T) {
		_, err := Render(context.Background(), &project.Project{AspectRatio: "16:9"}, imagecodec.Memory{}, Options{})
		if !errors.Is(err, errors.ErrCodeInvalidProject) {
			t.Errorf("error = %v, want INVALID_PROJECT", err)
		}
	})
}

func TestCompile(t *testing.T) {
	p, src := fixture(t)
	dir := t.TempDir()
	for name, data := range src {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out := filepath.Join(dir, "deck.pdf")
	if err := Compile(context.Background(), p, dir, out, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("output missing: %v", err)
	}

	os.Remove(filepath.Join(dir, "a.png"))
	failed := filepath.Join(dir, "failed.pdf")
	if err := Compile(context.Background(), p, dir, failed, Options{}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Error("output written despite failure")
	}
}
