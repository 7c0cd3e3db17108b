package pdf

import (
	"bytes"
	"context"
	"runtime"
	"sync"

	"github.com/wudi/pdfkit/builder"
	"github.com/wudi/pdfkit/ir/semantic"
	"github.com/wudi/pdfkit/writer"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

const mmToPt = 72.0 / 25.4

// PageSize is a page size in PDF points.
type PageSize struct {
	Width  float64
	Height float64
}

// Page presets.
var (
	PageStandard = PageSize{Width: 297 * mmToPt, Height: 222.75 * mmToPt}
	PageWide     = PageSize{Width: 340 * mmToPt, Height: 191.25 * mmToPt}
)

// PageSizeFor returns the preset for an aspect ratio string.
func PageSizeFor(ratio string) PageSize {
	if ratio == project.AspectStandard {
		return PageStandard
	}
	return PageWide
}

// Options configure PDF compilation.
type Options struct {
	// Workers bounds parallel image decoding. Defaults to GOMAXPROCS.
	Workers int
	// Title is stored in the document info. Defaults to none.
	Title string
	// Progress receives events for both phases.
	Progress progress.Sink
}

// Render compiles p into PDF bytes, reading slide images from src.
// p is not modified.
func Render(ctx context.Context, p *project.Project, src imagecodec.Source, opts Options) ([]byte, error) {
	slides := navigation.RenderOrder(p.ActiveSlides())
	if len(slides) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidProject, "no slides to export")
	}

	tracker := &tracker{sink: progress.OrDiscard(opts.Progress), total: 2 * len(slides)}

	pixels, err := decodeAll(ctx, slides, src, opts.Workers, tracker)
	if err != nil {
		return nil, err
	}

	doc, err := assemble(slides, pixels, PageSizeFor(p.AspectRatio), opts.Title, tracker)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := (&writer.WriterBuilder{}).Build()
	if err := w.Write(ctx, doc, &buf, writer.Config{Deterministic: true, Compression: 6}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentAssembly, err, "serialize pdf")
	}
	tracker.finish()
	return buf.Bytes(), nil
}

// Compile renders p with images resolved against baseDir and writes the
// PDF to outputPath. Nothing is written unless rendering succeeds.
func Compile(ctx context.Context, p *project.Project, baseDir, outputPath string, opts Options) error {
	data, err := Render(ctx, p, imagecodec.Dir(baseDir), opts)
	if err != nil {
		return err
	}
	return render.WriteOutput(outputPath, data)
}

// decodeAll decodes every slide image, bounded by workers. Results are
// stored by position. When several slides fail, the error of the earliest
// slide in render order is returned.
func decodeAll(ctx context.Context, slides []project.Slide, src imagecodec.Source, workers int, t *tracker) ([]*imagecodec.Pixels, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pixels := make([]*imagecodec.Pixels, len(slides))
	errs := make([]error, len(slides))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range slides {
		s := &slides[i]
		g.Go(func() error {
			px, err := imagecodec.Load(ctx, src, s.ImagePath)
			if err != nil {
				errs[i] = err
				return err
			}
			pixels[i] = px
			t.step(s.Label)
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return pixels, nil
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return nil, errors.New(errors.ErrCodeInternal, "image decoding failed")
}

// assemble builds one full-bleed page per slide.
func assemble(slides []project.Slide, pixels []*imagecodec.Pixels, size PageSize, title string, t *tracker) (*semantic.Document, error) {
	b := builder.NewBuilder()
	b.SetInfo(&semantic.DocumentInfo{Title: title, Creator: "Slide Linker"})

	for i, px := range pixels {
		img := &semantic.Image{
			Width:            px.Width,
			Height:           px.Height,
			ColorSpace:       &semantic.DeviceColorSpace{Name: "DeviceRGB"},
			BitsPerComponent: 8,
			Data:             px.RGB,
		}
		b.NewPage(size.Width, size.Height).
			DrawImage(img, 0, 0, size.Width, size.Height, builder.ImageOptions{Interpolate: true}).
			Finish()
		t.step(slides[i].Label)
	}

	doc, err := b.Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentAssembly, err, "build pdf")
	}
	return doc, nil
}

// tracker serializes progress reports from concurrent decoders.
type tracker struct {
	mu      sync.Mutex
	sink    progress.Sink
	current int
	total   int
}

func (t *tracker) step(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current < t.total {
		t.current++
	}
	t.sink.Report(progress.Event{Current: t.current, Total: t.total, Message: msg})
}

func (t *tracker) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != t.total {
		t.current = t.total
		t.sink.Report(progress.Event{Current: t.total, Total: t.total})
	}
}
