package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
)

const (
	// DefaultDPI is the rasterization resolution for imported decks.
	DefaultDPI = 200
	// SlidesDir is the image directory relative to the project file.
	SlidesDir = "slides"
)

// Importer converts a deck into a project directory.
type Importer struct {
	Rasterizer Rasterizer      // nil means Pdftoppm{}
	Office     OfficeConverter // nil means Soffice{}
	DPI        int             // 0 means DefaultDPI
	Progress   progress.Sink
	Now        func() time.Time
}

var officeExts = map[string]bool{".pptx": true, ".ppt": true, ".odp": true}

// Import rasterizes source into dir/slides and saves dir/project.json.
// Source may be a PDF or an office presentation.
func (im *Importer) Import(ctx context.Context, source, dir string) (*project.Project, error) {
	rast := im.Rasterizer
	if rast == nil {
		rast = Pdftoppm{}
	}
	office := im.Office
	if office == nil {
		office = Soffice{}
	}
	now := time.Now
	if im.Now != nil {
		now = im.Now
	}
	sink := progress.OrDiscard(im.Progress)

	if _, err := os.Stat(source); err != nil {
		return nil, errors.WrapPath(errors.ErrCodeFileNotFound, err, source, "source deck")
	}

	pdfPath := source
	ext := strings.ToLower(filepath.Ext(source))
	switch {
	case ext == ".pdf":
	case officeExts[ext]:
		tmp, err := os.MkdirTemp("", "slidelinker-import-*")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
		}
		defer os.RemoveAll(tmp)

		sink.Report(progress.Event{Message: "converting to PDF"})
		if pdfPath, err = office.ToPDF(ctx, source, tmp); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported deck type %q (want .pdf, .pptx, .ppt or .odp)", ext)
	}

	slidesDir := filepath.Join(dir, SlidesDir)
	sink.Report(progress.Event{Message: "rasterizing slides"})
	images, err := rast.Rasterize(ctx, pdfPath, slidesDir, im.dpi())
	if err != nil {
		return nil, err
	}

	rel := make([]string, len(images))
	for i, img := range images {
		rel[i] = SlidesDir + "/" + filepath.Base(img)
		sink.Report(progress.Event{Current: i + 1, Total: len(images), Message: fmt.Sprintf("slide %d/%d", i+1, len(images))})
	}

	ratio, err := DetectAspectRatio(slidesDir)
	if err != nil {
		return nil, err
	}

	p := NewProject(filepath.Base(source), rel, ratio, now())
	if err := project.Save(filepath.Join(dir, project.FileName), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (im *Importer) dpi() int {
	if im.DPI > 0 {
		return im.DPI
	}
	return DefaultDPI
}

// NewProject builds the default project for freshly imported slide images.
// Every slide is a main slide labelled "Slide N" with id slide-NNN.
func NewProject(source string, images []string, ratio string, now time.Time) *project.Project {
	ts := now.UTC().Format(time.RFC3339)
	p := &project.Project{
		Version:     project.Version,
		CreatedAt:   ts,
		UpdatedAt:   ts,
		SourceFile:  source,
		AspectRatio: ratio,
		Slides:      make([]project.Slide, len(images)),
	}
	if source != "" {
		p.SourceFiles = []string{source}
	}
	for i, img := range images {
		p.Slides[i] = project.Slide{
			ID:           fmt.Sprintf("slide-%03d", i+1),
			Index:        i,
			Label:        fmt.Sprintf("Slide %d", i+1),
			IsMain:       true,
			ImagePath:    img,
			SourceFile:   source,
			Hotspots:     []project.Hotspot{},
			TextOverlays: []project.TextOverlay{},
		}
	}
	return p
}

// DetectAspectRatio classifies the first PNG in dir (by name) as "16:9"
// or "4:3". An empty directory yields "16:9".
func DetectAspectRatio(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "list slides")
	}
	if len(matches) == 0 {
		return project.AspectWide, nil
	}
	sort.Strings(matches)

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", errors.WrapPath(errors.ErrCodeImageRead, err, matches[0], "read slide image")
	}
	w, h, err := imagecodec.DecodeConfig(data, matches[0])
	if err != nil {
		return "", err
	}
	return project.RatioFromDimensions(w, h), nil
}
