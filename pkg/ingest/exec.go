package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

// Rasterizer renders every page of a PDF into outDir as PNG files and
// returns their paths in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error)
}

// OfficeConverter converts an office document to PDF inside outDir and
// returns the PDF path.
type OfficeConverter interface {
	ToPDF(ctx context.Context, srcPath, outDir string) (string, error)
}

// Pdftoppm rasterizes PDFs with poppler's pdftoppm.
type Pdftoppm struct {
	// Binary overrides the executable name. Defaults to "pdftoppm".
	Binary string
}

// Rasterize implements Rasterizer. Pages are written as slide-NNN.png.
func (r Pdftoppm) Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error) {
	bin, err := lookPath(r.Binary, "pdftoppm",
		"PDF import requires poppler. Install with:\n  macOS:  brew install poppler\n  Linux:  apt install poppler-utils")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.WrapPath(errors.ErrCodeOutputWrite, err, outDir, "create slide directory")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	prefix := filepath.Join(outDir, rawPrefix)
	if err := run(ctx, bin, "-r", strconv.Itoa(dpi), "-png", pdfPath, prefix); err != nil {
		return nil, err
	}
	return collectPages(outDir)
}

// Soffice converts office documents with LibreOffice in headless mode.
type Soffice struct {
	// Binary overrides the executable name. Defaults to "soffice".
	Binary string
}

// ToPDF implements OfficeConverter.
func (c Soffice) ToPDF(ctx context.Context, srcPath, outDir string) (string, error) {
	bin, err := lookPath(c.Binary, "soffice",
		"office import requires LibreOffice. Install with:\n  macOS:  brew install --cask libreoffice\n  Linux:  apt install libreoffice-impress")
	if err != nil {
		return "", err
	}
	if err := run(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", outDir, srcPath); err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	out := filepath.Join(outDir, stem+".pdf")
	if _, err := os.Stat(out); err != nil {
		return "", errors.WrapPath(errors.ErrCodeConversionFailed, err, srcPath, "soffice produced no PDF")
	}
	return out, nil
}

func lookPath(bin, fallback, hint string) (string, error) {
	if bin == "" {
		bin = fallback
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConverterUnavailable, err, "%s not found. %s", bin, hint)
	}
	return path, nil
}

func run(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeConversionFailed, err, "%s: %s", filepath.Base(bin), strings.TrimSpace(errBuf.String()))
	}
	return nil
}

// rawPrefix names pdftoppm's output before renumbering. pdftoppm pads page
// numbers to the width of the page count, so "page-1.png" and
// "page-001.png" are both possible.
const rawPrefix = "page"

// collectPages renames raw pdftoppm output in dir to slide-NNN.png and
// returns the new paths in page order.
func collectPages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, rawPrefix+"-*.png"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list pages")
	}

	type page struct {
		n    int
		path string
	}
	pages := make([]page, 0, len(matches))
	for _, m := range matches {
		num := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), rawPrefix+"-"), ".png")
		n, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		pages = append(pages, page{n, m})
	}
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeConversionFailed, "no pages rendered in %s", dir)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	out := make([]string, len(pages))
	for i, pg := range pages {
		dst := filepath.Join(dir, SlideFileName(i+1))
		if err := os.Rename(pg.path, dst); err != nil {
			return nil, errors.WrapPath(errors.ErrCodeOutputWrite, err, dst, "rename page %d", pg.n)
		}
		out[i] = dst
	}
	return out, nil
}

// SlideFileName returns the image file name of the n-th slide (1-based).
func SlideFileName(n int) string {
	return fmt.Sprintf("slide-%03d.png", n)
}
