package render

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Formats lists the deck formats in display order.
var Formats = []string{FormatHTML, FormatPDF}

// ValidateFormat rejects unknown deck formats.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s)", format, strings.Join(Formats, " or "))
	}
	return nil
}

// Ext returns the file extension for a deck format.
func Ext(format string) string {
	return "." + format
}

// WriteOutput atomically writes a finished artifact to path, creating
// missing parent directories.
func WriteOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapPath(errors.ErrCodeOutputWrite, err, path, "create output directory")
	}
	if err := project.WriteFileAtomic(path, data, 0o644); err != nil {
		return errors.WrapPath(errors.ErrCodeOutputWrite, err, path, "write output")
	}
	return nil
}
