// Package pipeline compiles projects into output artifacts.
//
// It is the single entry point used by the CLI and the preview server:
// validate the project, read every slide image once, look the artifact up
// in the cache, compile on a miss, and write the result atomically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Execute(ctx, p, pipeline.Options{
//	    Format:  render.FormatHTML,
//	    BaseDir: filepath.Dir(projectPath),
//	    Output:  "deck.html",
//	})
//	for _, w := range res.Warnings {
//	    logger.Warn(w.String())
//	}
//
// An empty Output compiles to memory only; the artifact is returned in
// [Result.Artifact].
package pipeline

import (
	"time"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

const (
	// DefaultFormat is used when Options.Format is empty.
	DefaultFormat = render.FormatHTML

	// DefaultCacheTTL bounds how long compiled artifacts stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// MaxWorkers caps Options.Workers.
	MaxWorkers = 64
)

// Options configure one compile run. The JSON form of the options that
// affect the artifact is part of its cache key.
type Options struct {
	// Format is "html" or "pdf".
	Format string `json:"format"`
	// BaseDir resolves slide image paths. Usually the project directory.
	BaseDir string `json:"-"`
	// Output is the artifact path. Empty means compile to memory only.
	Output string `json:"-"`
	// Workers bounds parallel image decoding for PDF. 0 means GOMAXPROCS.
	Workers int `json:"-"`
	// Analytics overrides the project's enable_analytics flag (HTML only).
	Analytics *bool `json:"analytics,omitempty"`
	// Refresh bypasses cached artifacts and recompiles.
	Refresh bool `json:"-"`
}

// WithDefaults returns a copy of o with empty fields defaulted.
func (o Options) WithDefaults() Options {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.BaseDir == "" {
		o.BaseDir = "."
	}
	return o
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := render.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 0 and %d, got %d", MaxWorkers, o.Workers)
	}
	if o.Analytics != nil && o.Format != render.FormatHTML {
		return errors.New(errors.ErrCodeInvalidInput, "analytics only applies to html output")
	}
	return nil
}

// Result describes a finished compile.
type Result struct {
	// Artifact holds the compiled bytes.
	Artifact []byte
	// Output is the written path, empty when compiling to memory.
	Output string
	// Warnings lists hotspots the artifact renders inert (HTML only).
	Warnings []project.Warning
	Stats    Stats
	// CacheHit reports whether the artifact came from the cache.
	CacheHit bool
	Duration time.Duration
}

// Stats summarizes the compiled structure.
type Stats struct {
	Primary   int // main slides in scroll order
	Secondary int // slides rendered as modals
	Pages     int // PDF pages, 0 for HTML
	Bytes     int
}
