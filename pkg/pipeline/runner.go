package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidelinker/pkg/cache"
	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/observability"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
	"github.com/matzehuels/slidelinker/pkg/render/html"
	"github.com/matzehuels/slidelinker/pkg/render/pdf"
)

// Runner executes compiles with caching.
//
// The Runner keeps no per-compile state, so one Runner may serve
// concurrent Execute calls when its Progress sink is safe for concurrent
// use.
type Runner struct {
	Cache    cache.Cache
	Logger   *log.Logger
	Progress progress.Sink
	// TTL applies to cached artifacts. 0 means DefaultCacheTTL.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger discards log output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute compiles p according to opts. p is not modified.
func (r *Runner) Execute(ctx context.Context, p *project.Project, opts Options) (*Result, error) {
	start := time.Now()
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := project.Validate(p); err != nil {
		return nil, err
	}
	r.defaults()

	slides := p.ActiveSlides()
	plan := navigation.Classify(slides)
	res := &Result{
		Stats: Stats{Primary: len(plan.Primary), Secondary: len(plan.Modals)},
	}
	if opts.Format == render.FormatPDF {
		res.Stats.Pages = len(slides)
	} else {
		res.Warnings = html.InertLinks(slides)
	}

	images, err := readImages(ctx, imagecodec.Dir(opts.BaseDir), slides)
	if err != nil {
		return nil, err
	}
	key, err := artifactKey(p, opts, slides, images)
	if err != nil {
		return nil, err
	}

	data, hit := r.lookup(ctx, key, opts)
	if !hit {
		data, err = r.compile(ctx, p, images, opts, len(slides))
		if err != nil {
			return nil, err
		}
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnSet(ctx, opts.Format, len(data))
		}
	}

	if opts.Output != "" {
		if err := render.WriteOutput(opts.Output, data); err != nil {
			return nil, err
		}
		res.Output = opts.Output
	}

	res.Artifact = data
	res.CacheHit = hit
	res.Stats.Bytes = len(data)
	res.Duration = time.Since(start)

	r.Logger.Info("compiled presentation",
		"format", opts.Format,
		"slides", len(slides),
		"modals", res.Stats.Secondary,
		"cache", hit,
		"bytes", len(data),
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) defaults() {
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Logger == nil {
		r.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if r.TTL == 0 {
		r.TTL = DefaultCacheTTL
	}
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		r.Logger.Debug("cache bypassed", "format", opts.Format)
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnHit(ctx, opts.Format)
		r.Logger.Debug("cache hit", "key", key)
		return data, true
	}
	observability.Cache().OnMiss(ctx, opts.Format)
	return nil, false
}

func (r *Runner) compile(ctx context.Context, p *project.Project, images imagecodec.Memory, opts Options, slides int) (data []byte, err error) {
	hooks := observability.Compile()
	hooks.OnCompileStart(ctx, opts.Format, slides)
	start := time.Now()
	defer func() {
		hooks.OnCompileComplete(ctx, opts.Format, len(data), time.Since(start), err)
	}()

	switch opts.Format {
	case render.FormatPDF:
		data, err = pdf.Render(ctx, p, images, pdf.Options{
			Workers:  opts.Workers,
			Title:    html.Title(p),
			Progress: r.Progress,
		})
	default:
		data, _, err = html.Render(ctx, p, images, html.Options{
			Analytics: opts.Analytics,
			Progress:  r.Progress,
		})
	}
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("compiled artifact", "format", opts.Format, "duration", time.Since(start).Round(time.Millisecond))
	return data, nil
}

// readImages loads every distinct slide image once so that hashing and
// compiling see the same bytes.
func readImages(ctx context.Context, src imagecodec.Source, slides []project.Slide) (imagecodec.Memory, error) {
	images := make(imagecodec.Memory, len(slides))
	for _, s := range slides {
		if _, ok := images[s.ImagePath]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := src.ReadImage(ctx, s.ImagePath)
		if err != nil {
			return nil, err
		}
		images[s.ImagePath] = data
	}
	return images, nil
}

func artifactKey(p *project.Project, opts Options, slides []project.Slide, images imagecodec.Memory) (string, error) {
	pj, err := project.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode project for cache key")
	}
	inputs := [][]byte{pj}
	seen := make(map[string]bool, len(images))
	for _, s := range slides {
		if seen[s.ImagePath] {
			continue
		}
		seen[s.ImagePath] = true
		inputs = append(inputs, []byte(s.ImagePath), images[s.ImagePath])
	}
	return cache.ArtifactKey(opts.Format, opts, inputs...), nil
}

// String implements fmt.Stringer for log output.
func (s Stats) String() string {
	if s.Pages > 0 {
		return fmt.Sprintf("%d pages, %d bytes", s.Pages, s.Bytes)
	}
	return fmt.Sprintf("%d main, %d modal, %d bytes", s.Primary, s.Secondary, s.Bytes)
}
