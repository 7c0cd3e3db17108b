// Package cli implements the slidelinker command-line interface.
//
// The CLI compiles annotated slide projects into interactive HTML or PDF,
// inspects and validates project files, imports decks, and serves a live
// preview. It is built with cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - export: compile a project to HTML or PDF
//   - validate: check a project for structural errors and broken links
//   - inspect: list slides and how they are rendered
//   - graph: draw the navigation graph as SVG or DOT
//   - merge: append one project's slides to another
//   - import: rasterize a PDF or PPTX into a new project
//   - preview: serve the compiled HTML locally
//   - cache: manage the artifact cache
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/slidelinker/config.toml (see
// [Config]); flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/buildinfo"
	"github.com/matzehuels/slidelinker/pkg/cache"
	"github.com/matzehuels/slidelinker/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "slidelinker"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Slidelinker turns slide decks into navigable presentations",
		Long: `Slidelinker compiles annotated slide decks into a single self-contained
HTML file with clickable hotspots and back navigation, or into a PDF that
keeps every slide as a page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/slidelinker/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configFile
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil // no home directory: run on defaults
		}
		path = p
	} else if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	cfg, unknown, err := loadConfig(path)
	if err != nil {
		return err
	}
	for _, k := range unknown {
		c.Logger.Warn("unknown config key", "key", k, "file", path)
	}
	c.Config = cfg
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache opens the configured backend, namespaced to this build.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache at %s: %w", c.Config.Cache.RedisAddr, err)
		}
		return cache.NewScoped(rc, buildinfo.CacheNamespace()), nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewScoped(fc, buildinfo.CacheNamespace()), nil
}

// cacheDir returns the configured cache directory, defaulting to the XDG
// standard (~/.cache/slidelinker/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
