package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slidelinker/internal/preview"
	"github.com/matzehuels/slidelinker/pkg/render"
)

// Cache backends selectable in the [cache] section.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config mirrors config.toml. Every field is optional.
type Config struct {
	Export  ExportConfig  `toml:"export"`
	Cache   CacheConfig   `toml:"cache"`
	Preview PreviewConfig `toml:"preview"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format    string `toml:"format"`
	Workers   int    `toml:"workers"`
	Analytics *bool  `toml:"analytics"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       duration `toml:"ttl"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "72h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaultConfig() Config {
	return Config{
		Export:  ExportConfig{Format: render.FormatHTML},
		Cache:   CacheConfig{Backend: backendFile},
		Preview: PreviewConfig{Addr: preview.DefaultAddr},
	}
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error. Unknown keys are returned so the caller can warn about them.
func loadConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return defaultConfig(), nil, nil
	}
	if err != nil {
		return cfg, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return cfg, unknown, cfg.validate()
}

func (c Config) validate() error {
	if err := render.ValidateFormat(c.Export.Format); err != nil {
		return fmt.Errorf("config [export]: %w", err)
	}
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("config [cache]: redis backend needs redis_addr")
		}
	default:
		return fmt.Errorf("config [cache]: unknown backend %q (want %s)", c.Cache.Backend,
			strings.Join([]string{backendFile, backendRedis, backendNone}, ", "))
	}
	return nil
}

// configPath returns the config file location using the XDG standard
// (~/.config/slidelinker/config.toml).
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
