package cli

import (
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		name string
		cfg  CacheConfig
		want string
	}{
		{"file with dir", CacheConfig{Backend: backendFile, Dir: "/tmp/sl"}, "/tmp/sl"},
		{"redis", CacheConfig{Backend: backendRedis, RedisAddr: "localhost:6379"}, "redis://localhost:6379"},
		{"none", CacheConfig{Backend: backendNone}, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{Config: Config{Cache: tt.cfg}}
			if got := c.cacheLocation(); got != tt.want {
				t.Errorf("cacheLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}
