package cache

import (
	"context"
	"time"
)

// Scoped prefixes every key of an inner cache, giving callers separate
// namespaces in one store. The CLI scopes by build version so a new
// release never serves artifacts compiled by an older one.
//
//	c := cache.NewScoped(fileCache, "v:1.4.0:")
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped wraps inner. A nil inner behaves like NullCache.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get retrieves a prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores under a prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Clear clears the whole inner cache, not only this scope, when the inner
// cache supports it.
func (s *Scoped) Clear(ctx context.Context) (int, error) {
	if c, ok := s.inner.(Clearer); ok {
		return c.Clear(ctx)
	}
	return 0, nil
}

// Close closes the inner cache.
func (s *Scoped) Close() error {
	return s.inner.Close()
}

var (
	_ Cache   = (*Scoped)(nil)
	_ Clearer = (*Scoped)(nil)
)
