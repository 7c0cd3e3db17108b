// Package cache stores compiled artifacts keyed by a hash of their inputs.
//
// Three backends implement [Cache]:
//
//   - [FileCache] for local CLI use (one raw file per entry)
//   - [RedisCache] for caches shared between machines
//   - [NullCache] when caching is disabled
//
// Keys come from [ArtifactKey], which hashes the output format, the
// compile options and every input byte, so any change to the project
// or one of its images yields a different key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
