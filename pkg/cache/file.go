package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/slidelinker/pkg/project"
)

// entryMagic starts every FileCache entry. It is followed by the expiry as
// big-endian Unix nanoseconds (0 = never) and then the raw artifact bytes.
var entryMagic = []byte("SLC1")

const headerSize = 4 + 8

// FileCache stores entries as files under a directory, one file per key.
// Artifacts are kept raw, so a cached deck costs what the deck costs.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired and unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < headerSize || !bytes.Equal(raw[:4], entryMagic) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(raw[4:headerSize])); exp != 0 && c.now().UnixNano() > exp {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerSize:], true, nil
}

// Set writes the entry atomically, so a concurrent Get sees either the old
// entry or the new one.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var exp int64
	if ttl > 0 {
		exp = c.now().Add(ttl).UnixNano()
	}

	buf := make([]byte, headerSize+len(data))
	copy(buf, entryMagic)
	binary.BigEndian.PutUint64(buf[4:headerSize], uint64(exp))
	copy(buf[headerSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return project.WriteFileAtomic(path, buf, 0o644)
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry file and the emptied subdirectories.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*", "*.bin"))
	if err != nil {
		return 0, err
	}

	count := 0
	dirs := make(map[string]bool)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := os.Remove(f); err == nil {
			count++
		}
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		_ = os.Remove(d) // fails while not empty
	}
	return count, nil
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// path maps a key to dir/<2 hex>/<62 hex>.bin.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".bin")
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
