package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as files in a directory, so cached
// composites survive across runs and can be shared by pointing several
// processes at the same directory.
//
// Entries are raw payload bytes prefixed with an 8-byte expiry stamp.
// Encoded images dominate the payloads here, so the format avoids
// wrapping megabytes of pixels in a text encoding.
type FileCache struct {
	dir string
}

// entryHeaderLen is the expiry stamp: big-endian unix nanoseconds,
// zero when the entry never expires.
const entryHeaderLen = 8

// NewFileCache creates a file-based cache in the given directory.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache. Truncated or expired entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < entryHeaderLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if stamp := binary.BigEndian.Uint64(raw[:entryHeaderLen]); stamp != 0 {
		if time.Now().UnixNano() > int64(stamp) {
			_ = os.Remove(path)
			return nil, false, nil
		}
	}

	return raw[entryHeaderLen:], true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw := make([]byte, entryHeaderLen+len(data))
	if ttl > 0 {
		binary.BigEndian.PutUint64(raw[:entryHeaderLen], uint64(time.Now().Add(ttl).UnixNano()))
	}
	copy(raw[entryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path. The first two hash chars
// shard entries into subdirectories so one directory never holds every
// cached composite.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".bin")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
