// Package cache provides pluggable byte caches for encoded composites.
//
// Serve mode caches fully encoded canvases keyed by everything that
// affects their bytes (source images, crops, grid options), so repeated
// requests for the same composite skip the render-and-encode pass.
//
// Backends:
//   - [MemoryCache]: in-process, the serve default
//   - [FileCache]: persistent across runs, shareable via a directory
//   - [RedisCache]: shared across serve instances
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
//
// Implementations own the stored byte slices: callers must not modify
// data after Set or the slice returned by Get.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
