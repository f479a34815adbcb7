// Package cache stores rendered layout artifacts and replay results.
//
// Renders are pure functions of the document and the render options, so
// their output can be cached under a key derived from both. [Keyer] builds
// those keys; [Fetch] wraps the get-or-compute cycle and reports hits and
// misses to the cache hooks in [observability].
//
// Two backends are provided: [FileCache] for the CLI (entries stored as
// files under the user cache directory) and [NullCache] for disabling
// caching.
//
// [observability]: github.com/matzehuels/mosaic/pkg/observability
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// Cache is a byte-oriented key-value cache with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Fetch returns the value cached under key, computing and storing it on a
// miss. keyType labels the entry in hook events. The boolean reports a hit.
// Cache read and write failures fall back to computing; only compute
// errors are returned.
func Fetch(ctx context.Context, c Cache, keyType, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, keyType)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, keyType)

	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, false, nil
}

// NullCache misses on every read and drops every write. It backs
// --no-cache and disabled caching.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
