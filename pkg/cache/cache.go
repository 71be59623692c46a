// Package cache stores rendered artifacts and fetched logos as opaque bytes.
//
// # Backends
//
//   - [FileCache]: one JSON entry per key under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several processes
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// A [Keyer] builds cache keys from content hashes and the options that
// affect the cached value, so that two requests producing different bytes
// never share a key. [NewScopedKeyer] prefixes every key, which keeps
// separate users or environments apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes per kind of entry.
const (
	// TTLArtifact applies to rendered diagrams. Rendering is deterministic,
	// so artifacts only expire to bound disk usage.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLLogo applies to logos fetched from the logo service.
	TTLLogo = 30 * 24 * time.Hour

	// TTLHTTP applies to other fetched resources such as Pfam HMMs.
	TTLHTTP = 24 * time.Hour
)
