package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/repeatmap/pkg/observability"
)

// Instrument reports hits, misses and writes of c to the registered
// [observability.CacheHooks]. The key type passed to the hooks is the key's
// first colon-separated segment, such as "artifact" or "logo".
func Instrument(c Cache) Cache {
	if _, ok := c.(instrumented); ok {
		return c
	}
	return instrumented{c}
}

type instrumented struct {
	Cache
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func keyType(key string) string {
	kind, _, _ := strings.Cut(key, ":")
	return kind
}
