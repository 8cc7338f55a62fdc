package cache

import (
	"context"
	"time"

	"github.com/mikey/news-credibility/internal/core"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps classification results in process memory
type MemoryCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(ttl time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get retrieves a cached result
func (c *MemoryCache) Get(ctx context.Context, key string) (*core.ClassificationResult, bool, error) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	result, ok := val.(*core.ClassificationResult)
	if !ok {
		c.cache.Delete(key)
		return nil, false, nil
	}
	return clone(result), true, nil
}

// Set stores a result with the cache TTL
func (c *MemoryCache) Set(ctx context.Context, key string, result *core.ClassificationResult) error {
	c.cache.Set(key, clone(result), c.ttl)
	return nil
}

// Len returns the number of unexpired entries
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
