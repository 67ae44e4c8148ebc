package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds serialized check reports in process memory. It is the
// hot layer: verdicts for files the pipeline has already seen this run come
// back without touching disk.
type MemoryCache struct {
	reports *gocache.Cache
}

// NewMemoryCache builds the hot layer with the given default TTL. Expired
// reports are swept every few minutes rather than on every access.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		reports: gocache.New(ttl, 5*time.Minute),
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.reports.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

// Set stores a report under key. A zero ttl falls back to the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.reports.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.reports.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.reports.Flush()
	return nil
}
