package cache

import "time"

// LayeredCache fronts the disk cache with the in-memory one. Reads try
// memory first; a disk hit is promoted so repeat lookups in the same batch
// stay in memory.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	val, found := c.disk.Get(key)
	if !found {
		return nil, false
	}
	// Promote with the memory layer's default TTL.
	_ = c.memory.Set(key, val, 0)
	return val, true
}

// Set writes through to both layers so the report survives the process.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	_ = c.disk.Clear()
	return nil
}
