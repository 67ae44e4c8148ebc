package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskCache persists check reports across runs so a re-check of an unchanged
// course folder skips extraction and license resolution entirely.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: ttl}
}

// diskEntry wraps a report with its expiry so stale files can be dropped on
// read without a separate sweep process.
type diskEntry struct {
	Report    []byte    `json:"report"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *DiskCache) Get(key string) ([]byte, bool) {
	path := c.fileFor(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A truncated or hand-edited file is unrecoverable; drop it.
		_ = os.Remove(path)
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Report, true
}

func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(diskEntry{
		Report:    value,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.fileFor(key), data, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.fileFor(key))
}

func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// fileFor maps a cache key to a file name. Report keys carry a namespace
// prefix separated by colons; only the trailing hash is filesystem safe, so
// the prefix is stripped.
func (c *DiskCache) fileFor(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	return filepath.Join(c.dir, key+".json")
}
