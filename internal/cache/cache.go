package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/clearuse/clearuse/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey builds a cache key for a check result. The key hashes the file
// CONTENT rather than its path, so a renamed copy hits the same entry, and
// folds in the usage context because the verdict depends on it.
func ReportKey(path string, usage model.UsageContext) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	fmt.Fprintf(h, "|%s|%s", usage.Course, usage.Institution)

	return "clearuse:v1:" + hex.EncodeToString(h.Sum(nil)), nil
}
