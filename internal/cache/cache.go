package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
}

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = fmt.Errorf("cache miss")

// BrowserKey builds the cache key for a data-browser query against one
// source. The query string is hashed so arbitrary parameter contents cannot
// produce unbounded or pattern-colliding keys.
func BrowserKey(sourceID, level, query string) string {
	sum := sha256.Sum256([]byte(query))
	return "browser:" + sourceID + ":" + level + ":" + hex.EncodeToString(sum[:8])
}

// SourcePattern matches every cached browser entry for one source, for
// invalidation when the source configuration changes.
func SourcePattern(sourceID string) string {
	return "browser:" + sourceID + ":*"
}
