// Package cache stores computed layout results keyed by a hash of the
// request that produced them.
//
// Three backends implement Cache:
//   - NullCache: never stores anything, used when caching is disabled
//   - MemoryCache: in-process map with expiry, the default for a single server
//   - RedisCache: shared store for several server instances
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/piwi3910/floorplan/internal/model"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key returns prefix:sha256(body) in hex.
func Key(prefix string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// New picks a backend from the server config: Redis when a URL is set,
// otherwise memory, or nothing when the TTL is negative.
func New(cfg model.ServerConfig) (Cache, error) {
	switch {
	case cfg.CacheTTLSeconds < 0:
		return NewNullCache(), nil
	case cfg.RedisURL != "":
		return NewRedisCache(cfg.RedisURL)
	default:
		return NewMemoryCache(), nil
	}
}

// TTL converts the configured seconds to a duration. Negative values give
// zero.
func TTL(cfg model.ServerConfig) time.Duration {
	if cfg.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.CacheTTLSeconds) * time.Second
}
