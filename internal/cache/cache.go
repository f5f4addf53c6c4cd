// Package cache provides the JSON caching helper: byte-oriented TTL
// caches (in-memory and Redis) plus a JSON layer that recases cached
// payloads on the way out and recovers from lightly corrupted entries.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/recasehq/recase/internal/config"
)

// Common cache errors.
var (
	// ErrCacheMiss indicates that the key was not found in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheDisabled indicates that caching is disabled.
	ErrCacheDisabled = errors.New("cache disabled")
)

// Cache is the minimal byte-oriented contract shared by all backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given TTL.
	// A TTL of 0 means the entry never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection.
	Close() error
}

// KeyHash returns a stable cache key for any string input.
func KeyHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// New creates a cache backend from the configuration.
func New(cfg config.CacheConfig, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Type {
	case "":
		return newDisabledCache(), nil
	case config.CacheTypeMemory:
		return NewMemory(), nil
	case config.CacheTypeRedis:
		return NewRedis(cfg.RedisURL, cfg.KeyPrefix, logger)
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}

// disabledCache is a cache that always reports a disabled error.
type disabledCache struct{}

func newDisabledCache() Cache {
	return &disabledCache{}
}

func (c *disabledCache) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, ErrCacheDisabled
}

func (c *disabledCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return ErrCacheDisabled
}

func (c *disabledCache) Delete(_ context.Context, _ string) error {
	return ErrCacheDisabled
}

func (c *disabledCache) Close() error {
	return nil
}
