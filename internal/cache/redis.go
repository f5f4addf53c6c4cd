package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is a Redis-backed cache.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedis creates a Redis-backed cache from a standard URL
// (e.g. redis://localhost:6379/0). The connection is verified with a
// short ping so misconfiguration fails at startup, not on first use.
func NewRedis(url, keyPrefix string, logger *zap.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("connected to redis cache", zap.String("addr", opt.Addr), zap.String("key_prefix", keyPrefix))

	return &RedisCache{client: client, keyPrefix: keyPrefix, logger: logger}, nil
}

// NewRedisWithClient wraps an existing client; used by tests running
// against miniredis.
func NewRedisWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, keyPrefix: keyPrefix, logger: logger}
}

func (r *RedisCache) key(k string) string {
	return r.keyPrefix + k
}

// Get retrieves a value, mapping redis.Nil onto ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores a value with the given TTL (0 means no expiry).
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// Delete removes a key.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
