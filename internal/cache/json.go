package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/recasehq/recase/internal/models"
	"github.com/recasehq/recase/recase"
)

// JSONCache layers JSON encoding and key recasing over a byte cache.
// Entries are stored in their persisted (snake_case) shape; readers ask
// for the shape their layer speaks.
type JSONCache struct {
	backend Cache
	mapper  *recase.Mapper
	ttl     time.Duration
	logger  *zap.Logger
}

// NewJSON creates a JSONCache over backend. A nil mapper falls back to
// the default vocabulary; a nil logger is replaced with a no-op.
func NewJSON(backend Cache, mapper *recase.Mapper, ttl time.Duration, logger *zap.Logger) *JSONCache {
	if mapper == nil {
		m, err := recase.New()
		if err != nil {
			panic(err) // built-in vocabulary is always a valid bijection
		}
		mapper = m
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONCache{backend: backend, mapper: mapper, ttl: ttl, logger: logger}
}

// SetJSON recases v into its snake_case persisted shape, marshals it,
// and stores it under key.
func (j *JSONCache) SetJSON(ctx context.Context, key string, v models.JSONValue) error {
	stored, err := j.mapper.DBQuery(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return j.backend.Set(ctx, key, data, j.ttl)
}

// GetSnake returns the cached value in its stored snake_case shape.
func (j *JSONCache) GetSnake(ctx context.Context, key string) (models.JSONValue, error) {
	return j.get(ctx, key, false)
}

// GetCamel returns the cached value recased for an API response.
func (j *JSONCache) GetCamel(ctx context.Context, key string) (models.JSONValue, error) {
	return j.get(ctx, key, true)
}

func (j *JSONCache) get(ctx context.Context, key string, camel bool) (models.JSONValue, error) {
	data, err := j.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	v, ok := decodeWithRecovery(data)
	if !ok {
		// A corrupted entry is unrecoverable; evict it and report a
		// miss so the caller repopulates.
		j.logger.Warn("evicting unparseable cache entry", zap.String("key", key), zap.Int("bytes", len(data)))
		_ = j.backend.Delete(ctx, key)
		return nil, ErrCacheMiss
	}

	if !camel {
		return v, nil
	}
	return j.mapper.APIResponse(v)
}

// decodeWithRecovery parses cached JSON text, tolerating the corruption
// modes seen in practice: a UTF-8 BOM, NUL padding from fixed-size
// buffers, and trailing garbage after the first complete value. It
// reports ok=false only when no leading JSON value can be decoded.
func decodeWithRecovery(data []byte) (models.JSONValue, bool) {
	cleaned := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned = bytes.Trim(cleaned, "\x00")
	cleaned = bytes.TrimFunc(cleaned, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(cleaned) == 0 {
		return nil, false
	}

	decoder := json.NewDecoder(strings.NewReader(string(cleaned)))
	decoder.UseNumber()

	var v models.JSONValue
	if err := decoder.Decode(&v); err != nil {
		return nil, false
	}
	// Anything after the first value is ignored; the leading value is
	// the entry.
	return v, true
}
