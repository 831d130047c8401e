package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/mkulimalink/internal/domain"
)

const produceListKey = "produce:list"

// ProduceCache is a read-through cache for the full marketplace listing.
// All methods are best-effort: cache failures are logged and the caller
// falls back to Postgres.
type ProduceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewProduceCache builds the cache. A nil client yields a disabled cache.
func NewProduceCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProduceCache {
	return &ProduceCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached listing, or (nil, false) on miss or error.
func (c *ProduceCache) Get(ctx context.Context) ([]domain.ProduceListing, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, produceListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("produce cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var listings []domain.ProduceListing
	if err := json.Unmarshal(raw, &listings); err != nil {
		c.logger.Warn("produce cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return listings, true
}

// Set stores the listing with the configured TTL.
func (c *ProduceCache) Set(ctx context.Context, listings []domain.ProduceListing) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(listings)
	if err != nil {
		c.logger.Warn("produce cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, produceListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("produce cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after a write.
func (c *ProduceCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, produceListKey).Err(); err != nil {
		c.logger.Warn("produce cache invalidate failed", zap.Error(err))
	}
}
