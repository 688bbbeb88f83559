package service

import (
	"context"
	"encoding/json"
	"time"

	"leadtracker_backend/internal/metrics/transport"
	"leadtracker_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "metrics:summary"

// SummaryCache is a Redis-backed read-through cache for the metrics
// summary. Cache failures are logged and treated as misses so the endpoint
// keeps working when Redis is down.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewSummaryCache creates a summary cache with the given TTL.
func NewSummaryCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached summary, or false on miss or error.
func (c *SummaryCache) Get(ctx context.Context) (*transport.SummaryResponse, bool) {
	raw, err := c.client.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil && c.log != nil {
			c.log.Warn("metrics cache read failed", "error", err.Error())
		}
		return nil, false
	}

	var summary transport.SummaryResponse
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

// Set stores the summary with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, summary transport.SummaryResponse) {
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryCacheKey, raw, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("metrics cache write failed", "error", err.Error())
	}
}

// Invalidate drops the cached summary. Lead and follow-up writes call this
// through the event bus.
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, summaryCacheKey).Err(); err != nil && c.log != nil {
		c.log.Warn("metrics cache invalidate failed", "error", err.Error())
	}
}
