// Package metrics wires the metrics bounded context. When Redis is
// configured the summary is cached and invalidated by lead and follow-up
// events; without Redis every request hits the database.
package metrics

import (
	"context"

	"leadtracker_backend/internal/events"
	internalhttp "leadtracker_backend/internal/http"
	"leadtracker_backend/platform/config"
	"leadtracker_backend/platform/logger"

	"leadtracker_backend/internal/metrics/handler"
	"leadtracker_backend/internal/metrics/repository"
	"leadtracker_backend/internal/metrics/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the metrics bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule constructs the metrics module. redisClient may be nil, which
// disables caching.
func NewModule(pool *pgxpool.Pool, bus events.Bus, cfg config.RedisConfig, redisClient *redis.Client, log *logger.Logger) *Module {
	repo := repository.New(pool)

	var cache service.Cache
	if redisClient != nil {
		summaryCache := service.NewSummaryCache(redisClient, cfg.GetMetricsCacheTTL(), log)
		cache = summaryCache
		subscribeInvalidation(bus, summaryCache)
	}

	svc := service.New(repo, cache)
	return &Module{
		handler: handler.New(svc, log),
	}
}

// subscribeInvalidation drops the cached summary on every write that can
// change a count.
func subscribeInvalidation(bus events.Bus, cache *service.SummaryCache) {
	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		cache.Invalidate(ctx)
		return nil
	})

	for _, name := range []string{
		events.LeadCreated{}.EventName(),
		events.LeadUpdated{}.EventName(),
		events.LeadDeleted{}.EventName(),
		events.FollowUpChanged{}.EventName(),
	} {
		bus.Subscribe(name, invalidate)
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "metrics" }

// RegisterRoutes mounts the metrics routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *internalhttp.RouterContext) {
	ctx.Protected.GET("/metrics/summary", m.handler.Summary)
}
