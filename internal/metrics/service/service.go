// Package service computes the dashboard metrics summary.
package service

import (
	"context"
	"math"
	"time"

	"leadtracker_backend/internal/leads/domain"
	"leadtracker_backend/internal/metrics/transport"

	"golang.org/x/sync/errgroup"
)

// Repository defines the count queries needed by the metrics service.
type Repository interface {
	CountLeads(ctx context.Context) (int, error)
	CountLeadsByStatus(ctx context.Context, status string) (int, error)
	CountPendingFollowUpsBefore(ctx context.Context, t time.Time) (int, error)
	CountPendingFollowUpsBetween(ctx context.Context, from, to time.Time) (int, error)
}

// Cache is an optional read-through cache for the summary.
type Cache interface {
	Get(ctx context.Context) (*transport.SummaryResponse, bool)
	Set(ctx context.Context, summary transport.SummaryResponse)
}

// Service handles metrics aggregation.
type Service struct {
	repo  Repository
	cache Cache // nil when caching is disabled
	now   func() time.Time
}

// New creates a new metrics service. cache may be nil.
func New(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Summary computes the dashboard counts. The six count queries run
// concurrently; the first failure cancels the rest.
func (s *Service) Summary(ctx context.Context) (transport.SummaryResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return *cached, nil
		}
	}

	startOfDay, endOfDay := dayWindow(s.now())

	var summary transport.SummaryResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalLeads, err = s.repo.CountLeads(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.NewLeads, err = s.repo.CountLeadsByStatus(gctx, string(domain.StatusNew))
		return
	})
	g.Go(func() (err error) {
		summary.ContactedLeads, err = s.repo.CountLeadsByStatus(gctx, string(domain.StatusContacted))
		return
	})
	g.Go(func() (err error) {
		summary.ConvertedLeads, err = s.repo.CountLeadsByStatus(gctx, string(domain.StatusConverted))
		return
	})
	g.Go(func() (err error) {
		summary.OverdueFollowUpsCount, err = s.repo.CountPendingFollowUpsBefore(gctx, startOfDay)
		return
	})
	g.Go(func() (err error) {
		summary.FollowUpsDueTodayCount, err = s.repo.CountPendingFollowUpsBetween(gctx, startOfDay, endOfDay)
		return
	})
	if err := g.Wait(); err != nil {
		return transport.SummaryResponse{}, err
	}

	summary.ConversionRate = conversionRate(summary.ConvertedLeads, summary.TotalLeads)

	if s.cache != nil {
		s.cache.Set(ctx, summary)
	}
	return summary, nil
}

// conversionRate is the converted share as a whole percentage, rounded half
// away from zero. Zero leads means a zero rate, not a division error.
func conversionRate(converted, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(converted) / float64(total) * 100))
}

// dayWindow returns [start of today, start of tomorrow) in now's location.
// "Today" is the server's local day; overdue means due before it started.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
