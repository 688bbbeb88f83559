// Package repository provides the aggregate count queries behind the
// metrics summary.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CountLeads(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

func (r *Repository) CountLeadsByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE status = $1`, status).Scan(&count)
	return count, err
}

// CountPendingFollowUpsBefore counts pending follow-ups due strictly before t.
func (r *Repository) CountPendingFollowUpsBefore(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM follow_ups
		WHERE completed_at IS NULL AND due_at < $1
	`, t).Scan(&count)
	return count, err
}

// CountPendingFollowUpsBetween counts pending follow-ups due in [from, to).
func (r *Repository) CountPendingFollowUpsBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM follow_ups
		WHERE completed_at IS NULL AND due_at >= $1 AND due_at < $2
	`, from, to).Scan(&count)
	return count, err
}
