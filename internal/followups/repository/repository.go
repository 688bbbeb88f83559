// Package repository provides pgx-backed data access for follow-ups
// addressed by their own ID rather than through a lead.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("follow-up not found")

const followUpColumns = `id, lead_id, due_at, note, completed_at, created_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type FollowUp struct {
	ID          uuid.UUID
	LeadID      uuid.UUID
	DueAt       time.Time
	Note        *string
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// UpdateParams carries a partial update. The Set flags distinguish "leave
// unchanged" from "write this value, including NULL".
type UpdateParams struct {
	DueAt          *time.Time
	Note           *string
	NoteSet        bool
	CompletedAt    *time.Time
	CompletedAtSet bool
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (FollowUp, error) {
	var followUp FollowUp
	err := r.pool.QueryRow(ctx, `
		SELECT `+followUpColumns+` FROM follow_ups WHERE id = $1
	`, id).Scan(
		&followUp.ID, &followUp.LeadID, &followUp.DueAt,
		&followUp.Note, &followUp.CompletedAt, &followUp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FollowUp{}, ErrNotFound
		}
		return FollowUp{}, err
	}
	return followUp, nil
}

// Update applies the partial update and returns the new row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (FollowUp, error) {
	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.DueAt != nil {
		addSet("due_at", *params.DueAt)
	}
	if params.NoteSet {
		addSet("note", params.Note)
	}
	if params.CompletedAtSet {
		addSet("completed_at", params.CompletedAt)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE follow_ups SET %s WHERE id = $%d
		RETURNING `+followUpColumns,
		strings.Join(sets, ", "), len(args))

	var followUp FollowUp
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&followUp.ID, &followUp.LeadID, &followUp.DueAt,
		&followUp.Note, &followUp.CompletedAt, &followUp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FollowUp{}, ErrNotFound
		}
		return FollowUp{}, err
	}
	return followUp, nil
}
