package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FollowUp struct {
	ID          uuid.UUID
	LeadID      uuid.UUID
	DueAt       time.Time
	Note        *string
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// CreateFollowUp schedules a new pending follow-up under a lead. The caller
// is expected to have checked the lead exists.
func (r *Repository) CreateFollowUp(ctx context.Context, leadID uuid.UUID, dueAt time.Time, note *string) (FollowUp, error) {
	var followUp FollowUp
	err := r.pool.QueryRow(ctx, `
		INSERT INTO follow_ups (lead_id, due_at, note)
		VALUES ($1, $2, $3)
		RETURNING id, lead_id, due_at, note, completed_at, created_at
	`, leadID, dueAt, note).Scan(
		&followUp.ID, &followUp.LeadID, &followUp.DueAt,
		&followUp.Note, &followUp.CompletedAt, &followUp.CreatedAt,
	)
	if err != nil {
		return FollowUp{}, err
	}
	return followUp, nil
}

// ListFollowUps returns all of a lead's follow-ups, pending and completed,
// soonest due first.
func (r *Repository) ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]FollowUp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, due_at, note, completed_at, created_at
		FROM follow_ups
		WHERE lead_id = $1
		ORDER BY due_at ASC, id ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := make([]FollowUp, 0)
	for rows.Next() {
		var followUp FollowUp
		if err := rows.Scan(
			&followUp.ID, &followUp.LeadID, &followUp.DueAt,
			&followUp.Note, &followUp.CompletedAt, &followUp.CreatedAt,
		); err != nil {
			return nil, err
		}
		followUps = append(followUps, followUp)
	}
	return followUps, rows.Err()
}

// NextPendingByLead returns, for each given lead, its pending follow-up with
// the earliest due date. Ties on due_at break on id so the pick is stable.
// Pending state is derived from completed_at at query time; it is never a
// stored flag.
func (r *Repository) NextPendingByLead(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]FollowUp, error) {
	result := make(map[uuid.UUID]FollowUp, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (lead_id) id, lead_id, due_at, note, completed_at, created_at
		FROM follow_ups
		WHERE lead_id = ANY($1) AND completed_at IS NULL
		ORDER BY lead_id, due_at ASC, id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var followUp FollowUp
		if err := rows.Scan(
			&followUp.ID, &followUp.LeadID, &followUp.DueAt,
			&followUp.Note, &followUp.CompletedAt, &followUp.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[followUp.LeadID] = followUp
	}
	return result, rows.Err()
}
