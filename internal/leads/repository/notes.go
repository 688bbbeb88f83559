package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Body      string
	CreatedAt time.Time
}

// CreateNote appends an immutable note to a lead. The caller is expected to
// have checked the lead exists.
func (r *Repository) CreateNote(ctx context.Context, leadID uuid.UUID, body string) (Note, error) {
	var note Note
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notes (lead_id, body)
		VALUES ($1, $2)
		RETURNING id, lead_id, body, created_at
	`, leadID, body).Scan(&note.ID, &note.LeadID, &note.Body, &note.CreatedAt)
	if err != nil {
		return Note{}, err
	}
	return note, nil
}

// ListNotes returns a lead's notes, newest first.
func (r *Repository) ListNotes(ctx context.Context, leadID uuid.UUID) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, body, created_at
		FROM notes
		WHERE lead_id = $1
		ORDER BY created_at DESC, id ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.LeadID, &note.Body, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
