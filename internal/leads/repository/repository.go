// Package repository provides pgx-backed data access for the leads
// bounded context.
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

var ErrNotFound = errors.New("lead not found")

const leadColumns = `id, name, email, phone, source, status, last_contacted_at, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           *string
	Source          string
	Status          string
	LastContactedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateLeadParams struct {
	Name   string
	Email  string
	Phone  *string
	Source string
	Status string
}

type UpdateLeadParams struct {
	Name            *string
	Email           *string
	Phone           *string
	PhoneSet        bool
	Source          *string
	Status          *string
	LastContactedAt *time.Time
}

type ListParams struct {
	Search string
	Status *string
	Source *string
	Sort   string // newest | oldest | status | nextFollowUp
	Offset int
	Limit  int
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, source, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+leadColumns+`
	`, params.Name, params.Email, params.Phone, params.Source, params.Status).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source,
		&lead.Status, &lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source,
		&lead.Status, &lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// Exists is the lead-scoped existence check used before creating dependent
// records. It is a separate read, not a lock; see the service layer for the
// documented check-then-write race.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	fields := []struct {
		enabled bool
		column  string
		value   interface{}
	}{
		{params.Name != nil, "name", derefString(params.Name)},
		{params.Email != nil, "email", derefString(params.Email)},
		{params.PhoneSet, "phone", params.Phone},
		{params.Source != nil, "source", derefString(params.Source)},
		{params.Status != nil, "status", derefString(params.Status)},
		{params.LastContactedAt != nil, "last_contacted_at", params.LastContactedAt},
	}

	for _, field := range fields {
		if !field.enabled {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field.column, argIdx))
		args = append(args, field.value)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d
		RETURNING `+leadColumns+`
	`, strings.Join(setClauses, ", "), argIdx)

	var lead Lead
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source,
		&lead.Status, &lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// Delete removes the lead; notes and follow-ups cascade at the store level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of leads matching the filter plus the total count
// over the filter. The store-level order for the nextFollowUp sort mode is
// the newest fallback; the service reorders the fetched page in memory.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		pattern := "%" + escapeLike(params.Search) + "%"
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, pattern)
		argIdx++
	}
	if params.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Source != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, *params.Source)
		argIdx++
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+leadColumns+`
		FROM leads
		%s
		ORDER BY %s
		OFFSET $%d LIMIT $%d
	`, whereSQL, orderBy(params.Sort), argIdx, argIdx+1)
	args = append(args, params.Offset, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source,
			&lead.Status, &lead.LastContactedAt, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

// Counts is the per-lead notes/follow-ups tally attached to list items.
type Counts struct {
	Notes     int
	FollowUps int
}

// CountsByLead returns note and follow-up counts for the given leads in one
// round trip. Leads without children are present with zero counts.
func (r *Repository) CountsByLead(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Counts, error) {
	result := make(map[uuid.UUID]Counts, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT l.id,
			(SELECT COUNT(*) FROM notes n WHERE n.lead_id = l.id),
			(SELECT COUNT(*) FROM follow_ups f WHERE f.lead_id = l.id)
		FROM leads l
		WHERE l.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var counts Counts
		if err := rows.Scan(&id, &counts.Notes, &counts.FollowUps); err != nil {
			return nil, err
		}
		result[id] = counts
	}
	return result, rows.Err()
}

// orderBy maps a sort mode to a deterministic store-level ORDER BY.
// The status sort is alphabetical on the stored string (CONTACTED <
// CONVERTED < NEW), not lifecycle order. Clients depend on this order;
// do not change it to a CASE ranking.
func orderBy(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC, id ASC"
	case "status":
		return "status ASC, created_at DESC, id ASC"
	default: // newest; also the fallback order for nextFollowUp
		return "created_at DESC, id ASC"
	}
}

// escapeLike escapes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
