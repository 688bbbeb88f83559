// Package service contains the lead lifecycle business logic: CRUD with
// status-transition side effects, the listing/sort engine, and the
// read-time follow-up annotations.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"leadtracker_backend/internal/events"
	"leadtracker_backend/internal/leads/domain"
	"leadtracker_backend/internal/leads/repository"
	"leadtracker_backend/internal/leads/transport"
	"leadtracker_backend/platform/apperr"
	"leadtracker_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	msgLeadNotFound = "Lead not found"
)

// Repository defines the data access interface needed by the leads service.
// This is a consumer-driven interface - only what the service needs.
type Repository interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params repository.ListParams) ([]repository.Lead, int, error)
	CountsByLead(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.Counts, error)
	NextPendingByLead(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.FollowUp, error)

	CreateNote(ctx context.Context, leadID uuid.UUID, body string) (repository.Note, error)
	ListNotes(ctx context.Context, leadID uuid.UUID) ([]repository.Note, error)

	CreateFollowUp(ctx context.Context, leadID uuid.UUID, dueAt time.Time, note *string) (repository.FollowUp, error)
	ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]repository.FollowUp, error)
}

// Service handles lead management operations.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new leads service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create creates a new lead. Status defaults to NEW and the transition
// policy never stamps lastContactedAt at creation time, even when the
// caller sets an initial status.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	status := domain.StatusNew
	if req.Status != nil {
		status = *req.Status
	}
	if !status.Valid() {
		return transport.LeadResponse{}, apperr.Validation("Invalid status")
	}

	source := transport.DefaultSource
	if req.Source != nil {
		source = *req.Source
	}

	params := repository.CreateLeadParams{
		Name:   req.Name,
		Email:  req.Email,
		Source: source,
		Status: string(status),
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Status:    lead.Status,
		Source:    lead.Source,
	})

	return toLeadResponse(lead), nil
}

// GetByID retrieves a lead with all its notes (newest first) and all its
// follow-ups (soonest due first).
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadDetailResponse{}, apperr.NotFound(msgLeadNotFound)
		}
		return transport.LeadDetailResponse{}, err
	}

	notes, err := s.repo.ListNotes(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	followUps, err := s.repo.ListFollowUps(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}

	detail := transport.LeadDetailResponse{
		LeadResponse: toLeadResponse(lead),
		Notes:        make([]transport.NoteResponse, len(notes)),
		FollowUps:    make([]transport.FollowUpResponse, len(followUps)),
	}
	for i, note := range notes {
		detail.Notes[i] = toNoteResponse(note)
	}
	for i, followUp := range followUps {
		detail.FollowUps[i] = toFollowUpResponse(followUp)
	}
	return detail, nil
}

// Update applies a partial update to a lead. Status changes run through the
// transition policy so lastContactedAt is stamped atomically with the
// status write. The existence read and the update are two store operations;
// a concurrent delete in between surfaces as NotFound from the update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound(msgLeadNotFound)
		}
		return transport.LeadResponse{}, err
	}

	params := repository.UpdateLeadParams{
		Name:   req.Name,
		Email:  req.Email,
		Source: req.Source,
	}

	if req.Phone.Set {
		params.PhoneSet = true
		if req.Phone.Value != nil {
			if len(*req.Phone.Value) > 30 {
				return transport.LeadResponse{}, apperr.Validation("Phone must be at most 30 characters")
			}
			normalized := phone.NormalizeE164(*req.Phone.Value)
			params.Phone = &normalized
		}
	}

	if req.Status != nil {
		status := string(*req.Status)
		params.Status = &status
		params.LastContactedAt = domain.TransitionStamp(
			domain.Status(existing.Status), existing.LastContactedAt, req.Status, time.Now())
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound(msgLeadNotFound)
		}
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: existing.Status,
		NewStatus: lead.Status,
	})

	return toLeadResponse(lead), nil
}

// Delete removes a lead; its notes and follow-ups cascade with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgLeadNotFound)
		}
		return err
	}

	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}

// List retrieves a filtered, paginated page of leads, each annotated with
// its next pending follow-up and note/follow-up counts.
//
// The nextFollowUp sort mode reorders only the fetched page: the store
// cannot order by a derived per-lead value, so the page is fetched in the
// newest fallback order and stably re-sorted in memory by next pending due
// date, leads without one last. Ordering across pages is approximate by
// design.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}
	if req.Sort == "" {
		req.Sort = transport.SortNewest
	}

	params := repository.ListParams{
		Search: req.Search,
		Source: req.Source,
		Sort:   req.Sort,
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
	}
	if req.Status != nil {
		status := string(*req.Status)
		params.Status = &status
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	ids := make([]uuid.UUID, len(leads))
	for i, lead := range leads {
		ids[i] = lead.ID
	}

	counts, err := s.repo.CountsByLead(ctx, ids)
	if err != nil {
		return transport.LeadListResponse{}, err
	}
	nextByLead, err := s.repo.NextPendingByLead(ctx, ids)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadListItem, len(leads))
	for i, lead := range leads {
		item := transport.LeadListItem{
			LeadResponse: toLeadResponse(lead),
			Counts: transport.LeadCounts{
				Notes:     counts[lead.ID].Notes,
				FollowUps: counts[lead.ID].FollowUps,
			},
		}
		if next, ok := nextByLead[lead.ID]; ok {
			response := toFollowUpResponse(next)
			item.NextFollowUp = &response
		}
		items[i] = item
	}

	if req.Sort == transport.SortNextFollowUp {
		sort.SliceStable(items, func(a, b int) bool {
			left, right := items[a].NextFollowUp, items[b].NextFollowUp
			if left == nil {
				return false
			}
			if right == nil {
				return true
			}
			return left.DueAt.Before(right.DueAt)
		})
	}

	return transport.LeadListResponse{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
	}, nil
}
