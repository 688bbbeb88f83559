// Package service contains the follow-up update business logic: marking
// complete, reopening, rescheduling, and note edits.
package service

import (
	"context"
	"errors"

	"leadtracker_backend/internal/events"
	"leadtracker_backend/internal/followups/repository"
	"leadtracker_backend/internal/followups/transport"
	"leadtracker_backend/platform/apperr"

	"github.com/google/uuid"
)

const msgFollowUpNotFound = "Follow-up not found"

// Repository defines the data access interface needed by the follow-ups service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.FollowUp, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.FollowUp, error)
}

// Service handles follow-up updates.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new follow-ups service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Update applies a partial update to a follow-up. Completion is idempotent:
// writing completedAt on an already-completed follow-up just overwrites the
// timestamp, and writing null reopens it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateFollowUpRequest) (transport.FollowUpResponse, error) {
	if req.Note.Set && req.Note.Value != nil && len(*req.Note.Value) > 2000 {
		return transport.FollowUpResponse{}, apperr.Validation("Note must be at most 2000 characters")
	}

	params := repository.UpdateParams{
		DueAt:          req.DueAt,
		Note:           req.Note.Value,
		NoteSet:        req.Note.Set,
		CompletedAt:    req.CompletedAt.Value,
		CompletedAtSet: req.CompletedAt.Set,
	}

	followUp, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.FollowUpResponse{}, apperr.NotFound(msgFollowUpNotFound)
		}
		return transport.FollowUpResponse{}, err
	}

	s.bus.Publish(ctx, events.FollowUpChanged{
		BaseEvent:  events.NewBaseEvent(),
		FollowUpID: followUp.ID,
		LeadID:     followUp.LeadID,
	})

	return toResponse(followUp), nil
}

func toResponse(followUp repository.FollowUp) transport.FollowUpResponse {
	return transport.FollowUpResponse{
		ID:          followUp.ID,
		LeadID:      followUp.LeadID,
		DueAt:       followUp.DueAt,
		Note:        followUp.Note,
		CompletedAt: followUp.CompletedAt,
		CreatedAt:   followUp.CreatedAt,
	}
}
