package service

import (
	"context"

	"leadtracker_backend/internal/events"
	"leadtracker_backend/internal/leads/transport"

	"github.com/google/uuid"
)

// AddFollowUp schedules a follow-up for a lead. Due dates in the past are
// accepted; the follow-up simply starts out overdue.
func (s *Service) AddFollowUp(ctx context.Context, leadID uuid.UUID, req transport.CreateFollowUpRequest) (transport.FollowUpResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return transport.FollowUpResponse{}, err
	}

	followUp, err := s.repo.CreateFollowUp(ctx, leadID, req.DueAt, req.Note)
	if err != nil {
		return transport.FollowUpResponse{}, err
	}

	s.bus.Publish(ctx, events.FollowUpChanged{
		BaseEvent:  events.NewBaseEvent(),
		FollowUpID: followUp.ID,
		LeadID:     leadID,
	})

	return toFollowUpResponse(followUp), nil
}

// ListFollowUps returns a lead's follow-ups ordered by due date ascending.
func (s *Service) ListFollowUps(ctx context.Context, leadID uuid.UUID) ([]transport.FollowUpResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return nil, err
	}

	followUps, err := s.repo.ListFollowUps(ctx, leadID)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.FollowUpResponse, len(followUps))
	for i, followUp := range followUps {
		responses[i] = toFollowUpResponse(followUp)
	}
	return responses, nil
}
