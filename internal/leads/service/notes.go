package service

import (
	"context"
	"errors"

	"leadtracker_backend/internal/leads/repository"
	"leadtracker_backend/internal/leads/transport"
	"leadtracker_backend/platform/apperr"

	"github.com/google/uuid"
)

// AddNote appends a note to a lead.
func (s *Service) AddNote(ctx context.Context, leadID uuid.UUID, req transport.CreateNoteRequest) (transport.NoteResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return transport.NoteResponse{}, err
	}

	note, err := s.repo.CreateNote(ctx, leadID, req.Body)
	if err != nil {
		return transport.NoteResponse{}, err
	}
	return toNoteResponse(note), nil
}

// ListNotes returns a lead's notes, newest first.
func (s *Service) ListNotes(ctx context.Context, leadID uuid.UUID) ([]transport.NoteResponse, error) {
	if err := s.ensureLeadExists(ctx, leadID); err != nil {
		return nil, err
	}

	notes, err := s.repo.ListNotes(ctx, leadID)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(note)
	}
	return responses, nil
}

func (s *Service) ensureLeadExists(ctx context.Context, leadID uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgLeadNotFound)
		}
		return err
	}
	if !exists {
		return apperr.NotFound(msgLeadNotFound)
	}
	return nil
}
