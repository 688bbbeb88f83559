package service

import (
	"leadtracker_backend/internal/leads/domain"
	"leadtracker_backend/internal/leads/repository"
	"leadtracker_backend/internal/leads/transport"
)

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:              lead.ID,
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Source:          lead.Source,
		Status:          domain.Status(lead.Status),
		LastContactedAt: lead.LastContactedAt,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
}

func toNoteResponse(note repository.Note) transport.NoteResponse {
	return transport.NoteResponse{
		ID:        note.ID,
		LeadID:    note.LeadID,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
	}
}

func toFollowUpResponse(followUp repository.FollowUp) transport.FollowUpResponse {
	return transport.FollowUpResponse{
		ID:          followUp.ID,
		LeadID:      followUp.LeadID,
		DueAt:       followUp.DueAt,
		Note:        followUp.Note,
		CompletedAt: followUp.CompletedAt,
		CreatedAt:   followUp.CreatedAt,
	}
}
