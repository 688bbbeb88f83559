package transport

import (
	"time"

	"leadtracker_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// DefaultSource is applied when a lead is created without a source.
const DefaultSource = "Website Contact Form"

// Sort modes for lead listings.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortStatus       = "status"
	SortNextFollowUp = "nextFollowUp"
)

// Request DTOs

type CreateLeadRequest struct {
	Name   string         `json:"name" validate:"required,min=1,max=200"`
	Email  string         `json:"email" validate:"required,email"`
	Phone  *string        `json:"phone,omitempty" validate:"omitempty,max=30"`
	Source *string        `json:"source,omitempty" validate:"omitempty,max=100"`
	Status *domain.Status `json:"status,omitempty" validate:"omitempty,oneof=NEW CONTACTED CONVERTED"`
}

type UpdateLeadRequest struct {
	Name   *string        `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email  *string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone  OptionalString `json:"phone,omitempty" validate:"-"`
	Source *string        `json:"source,omitempty" validate:"omitempty,max=100"`
	Status *domain.Status `json:"status,omitempty" validate:"omitempty,oneof=NEW CONTACTED CONVERTED"`
}

type ListLeadsRequest struct {
	Search   string         `form:"search"`
	Status   *domain.Status `form:"status" validate:"omitempty,oneof=NEW CONTACTED CONVERTED"`
	Source   *string        `form:"source"`
	Page     int            `form:"page" validate:"omitempty,min=1"`
	PageSize int            `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Sort     string         `form:"sort" validate:"omitempty,oneof=newest oldest status nextFollowUp"`
}

type CreateNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

type CreateFollowUpRequest struct {
	DueAt time.Time `json:"dueAt" validate:"required"`
	Note  *string   `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// Response DTOs

type LeadResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           *string       `json:"phone"`
	Source          string        `json:"source"`
	Status          domain.Status `json:"status"`
	LastContactedAt *time.Time    `json:"lastContactedAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type FollowUpResponse struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      uuid.UUID  `json:"leadId"`
	DueAt       time.Time  `json:"dueAt"`
	Note        *string    `json:"note"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LeadCounts is the `_count` annotation on list items. The field name is
// part of the API contract.
type LeadCounts struct {
	Notes     int `json:"notes"`
	FollowUps int `json:"followUps"`
}

type LeadListItem struct {
	LeadResponse
	NextFollowUp *FollowUpResponse `json:"nextFollowUp"`
	Counts       LeadCounts        `json:"_count"`
}

type LeadListResponse struct {
	Items      []LeadListItem `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

type LeadDetailResponse struct {
	LeadResponse
	Notes     []NoteResponse     `json:"notes"`
	FollowUps []FollowUpResponse `json:"followUps"`
}
