package transport

import (
	"time"

	"github.com/google/uuid"
)

// UpdateFollowUpRequest is a partial update. Note and CompletedAt accept an
// explicit null: null clears the note, and null on completedAt reopens a
// completed follow-up.
type UpdateFollowUpRequest struct {
	DueAt       *time.Time     `json:"dueAt,omitempty" validate:"-"`
	Note        OptionalString `json:"note,omitempty" validate:"-"`
	CompletedAt OptionalTime   `json:"completedAt,omitempty" validate:"-"`
}

type FollowUpResponse struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      uuid.UUID  `json:"leadId"`
	DueAt       time.Time  `json:"dueAt"`
	Note        *string    `json:"note"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}
