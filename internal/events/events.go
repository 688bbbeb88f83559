// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadtracker_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// LeadCreated is published when a new lead is created.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Status string    `json:"status"`
	Source string    `json:"source"`
}

func (e LeadCreated) EventName() string { return "leads.created" }

// LeadUpdated is published when a lead's fields change, including status moves.
type LeadUpdated struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadUpdated) EventName() string { return "leads.updated" }

// LeadDeleted is published when a lead is removed (notes and follow-ups
// cascade with it).
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.deleted" }

// FollowUpChanged is published when a follow-up is created or updated.
type FollowUpChanged struct {
	BaseEvent
	FollowUpID uuid.UUID `json:"followUpId"`
	LeadID     uuid.UUID `json:"leadId"`
}

func (e FollowUpChanged) EventName() string { return "followups.changed" }
