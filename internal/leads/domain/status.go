// Package domain holds the pure business rules of the leads bounded context.
package domain

import "time"

// Status is the lead pipeline stage.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusConverted Status = "CONVERTED"
)

// Valid reports whether s is one of the three pipeline stages.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted:
		return true
	}
	return false
}

// TransitionStamp computes the lastContactedAt side effect of a status
// change, to be applied atomically with the status write. A nil return
// means no timestamp change.
//
// Rules:
//   - no requested status, or requested equals current: no side effect
//   - NEW → CONTACTED: stamp now
//   - any → CONVERTED while lastContactedAt is unset: stamp now
//   - everything else (including moves back to NEW): untouched
//
// The policy fires only on update; creation never stamps, even when the
// caller sets an initial status other than NEW.
func TransitionStamp(current Status, lastContactedAt *time.Time, requested *Status, now time.Time) *time.Time {
	if requested == nil || *requested == current {
		return nil
	}

	if *requested == StatusContacted && current == StatusNew {
		return &now
	}

	if *requested == StatusConverted && lastContactedAt == nil {
		return &now
	}

	return nil
}
