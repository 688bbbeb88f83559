package service

import (
	"context"
	"testing"
	"time"

	"leadtracker_backend/internal/events"
	"leadtracker_backend/internal/followups/repository"
	"leadtracker_backend/internal/followups/transport"
	"leadtracker_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	followUps map[uuid.UUID]repository.FollowUp
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.FollowUp, error) {
	followUp, ok := f.followUps[id]
	if !ok {
		return repository.FollowUp{}, repository.ErrNotFound
	}
	return followUp, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.FollowUp, error) {
	followUp, ok := f.followUps[id]
	if !ok {
		return repository.FollowUp{}, repository.ErrNotFound
	}
	if params.DueAt != nil {
		followUp.DueAt = *params.DueAt
	}
	if params.NoteSet {
		followUp.Note = params.Note
	}
	if params.CompletedAtSet {
		followUp.CompletedAt = params.CompletedAt
	}
	f.followUps[id] = followUp
	return followUp, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func TestUpdateComplete(t *testing.T) {
	id := uuid.New()
	leadID := uuid.New()
	repo := &fakeRepo{followUps: map[uuid.UUID]repository.FollowUp{
		id: {ID: id, LeadID: leadID, DueAt: time.Now().Add(-time.Hour), Note: strPtr("call back")},
	}}
	bus := &recordingBus{}
	svc := New(repo, bus)

	done := time.Now()
	followUp, err := svc.Update(context.Background(), id, transport.UpdateFollowUpRequest{
		CompletedAt: transport.OptionalTime{Value: timePtr(done), Set: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if followUp.CompletedAt == nil || !followUp.CompletedAt.Equal(done) {
		t.Errorf("completedAt = %v, want %v", followUp.CompletedAt, done)
	}
	if followUp.Note == nil || *followUp.Note != "call back" {
		t.Errorf("note changed unexpectedly: %v", followUp.Note)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	changed, ok := bus.published[0].(events.FollowUpChanged)
	if !ok {
		t.Fatalf("published %T, want FollowUpChanged", bus.published[0])
	}
	if changed.LeadID != leadID {
		t.Errorf("event leadID = %v, want %v", changed.LeadID, leadID)
	}
}

func TestUpdateReopen(t *testing.T) {
	id := uuid.New()
	done := time.Now().Add(-time.Hour)
	repo := &fakeRepo{followUps: map[uuid.UUID]repository.FollowUp{
		id: {ID: id, LeadID: uuid.New(), DueAt: time.Now(), CompletedAt: &done},
	}}
	svc := New(repo, &recordingBus{})

	followUp, err := svc.Update(context.Background(), id, transport.UpdateFollowUpRequest{
		CompletedAt: transport.OptionalTime{Set: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if followUp.CompletedAt != nil {
		t.Errorf("completedAt = %v, want nil after reopen", *followUp.CompletedAt)
	}
}

func TestUpdateClearNote(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{followUps: map[uuid.UUID]repository.FollowUp{
		id: {ID: id, LeadID: uuid.New(), DueAt: time.Now(), Note: strPtr("old note")},
	}}
	svc := New(repo, &recordingBus{})

	followUp, err := svc.Update(context.Background(), id, transport.UpdateFollowUpRequest{
		Note: transport.OptionalString{Set: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if followUp.Note != nil {
		t.Errorf("note = %q, want cleared", *followUp.Note)
	}
}

func TestUpdateAbsentFieldsUntouched(t *testing.T) {
	id := uuid.New()
	due := time.Now().Add(24 * time.Hour)
	repo := &fakeRepo{followUps: map[uuid.UUID]repository.FollowUp{
		id: {ID: id, LeadID: uuid.New(), DueAt: due, Note: strPtr("keep me")},
	}}
	svc := New(repo, &recordingBus{})

	newDue := due.Add(48 * time.Hour)
	followUp, err := svc.Update(context.Background(), id, transport.UpdateFollowUpRequest{
		DueAt: &newDue,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !followUp.DueAt.Equal(newDue) {
		t.Errorf("dueAt = %v, want %v", followUp.DueAt, newDue)
	}
	if followUp.Note == nil || *followUp.Note != "keep me" {
		t.Errorf("note = %v, want untouched", followUp.Note)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := New(&fakeRepo{followUps: map[uuid.UUID]repository.FollowUp{}}, &recordingBus{})

	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateFollowUpRequest{})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
