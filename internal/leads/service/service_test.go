package service

import (
	"context"
	"testing"
	"time"

	"leadtracker_backend/internal/events"
	"leadtracker_backend/internal/leads/domain"
	"leadtracker_backend/internal/leads/repository"
	"leadtracker_backend/internal/leads/transport"
	"leadtracker_backend/platform/apperr"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	leads     map[uuid.UUID]repository.Lead
	notes     map[uuid.UUID][]repository.Note
	followUps map[uuid.UUID][]repository.FollowUp

	listResult []repository.Lead
	listTotal  int
	listParams repository.ListParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leads:     make(map[uuid.UUID]repository.Lead),
		notes:     make(map[uuid.UUID][]repository.Note),
		followUps: make(map[uuid.UUID][]repository.FollowUp),
	}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	now := time.Now()
	lead := repository.Lead{
		ID:        uuid.New(),
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Source:    params.Source,
		Status:    params.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.leads[id]
	return ok, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	if params.Name != nil {
		lead.Name = *params.Name
	}
	if params.Email != nil {
		lead.Email = *params.Email
	}
	if params.PhoneSet {
		lead.Phone = params.Phone
	}
	if params.Source != nil {
		lead.Source = *params.Source
	}
	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.LastContactedAt != nil {
		lead.LastContactedAt = params.LastContactedAt
	}
	lead.UpdatedAt = time.Now()
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.leads[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Lead, int, error) {
	f.listParams = params
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepo) CountsByLead(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.Counts, error) {
	counts := make(map[uuid.UUID]repository.Counts, len(ids))
	for _, id := range ids {
		counts[id] = repository.Counts{
			Notes:     len(f.notes[id]),
			FollowUps: len(f.followUps[id]),
		}
	}
	return counts, nil
}

func (f *fakeRepo) NextPendingByLead(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]repository.FollowUp, error) {
	next := make(map[uuid.UUID]repository.FollowUp)
	for _, id := range ids {
		for _, followUp := range f.followUps[id] {
			if followUp.CompletedAt != nil {
				continue
			}
			current, ok := next[id]
			if !ok || followUp.DueAt.Before(current.DueAt) {
				next[id] = followUp
			}
		}
	}
	return next, nil
}

func (f *fakeRepo) CreateNote(_ context.Context, leadID uuid.UUID, body string) (repository.Note, error) {
	note := repository.Note{ID: uuid.New(), LeadID: leadID, Body: body, CreatedAt: time.Now()}
	f.notes[leadID] = append(f.notes[leadID], note)
	return note, nil
}

func (f *fakeRepo) ListNotes(_ context.Context, leadID uuid.UUID) ([]repository.Note, error) {
	return f.notes[leadID], nil
}

func (f *fakeRepo) CreateFollowUp(_ context.Context, leadID uuid.UUID, dueAt time.Time, note *string) (repository.FollowUp, error) {
	followUp := repository.FollowUp{ID: uuid.New(), LeadID: leadID, DueAt: dueAt, Note: note, CreatedAt: time.Now()}
	f.followUps[leadID] = append(f.followUps[leadID], followUp)
	return followUp, nil
}

func (f *fakeRepo) ListFollowUps(_ context.Context, leadID uuid.UUID) ([]repository.FollowUp, error) {
	return f.followUps[leadID], nil
}

// recordingBus captures published events for assertions.
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

func newTestService() (*Service, *fakeRepo, *recordingBus) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	return New(repo, bus), repo, bus
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestCreateDefaults(t *testing.T) {
	svc, _, bus := newTestService()

	lead, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:  "Jane Smith",
		Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if lead.Status != domain.StatusNew {
		t.Errorf("status = %q, want %q", lead.Status, domain.StatusNew)
	}
	if lead.Source != transport.DefaultSource {
		t.Errorf("source = %q, want %q", lead.Source, transport.DefaultSource)
	}
	if lead.Phone != nil {
		t.Errorf("phone = %v, want nil", *lead.Phone)
	}
	if lead.LastContactedAt != nil {
		t.Error("lastContactedAt should not be stamped at creation")
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.LeadCreated); !ok {
		t.Errorf("published %T, want LeadCreated", bus.published[0])
	}
}

func TestCreateWithInitialStatus(t *testing.T) {
	svc, _, _ := newTestService()

	lead, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:   "Jane Smith",
		Email:  "jane@example.com",
		Status: statusPtr(domain.StatusContacted),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if lead.Status != domain.StatusContacted {
		t.Errorf("status = %q, want CONTACTED", lead.Status)
	}
	if lead.LastContactedAt != nil {
		t.Error("creating directly as CONTACTED must not stamp lastContactedAt")
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc, _, _ := newTestService()

	lead, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:  "Jane Smith",
		Email: "jane@example.com",
		Phone: strPtr("(212) 555-0171"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.Phone == nil || *lead.Phone != "+12125550171" {
		t.Errorf("phone = %v, want +12125550171", lead.Phone)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name            string
		initialStatus   domain.Status
		lastContactedAt *time.Time
		newStatus       domain.Status
		wantStamped     bool
		wantPreserved   bool
	}{
		{
			name:          "new to contacted stamps",
			initialStatus: domain.StatusNew,
			newStatus:     domain.StatusContacted,
			wantStamped:   true,
		},
		{
			name:          "new to converted stamps when unset",
			initialStatus: domain.StatusNew,
			newStatus:     domain.StatusConverted,
			wantStamped:   true,
		},
		{
			name:            "contacted to converted preserves",
			initialStatus:   domain.StatusContacted,
			lastContactedAt: &past,
			newStatus:       domain.StatusConverted,
			wantPreserved:   true,
		},
		{
			name:            "converted back to new preserves",
			initialStatus:   domain.StatusConverted,
			lastContactedAt: &past,
			newStatus:       domain.StatusNew,
			wantPreserved:   true,
		},
		{
			name:            "same status is a no-op",
			initialStatus:   domain.StatusContacted,
			lastContactedAt: &past,
			newStatus:       domain.StatusContacted,
			wantPreserved:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, bus := newTestService()
			id := uuid.New()
			repo.leads[id] = repository.Lead{
				ID:              id,
				Name:            "Jane Smith",
				Email:           "jane@example.com",
				Status:          string(tt.initialStatus),
				LastContactedAt: tt.lastContactedAt,
			}

			lead, err := svc.Update(context.Background(), id, transport.UpdateLeadRequest{
				Status: statusPtr(tt.newStatus),
			})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}

			if lead.Status != tt.newStatus {
				t.Errorf("status = %q, want %q", lead.Status, tt.newStatus)
			}
			switch {
			case tt.wantStamped:
				if lead.LastContactedAt == nil {
					t.Fatal("lastContactedAt not stamped")
				}
				if time.Since(*lead.LastContactedAt) > time.Minute {
					t.Errorf("lastContactedAt = %v, want recent", *lead.LastContactedAt)
				}
			case tt.wantPreserved:
				if tt.lastContactedAt == nil {
					if lead.LastContactedAt != nil {
						t.Errorf("lastContactedAt = %v, want nil", *lead.LastContactedAt)
					}
				} else if lead.LastContactedAt == nil || !lead.LastContactedAt.Equal(*tt.lastContactedAt) {
					t.Errorf("lastContactedAt = %v, want preserved %v", lead.LastContactedAt, *tt.lastContactedAt)
				}
			}

			if len(bus.published) != 1 {
				t.Fatalf("published %d events, want 1", len(bus.published))
			}
			updated, ok := bus.published[0].(events.LeadUpdated)
			if !ok {
				t.Fatalf("published %T, want LeadUpdated", bus.published[0])
			}
			if updated.OldStatus != string(tt.initialStatus) || updated.NewStatus != string(tt.newStatus) {
				t.Errorf("event statuses = %q -> %q, want %q -> %q",
					updated.OldStatus, updated.NewStatus, tt.initialStatus, tt.newStatus)
			}
		})
	}
}

func TestUpdatePhoneClear(t *testing.T) {
	svc, repo, _ := newTestService()
	id := uuid.New()
	repo.leads[id] = repository.Lead{
		ID:     id,
		Name:   "Jane Smith",
		Email:  "jane@example.com",
		Phone:  strPtr("+12125550171"),
		Status: string(domain.StatusNew),
	}

	lead, err := svc.Update(context.Background(), id, transport.UpdateLeadRequest{
		Phone: transport.OptionalString{Set: true},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if lead.Phone != nil {
		t.Errorf("phone = %q, want cleared", *lead.Phone)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), transport.UpdateLeadRequest{
		Name: strPtr("New Name"),
	})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	svc, repo, bus := newTestService()
	id := uuid.New()
	repo.leads[id] = repository.Lead{ID: id, Status: string(domain.StatusNew)}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.leads[id]; ok {
		t.Error("lead still present after delete")
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.LeadDeleted); !ok {
		t.Errorf("published %T, want LeadDeleted", bus.published[0])
	}
}

func TestListClampsPagination(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.listResult = nil
	repo.listTotal = 0

	result, err := svc.List(context.Background(), transport.ListLeadsRequest{
		Page:     0,
		PageSize: 500,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.PageSize != maxPageSize {
		t.Errorf("pageSize = %d, want %d", result.PageSize, maxPageSize)
	}
	if repo.listParams.Offset != 0 || repo.listParams.Limit != maxPageSize {
		t.Errorf("offset/limit = %d/%d, want 0/%d", repo.listParams.Offset, repo.listParams.Limit, maxPageSize)
	}
	if result.TotalPages != 0 {
		t.Errorf("totalPages = %d, want 0 for empty result", result.TotalPages)
	}
}

func TestListAnnotations(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	id := uuid.New()
	lead := repository.Lead{ID: id, Name: "Jane Smith", Email: "jane@example.com", Status: string(domain.StatusNew)}
	repo.leads[id] = lead
	repo.listResult = []repository.Lead{lead}
	repo.listTotal = 1

	done := time.Now().Add(-time.Hour)
	repo.notes[id] = []repository.Note{{ID: uuid.New(), LeadID: id}}
	repo.followUps[id] = []repository.FollowUp{
		{ID: uuid.New(), LeadID: id, DueAt: time.Now().Add(-2 * time.Hour), CompletedAt: &done},
		{ID: uuid.New(), LeadID: id, DueAt: time.Now().Add(48 * time.Hour)},
		{ID: uuid.New(), LeadID: id, DueAt: time.Now().Add(24 * time.Hour)},
	}

	result, err := svc.List(ctx, transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}

	item := result.Items[0]
	if item.Counts.Notes != 1 || item.Counts.FollowUps != 3 {
		t.Errorf("counts = %d/%d, want 1/3", item.Counts.Notes, item.Counts.FollowUps)
	}
	if item.NextFollowUp == nil {
		t.Fatal("nextFollowUp missing")
	}
	// Earliest pending wins; the completed one is skipped even though it
	// is due sooner.
	if !item.NextFollowUp.DueAt.After(time.Now()) {
		t.Errorf("nextFollowUp dueAt = %v, want the earliest pending", item.NextFollowUp.DueAt)
	}
}

func TestListSortByNextFollowUp(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	soonID, laterID, noneID := uuid.New(), uuid.New(), uuid.New()
	repo.listResult = []repository.Lead{
		{ID: noneID, Name: "No Follow-up", Status: string(domain.StatusNew)},
		{ID: laterID, Name: "Later", Status: string(domain.StatusNew)},
		{ID: soonID, Name: "Soon", Status: string(domain.StatusNew)},
	}
	repo.listTotal = 3
	repo.followUps[soonID] = []repository.FollowUp{{ID: uuid.New(), LeadID: soonID, DueAt: time.Now().Add(time.Hour)}}
	repo.followUps[laterID] = []repository.FollowUp{{ID: uuid.New(), LeadID: laterID, DueAt: time.Now().Add(72 * time.Hour)}}

	result, err := svc.List(ctx, transport.ListLeadsRequest{Sort: transport.SortNextFollowUp})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(result.Items))
	}

	gotOrder := []uuid.UUID{result.Items[0].ID, result.Items[1].ID, result.Items[2].ID}
	wantOrder := []uuid.UUID{soonID, laterID, noneID}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("position %d = %v, want %v", i, gotOrder[i], wantOrder[i])
		}
	}
}

func TestAddNoteToMissingLead(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddNote(context.Background(), uuid.New(), transport.CreateNoteRequest{Body: "hello"})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestAddFollowUpPublishesEvent(t *testing.T) {
	svc, repo, bus := newTestService()
	id := uuid.New()
	repo.leads[id] = repository.Lead{ID: id, Status: string(domain.StatusNew)}

	followUp, err := svc.AddFollowUp(context.Background(), id, transport.CreateFollowUpRequest{
		DueAt: time.Now().Add(24 * time.Hour),
		Note:  strPtr("call back"),
	})
	if err != nil {
		t.Fatalf("AddFollowUp: %v", err)
	}
	if followUp.CompletedAt != nil {
		t.Error("new follow-up should be pending")
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	changed, ok := bus.published[0].(events.FollowUpChanged)
	if !ok {
		t.Fatalf("published %T, want FollowUpChanged", bus.published[0])
	}
	if changed.LeadID != id {
		t.Errorf("event leadID = %v, want %v", changed.LeadID, id)
	}
}
