package service

import (
	"context"
	"testing"
	"time"
)

// fakeRepo returns canned counts and records the day window it was asked for.
type fakeRepo struct {
	total, newCount, contacted, converted int
	overdue, dueToday                     int

	beforeArg time.Time
	fromArg   time.Time
	toArg     time.Time
}

func (f *fakeRepo) CountLeads(context.Context) (int, error) { return f.total, nil }

func (f *fakeRepo) CountLeadsByStatus(_ context.Context, status string) (int, error) {
	switch status {
	case "NEW":
		return f.newCount, nil
	case "CONTACTED":
		return f.contacted, nil
	case "CONVERTED":
		return f.converted, nil
	}
	return 0, nil
}

func (f *fakeRepo) CountPendingFollowUpsBefore(_ context.Context, t time.Time) (int, error) {
	f.beforeArg = t
	return f.overdue, nil
}

func (f *fakeRepo) CountPendingFollowUpsBetween(_ context.Context, from, to time.Time) (int, error) {
	f.fromArg, f.toArg = from, to
	return f.dueToday, nil
}

func TestSummary(t *testing.T) {
	repo := &fakeRepo{total: 10, newCount: 4, contacted: 3, converted: 3, overdue: 2, dueToday: 1}
	svc := New(repo, nil)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalLeads != 10 || summary.NewLeads != 4 || summary.ContactedLeads != 3 || summary.ConvertedLeads != 3 {
		t.Errorf("counts = %+v", summary)
	}
	if summary.ConversionRate != 30 {
		t.Errorf("conversionRate = %d, want 30", summary.ConversionRate)
	}
	if summary.OverdueFollowUpsCount != 2 || summary.FollowUpsDueTodayCount != 1 {
		t.Errorf("follow-up counts = %d/%d, want 2/1", summary.OverdueFollowUpsCount, summary.FollowUpsDueTodayCount)
	}
}

func TestSummaryUsesLocalDayWindow(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, loc)

	repo := &fakeRepo{}
	svc := New(repo, nil)
	svc.now = func() time.Time { return now }

	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	wantStart := time.Date(2026, 8, 29, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2026, 8, 30, 0, 0, 0, 0, loc)
	if !repo.beforeArg.Equal(wantStart) {
		t.Errorf("overdue cutoff = %v, want %v", repo.beforeArg, wantStart)
	}
	if !repo.fromArg.Equal(wantStart) || !repo.toArg.Equal(wantEnd) {
		t.Errorf("due-today window = [%v, %v), want [%v, %v)", repo.fromArg, repo.toArg, wantStart, wantEnd)
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name             string
		converted, total int
		want             int
	}{
		{"no leads", 0, 0, 0},
		{"no conversions", 0, 5, 0},
		{"all converted", 5, 5, 100},
		{"one third", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
		{"two thirds", 2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conversionRate(tt.converted, tt.total); got != tt.want {
				t.Errorf("conversionRate(%d, %d) = %d, want %d", tt.converted, tt.total, got, tt.want)
			}
		})
	}
}

func TestDayWindowCrossesMidnight(t *testing.T) {
	now := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	start, end := dayWindow(now)

	if start.Day() != 31 || start.Hour() != 0 {
		t.Errorf("start = %v, want midnight of the 31st", start)
	}
	if end.Year() != 2027 || end.Month() != time.January || end.Day() != 1 {
		t.Errorf("end = %v, want Jan 1 2027", end)
	}
}
