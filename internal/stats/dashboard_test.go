package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherly/eventhub/internal/model"
)

func TestOrganizerDashboardRequiresAuth(t *testing.T) {
	a := NewAssembler(&fakeStore{})
	_, err := a.OrganizerDashboard(context.Background(), Caller{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestOrganizerDashboardEmpty(t *testing.T) {
	a := NewAssembler(&fakeStore{})
	caller := Caller{ID: 7, Role: model.RoleOrganizer, Authenticated: true}

	got, err := a.OrganizerDashboard(context.Background(), caller)
	if err != nil {
		t.Fatalf("OrganizerDashboard: %v", err)
	}
	if len(got.Events) != 0 {
		t.Errorf("expected no events, got %d", len(got.Events))
	}
	if got.ScopeTotals != (ScopeTotals{}) {
		t.Errorf("expected zero totals, got %+v", got.ScopeTotals)
	}
}

func TestOrganizerDashboardSingleEvent(t *testing.T) {
	store := &fakeStore{
		events: []EventRow{row(1, 7, strptr("Tech"))},
		counts: map[uint64]EventCounts{
			1: {Registrations: 1, CheckedIn: 1, Reviews: 1, AverageRating: fptr(5.0)},
		},
	}
	a := NewAssembler(store)
	caller := Caller{ID: 7, Role: model.RoleOrganizer, Authenticated: true}

	got, err := a.OrganizerDashboard(context.Background(), caller)
	if err != nil {
		t.Fatalf("OrganizerDashboard: %v", err)
	}
	if len(got.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(got.Events))
	}
	ev := got.Events[0]
	if ev.Registrations != 1 || ev.CheckedIn != 1 || ev.Reviews != 1 {
		t.Errorf("event counts = %+v", ev.EventCounts)
	}
	if ev.AverageRating == nil || *ev.AverageRating != 5.0 {
		t.Errorf("event average = %v, want 5.0", ev.AverageRating)
	}
	if got.TotalRegistrations != 1 || got.TotalReviews != 1 {
		t.Errorf("totals = %+v", got.ScopeTotals)
	}
	if got.ParticipationRate != 100.0 {
		t.Errorf("participation rate = %v, want 100.0", got.ParticipationRate)
	}
	if got.AverageRating == nil || *got.AverageRating != 5.0 {
		t.Errorf("scope average = %v, want 5.0", got.AverageRating)
	}
}

func TestOrganizerDashboardScopedToCaller(t *testing.T) {
	store := &fakeStore{
		events: []EventRow{row(1, 7, nil), row(2, 8, nil)},
		counts: map[uint64]EventCounts{
			1: {Registrations: 2},
			2: {Registrations: 40},
		},
	}
	a := NewAssembler(store)
	caller := Caller{ID: 7, Role: model.RoleOrganizer, Authenticated: true}

	got, err := a.OrganizerDashboard(context.Background(), caller)
	if err != nil {
		t.Fatalf("OrganizerDashboard: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].ID != 1 {
		t.Fatalf("dashboard leaked foreign events: %+v", got.Events)
	}
	if got.TotalRegistrations != 2 {
		t.Errorf("totals include foreign registrations: %+v", got.ScopeTotals)
	}
}

func TestAdminDashboardGuards(t *testing.T) {
	a := NewAssembler(&fakeStore{})

	if _, err := a.AdminDashboard(context.Background(), Caller{}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("guest err = %v, want ErrUnauthorized", err)
	}

	organizer := Caller{ID: 7, Role: model.RoleOrganizer, Authenticated: true}
	if _, err := a.AdminDashboard(context.Background(), organizer); !errors.Is(err, ErrForbidden) {
		t.Errorf("organizer err = %v, want ErrForbidden", err)
	}

	attendee := Caller{ID: 9, Role: model.RoleAttendee, Authenticated: true}
	if _, err := a.AdminDashboard(context.Background(), attendee); !errors.Is(err, ErrForbidden) {
		t.Errorf("attendee err = %v, want ErrForbidden", err)
	}
}

func TestAdminDashboard(t *testing.T) {
	store := &fakeStore{
		events: []EventRow{
			row(1, 7, strptr("Music")),
			row(2, 7, strptr("Music")),
			row(3, 8, nil),
		},
		counts: map[uint64]EventCounts{
			1: {Registrations: 4, CheckedIn: 2, Reviews: 2, AverageRating: fptr(4.0)},
			2: {Registrations: 1, CheckedIn: 0},
			3: {Registrations: 5, CheckedIn: 5, Reviews: 1, AverageRating: fptr(3.0)},
		},
		users: 42,
	}
	a := NewAssembler(store)
	admin := Caller{ID: 1, Role: model.RoleAdmin, Authenticated: true}

	got, err := a.AdminDashboard(context.Background(), admin)
	if err != nil {
		t.Fatalf("AdminDashboard: %v", err)
	}
	if got.Totals.Users != 42 || got.Totals.Events != 3 {
		t.Errorf("totals = %+v", got.Totals)
	}
	if got.Totals.Registrations != 10 || got.Totals.Reviews != 3 {
		t.Errorf("totals = %+v", got.Totals)
	}
	if len(got.CategoryDistribution) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got.CategoryDistribution))
	}
	if got.CategoryDistribution[0].CategoryName != "Music" || got.CategoryDistribution[0].Total != 2 {
		t.Errorf("first bucket = %+v", got.CategoryDistribution[0])
	}
	if got.CategoryDistribution[1].CategoryName != NoCategoryLabel {
		t.Errorf("second bucket = %+v", got.CategoryDistribution[1])
	}
	if len(got.TopEvents) != 2 {
		t.Fatalf("got %d top events, want 2 (event 2 has no reviews)", len(got.TopEvents))
	}
	if got.TopEvents[0].ID != 1 || got.TopEvents[1].ID != 3 {
		t.Errorf("top order = [%d %d], want [1 3]", got.TopEvents[0].ID, got.TopEvents[1].ID)
	}
}

func TestAdminDashboardEmptySystem(t *testing.T) {
	a := NewAssembler(&fakeStore{})
	admin := Caller{ID: 1, Role: model.RoleAdmin, Authenticated: true}

	got, err := a.AdminDashboard(context.Background(), admin)
	if err != nil {
		t.Fatalf("AdminDashboard: %v", err)
	}
	if got.Totals != (SystemTotals{}) {
		t.Errorf("totals = %+v, want zero", got.Totals)
	}
	if len(got.CategoryDistribution) != 0 || len(got.TopEvents) != 0 {
		t.Errorf("expected empty lists, got %+v", got)
	}
}

func TestAssemblerPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection lost")
	a := NewAssembler(&fakeStore{err: boom})
	caller := Caller{ID: 7, Role: model.RoleAdmin, Authenticated: true}

	if _, err := a.OrganizerDashboard(context.Background(), caller); !errors.Is(err, boom) {
		t.Errorf("organizer err = %v, want %v", err, boom)
	}
	if _, err := a.AdminDashboard(context.Background(), caller); !errors.Is(err, boom) {
		t.Errorf("admin err = %v, want %v", err, boom)
	}
}
