package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/eventhub/internal/model"
	"github.com/gatherly/eventhub/internal/stats"
)

// stubStore serves canned aggregation data so dashboard handlers can be
// exercised without a database.
type stubStore struct {
	events []stats.EventRow
	counts map[uint64]stats.EventCounts
	users  int64
}

func (s *stubStore) EventsByOrganizer(_ context.Context, organizerID uint64) ([]stats.EventRow, error) {
	var out []stats.EventRow
	for _, ev := range s.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *stubStore) AllEvents(_ context.Context) ([]stats.EventRow, error) {
	return s.events, nil
}

func (s *stubStore) CountsByEvent(_ context.Context, eventIDs []uint64) (map[uint64]stats.EventCounts, error) {
	out := make(map[uint64]stats.EventCounts)
	for _, id := range eventIDs {
		if c, ok := s.counts[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (s *stubStore) RegistrationTotals(_ context.Context, eventIDs []uint64) (stats.RegistrationTotals, error) {
	var t stats.RegistrationTotals
	for _, id := range eventIDs {
		t.Registrations += s.counts[id].Registrations
		t.CheckedIn += s.counts[id].CheckedIn
	}
	return t, nil
}

func (s *stubStore) ReviewTotals(_ context.Context, eventIDs []uint64) (stats.ReviewTotals, error) {
	var t stats.ReviewTotals
	var sum float64
	for _, id := range eventIDs {
		c := s.counts[id]
		t.Reviews += c.Reviews
		if c.AverageRating != nil {
			sum += *c.AverageRating * float64(c.Reviews)
		}
	}
	if t.Reviews > 0 {
		avg := sum / float64(t.Reviews)
		t.AverageRating = &avg
	}
	return t, nil
}

func (s *stubStore) CountActiveUsers(_ context.Context) (int64, error) {
	return s.users, nil
}

func rating(v float64) *float64 { return &v }

func testStore() *stubStore {
	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	return &stubStore{
		events: []stats.EventRow{
			{ID: 1, OrganizerID: 7, Title: "Go Meetup", Slug: "go-meetup", StartAt: start, EndAt: start.Add(3 * time.Hour), Status: model.StatusPublished},
			{ID: 2, OrganizerID: 8, Title: "Jazz Night", Slug: "jazz-night", StartAt: start, EndAt: start.Add(2 * time.Hour), Status: model.StatusPublished},
		},
		counts: map[uint64]stats.EventCounts{
			1: {Registrations: 4, CheckedIn: 2, Reviews: 2, AverageRating: rating(4.5)},
			2: {Registrations: 10, CheckedIn: 10, Reviews: 1, AverageRating: rating(3.0)},
		},
		users: 12,
	}
}

func dashboardRequest(t *testing.T, path string, uid uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("user_id", uid)
		c.Set("role", role)
	}
	return c, rec
}

func TestOrganizerDashboardHandler(t *testing.T) {
	h := NewDashboardHandler(stats.NewAssembler(testStore()))
	c, rec := dashboardRequest(t, "/v1/organizer/dashboard", 7, model.RoleOrganizer)

	if err := h.OrganizerDashboard(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Events []struct {
			ID            uint64   `json:"id"`
			Registrations int64    `json:"registrations_count"`
			AverageRating *float64 `json:"average_rating"`
		} `json:"events"`
		TotalRegistrations int64   `json:"total_registrations"`
		ParticipationRate  float64 `json:"participation_rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Events) != 1 || body.Events[0].ID != 1 {
		t.Fatalf("events = %+v, want only event 1", body.Events)
	}
	if body.Events[0].Registrations != 4 {
		t.Errorf("registrations = %d, want 4", body.Events[0].Registrations)
	}
	if body.TotalRegistrations != 4 || body.ParticipationRate != 50.0 {
		t.Errorf("totals = %+v", body)
	}
}

func TestOrganizerDashboardHandlerUnauthenticated(t *testing.T) {
	h := NewDashboardHandler(stats.NewAssembler(testStore()))
	c, rec := dashboardRequest(t, "/v1/organizer/dashboard", 0, "")

	if err := h.OrganizerDashboard(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminDashboardHandler(t *testing.T) {
	h := NewDashboardHandler(stats.NewAssembler(testStore()))
	c, rec := dashboardRequest(t, "/v1/admin/dashboard", 1, model.RoleAdmin)

	if err := h.AdminDashboard(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Totals struct {
			Users         int64 `json:"users"`
			Events        int64 `json:"events"`
			Registrations int64 `json:"registrations"`
		} `json:"totals"`
		CategoryDistribution []struct {
			CategoryName string `json:"category_name"`
			Total        int64  `json:"total"`
		} `json:"category_distribution"`
		TopEvents []struct {
			ID            uint64  `json:"id"`
			AverageRating float64 `json:"average_rating"`
		} `json:"top_events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Totals.Users != 12 || body.Totals.Events != 2 || body.Totals.Registrations != 14 {
		t.Errorf("totals = %+v", body.Totals)
	}
	if len(body.CategoryDistribution) != 1 || body.CategoryDistribution[0].CategoryName != stats.NoCategoryLabel {
		t.Errorf("distribution = %+v", body.CategoryDistribution)
	}
	if len(body.TopEvents) != 2 || body.TopEvents[0].ID != 1 {
		t.Errorf("top events = %+v", body.TopEvents)
	}
}

func TestAdminDashboardHandlerForbidden(t *testing.T) {
	h := NewDashboardHandler(stats.NewAssembler(testStore()))
	c, rec := dashboardRequest(t, "/v1/admin/dashboard", 9, model.RoleAttendee)

	if err := h.AdminDashboard(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
