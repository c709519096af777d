package stats

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for exercising the engine without a
// database. Scope totals are derived from the same per-event counts the
// store serves, so both views stay consistent.
type fakeStore struct {
	events []EventRow
	counts map[uint64]EventCounts
	users  int64
	err    error
}

func (f *fakeStore) EventsByOrganizer(_ context.Context, organizerID uint64) ([]EventRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []EventRow
	for _, ev := range f.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeStore) AllEvents(_ context.Context) ([]EventRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeStore) CountsByEvent(_ context.Context, eventIDs []uint64) (map[uint64]EventCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[uint64]EventCounts)
	for _, id := range eventIDs {
		if c, ok := f.counts[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeStore) RegistrationTotals(_ context.Context, eventIDs []uint64) (RegistrationTotals, error) {
	if f.err != nil {
		return RegistrationTotals{}, f.err
	}
	var t RegistrationTotals
	for _, id := range eventIDs {
		c := f.counts[id]
		t.Registrations += c.Registrations
		t.CheckedIn += c.CheckedIn
	}
	return t, nil
}

func (f *fakeStore) ReviewTotals(_ context.Context, eventIDs []uint64) (ReviewTotals, error) {
	if f.err != nil {
		return ReviewTotals{}, f.err
	}
	var t ReviewTotals
	var sum float64
	for _, id := range eventIDs {
		c := f.counts[id]
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

func (f *fakeStore) CountActiveUsers(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.users, nil
}

func fptr(v float64) *float64 { return &v }

func strptr(s string) *string { return &s }

func row(id, organizerID uint64, category *string) EventRow {
	return EventRow{
		ID:           id,
		OrganizerID:  organizerID,
		CategoryName: category,
		Title:        "event",
		Slug:         "event",
		StartAt:      time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		EndAt:        time.Date(2026, 5, 1, 21, 0, 0, 0, time.UTC),
		Status:       "published",
	}
}

func TestParticipationRate(t *testing.T) {
	cases := []struct {
		name          string
		registrations int64
		checkedIn     int64
		want          float64
	}{
		{"zero registrations", 0, 0, 0.0},
		{"none checked in", 10, 0, 0.0},
		{"all checked in", 4, 4, 100.0},
		{"one third", 3, 1, 33.33},
		{"two thirds", 3, 2, 66.67},
		{"half", 8, 4, 50.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParticipationRate(tc.registrations, tc.checkedIn)
			if got != tc.want {
				t.Fatalf("ParticipationRate(%d, %d) = %v, want %v", tc.registrations, tc.checkedIn, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("rate %v outside [0, 100]", got)
			}
		})
	}
}

func TestCategoryDistribution(t *testing.T) {
	events := []EventRow{
		row(1, 1, strptr("Music")),
		row(2, 1, strptr("Music")),
		row(3, 1, strptr("Music")),
		row(4, 1, strptr("Tech")),
		row(5, 1, nil),
	}
	got := CategoryDistribution(events)
	want := []CategoryBucket{
		{CategoryName: "Music", Total: 3},
		{CategoryName: "Tech", Total: 1},
		{CategoryName: NoCategoryLabel, Total: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(got), len(want))
	}
	var sum int64
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
		sum += got[i].Total
	}
	if sum != int64(len(events)) {
		t.Errorf("bucket totals sum to %d, want %d", sum, len(events))
	}
}

func TestCategoryDistributionTieOrder(t *testing.T) {
	events := []EventRow{
		row(1, 1, strptr("Zeta")),
		row(2, 1, strptr("Alpha")),
	}
	got := CategoryDistribution(events)
	if got[0].CategoryName != "Alpha" || got[1].CategoryName != "Zeta" {
		t.Fatalf("equal counts not ordered by name: %+v", got)
	}
}

func TestCategoryDistributionEmpty(t *testing.T) {
	if got := CategoryDistribution(nil); len(got) != 0 {
		t.Fatalf("expected empty distribution, got %+v", got)
	}
}

func TestPerEventStatsFillsZeroEntries(t *testing.T) {
	store := &fakeStore{
		counts: map[uint64]EventCounts{
			1: {Registrations: 5, CheckedIn: 2, Reviews: 3, AverageRating: fptr(4.0)},
		},
	}
	eng := NewEngine(store)
	events := []EventRow{row(1, 1, nil), row(2, 1, nil)}

	got, err := eng.PerEventStats(context.Background(), events)
	if err != nil {
		t.Fatalf("PerEventStats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[1].Registrations != 5 || got[1].Reviews != 3 {
		t.Errorf("event 1 counts = %+v", got[1])
	}
	if got[2].Registrations != 0 || got[2].AverageRating != nil {
		t.Errorf("event 2 should have zero counts and nil rating, got %+v", got[2])
	}
}

func TestPerEventStatsEmptyScope(t *testing.T) {
	eng := NewEngine(&fakeStore{})
	got, err := eng.PerEventStats(context.Background(), nil)
	if err != nil {
		t.Fatalf("PerEventStats: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %+v", got)
	}
}

func TestTotalsWeightedAverage(t *testing.T) {
	// One event with 9 five-star reviews, another with a single 1-star.
	// The scope average weighs each review, not each event.
	store := &fakeStore{
		counts: map[uint64]EventCounts{
			1: {Registrations: 10, CheckedIn: 5, Reviews: 9, AverageRating: fptr(5.0)},
			2: {Registrations: 2, CheckedIn: 1, Reviews: 1, AverageRating: fptr(1.0)},
		},
	}
	eng := NewEngine(store)
	events := []EventRow{row(1, 1, nil), row(2, 1, nil)}

	got, err := eng.Totals(context.Background(), events)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got.TotalRegistrations != 12 || got.TotalCheckedIn != 6 || got.TotalReviews != 10 {
		t.Errorf("totals = %+v", got)
	}
	if got.AverageRating == nil || *got.AverageRating != 4.6 {
		t.Errorf("average rating = %v, want 4.6 (weighted, not the 3.0 mean of means)", got.AverageRating)
	}
	if got.ParticipationRate != 50.0 {
		t.Errorf("participation rate = %v, want 50.0", got.ParticipationRate)
	}
}

func TestTotalsNoReviews(t *testing.T) {
	store := &fakeStore{
		counts: map[uint64]EventCounts{
			1: {Registrations: 3, CheckedIn: 0},
		},
	}
	eng := NewEngine(store)

	got, err := eng.Totals(context.Background(), []EventRow{row(1, 1, nil)})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got.AverageRating != nil {
		t.Errorf("average rating should be nil with no reviews, got %v", *got.AverageRating)
	}
	if got.ParticipationRate != 0.0 {
		t.Errorf("participation rate = %v, want 0.0", got.ParticipationRate)
	}
}

func TestTotalsEmptyScope(t *testing.T) {
	store := &fakeStore{err: errors.New("store must not be queried")}
	eng := NewEngine(store)

	got, err := eng.Totals(context.Background(), nil)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got != (ScopeTotals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestTopRatedEvents(t *testing.T) {
	store := &fakeStore{
		counts: map[uint64]EventCounts{
			1: {Reviews: 2, AverageRating: fptr(4.5)},
			2: {Reviews: 5, AverageRating: fptr(4.5)},
			3: {Reviews: 1, AverageRating: fptr(5.0)},
			4: {},                                     // no reviews, must not appear
			5: {Reviews: 2, AverageRating: fptr(4.5)}, // ties event 1 on both keys
		},
	}
	eng := NewEngine(store)
	events := []EventRow{
		row(1, 1, nil), row(2, 1, nil), row(3, 1, nil), row(4, 1, nil), row(5, 1, nil),
	}

	got, err := eng.TopRatedEvents(context.Background(), events, 10)
	if err != nil {
		t.Fatalf("TopRatedEvents: %v", err)
	}
	wantOrder := []uint64{3, 2, 1, 5}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d events, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d: event %d, want %d", i, got[i].ID, id)
		}
	}
	for _, re := range got {
		if re.ReviewsCount == 0 {
			t.Errorf("event %d has zero reviews but was ranked", re.ID)
		}
	}
}

func TestTopRatedEventsLimit(t *testing.T) {
	store := &fakeStore{
		counts: map[uint64]EventCounts{
			1: {Reviews: 1, AverageRating: fptr(3.0)},
			2: {Reviews: 1, AverageRating: fptr(4.0)},
			3: {Reviews: 1, AverageRating: fptr(5.0)},
		},
	}
	eng := NewEngine(store)
	events := []EventRow{row(1, 1, nil), row(2, 1, nil), row(3, 1, nil)}

	got, err := eng.TopRatedEvents(context.Background(), events, 2)
	if err != nil {
		t.Fatalf("TopRatedEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 {
		t.Errorf("order = [%d %d], want [3 2]", got[0].ID, got[1].ID)
	}
}

func TestTopRatedEventsEmptyScope(t *testing.T) {
	eng := NewEngine(&fakeStore{})
	got, err := eng.TopRatedEvents(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("TopRatedEvents: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %+v", got)
	}
}
