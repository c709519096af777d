// Package stats implements the dashboard aggregation engine. It computes
// derived, read-only statistics (registration counts, participation rates,
// average ratings, category distributions, top-rated events) over a scope of
// events, and assembles them into the organizer and admin dashboard views.
//
// The package never touches the database directly. It consumes a Store
// interface whose methods return materialized results, so the engine stays
// deterministic and testable with an in-memory fake. Each invocation
// re-reads current store state; nothing is cached between calls. The store
// is not required to provide one atomic snapshot across sub-queries —
// dashboards are low-traffic read views and a small skew between
// sub-aggregates is acceptable.
package stats

import (
	"context"
	"time"
)

// EventRow is a materialized event as the engine consumes it: the event
// columns plus the joined category name and organizer email. CategoryName
// is nil for uncategorized events.
type EventRow struct {
	ID             uint64     `json:"id"`
	OrganizerID    uint64     `json:"organizer_id"`
	OrganizerEmail string     `json:"organizer_email"`
	CategoryName   *string    `json:"category_name"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Location       string     `json:"location"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	Capacity       uint32     `json:"capacity"`
	Status         string     `json:"status"`
}

// EventCounts holds the per-event aggregates. AverageRating is nil when
// the event has no reviews: a zero-review event has no average, not a
// zero average.
type EventCounts struct {
	Registrations int64    `json:"registrations_count"`
	CheckedIn     int64    `json:"checked_in_count"`
	Reviews       int64    `json:"reviews_count"`
	AverageRating *float64 `json:"average_rating"`
}

// RegistrationTotals aggregates registrations across a scope of events.
type RegistrationTotals struct {
	Registrations int64
	CheckedIn     int64
}

// ReviewTotals aggregates reviews across a scope of events. AverageRating
// is the mean over every review in the scope (weighted by review count,
// not by event count) and nil when the scope has no reviews.
type ReviewTotals struct {
	Reviews       int64
	AverageRating *float64
}

// Store is the read-only query contract the engine needs from the
// persistence layer. Implementations return materialized collections
// rather than lazy query objects. All methods must tolerate an empty
// eventIDs slice by returning empty results, not an error.
type Store interface {
	// EventsByOrganizer returns the events owned by one organizer,
	// newest start time first.
	EventsByOrganizer(ctx context.Context, organizerID uint64) ([]EventRow, error)

	// AllEvents returns every event in the system, newest start time first.
	AllEvents(ctx context.Context) ([]EventRow, error)

	// CountsByEvent returns per-event registration/check-in/review counts
	// and average ratings, keyed by event ID. Events absent from the map
	// have zero counts.
	CountsByEvent(ctx context.Context, eventIDs []uint64) (map[uint64]EventCounts, error)

	// RegistrationTotals counts registrations and check-ins across the
	// union of the given events.
	RegistrationTotals(ctx context.Context, eventIDs []uint64) (RegistrationTotals, error)

	// ReviewTotals counts reviews and averages ratings across the union
	// of the given events.
	ReviewTotals(ctx context.Context, eventIDs []uint64) (ReviewTotals, error)

	// CountActiveUsers counts user accounts flagged active.
	CountActiveUsers(ctx context.Context) (int64, error)
}
