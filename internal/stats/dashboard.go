package stats

import (
	"context"
	"errors"

	"github.com/gatherly/eventhub/internal/model"
)

// ErrUnauthorized is returned when a dashboard is requested without an
// authenticated caller. Handlers translate it into HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated caller lacks the
// privilege a dashboard requires. Handlers translate it into HTTP 403,
// distinct from ErrUnauthorized.
var ErrForbidden = errors.New("forbidden")

// Caller identifies who is requesting a dashboard. A zero Caller is an
// unauthenticated guest.
type Caller struct {
	ID            uint64
	Role          string
	Authenticated bool
}

// RequireAuthenticated rejects guests with ErrUnauthorized.
func RequireAuthenticated(caller Caller) error {
	if !caller.Authenticated {
		return ErrUnauthorized
	}
	return nil
}

// RequireAdmin rejects callers without the ADMIN role with ErrForbidden.
// It does not check authentication; evaluate RequireAuthenticated first
// so that guests get ErrUnauthorized rather than ErrForbidden.
func RequireAdmin(caller Caller) error {
	if caller.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// AnnotatedEvent is an event row combined with its per-event aggregates
// for the organizer dashboard event list.
type AnnotatedEvent struct {
	EventRow
	EventCounts
}

// OrganizerDashboard is the composite view for one organizer: their
// events annotated with per-event stats, plus scope-wide totals.
type OrganizerDashboard struct {
	Events []AnnotatedEvent `json:"events"`
	ScopeTotals
}

// SystemTotals are the headline counters of the admin dashboard.
type SystemTotals struct {
	Users         int64 `json:"users"`
	Events        int64 `json:"events"`
	Registrations int64 `json:"registrations"`
	Reviews       int64 `json:"reviews"`
}

// AdminDashboard is the system-wide composite view: headline totals, the
// category distribution and the ten best-rated events.
type AdminDashboard struct {
	Totals               SystemTotals     `json:"totals"`
	CategoryDistribution []CategoryBucket `json:"category_distribution"`
	TopEvents            []RatedEvent     `json:"top_events"`
}

// Assembler builds dashboard views on top of the aggregation engine,
// applying access control before any query runs. It is stateless between
// requests; if any required sub-aggregate fails the whole view fails
// rather than rendering partially.
type Assembler struct {
	store  Store
	engine *Engine
}

// NewAssembler returns an Assembler over the given store.
func NewAssembler(store Store) *Assembler {
	return &Assembler{store: store, engine: NewEngine(store)}
}

// OrganizerDashboard assembles the dashboard scoped to the caller's own
// events. Any authenticated user may call it; an organizer without
// events receives a valid view with empty lists and zero totals.
func (a *Assembler) OrganizerDashboard(ctx context.Context, caller Caller) (*OrganizerDashboard, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	events, err := a.store.EventsByOrganizer(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	counts, err := a.engine.PerEventStats(ctx, events)
	if err != nil {
		return nil, err
	}
	totals, err := a.engine.Totals(ctx, events)
	if err != nil {
		return nil, err
	}
	annotated := make([]AnnotatedEvent, 0, len(events))
	for _, ev := range events {
		annotated = append(annotated, AnnotatedEvent{EventRow: ev, EventCounts: counts[ev.ID]})
	}
	return &OrganizerDashboard{Events: annotated, ScopeTotals: totals}, nil
}

// AdminDashboard assembles the system-wide dashboard. The caller must be
// authenticated (ErrUnauthorized) and hold the ADMIN role (ErrForbidden);
// the guards run in that order.
func (a *Assembler) AdminDashboard(ctx context.Context, caller Caller) (*AdminDashboard, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	events, err := a.store.AllEvents(ctx)
	if err != nil {
		return nil, err
	}
	users, err := a.store.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := a.engine.Totals(ctx, events)
	if err != nil {
		return nil, err
	}
	top, err := a.engine.TopRatedEvents(ctx, events, DefaultTopLimit)
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{
		Totals: SystemTotals{
			Users:         users,
			Events:        int64(len(events)),
			Registrations: totals.TotalRegistrations,
			Reviews:       totals.TotalReviews,
		},
		CategoryDistribution: CategoryDistribution(events),
		TopEvents:            top,
	}, nil
}
