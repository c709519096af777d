package stats

import (
	"context"
	"math"
	"sort"
)

// NoCategoryLabel is the bucket name used by CategoryDistribution for
// events without a category.
const NoCategoryLabel = "none"

// DefaultTopLimit is the ranking size used when a caller passes a
// non-positive limit to TopRatedEvents.
const DefaultTopLimit = 10

// Engine computes derived statistics over event scopes. It holds no
// state beyond the store handle; every method re-queries the store.
type Engine struct {
	store Store
}

// NewEngine returns an Engine reading from the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store}
}

// ScopeTotals carries aggregates across the union of a scope's events.
// AverageRating is the mean over all reviews in scope, so events with
// many reviews weigh more than events with few; it is nil when the scope
// has no reviews.
type ScopeTotals struct {
	TotalRegistrations int64    `json:"total_registrations"`
	TotalCheckedIn     int64    `json:"total_checked_in"`
	TotalReviews       int64    `json:"total_reviews"`
	AverageRating      *float64 `json:"average_rating"`
	ParticipationRate  float64  `json:"participation_rate"`
}

// RatedEvent is an event annotated with its review aggregates, as
// returned by TopRatedEvents. Events without reviews never appear.
type RatedEvent struct {
	EventRow
	AverageRating float64 `json:"average_rating"`
	ReviewsCount  int64   `json:"reviews_count"`
}

// CategoryBucket is one entry of a category distribution.
type CategoryBucket struct {
	CategoryName string `json:"category_name"`
	Total        int64  `json:"total"`
}

// PerEventStats returns the aggregates for each of the given events,
// keyed by event ID. Events with no registrations or reviews map to a
// zero-valued EventCounts with a nil average rating.
func (e *Engine) PerEventStats(ctx context.Context, events []EventRow) (map[uint64]EventCounts, error) {
	if len(events) == 0 {
		return map[uint64]EventCounts{}, nil
	}
	counts, err := e.store.CountsByEvent(ctx, eventIDs(events))
	if err != nil {
		return nil, err
	}
	// Fill zero entries so every requested event has a value.
	out := make(map[uint64]EventCounts, len(events))
	for _, ev := range events {
		out[ev.ID] = counts[ev.ID]
	}
	return out, nil
}

// Totals computes ScopeTotals for the given events. It issues one
// registration aggregate and one review aggregate; the two run against
// current store state and are not required to observe the same instant.
func (e *Engine) Totals(ctx context.Context, events []EventRow) (ScopeTotals, error) {
	if len(events) == 0 {
		return ScopeTotals{}, nil
	}
	ids := eventIDs(events)
	regs, err := e.store.RegistrationTotals(ctx, ids)
	if err != nil {
		return ScopeTotals{}, err
	}
	reviews, err := e.store.ReviewTotals(ctx, ids)
	if err != nil {
		return ScopeTotals{}, err
	}
	return ScopeTotals{
		TotalRegistrations: regs.Registrations,
		TotalCheckedIn:     regs.CheckedIn,
		TotalReviews:       reviews.Reviews,
		AverageRating:      reviews.AverageRating,
		ParticipationRate:  ParticipationRate(regs.Registrations, regs.CheckedIn),
	}, nil
}

// ParticipationRate is the percentage of registrants who checked in,
// rounded to two decimals. With zero registrations the rate is exactly
// 0.0 — unlike the average rating, a rate has a natural zero.
func ParticipationRate(registrations, checkedIn int64) float64 {
	if registrations == 0 {
		return 0.0
	}
	rate := float64(checkedIn) / float64(registrations) * 100
	return math.Round(rate*100) / 100
}

// CategoryDistribution groups the given events by category name, with
// uncategorized events bucketed under NoCategoryLabel. Buckets are
// ordered by event count descending, ties broken by name ascending so
// repeated calls on the same data produce identical output.
func CategoryDistribution(events []EventRow) []CategoryBucket {
	byName := make(map[string]int64)
	for _, ev := range events {
		name := NoCategoryLabel
		if ev.CategoryName != nil {
			name = *ev.CategoryName
		}
		byName[name]++
	}
	out := make([]CategoryBucket, 0, len(byName))
	for name, total := range byName {
		out = append(out, CategoryBucket{CategoryName: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out
}

// TopRatedEvents ranks the given events by average rating descending,
// then review count descending, then event ID ascending to keep the
// order stable, and returns at most limit entries. Events with zero
// reviews are excluded. A non-positive limit means DefaultTopLimit.
func (e *Engine) TopRatedEvents(ctx context.Context, events []EventRow, limit int) ([]RatedEvent, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if len(events) == 0 {
		return []RatedEvent{}, nil
	}
	counts, err := e.store.CountsByEvent(ctx, eventIDs(events))
	if err != nil {
		return nil, err
	}
	rated := make([]RatedEvent, 0, len(events))
	for _, ev := range events {
		c, ok := counts[ev.ID]
		if !ok || c.Reviews == 0 || c.AverageRating == nil {
			continue
		}
		rated = append(rated, RatedEvent{
			EventRow:      ev,
			AverageRating: *c.AverageRating,
			ReviewsCount:  c.Reviews,
		})
	}
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].AverageRating != rated[j].AverageRating {
			return rated[i].AverageRating > rated[j].AverageRating
		}
		if rated[i].ReviewsCount != rated[j].ReviewsCount {
			return rated[i].ReviewsCount > rated[j].ReviewsCount
		}
		return rated[i].ID < rated[j].ID
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated, nil
}

func eventIDs(events []EventRow) []uint64 {
	ids := make([]uint64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	return ids
}
