// This file implements stats.Store over MySQL. Each method is one or two
// aggregate queries returning materialized results; the engine in
// internal/stats does the grouping, ranking and null-vs-zero handling.
// NULL averages from AVG() over empty sets are surfaced as nil pointers,
// never coerced to 0.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gatherly/eventhub/internal/stats"
)

// StatsRepo serves the read-only aggregate queries the dashboard
// aggregation engine needs.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// compile-time check that StatsRepo satisfies the engine's contract
var _ stats.Store = (*StatsRepo)(nil)

const eventRowSelect = `SELECT e.id, e.organizer_id, u.email, c.name,
	   e.title, e.slug, e.location, e.start_at, e.end_at, e.capacity, e.status
FROM events e
JOIN users u ON u.id = e.organizer_id
LEFT JOIN event_categories c ON c.id = e.category_id`

// EventsByOrganizer returns the organizer's events with joined category
// name and organizer email, newest start time first.
func (r *StatsRepo) EventsByOrganizer(ctx context.Context, organizerID uint64) ([]stats.EventRow, error) {
	q := eventRowSelect + " WHERE e.organizer_id = ? ORDER BY e.start_at DESC, e.id DESC"
	return r.queryEvents(ctx, q, organizerID)
}

// AllEvents returns every event in the system, newest start time first.
func (r *StatsRepo) AllEvents(ctx context.Context) ([]stats.EventRow, error) {
	q := eventRowSelect + " ORDER BY e.start_at DESC, e.id DESC"
	return r.queryEvents(ctx, q)
}

func (r *StatsRepo) queryEvents(ctx context.Context, q string, args ...any) ([]stats.EventRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []stats.EventRow{}
	for rows.Next() {
		var ev stats.EventRow
		var categoryName sql.NullString
		if err := rows.Scan(&ev.ID, &ev.OrganizerID, &ev.OrganizerEmail, &categoryName,
			&ev.Title, &ev.Slug, &ev.Location, &ev.StartAt, &ev.EndAt, &ev.Capacity, &ev.Status); err != nil {
			return nil, err
		}
		if categoryName.Valid {
			name := categoryName.String
			ev.CategoryName = &name
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CountsByEvent aggregates registrations and reviews per event in two
// GROUP BY queries. Events without rows simply stay absent from the map.
func (r *StatsRepo) CountsByEvent(ctx context.Context, eventIDs []uint64) (map[uint64]stats.EventCounts, error) {
	out := make(map[uint64]stats.EventCounts, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	ph, args := inClause(eventIDs)

	regQ := `SELECT event_id, COUNT(*), COALESCE(SUM(checked_in), 0)
			 FROM event_registrations WHERE event_id IN (` + ph + `) GROUP BY event_id`
	rows, err := r.db.QueryContext(ctx, regQ, args...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uint64
		var regs, checked int64
		if err := rows.Scan(&id, &regs, &checked); err != nil {
			rows.Close()
			return nil, err
		}
		c := out[id]
		c.Registrations = regs
		c.CheckedIn = checked
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	revQ := `SELECT event_id, COUNT(*), AVG(rating)
			 FROM event_reviews WHERE event_id IN (` + ph + `) GROUP BY event_id`
	rows, err = r.db.QueryContext(ctx, revQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var reviews int64
		var avg sql.NullFloat64
		if err := rows.Scan(&id, &reviews, &avg); err != nil {
			return nil, err
		}
		c := out[id]
		c.Reviews = reviews
		if avg.Valid {
			v := avg.Float64
			c.AverageRating = &v
		}
		out[id] = c
	}
	return out, rows.Err()
}

// RegistrationTotals counts registrations and check-ins across the
// given events in a single aggregate query.
func (r *StatsRepo) RegistrationTotals(ctx context.Context, eventIDs []uint64) (stats.RegistrationTotals, error) {
	var t stats.RegistrationTotals
	if len(eventIDs) == 0 {
		return t, nil
	}
	ph, args := inClause(eventIDs)
	q := `SELECT COUNT(*), COALESCE(SUM(checked_in), 0)
		  FROM event_registrations WHERE event_id IN (` + ph + `)`
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&t.Registrations, &t.CheckedIn)
	return t, err
}

// ReviewTotals counts reviews and averages ratings across the given
// events. AVG over zero rows is NULL and comes back as a nil pointer.
func (r *StatsRepo) ReviewTotals(ctx context.Context, eventIDs []uint64) (stats.ReviewTotals, error) {
	var t stats.ReviewTotals
	if len(eventIDs) == 0 {
		return t, nil
	}
	ph, args := inClause(eventIDs)
	q := `SELECT COUNT(*), AVG(rating) FROM event_reviews WHERE event_id IN (` + ph + `)`
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&t.Reviews, &avg); err != nil {
		return t, err
	}
	if avg.Valid {
		v := avg.Float64
		t.AverageRating = &v
	}
	return t, nil
}

// CountActiveUsers counts accounts flagged active.
func (r *StatsRepo) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE is_active = TRUE").Scan(&n)
	return n, err
}

// inClause builds a "?,?,?" placeholder list and the matching args for
// an IN (...) predicate.
func inClause(ids []uint64) (string, []any) {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}
