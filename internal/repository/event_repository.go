// This file defines the EventRepo with CRUD and lookup operations for
// events. Writes always enforce ownership: an event can only be changed
// or deleted by its organizer. Public lookups only surface events whose
// status makes them visible (published or closed).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gatherly/eventhub/internal/model"
)

// ErrEventNotFound is returned when an event cannot be found.
var ErrEventNotFound = errors.New("event not found")

// ErrSlugExists is returned when an event slug is already taken.
var ErrSlugExists = errors.New("slug already exists")

// EventRepo encapsulates all database queries related to events.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventCols = "id, organizer_id, category_id, title, slug, description, location, start_at, end_at, capacity, status, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var categoryID sql.NullInt64
	err := row.Scan(&e.ID, &e.OrganizerID, &categoryID, &e.Title, &e.Slug, &e.Description,
		&e.Location, &e.StartAt, &e.EndAt, &e.Capacity, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		cid := uint64(categoryID.Int64)
		e.CategoryID = &cid
	}
	return &e, nil
}

// Create inserts a new event. On success the ID, CreatedAt and UpdatedAt
// fields are populated. A duplicate slug maps to ErrSlugExists so the
// caller can derive a fresh one and retry.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (organizer_id, category_id, title, slug, description, location, start_at, end_at, capacity, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var categoryID any
	if e.CategoryID != nil {
		categoryID = *e.CategoryID
	}
	res, err := r.db.ExecContext(ctx, q, e.OrganizerID, categoryID, e.Title, e.Slug,
		e.Description, e.Location, e.StartAt, e.EndAt, e.Capacity, e.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Follow-up SELECT to populate the timestamp defaults.
	const sel = "SELECT created_at, updated_at FROM events WHERE id = ?"
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID fetches an event by its ID regardless of status or owner.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// GetBySlug fetches a publicly visible event by slug. Draft and archived
// events are treated as not found for unauthenticated readers.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE slug = ? AND status IN ('published','closed')"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ListByOrganizer returns all events owned by one organizer, newest
// start time first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE organizer_id = ? ORDER BY start_at DESC, id DESC"
	return r.list(ctx, q, organizerID)
}

// ListPublished returns published events, soonest first, for the public
// browse endpoint.
func (r *EventRepo) ListPublished(ctx context.Context) ([]*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE status = 'published' ORDER BY start_at ASC, id ASC"
	return r.list(ctx, q)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...any) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateOwned rewrites the mutable columns of an event, but only when it
// belongs to the given organizer. ErrEventNotFound is returned when the
// event does not exist and ErrForbidden when it is owned by someone else.
func (r *EventRepo) UpdateOwned(ctx context.Context, e *model.Event, organizerID uint64) error {
	owner, err := r.ownerOf(ctx, e.ID)
	if err != nil {
		return err
	}
	if owner != organizerID {
		return ErrForbidden
	}
	const q = `UPDATE events SET category_id = ?, title = ?, slug = ?, description = ?, location = ?,
	           start_at = ?, end_at = ?, capacity = ?, status = ? WHERE id = ?`
	var categoryID any
	if e.CategoryID != nil {
		categoryID = *e.CategoryID
	}
	if _, err := r.db.ExecContext(ctx, q, categoryID, e.Title, e.Slug, e.Description,
		e.Location, e.StartAt, e.EndAt, e.Capacity, e.Status, e.ID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

// DeleteOwned removes an event owned by the organizer. Registrations and
// reviews go with it via ON DELETE CASCADE.
func (r *EventRepo) DeleteOwned(ctx context.Context, id, organizerID uint64) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != organizerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	return err
}

func (r *EventRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx, "SELECT organizer_id FROM events WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrEventNotFound
	}
	return owner, err
}
