// This file defines the RegistrationRepo. Registration writes carry the
// two domain invariants: one registration per (event, attendee) pair,
// enforced by a unique key, and the capacity guard, enforced atomically
// by a conditional INSERT so concurrent registrations cannot oversell an
// event.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gatherly/eventhub/internal/model"
)

// ErrAlreadyRegistered is returned on a duplicate (event, attendee)
// registration attempt.
var ErrAlreadyRegistered = errors.New("already registered")

// ErrEventFull is returned when an event has reached its capacity.
var ErrEventFull = errors.New("event full")

// ErrRegistrationNotFound is returned when a registration cannot be found.
var ErrRegistrationNotFound = errors.New("registration not found")

// RegistrationRepo encapsulates all database queries related to event
// registrations.
type RegistrationRepo struct {
	db *sql.DB
}

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Create registers an attendee for an event. The INSERT only matches
// when the event exists and either has unlimited capacity (0) or still
// has room, so the capacity check and the insert are a single atomic
// statement. Zero affected rows therefore means "full" (the event's
// existence is checked by the caller beforehand). A duplicate-key error
// on the (event_id, attendee_id) unique index maps to ErrAlreadyRegistered.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	const q = `INSERT INTO event_registrations (event_id, attendee_id)
	           SELECT e.id, ? FROM events e
	           WHERE e.id = ?
	             AND (e.capacity = 0 OR
	                  (SELECT COUNT(*) FROM event_registrations x WHERE x.event_id = e.id) < e.capacity)`
	res, err := r.db.ExecContext(ctx, q, reg.AttendeeID, reg.EventID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyRegistered
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventFull
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	const sel = "SELECT registered_at, checked_in FROM event_registrations WHERE id = ?"
	return r.db.QueryRowContext(ctx, sel, reg.ID).Scan(&reg.RegisteredAt, &reg.CheckedIn)
}

// GetForAttendee fetches one registration belonging to the attendee.
func (r *RegistrationRepo) GetForAttendee(ctx context.Context, eventID, attendeeID uint64) (*model.Registration, error) {
	const q = `SELECT id, event_id, attendee_id, registered_at, checked_in
	           FROM event_registrations WHERE event_id = ? AND attendee_id = ?`
	var reg model.Registration
	err := r.db.QueryRowContext(ctx, q, eventID, attendeeID).
		Scan(&reg.ID, &reg.EventID, &reg.AttendeeID, &reg.RegisteredAt, &reg.CheckedIn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Cancel removes the attendee's registration for an event.
func (r *RegistrationRepo) Cancel(ctx context.Context, eventID, attendeeID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM event_registrations WHERE event_id = ? AND attendee_id = ?",
		eventID, attendeeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

// AttendeeRow is a registration joined with the attendee's email for
// organizer-facing listings.
type AttendeeRow struct {
	ID            uint64 `json:"id"`
	AttendeeID    uint64 `json:"attendee_id"`
	AttendeeEmail string `json:"attendee_email"`
	RegisteredAt  string `json:"registered_at"`
	CheckedIn     bool   `json:"checked_in"`
}

// ListByEvent returns the registrations of an event, but only when the
// event is owned by the given organizer. ErrForbidden is returned for
// foreign events and ErrEventNotFound for missing ones.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID, organizerID uint64) ([]AttendeeRow, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx, "SELECT organizer_id FROM events WHERE id = ?", eventID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if owner != organizerID {
		return nil, ErrForbidden
	}
	const q = `SELECT r.id, r.attendee_id, u.email,
	                  DATE_FORMAT(r.registered_at, '%Y-%m-%d %T'), r.checked_in
	           FROM event_registrations r
	           JOIN users u ON u.id = r.attendee_id
	           WHERE r.event_id = ?
	           ORDER BY r.registered_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AttendeeRow{}
	for rows.Next() {
		var a AttendeeRow
		if err := rows.Scan(&a.ID, &a.AttendeeID, &a.AttendeeEmail, &a.RegisteredAt, &a.CheckedIn); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CheckIn marks a registration as attended. Only the organizer of the
// registration's event may check attendees in.
func (r *RegistrationRepo) CheckIn(ctx context.Context, registrationID, organizerID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT e.organizer_id FROM event_registrations r JOIN events e ON e.id = r.event_id WHERE r.id = ?`,
		registrationID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}
	if owner != organizerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE event_registrations SET checked_in = TRUE WHERE id = ?", registrationID)
	return err
}
