package model

import "time"

// Registration links an attendee to an event. The (event, attendee) pair
// is unique; a second registration attempt for the same pair is rejected
// at the write boundary, never silently duplicated. Rows are cascade-
// deleted when either the event or the attendee is deleted.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – event being attended.
//  AttendeeID   – user attending the event.
//  RegisteredAt – when the registration was created.
//  CheckedIn    – whether the attendee was marked present.
type Registration struct {
	ID           uint64    // event_registrations.id
	EventID      uint64    // event_registrations.event_id
	AttendeeID   uint64    // event_registrations.attendee_id
	RegisteredAt time.Time // event_registrations.registered_at
	CheckedIn    bool      // event_registrations.checked_in
}
