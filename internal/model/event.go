package model

import "time"

// Event status values. Draft events are visible only to their organizer,
// published events accept registrations, closed events no longer do, and
// archived events are hidden from public listings.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
	StatusArchived  = "archived"
)

// Event represents a row in the `events` table. Every event belongs to
// exactly one organizer and optionally to a category. Registrations and
// reviews are cascade-deleted with their event.
//
// Fields:
//  ID          – primary key identifier.
//  OrganizerID – user who owns the event (cascade-deleted with the user).
//  CategoryID  – optional category reference (nulled on category delete).
//  Title       – human-friendly name.
//  Slug        – unique URL-safe identifier derived from the title.
//  Description – optional free text.
//  Location    – optional venue description.
//  StartAt     – when the event begins.
//  EndAt       – when the event ends (must not precede StartAt).
//  Capacity    – maximum attendee count; 0 means unlimited.
//  Status      – lifecycle state (draft, published, closed, archived).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    // events.id
	OrganizerID uint64    // events.organizer_id
	CategoryID  *uint64   // events.category_id (nullable)
	Title       string    // events.title
	Slug        string    // events.slug
	Description string    // events.description
	Location    string    // events.location
	StartAt     time.Time // events.start_at
	EndAt       time.Time // events.end_at
	Capacity    uint32    // events.capacity (0 = unlimited)
	Status      string    // events.status
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// IsActive reports whether the event is live from an attendee's point of
// view: published or closed, but not draft or archived.
func (e *Event) IsActive() bool {
	return e.Status == StatusPublished || e.Status == StatusClosed
}

// HasStarted reports whether the event's start time has passed.
func (e *Event) HasStarted() bool {
	return !time.Now().UTC().Before(e.StartAt)
}
