// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when an attendee successfully
// registers for an event. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	EventSlug      string `json:"event_slug"`
	AttendeeID     uint64 `json:"attendee_id"`
	StartAt        string `json:"start_at"`
	RegisteredAt   string `json:"registered_at"`
}
