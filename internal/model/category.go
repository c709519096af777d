package model

// Category is a lookup value used to classify events. Categories are
// managed by admins. Deleting a category detaches it from its events
// (events.category_id is set to NULL); the events themselves survive.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique, non-empty display name.
//  Description – optional free text.
type Category struct {
	ID          uint64 // event_categories.id
	Name        string // event_categories.name
	Description string // event_categories.description
}
