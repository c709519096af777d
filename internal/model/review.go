package model

import "time"

// Rating bounds enforced before a review is persisted. The aggregation
// layer assumes every stored rating already satisfies these bounds.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is feedback left on an event. The author reference is nulled
// when the author account is deleted; the review itself is cascade-
// deleted with its event.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – event being reviewed.
//  AuthorID  – user who wrote the review (nullable).
//  Rating    – integer score in [RatingMin, RatingMax].
//  Comment   – optional free text.
//  CreatedAt – creation timestamp.
type Review struct {
	ID        uint64    // event_reviews.id
	EventID   uint64    // event_reviews.event_id
	AuthorID  *uint64   // event_reviews.author_id (nullable)
	Rating    int       // event_reviews.rating
	Comment   string    // event_reviews.comment
	CreatedAt time.Time // event_reviews.created_at
}

// ValidRating reports whether r is an acceptable review score.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}

// Answer is an organizer's reply to a review. Answers are cascade-
// deleted with their review.
//
// Fields:
//  ID        – primary key identifier.
//  ReviewID  – review being answered.
//  AuthorID  – user who wrote the answer.
//  Text      – reply body.
//  CreatedAt – creation timestamp.
type Answer struct {
	ID        uint64    // review_answers.id
	ReviewID  uint64    // review_answers.review_id
	AuthorID  uint64    // review_answers.author_id
	Text      string    // review_answers.answer_text
	CreatedAt time.Time // review_answers.created_at
}
