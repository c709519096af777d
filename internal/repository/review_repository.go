// This file defines the ReviewRepo for event reviews and their answers.
// The rating bound is validated here as the last line of defense before
// persistence; everything downstream (the aggregation layer included)
// assumes stored ratings are within range.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gatherly/eventhub/internal/model"
)

// ErrRatingRange is returned when a review rating falls outside [1,5].
var ErrRatingRange = errors.New("rating must be between 1 and 5")

// ErrReviewNotFound is returned when a review cannot be found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepo encapsulates all database queries related to reviews and
// review answers.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review. The rating is validated before any SQL runs.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
	if !model.ValidRating(rev.Rating) {
		return ErrRatingRange
	}
	const q = "INSERT INTO event_reviews (event_id, author_id, rating, comment) VALUES (?, ?, ?, ?)"
	var authorID any
	if rev.AuthorID != nil {
		authorID = *rev.AuthorID
	}
	res, err := r.db.ExecContext(ctx, q, rev.EventID, authorID, rev.Rating, rev.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM event_reviews WHERE id = ?", rev.ID).Scan(&rev.CreatedAt)
}

// ReviewRow is a review joined with its author's email (null when the
// author account was deleted) for listing.
type ReviewRow struct {
	ID          uint64  `json:"id"`
	AuthorEmail *string `json:"author_email"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment"`
	CreatedAt   string  `json:"created_at"`
}

// ListByEvent returns an event's reviews, newest first.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID uint64) ([]ReviewRow, error) {
	const q = `SELECT v.id, u.email, v.rating, v.comment,
	                  DATE_FORMAT(v.created_at, '%Y-%m-%d %T')
	           FROM event_reviews v
	           LEFT JOIN users u ON u.id = v.author_id
	           WHERE v.event_id = ?
	           ORDER BY v.created_at DESC, v.id DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReviewRow{}
	for rows.Next() {
		var v ReviewRow
		if err := rows.Scan(&v.ID, &v.AuthorEmail, &v.Rating, &v.Comment, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CreateAnswer stores an organizer's reply to a review. Only the
// organizer of the reviewed event may answer; foreign events yield
// ErrForbidden and a missing review yields ErrReviewNotFound.
func (r *ReviewRepo) CreateAnswer(ctx context.Context, a *model.Answer, organizerID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT e.organizer_id FROM event_reviews v JOIN events e ON e.id = v.event_id WHERE v.id = ?`,
		a.ReviewID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	if owner != organizerID {
		return ErrForbidden
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO review_answers (review_id, author_id, answer_text) VALUES (?, ?, ?)",
		a.ReviewID, a.AuthorID, a.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM review_answers WHERE id = ?", a.ID).Scan(&a.CreatedAt)
}

// ListAnswers returns the answers of a review, oldest first.
func (r *ReviewRepo) ListAnswers(ctx context.Context, reviewID uint64) ([]*model.Answer, error) {
	const q = `SELECT id, review_id, author_id, answer_text, created_at
	           FROM review_answers WHERE review_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.ReviewID, &a.AuthorID, &a.Text, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
