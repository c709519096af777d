package repository

import (
	"context"
	"strings"
)

// EventSearchQuery defines filters and pagination for the public event
// search. TimeFilter accepts "upcoming" (default), "active" (not yet
// ended) or "any".
type EventSearchQuery struct {
	Title      string
	Category   string
	Location   string
	TimeFilter string
	Page       int
	PageSize   int
}

// PublicEventRow is one search hit with the joined category name and
// denormalized fields safe for unauthenticated consumption.
type PublicEventRow struct {
	ID       uint64  `json:"id"`
	Title    string  `json:"title"`
	Slug     string  `json:"slug"`
	Category *string `json:"category"`
	Location string  `json:"location"`
	StartAt  string  `json:"start_at"`
	EndAt    string  `json:"end_at"`
	Capacity uint32  `json:"capacity"`
}

// SearchPublished searches published events with optional filters and
// returns one page plus the total hit count.
func (r *EventRepo) SearchPublished(ctx context.Context, q EventSearchQuery) ([]PublicEventRow, int64, error) {
	where := []string{"e.status = 'published'"}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "active":
		where = append(where, "e.end_at >= NOW()")
	default:
		where = append(where, "e.start_at >= NOW()")
	}

	if q.Title != "" {
		where = append(where, "LOWER(e.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Category != "" {
		where = append(where, "LOWER(c.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Category)+"%")
	}
	if q.Location != "" {
		where = append(where, "LOWER(e.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM events e
		LEFT JOIN event_categories c ON c.id = e.category_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.Page < 1 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			e.id,
			e.title,
			e.slug,
			c.name AS category,
			e.location,
			DATE_FORMAT(e.start_at, '%Y-%m-%d %T') AS start_at,
			DATE_FORMAT(e.end_at,   '%Y-%m-%d %T') AS end_at,
			e.capacity
		FROM events e
		LEFT JOIN event_categories c ON c.id = e.category_id
		WHERE ` + cond + `
		ORDER BY e.start_at ASC, e.id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicEventRow, 0, limit)
	for rows.Next() {
		var d PublicEventRow
		if err := rows.Scan(&d.ID, &d.Title, &d.Slug, &d.Category, &d.Location, &d.StartAt, &d.EndAt, &d.Capacity); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
