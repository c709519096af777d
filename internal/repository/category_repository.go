// This file defines repository methods for event categories. Categories
// are a simple lookup table managed by admins. Deleting a category must
// detach it from events rather than deleting them, so the delete method
// nulls events.category_id explicitly before removing the row.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gatherly/eventhub/internal/model"
)

// ErrCategoryNotFound is returned when a category cannot be found.
var ErrCategoryNotFound = errors.New("category not found")

// ErrCategoryExists is returned when a category name is already taken.
var ErrCategoryExists = errors.New("category name already exists")

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a new category. On success the ID field is populated
// with the auto-generated value.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = "INSERT INTO event_categories (name, description) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a category by its ID. It returns ErrCategoryNotFound
// when no row exists.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	const q = "SELECT id, name, description FROM event_categories WHERE id = ?"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every category ordered by name.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	const q = "SELECT id, name, description FROM event_categories ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update changes name and description. Returns ErrCategoryNotFound when
// the category does not exist and ErrCategoryExists on a name collision.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	const q = "UPDATE event_categories SET name = ?, description = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCategoryExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Could also mean the values were unchanged; confirm existence.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category after detaching it from all events. Events
// keep existing with a NULL category.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE events SET category_id = NULL WHERE category_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM event_categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return tx.Commit()
}
