package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/floramart/storefront/internal/model"
)

// CategoryRepo encapsulates category persistence.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a category and populates the generated id and timestamps.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, slug) VALUES (?,?)", c.Name, c.Slug)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM categories WHERE id=?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches one category or ErrNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at, updated_at FROM categories WHERE id=?", id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update renames a category.  ErrNotFound when the row does not exist; an
// update that changes nothing succeeds.
func (r *CategoryRepo) Update(ctx context.Context, id uint64, name, slug string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name=?, slug=? WHERE id=?", name, slug, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := rowExists(ctx, r.db, "SELECT 1 FROM categories WHERE id=?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a category.  A category that still has products yields
// ErrConflict via the FK constraint.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		// MySQL 1451 = row is referenced by a foreign key
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
