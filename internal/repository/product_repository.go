package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/floramart/storefront/internal/model"
)

const productCols = "id, category_id, name, slug, description, price_cents, image_url, is_active, created_at, updated_at"

// ProductRepo encapsulates product persistence.
type ProductRepo struct{ db *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func scanProduct(row interface{ Scan(...any) error }, p *model.Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a product and populates the generated id and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO products (category_id, name, slug, description, price_cents, image_url, is_active) VALUES (?,?,?,?,?,?,?)",
		p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.ImageURL, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=?", p.ID), p)
}

// GetByID fetches one product or ErrNotFound.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	err := scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=?", id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug fetches one active product by its slug or ErrNotFound.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var p model.Product
	err := scanProduct(r.db.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE slug=? AND is_active=1", slug), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products, optionally filtered by category.  When activeOnly
// is set, hidden products are excluded (public browse); admin listings pass
// false to see everything.
func (r *ProductRepo) List(ctx context.Context, categoryID uint64, activeOnly bool) ([]*model.Product, error) {
	q := "SELECT " + productCols + " FROM products WHERE 1=1"
	var args []any
	if categoryID != 0 {
		q += " AND category_id=?"
		args = append(args, categoryID)
	}
	if activeOnly {
		q += " AND is_active=1"
	}
	q += " ORDER BY id"
	return r.queryProducts(ctx, q, args...)
}

// Search returns active products whose name or description matches the term.
func (r *ProductRepo) Search(ctx context.Context, term string) ([]*model.Product, error) {
	like := "%" + term + "%"
	q := "SELECT " + productCols + " FROM products WHERE is_active=1 AND (name LIKE ? OR description LIKE ?) ORDER BY name"
	return r.queryProducts(ctx, q, like, like)
}

func (r *ProductRepo) queryProducts(ctx context.Context, q string, args ...any) ([]*model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Product
	for rows.Next() {
		p := new(model.Product)
		if err := scanProduct(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns of a product.  ErrNotFound when the
// row does not exist; replaying the same values succeeds.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET category_id=?, name=?, slug=?, description=?, price_cents=?, image_url=?, is_active=? WHERE id=?",
		p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.ImageURL, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := rowExists(ctx, r.db, "SELECT 1 FROM products WHERE id=?", p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
