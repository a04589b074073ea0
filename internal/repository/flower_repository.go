package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/floramart/storefront/internal/model"
)

const flowerCols = "id, name, color, stem_price_cents, in_stock, created_at, updated_at"

// FlowerRepo encapsulates persistence for bouquet-builder stems.
type FlowerRepo struct{ db *sql.DB }

func NewFlowerRepo(db *sql.DB) *FlowerRepo { return &FlowerRepo{db: db} }

func scanFlower(row interface{ Scan(...any) error }, f *model.Flower) error {
	return row.Scan(&f.ID, &f.Name, &f.Color, &f.StemPriceCents, &f.InStock, &f.CreatedAt, &f.UpdatedAt)
}

// Create inserts a flower and populates the generated id and timestamps.
func (r *FlowerRepo) Create(ctx context.Context, f *model.Flower) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO flowers (name, color, stem_price_cents, in_stock) VALUES (?,?,?,?)",
		f.Name, f.Color, f.StemPriceCents, f.InStock)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return scanFlower(r.db.QueryRowContext(ctx,
		"SELECT "+flowerCols+" FROM flowers WHERE id=?", f.ID), f)
}

// GetByID fetches one flower or ErrNotFound.
func (r *FlowerRepo) GetByID(ctx context.Context, id uint64) (*model.Flower, error) {
	var f model.Flower
	err := scanFlower(r.db.QueryRowContext(ctx,
		"SELECT "+flowerCols+" FROM flowers WHERE id=?", id), &f)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByIDs loads the given flowers into a map keyed by id.  Missing ids are
// simply absent from the map; the bouquet pricer treats them as unknown.
func (r *FlowerRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Flower, error) {
	out := make(map[uint64]model.Flower, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := "SELECT " + flowerCols + " FROM flowers WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var f model.Flower
		if err := scanFlower(rows, &f); err != nil {
			return nil, err
		}
		out[f.ID] = f
	}
	return out, rows.Err()
}

// List returns all flowers, optionally only the ones in stock.
func (r *FlowerRepo) List(ctx context.Context, inStockOnly bool) ([]*model.Flower, error) {
	q := "SELECT " + flowerCols + " FROM flowers"
	if inStockOnly {
		q += " WHERE in_stock=1"
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Flower
	for rows.Next() {
		f := new(model.Flower)
		if err := scanFlower(rows, f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Update rewrites all mutable columns of a flower.  Replaying the same
// values succeeds; only a missing row is ErrNotFound.
func (r *FlowerRepo) Update(ctx context.Context, f *model.Flower) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE flowers SET name=?, color=?, stem_price_cents=?, in_stock=? WHERE id=?",
		f.Name, f.Color, f.StemPriceCents, f.InStock, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := rowExists(ctx, r.db, "SELECT 1 FROM flowers WHERE id=?", f.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a flower.
func (r *FlowerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM flowers WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
