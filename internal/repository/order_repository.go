package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/floramart/storefront/internal/model"
)

const orderCols = "id, user_id, status, total_cents, pincode, note, created_at, updated_at"

// OrderRepo persists orders and their items.  Creation is one transaction:
// the order header and all item rows land together or not at all.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

func scanOrder(row interface{ Scan(...any) error }, o *model.Order) error {
	var note sql.NullString
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalCents, &o.Pincode, &note, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}
	o.Note = note.String
	return nil
}

// Create inserts the order and its items in one transaction and populates
// the generated ids.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order, items []model.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, status, total_cents, pincode, note) VALUES (?,?,?,?,?)",
		o.UserID, o.Status, o.TotalCents, o.Pincode, nullIfEmpty(o.Note))
	if err != nil {
		return err
	}
	oid, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(oid)

	for i := range items {
		items[i].OrderID = o.ID
		res, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, kind, product_id, label, quantity, unit_price_cents) VALUES (?,?,?,?,?,?)",
			items[i].OrderID, items[i].Kind, items[i].ProductID, items[i].Label, items[i].Quantity, items[i].UnitPriceCents)
		if err != nil {
			return err
		}
		iid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		items[i].ID = uint64(iid)
	}
	return tx.Commit()
}

// GetByID fetches an order with its items, or ErrNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, []model.OrderItem, error) {
	var o model.Order
	err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id=?", id), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, kind, product_id, label, quantity, unit_price_cents FROM order_items WHERE order_id=? ORDER BY id",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Kind, &it.ProductID, &it.Label, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderCols+" FROM orders WHERE user_id=? ORDER BY id DESC", userID)
}

// List returns all orders for the admin dashboard, optionally filtered by
// status, newest first.
func (r *OrderRepo) List(ctx context.Context, status string) ([]*model.Order, error) {
	if status == "" {
		return r.queryOrders(ctx, "SELECT "+orderCols+" FROM orders ORDER BY id DESC")
	}
	return r.queryOrders(ctx,
		"SELECT "+orderCols+" FROM orders WHERE status=? ORDER BY id DESC", status)
}

func (r *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Order
	for rows.Next() {
		o := new(model.Order)
		if err := scanOrder(rows, o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus sets an order's status (admin operation).  Setting the status
// the order already has succeeds.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := rowExists(ctx, r.db, "SELECT 1 FROM orders WHERE id=?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// CancelOwned cancels an order belonging to userID while it is still
// pending.  Returns ErrNotFound when the order does not exist or is not
// theirs, and ErrConflict when it exists but already left the pending state.
func (r *OrderRepo) CancelOwned(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=? AND user_id=? AND status=?",
		model.OrderCancelled, id, userID, model.OrderPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var status string
	err = r.db.QueryRowContext(ctx,
		"SELECT status FROM orders WHERE id=? AND user_id=?", id, userID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
