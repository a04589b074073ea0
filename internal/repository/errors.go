// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors shared across repositories so
// handlers can map failures to HTTP responses without string matching.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row.  Handlers translate
// it into HTTP 404.  It is a distinguished state, not silently treated as an
// empty result.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write cannot proceed because of existing
// state, such as cancelling an order that already shipped or deleting a
// category that still has products.  Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// rowExists runs a probe query and reports whether it matched a row.  MySQL
// reports zero affected rows for an UPDATE whose values equal the stored
// ones, so update paths must re-check existence before treating zero as a
// missing row.
func rowExists(ctx context.Context, db *sql.DB, q string, args ...any) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, q, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
