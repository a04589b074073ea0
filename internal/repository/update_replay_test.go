package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
)

// MySQL reports zero affected rows when an UPDATE leaves every column as it
// was, so a replayed admin edit and a truly missing row both come back with
// RowsAffected()==0.  These tests pin down that only the missing row is an
// error.

func TestProductUpdateReplaySameValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE products SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := repository.NewProductRepo(db)
	err = repo.Update(context.Background(), &model.Product{ID: 5, Name: "Red Roses", PriceCents: 999})
	assert.NoError(t, err, "unchanged values must not read as a missing product")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE products SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := repository.NewProductRepo(db)
	err = repo.Update(context.Background(), &model.Product{ID: 404})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderUpdateStatusToCurrentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := repository.NewOrderRepo(db)
	err = repo.UpdateStatus(context.Background(), 7, model.OrderConfirmed)
	assert.NoError(t, err, "re-setting the current status must succeed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateReplaySameValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE profiles SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := repository.NewUserRepo(db)
	err = repo.UpdateProfile(context.Background(), 3, "Same Name", "9999999999")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryUpdateRowsAffectedPassThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A changed row skips the existence probe entirely.
	mock.ExpectExec("UPDATE categories SET").WillReturnResult(sqlmock.NewResult(0, 1))

	repo := repository.NewCategoryRepo(db)
	err = repo.Update(context.Background(), 2, "Bouquets", "bouquets")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
