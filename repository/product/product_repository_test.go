package product_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jmoiron/sqlx"
	productrepo "github.com/muhammadheryan/runhub-checkout/repository/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestSQL_GetByIDsTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := productrepo.NewProductRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price, stock_quantity FROM product WHERE id IN (?, ?) FOR UPDATE")).
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock_quantity"}).
			AddRow(1, "Running Cap", 100000, 10).
			AddRow(2, "Energy Gel", 25000, 3))

	tx, err := db.Beginx()
	require.NoError(t, err)

	rows, err := repo.GetByIDsTx(context.Background(), tx, []uint64{1, 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Energy Gel", rows[1].Name)
	assert.Equal(t, int64(3), rows[1].StockQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_GetByIDsTx_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := productrepo.NewProductRepository(db)

	rows, err := repo.GetByIDsTx(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_DecrementStockTx(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "enough stock", affected: 1, want: true},
		{name: "stock too low", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := productrepo.NewProductRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE product SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?")).
				WithArgs(2, uint64(7), 2).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			tx, err := db.Beginx()
			require.NoError(t, err)

			got, err := repo.DecrementStockTx(context.Background(), tx, 7, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQL_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := productrepo.NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM product WHERE id = ?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock_quantity", "category_id"}))

	got, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
