package order_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	orderrepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func newMockTx(t *testing.T) (orderrepo.OrderRepository, *sqlx.Tx, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	x := sqlx.NewDb(db, "mysql")
	mock.ExpectBegin()
	tx, err := x.Beginx()
	require.NoError(t, err)
	return orderrepo.NewOrderRepository(x), tx, mock
}

func TestSQL_InsertOrderTx(t *testing.T) {
	repo, tx, mock := newMockTx(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `order`")).
		WithArgs("user-1", "Nguyen Van A", "0901234567", "1 Le Loi", int64(200000),
			constant.OrderStatusPending, constant.PaymentStatusCODPending, constant.PaymentMethodCOD).
		WillReturnResult(sqlmock.NewResult(15, 1))

	id, err := repo.InsertOrderTx(context.Background(), tx, &model.InsertOrderTxItem{
		UserID:          "user-1",
		FullName:        "Nguyen Van A",
		Phone:           "0901234567",
		ShippingAddress: "1 Le Loi",
		TotalAmount:     200000,
		Status:          constant.OrderStatusPending,
		PaymentStatus:   constant.PaymentStatusCODPending,
		PaymentMethod:   constant.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_InsertOrderItemsTx(t *testing.T) {
	repo, tx, mock := newMockTx(t)

	q := regexp.QuoteMeta("INSERT INTO order_item (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)")
	mock.ExpectExec(q).WithArgs(uint64(3), uint64(1), 2, int64(100000)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q).WithArgs(uint64(3), uint64(2), 1, int64(25000)).WillReturnError(errors.New("fk violation"))

	err := repo.InsertOrderItemsTx(context.Background(), tx, 3, []model.OrderItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 100000},
		{ProductID: 2, Quantity: 1, UnitPrice: 25000},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_GetOrderDetailTx(t *testing.T) {
	repo, tx, mock := newMockTx(t)

	cols := []string{"id", "user_id", "full_name", "phone", "shipping_address", "total_amount", "status",
		"payment_status", "payment_method", "payment_session_id", "stock_committed", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM `order` WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(9, "user-1", "A", "0901234567", "addr", 150000,
			"pending", "pending", "momo", "ORD9_1700000000", false, time.Now()))

	got, err := repo.GetOrderDetailTx(context.Background(), tx, 9)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, constant.PaymentMethodMomo, got.PaymentMethod)
	require.NotNil(t, got.PaymentSessionID)
	assert.Equal(t, "ORD9_1700000000", *got.PaymentSessionID)
	assert.False(t, got.StockCommitted)
}

func TestSQL_UpdatePaymentResultTx_Guarded(t *testing.T) {
	repo, tx, mock := newMockTx(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `order` SET payment_status = ?, status = ? WHERE id = ? AND payment_status = ?")).
		WithArgs(constant.PaymentStatusPaid, constant.OrderStatusConfirmed, uint64(9), constant.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdatePaymentResultTx(context.Background(), tx, &model.PaymentResultUpdate{
		OrderID:           9,
		FromPaymentStatus: constant.PaymentStatusPending,
		PaymentStatus:     constant.PaymentStatusPaid,
		Status:            constant.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_DeleteOrderTx(t *testing.T) {
	repo, tx, mock := newMockTx(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_item WHERE order_id = ?")).WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `order` WHERE id = ?")).WithArgs(uint64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteOrderTx(context.Background(), tx, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
