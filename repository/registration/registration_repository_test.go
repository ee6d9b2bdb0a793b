package registration_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/constant"
	regrepo "github.com/muhammadheryan/runhub-checkout/repository/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/DATA-DOG/go-sqlmock.v1"
)

func TestSQL_UpdatePaymentResultTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	x := sqlx.NewDb(db, "mysql")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE registration SET payment_status = ?, amount_paid = ? WHERE id = ? AND payment_status = ?")).
		WithArgs(constant.PaymentStatusPaid, int64(350000), uint64(12), constant.PaymentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := x.Beginx()
	require.NoError(t, err)

	ok, err := regrepo.NewRegistrationRepository(x).UpdatePaymentResultTx(context.Background(), tx, 12, constant.PaymentStatusPaid, 350000)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQL_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	x := sqlx.NewDb(db, "mysql")

	mock.ExpectQuery(regexp.QuoteMeta("FROM registration WHERE id = ?")).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "distance", "payment_status", "amount_paid", "payment_session_id"}).
			AddRow(12, 3, "user-1", "21km", "pending", 0, nil))

	got, err := regrepo.NewRegistrationRepository(x).GetByID(context.Background(), 12)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "21km", got.Distance)
	assert.Nil(t, got.PaymentSessionID)
}
