package registration

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
)

type SQL struct {
	conn *sqlx.DB
}

type RegistrationRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.Registration, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Registration, error)
	UpdatePaymentSession(ctx context.Context, id uint64, sessionID string) error
	// UpdatePaymentResultTx only moves registrations still pending payment.
	UpdatePaymentResultTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PaymentStatus, amountPaid int64) (bool, error)
}

func NewRegistrationRepository(conn *sqlx.DB) RegistrationRepository {
	return &SQL{conn: conn}
}

const (
	getRegistration     = `SELECT id, event_id, user_id, distance, payment_status, amount_paid, payment_session_id FROM registration WHERE id = ?`
	updateSession       = `UPDATE registration SET payment_session_id = ? WHERE id = ?`
	updatePaymentResult = `UPDATE registration SET payment_status = ?, amount_paid = ? WHERE id = ? AND payment_status = ?`
)

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Registration, error) {
	var reg model.Registration
	if err := s.conn.QueryRowxContext(ctx, getRegistration, id).StructScan(&reg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (s *SQL) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Registration, error) {
	var reg model.Registration
	if err := tx.QueryRowxContext(ctx, getRegistration+" FOR UPDATE", id).StructScan(&reg); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

func (s *SQL) UpdatePaymentSession(ctx context.Context, id uint64, sessionID string) error {
	_, err := s.conn.ExecContext(ctx, updateSession, sessionID, id)
	return err
}

func (s *SQL) UpdatePaymentResultTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PaymentStatus, amountPaid int64) (bool, error) {
	res, err := tx.ExecContext(ctx, updatePaymentResult, status, amountPaid, id, constant.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
