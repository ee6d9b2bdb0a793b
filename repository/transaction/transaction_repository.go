package transaction

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/model"
)

const errDuplicateEntry = 1062

type SQL struct {
	conn *sqlx.DB
}

// TransactionRepository records provider transaction ids that were applied.
type TransactionRepository interface {
	// InsertProcessedTx returns false when (provider, trans_id) was already recorded.
	InsertProcessedTx(ctx context.Context, tx *sqlx.Tx, req *model.ProcessedTransaction) (bool, error)
}

func NewTransactionRepository(conn *sqlx.DB) TransactionRepository {
	return &SQL{conn: conn}
}

const insertProcessed = `INSERT INTO processed_transaction (provider, trans_id, reference, result_code) VALUES (?, ?, ?, ?)`

func (s *SQL) InsertProcessedTx(ctx context.Context, tx *sqlx.Tx, req *model.ProcessedTransaction) (bool, error) {
	_, err := tx.ExecContext(ctx, insertProcessed, req.Provider, req.TransID, req.Reference, req.ResultCode)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
