package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error)
	// GetByIDsTx locks and returns the rows for ids; unknown ids are simply absent.
	GetByIDsTx(ctx context.Context, tx *sqlx.Tx, ids []uint64) ([]model.ProductStock, error)
	// DecrementStockTx reports false when stock_quantity is lower than quantity.
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) (bool, error)
	ClearStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error
	IncrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	listProducts       = `SELECT id, name, price, stock_quantity FROM product ORDER BY id LIMIT ? OFFSET ?`
	countProductsQuery = `SELECT COUNT(*) FROM product`
	getProductDetail   = `SELECT id, name, COALESCE(description, '') AS description, price, stock_quantity, category_id FROM product WHERE id = ?`
	lockProductsByIDs  = `SELECT id, name, price, stock_quantity FROM product WHERE id IN (?) FOR UPDATE`
	decrementStock     = `UPDATE product SET stock_quantity = stock_quantity - ? WHERE id = ? AND stock_quantity >= ?`
	clearStock         = `UPDATE product SET stock_quantity = 0 WHERE id = ?`
	incrementStock     = `UPDATE product SET stock_quantity = stock_quantity + ? WHERE id = ?`
)

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.ProductListItem, int64, error) {
	offset := (page - 1) * perPage

	items := make([]model.ProductListItem, 0)
	if err := s.conn.SelectContext(ctx, &items, listProducts, perPage, offset); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsQuery); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	if err := s.conn.QueryRowxContext(ctx, getProductDetail, id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (s *SQL) GetByIDsTx(ctx context.Context, tx *sqlx.Tx, ids []uint64) ([]model.ProductStock, error) {
	if len(ids) == 0 {
		return []model.ProductStock{}, nil
	}
	query, args, err := sqlx.In(lockProductsByIDs, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ProductStock, 0, len(ids))
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) (bool, error) {
	res, err := tx.ExecContext(ctx, decrementStock, quantity, productID, quantity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQL) ClearStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64) error {
	_, err := tx.ExecContext(ctx, clearStock, productID)
	return err
}

func (s *SQL) IncrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error {
	_, err := tx.ExecContext(ctx, incrementStock, quantity, productID)
	return err
}
