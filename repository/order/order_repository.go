package order

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

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error
	GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error)
	// GetOrderDetailTx locks the order row until the transaction ends.
	GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error)
	GetOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error)
	GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error)
	UpdatePaymentSession(ctx context.Context, orderID uint64, sessionID string) error
	UpdatePaymentResultTx(ctx context.Context, tx *sqlx.Tx, req *model.PaymentResultUpdate) (bool, error)
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	MarkStockCommittedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (bool, error)
	MarkStockReleasedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (bool, error)
	DeleteOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrder  = "INSERT INTO `order` (user_id, full_name, phone, shipping_address, total_amount, status, payment_status, payment_method) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	insertItem   = "INSERT INTO order_item (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)"
	orderColumns = "SELECT id, user_id, full_name, phone, shipping_address, total_amount, status, payment_status, payment_method, payment_session_id, stock_committed, created_at FROM `order` WHERE id = ?"
	itemColumns  = "SELECT oi.id, oi.order_id, oi.product_id, p.name AS product_name, oi.quantity, oi.unit_price FROM order_item oi JOIN product p ON p.id = oi.product_id WHERE oi.order_id = ? ORDER BY oi.id"

	updateSession       = "UPDATE `order` SET payment_session_id = ? WHERE id = ?"
	updatePaymentResult = "UPDATE `order` SET payment_status = ?, status = ? WHERE id = ? AND payment_status = ?"
	updateStatus        = "UPDATE `order` SET status = ? WHERE id = ?"
	markStockCommitted  = "UPDATE `order` SET stock_committed = 1 WHERE id = ? AND stock_committed = 0"
	markStockReleased   = "UPDATE `order` SET stock_committed = 0 WHERE id = ? AND stock_committed = 1"
	deleteItems         = "DELETE FROM order_item WHERE order_id = ?"
	deleteOrder         = "DELETE FROM `order` WHERE id = ?"
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrder,
		req.UserID, req.FullName, req.Phone, req.ShippingAddress,
		req.TotalAmount, req.Status, req.PaymentStatus, req.PaymentMethod,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.OrderItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItem, orderID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQL) GetOrderDetail(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := r.conn.QueryRowxContext(ctx, orderColumns, orderID).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderDetailTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := tx.QueryRowxContext(ctx, orderColumns+" FOR UPDATE", orderID).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetOrderItems(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	if err := r.conn.SelectContext(ctx, &items, itemColumns, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	if err := tx.SelectContext(ctx, &items, itemColumns, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) UpdatePaymentSession(ctx context.Context, orderID uint64, sessionID string) error {
	_, err := r.conn.ExecContext(ctx, updateSession, sessionID, orderID)
	return err
}

func (r *SQL) UpdatePaymentResultTx(ctx context.Context, tx *sqlx.Tx, req *model.PaymentResultUpdate) (bool, error) {
	res, err := tx.ExecContext(ctx, updatePaymentResult, req.PaymentStatus, req.Status, req.OrderID, req.FromPaymentStatus)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, updateStatus, status, orderID)
	return err
}

func (r *SQL) MarkStockCommittedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, markStockCommitted, orderID)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

func (r *SQL) MarkStockReleasedTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, markStockReleased, orderID)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

func (r *SQL) DeleteOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	if _, err := tx.ExecContext(ctx, deleteItems, orderID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, deleteOrder, orderID)
	return err
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
