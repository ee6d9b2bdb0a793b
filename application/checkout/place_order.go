package checkout

import (
	"context"
	"fmt"

	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"github.com/muhammadheryan/runhub-checkout/utils/metrics"
	"go.uber.org/zap"
)

type orderDraft struct {
	userID        string
	method        constant.PaymentMethod
	paymentStatus constant.PaymentStatus
	shipping      model.ShippingInfo
	items         []model.OrderItemRequest
	// expectedTotal is the client's total; zero skips the comparison.
	expectedTotal int64
	commitStock   bool
}

// placeOrder prices the cart against locked product rows and inserts the
// order with its items in one transaction. Nothing is written when a line
// exceeds stock.
func (s *checkoutAppImpl) placeOrder(ctx context.Context, d *orderDraft) (*model.OrderDetail, []model.OrderItem, error) {
	if d.userID == "" {
		return nil, nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	lines, err := mergeCartLines(d.items)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[placeOrder] begin tx", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	ids := make([]uint64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDsTx(ctx, tx, ids)
	if err != nil {
		logger.Error("[placeOrder] lock products", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	byID := make(map[uint64]model.ProductStock, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total int64
	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, nil, errors.SetCustomErrorWithMessage(constant.ErrProductNotFound,
				fmt.Sprintf("product %d not found", l.ProductID))
		}
		if int64(l.Quantity) > p.StockQuantity {
			metrics.StockShortfall()
			logger.Info("[placeOrder] insufficient stock",
				zap.Uint64("product_id", p.ID), zap.Int("need", l.Quantity), zap.Int64("available", p.StockQuantity))
			return nil, nil, errors.SetCustomErrorWithMessage(constant.ErrInsufficientStock,
				fmt.Sprintf("insufficient stock for product %s", p.Name))
		}
		total += p.Price * int64(l.Quantity)
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   p.Price,
		})
	}
	if d.expectedTotal > 0 && d.expectedTotal != total {
		logger.Info("[placeOrder] total mismatch", zap.Int64("client_total", d.expectedTotal), zap.Int64("server_total", total))
		return nil, nil, errors.SetCustomError(constant.ErrAmountMismatch)
	}

	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		UserID:          d.userID,
		FullName:        d.shipping.FullName,
		Phone:           d.shipping.Phone,
		ShippingAddress: d.shipping.ShippingAddress,
		TotalAmount:     total,
		Status:          constant.OrderStatusPending,
		PaymentStatus:   d.paymentStatus,
		PaymentMethod:   d.method,
	})
	if err != nil {
		logger.Error("[placeOrder] insert order", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, items); err != nil {
		logger.Error("[placeOrder] insert items", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}

	order := &model.OrderDetail{
		ID:              orderID,
		UserID:          d.userID,
		FullName:        d.shipping.FullName,
		Phone:           d.shipping.Phone,
		ShippingAddress: d.shipping.ShippingAddress,
		TotalAmount:     total,
		Status:          constant.OrderStatusPending,
		PaymentStatus:   d.paymentStatus,
		PaymentMethod:   d.method,
		CreatedAt:       s.now(),
	}
	if d.commitStock {
		if err := s.inventoryApp.CommitOrderStockTx(ctx, tx, order, true); err != nil {
			return nil, nil, err
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[placeOrder] commit tx", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	metrics.OrderCreated(string(d.method), total)
	logger.Info("[placeOrder] order created",
		zap.Uint64("order_id", orderID), zap.String("method", string(d.method)), zap.Int64("total", total))
	return order, items, nil
}

// mergeCartLines sums repeated product ids, keeping first-seen order.
func mergeCartLines(in []model.OrderItemRequest) ([]model.OrderItemRequest, error) {
	if len(in) == 0 {
		return nil, errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "cart is empty")
	}
	out := make([]model.OrderItemRequest, 0, len(in))
	pos := make(map[uint64]int, len(in))
	for _, it := range in {
		if it.ProductID == 0 || it.Quantity <= 0 {
			return nil, errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "invalid cart line")
		}
		if i, ok := pos[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		pos[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out, nil
}

// discardOrder removes an order whose payment session could not be opened.
// It reports false when the order is still stored.
func (s *checkoutAppImpl) discardOrder(ctx context.Context, orderID uint64) bool {
	ctx = context.WithoutCancel(ctx)

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[discardOrder] begin tx", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return false
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	if err := s.orderRepo.DeleteOrderTx(ctx, tx, orderID); err != nil {
		logger.Error("[discardOrder] delete order", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return false
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[discardOrder] commit tx", zap.Uint64("order_id", orderID), zap.String("error", err.Error()))
		return false
	}
	committed = true
	return true
}
