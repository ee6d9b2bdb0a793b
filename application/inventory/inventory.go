package inventory

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	orderrepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	productrepo "github.com/muhammadheryan/runhub-checkout/repository/product"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"github.com/muhammadheryan/runhub-checkout/utils/metrics"
	"go.uber.org/zap"
)

// InventoryApp moves product stock for an order. Both operations run inside
// the caller's transaction and are keyed on the order's stock_committed flag,
// so each order decrements stock at most once.
type InventoryApp interface {
	// CommitOrderStockTx decrements stock for every order line. With strict
	// set a shortfall aborts with ErrInsufficientStock; otherwise the product
	// is clamped to zero and the shortfall logged.
	CommitOrderStockTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, strict bool) error
	ReleaseOrderStockTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) error
}

type inventoryAppImpl struct {
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
}

func NewInventoryApp(orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository) InventoryApp {
	return &inventoryAppImpl{orderRepo: orderRepo, productRepo: productRepo}
}

func (s *inventoryAppImpl) CommitOrderStockTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, strict bool) error {
	if order.StockCommitted {
		return nil
	}

	marked, err := s.orderRepo.MarkStockCommittedTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("[CommitOrderStockTx] mark committed", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !marked {
		order.StockCommitted = true
		return nil
	}

	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("[CommitOrderStockTx] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	for _, item := range items {
		ok, err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			logger.Error("[CommitOrderStockTx] decrement stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if ok {
			continue
		}
		if strict {
			metrics.StockShortfall()
			logger.Info("[CommitOrderStockTx] insufficient stock",
				zap.Uint64("order_id", order.ID), zap.Uint64("product_id", item.ProductID), zap.Int("need", item.Quantity))
			return errors.SetCustomErrorWithMessage(constant.ErrInsufficientStock,
				fmt.Sprintf("insufficient stock for product %s", item.ProductName))
		}

		// payment already captured, the order must go through
		if err := s.productRepo.ClearStockTx(ctx, tx, item.ProductID); err != nil {
			logger.Error("[CommitOrderStockTx] clear stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		logger.Warn("[CommitOrderStockTx] oversold, stock clamped to zero",
			zap.Uint64("order_id", order.ID), zap.Uint64("product_id", item.ProductID), zap.Int("need", item.Quantity))
	}

	order.StockCommitted = true
	return nil
}

func (s *inventoryAppImpl) ReleaseOrderStockTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail) error {
	if !order.StockCommitted {
		return nil
	}

	released, err := s.orderRepo.MarkStockReleasedTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("[ReleaseOrderStockTx] mark released", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !released {
		order.StockCommitted = false
		return nil
	}

	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, order.ID)
	if err != nil {
		logger.Error("[ReleaseOrderStockTx] get items", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	for _, item := range items {
		if err := s.productRepo.IncrementStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			logger.Error("[ReleaseOrderStockTx] restore stock", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	order.StockCommitted = false
	return nil
}
