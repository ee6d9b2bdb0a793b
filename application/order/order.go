package order

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/application/inventory"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	orderrepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	txrepo "github.com/muhammadheryan/runhub-checkout/repository/tx"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"go.uber.org/zap"
)

// transitions lists the fulfilment moves allowed from each status.
var transitions = map[constant.OrderStatus][]constant.OrderStatus{
	constant.OrderStatusPending:   {constant.OrderStatusConfirmed, constant.OrderStatusCancelled},
	constant.OrderStatusConfirmed: {constant.OrderStatusShipping, constant.OrderStatusCancelled},
	constant.OrderStatusShipping:  {constant.OrderStatusCompleted, constant.OrderStatusCancelled},
}

type OrderApp interface {
	GetOrder(ctx context.Context, userID string, orderID uint64) (*model.OrderView, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) error
	// ExpireOrder cancels a wallet order whose payment window passed. Orders
	// that are already settled are left alone.
	ExpireOrder(ctx context.Context, orderID uint64) error
}

type Deps struct {
	TxRepo       txrepo.TxRepository
	OrderRepo    orderrepo.OrderRepository
	InventoryApp inventory.InventoryApp
	Events       kafka.Publisher
}

type orderAppImpl struct {
	txRepo       txrepo.TxRepository
	orderRepo    orderrepo.OrderRepository
	inventoryApp inventory.InventoryApp
	events       kafka.Publisher
}

func NewOrderApp(d Deps) OrderApp {
	return &orderAppImpl{
		txRepo:       d.TxRepo,
		orderRepo:    d.OrderRepo,
		inventoryApp: d.InventoryApp,
		events:       d.Events,
	}
}

func (s *orderAppImpl) GetOrder(ctx context.Context, userID string, orderID uint64) (*model.OrderView, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	order, err := s.orderRepo.GetOrderDetail(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order detail", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	// someone else's order reads as missing
	if order == nil || order.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &model.OrderView{Order: order, Items: items}, nil
}

func (s *orderAppImpl) UpdateOrderStatus(ctx context.Context, orderID uint64, status constant.OrderStatus) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateOrderStatus] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if !allowed(order.Status, status) {
		return errors.SetCustomErrorWithMessage(constant.ErrInvalidOrderStatus,
			"cannot move order from "+string(order.Status)+" to "+string(status))
	}

	switch status {
	case constant.OrderStatusConfirmed:
		// wallet and card orders are confirmed by their payment, not by hand
		if order.PaymentStatus != constant.PaymentStatusCODPending && order.PaymentStatus != constant.PaymentStatusPaid {
			return errors.SetCustomErrorWithMessage(constant.ErrInvalidOrderStatus, "order is awaiting payment")
		}
		err = s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, status)
	case constant.OrderStatusCompleted:
		if order.PaymentStatus == constant.PaymentStatusCODPending {
			// cash collected on delivery
			err = s.setPaymentResult(ctx, tx, order, constant.PaymentStatusPaid, status)
		} else {
			err = s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, status)
		}
	case constant.OrderStatusCancelled:
		if err := s.inventoryApp.ReleaseOrderStockTx(ctx, tx, order); err != nil {
			return err
		}
		if order.PaymentStatus == constant.PaymentStatusPending || order.PaymentStatus == constant.PaymentStatusCODPending {
			err = s.setPaymentResult(ctx, tx, order, constant.PaymentStatusFailed, status)
		} else {
			err = s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, status)
		}
	default:
		err = s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, status)
	}
	if err != nil {
		if _, ok := err.(errors.CustomError); ok {
			return err
		}
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateOrderStatus] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[UpdateOrderStatus] order status changed",
		zap.Uint64("order_id", orderID), zap.String("from", string(order.Status)), zap.String("to", string(status)))
	s.publish(ctx, kafka.Event{
		EventType: kafka.EventOrderStatusChanged,
		OrderID:   orderID,
		Payload: map[string]interface{}{
			"from": string(order.Status),
			"to":   string(status),
		},
	})
	return nil
}

func (s *orderAppImpl) ExpireOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ExpireOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[ExpireOrder] get order detail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if order.PaymentMethod != constant.PaymentMethodMomo ||
		order.Status != constant.OrderStatusPending ||
		order.PaymentStatus != constant.PaymentStatusPending {
		logger.Info("[ExpireOrder] order not awaiting payment, skipped",
			zap.Uint64("order_id", orderID), zap.String("payment_status", string(order.PaymentStatus)))
		return nil
	}

	if err := s.inventoryApp.ReleaseOrderStockTx(ctx, tx, order); err != nil {
		return err
	}
	updated, err := s.orderRepo.UpdatePaymentResultTx(ctx, tx, &model.PaymentResultUpdate{
		OrderID:           orderID,
		FromPaymentStatus: constant.PaymentStatusPending,
		PaymentStatus:     constant.PaymentStatusFailed,
		Status:            constant.OrderStatusCancelled,
	})
	if err != nil {
		logger.Error("[ExpireOrder] update payment result", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !updated {
		return nil
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ExpireOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[ExpireOrder] order expired", zap.Uint64("order_id", orderID))
	s.publish(ctx, kafka.Event{EventType: kafka.EventOrderExpired, OrderID: orderID})
	return nil
}

func (s *orderAppImpl) setPaymentResult(ctx context.Context, tx *sqlx.Tx, order *model.OrderDetail, payment constant.PaymentStatus, status constant.OrderStatus) error {
	updated, err := s.orderRepo.UpdatePaymentResultTx(ctx, tx, &model.PaymentResultUpdate{
		OrderID:           order.ID,
		FromPaymentStatus: order.PaymentStatus,
		PaymentStatus:     payment,
		Status:            status,
	})
	if err != nil {
		return err
	}
	if !updated {
		return errors.SetCustomErrorWithMessage(constant.ErrInvalidOrderStatus, "order payment changed concurrently")
	}
	return nil
}

func (s *orderAppImpl) publish(ctx context.Context, ev kafka.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		logger.Warn("[OrderApp] publish event", zap.String("event_type", ev.EventType), zap.String("error", err.Error()))
	}
}

func allowed(from, to constant.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
