package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/application/inventory"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	orderrepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	redisrepo "github.com/muhammadheryan/runhub-checkout/repository/redis"
	registrationrepo "github.com/muhammadheryan/runhub-checkout/repository/registration"
	transactionrepo "github.com/muhammadheryan/runhub-checkout/repository/transaction"
	txrepo "github.com/muhammadheryan/runhub-checkout/repository/tx"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/momo"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"github.com/muhammadheryan/runhub-checkout/utils/metrics"
	"go.uber.org/zap"
)

const (
	resultPaid    = "paid"
	resultFailed  = "failed"
	resultIgnored = "ignored"
)

type PaymentApp interface {
	// HandleMomoCallback applies a MoMo IPN. Redeliveries of a transaction
	// that was already applied return nil without touching any row.
	HandleMomoCallback(ctx context.Context, payload *momo.CallbackPayload) error
}

type Deps struct {
	TxRepo           txrepo.TxRepository
	OrderRepo        orderrepo.OrderRepository
	RegistrationRepo registrationrepo.RegistrationRepository
	TransactionRepo  transactionrepo.TransactionRepository
	RedisRepo        redisrepo.Repository
	InventoryApp     inventory.InventoryApp
	Momo             momo.Gateway
	Events           kafka.Publisher
}

type paymentAppImpl struct {
	txRepo           txrepo.TxRepository
	orderRepo        orderrepo.OrderRepository
	registrationRepo registrationrepo.RegistrationRepository
	transactionRepo  transactionrepo.TransactionRepository
	redisRepo        redisrepo.Repository
	inventoryApp     inventory.InventoryApp
	momo             momo.Gateway
	events           kafka.Publisher
}

func NewPaymentApp(d Deps) PaymentApp {
	return &paymentAppImpl{
		txRepo:           d.TxRepo,
		orderRepo:        d.OrderRepo,
		registrationRepo: d.RegistrationRepo,
		transactionRepo:  d.TransactionRepo,
		redisRepo:        d.RedisRepo,
		inventoryApp:     d.InventoryApp,
		momo:             d.Momo,
		events:           d.Events,
	}
}

type outcome struct {
	result string
	event  *kafka.Event
}

func (s *paymentAppImpl) HandleMomoCallback(ctx context.Context, payload *momo.CallbackPayload) error {
	if payload == nil || !s.momo.VerifyCallback(payload) {
		metrics.PaymentCallback(constant.ProviderMomo, "rejected")
		ref := ""
		if payload != nil {
			ref = payload.OrderID
		}
		logger.Warn("[HandleMomoCallback] invalid signature", zap.String("momo_order_id", ref))
		return errors.SetCustomError(constant.ErrInvalidSignature)
	}

	target, err := momo.DecodeExtraData(payload.ExtraData)
	if err != nil {
		logger.Warn("[HandleMomoCallback] bad extraData", zap.String("momo_order_id", payload.OrderID), zap.String("error", err.Error()))
		return errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "invalid extraData")
	}

	transID := strconv.FormatInt(payload.TransID, 10)
	resultKey := fmt.Sprintf(constant.KeyCallbackResult, constant.ProviderMomo, transID)
	cached, err := s.redisRepo.Get(ctx, resultKey)
	if err != nil {
		logger.Warn("[HandleMomoCallback] read cached result", zap.String("error", err.Error()))
	}
	if cached != "" {
		metrics.PaymentCallbackDuplicate(constant.ProviderMomo)
		logger.Info("[HandleMomoCallback] transaction already applied", zap.String("trans_id", transID), zap.String("result", cached))
		return nil
	}

	lockKey := fmt.Sprintf(constant.KeyCallbackLock, constant.ProviderMomo, transID)
	locked, err := s.redisRepo.AcquireLock(ctx, lockKey, constant.TTLCallbackLock)
	switch {
	case err != nil:
		// processed_transaction still rejects the duplicate
		logger.Warn("[HandleMomoCallback] callback lock unavailable", zap.String("error", err.Error()))
	case !locked:
		metrics.PaymentCallbackDuplicate(constant.ProviderMomo)
		logger.Info("[HandleMomoCallback] delivery already in flight", zap.String("trans_id", transID))
		return nil
	default:
		defer func() {
			if err := s.redisRepo.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
				logger.Warn("[HandleMomoCallback] release lock", zap.String("error", err.Error()))
			}
		}()
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[HandleMomoCallback] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	inserted, err := s.transactionRepo.InsertProcessedTx(ctx, tx, &model.ProcessedTransaction{
		Provider:   constant.ProviderMomo,
		TransID:    transID,
		Reference:  payload.OrderID,
		ResultCode: payload.ResultCode,
	})
	if err != nil {
		logger.Error("[HandleMomoCallback] record transaction", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if !inserted {
		metrics.PaymentCallbackDuplicate(constant.ProviderMomo)
		logger.Info("[HandleMomoCallback] transaction already processed", zap.String("trans_id", transID))
		return nil
	}

	var out *outcome
	if target.OrderID != 0 {
		out, err = s.applyOrderResult(ctx, tx, target.OrderID, payload)
	} else {
		out, err = s.applyRegistrationResult(ctx, tx, target.RegistrationID, payload)
	}
	if err != nil {
		metrics.PaymentCallback(constant.ProviderMomo, "error")
		return err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[HandleMomoCallback] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := s.redisRepo.SetWithTTL(ctx, resultKey, out.result, constant.TTLCallbackResult); err != nil {
		logger.Warn("[HandleMomoCallback] cache result", zap.String("trans_id", transID), zap.String("error", err.Error()))
	}
	metrics.PaymentCallback(constant.ProviderMomo, out.result)
	if out.event != nil && s.events != nil {
		if err := s.events.PublishEvent(ctx, *out.event); err != nil {
			logger.Warn("[HandleMomoCallback] publish event", zap.String("event_type", out.event.EventType), zap.String("error", err.Error()))
		}
	}
	return nil
}

func (s *paymentAppImpl) applyOrderResult(ctx context.Context, tx *sqlx.Tx, orderID uint64, p *momo.CallbackPayload) (*outcome, error) {
	order, err := s.orderRepo.GetOrderDetailTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[applyOrderResult] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	success := p.ResultCode == constant.MomoResultSuccess
	if order.PaymentStatus != constant.PaymentStatusPending {
		if success && order.PaymentStatus != constant.PaymentStatusPaid {
			logger.Warn("[applyOrderResult] payment captured for a settled order, refund needed",
				zap.Uint64("order_id", order.ID), zap.String("payment_status", string(order.PaymentStatus)), zap.Int64("trans_id", p.TransID))
		} else {
			logger.Info("[applyOrderResult] order already settled", zap.Uint64("order_id", order.ID))
		}
		return &outcome{result: resultIgnored}, nil
	}
	if p.Amount != order.TotalAmount {
		logger.Warn("[applyOrderResult] callback amount differs from order total",
			zap.Uint64("order_id", order.ID), zap.Int64("amount", p.Amount), zap.Int64("total", order.TotalAmount))
	}

	update := &model.PaymentResultUpdate{OrderID: order.ID, FromPaymentStatus: constant.PaymentStatusPending}
	eventType := kafka.EventOrderPaid
	result := resultPaid
	if success {
		if err := s.inventoryApp.CommitOrderStockTx(ctx, tx, order, false); err != nil {
			return nil, err
		}
		update.PaymentStatus = constant.PaymentStatusPaid
		update.Status = constant.OrderStatusConfirmed
	} else {
		if err := s.inventoryApp.ReleaseOrderStockTx(ctx, tx, order); err != nil {
			return nil, err
		}
		update.PaymentStatus = constant.PaymentStatusFailed
		update.Status = constant.OrderStatusCancelled
		eventType = kafka.EventOrderPaymentFailed
		result = resultFailed
	}

	updated, err := s.orderRepo.UpdatePaymentResultTx(ctx, tx, update)
	if err != nil {
		logger.Error("[applyOrderResult] update payment result", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !updated {
		logger.Error("[applyOrderResult] order left pending concurrently", zap.Uint64("order_id", order.ID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[applyOrderResult] payment applied",
		zap.Uint64("order_id", order.ID), zap.String("payment_status", string(update.PaymentStatus)), zap.Int64("trans_id", p.TransID))
	return &outcome{
		result: result,
		event: &kafka.Event{
			EventType: eventType,
			OrderID:   order.ID,
			Payload: map[string]interface{}{
				"provider":   constant.ProviderMomo,
				"transId":    p.TransID,
				"resultCode": p.ResultCode,
				"amount":     p.Amount,
			},
		},
	}, nil
}

func (s *paymentAppImpl) applyRegistrationResult(ctx context.Context, tx *sqlx.Tx, registrationID uint64, p *momo.CallbackPayload) (*outcome, error) {
	reg, err := s.registrationRepo.GetByIDTx(ctx, tx, registrationID)
	if err != nil {
		logger.Error("[applyRegistrationResult] get registration", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if reg == nil {
		return nil, errors.SetCustomError(constant.ErrRegistrationNotFound)
	}
	if reg.PaymentStatus != constant.PaymentStatusPending {
		logger.Info("[applyRegistrationResult] registration already settled", zap.Uint64("registration_id", reg.ID))
		return &outcome{result: resultIgnored}, nil
	}

	status, amount := constant.PaymentStatusFailed, reg.AmountPaid
	eventType, result := kafka.EventRegistrationFailed, resultFailed
	if p.ResultCode == constant.MomoResultSuccess {
		status, amount = constant.PaymentStatusPaid, p.Amount
		eventType, result = kafka.EventRegistrationPaid, resultPaid
	}

	updated, err := s.registrationRepo.UpdatePaymentResultTx(ctx, tx, reg.ID, status, amount)
	if err != nil {
		logger.Error("[applyRegistrationResult] update payment result", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if !updated {
		logger.Error("[applyRegistrationResult] registration left pending concurrently", zap.Uint64("registration_id", reg.ID))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &outcome{
		result: result,
		event: &kafka.Event{
			EventType:      eventType,
			RegistrationID: reg.ID,
			Payload: map[string]interface{}{
				"provider":   constant.ProviderMomo,
				"transId":    p.TransID,
				"resultCode": p.ResultCode,
				"amountPaid": amount,
			},
		},
	}, nil
}
