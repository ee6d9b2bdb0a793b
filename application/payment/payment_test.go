package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/application/payment"
	"github.com/muhammadheryan/runhub-checkout/constant"
	inventorymocks "github.com/muhammadheryan/runhub-checkout/mocks/application/inventory"
	ordermocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/order"
	redismocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/redis"
	registrationmocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/registration"
	transactionmocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/transaction"
	txmocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/tx"
	kafkamocks "github.com/muhammadheryan/runhub-checkout/mocks/thirdparty/kafka"
	momomocks "github.com/muhammadheryan/runhub-checkout/mocks/thirdparty/momo"
	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/momo"
	cerr "github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	lockKey   = "lock:ipn:momo:4088878653"
	resultKey = "ipn:result:momo:4088878653"
)

type fields struct {
	txRepo           *txmocks.TxRepository
	orderRepo        *ordermocks.OrderRepository
	registrationRepo *registrationmocks.RegistrationRepository
	transactionRepo  *transactionmocks.TransactionRepository
	redisRepo        *redismocks.Repository
	inventoryApp     *inventorymocks.InventoryApp
	momo             *momomocks.Gateway
	events           *kafkamocks.Publisher
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:           txmocks.NewTxRepository(t),
		orderRepo:        ordermocks.NewOrderRepository(t),
		registrationRepo: registrationmocks.NewRegistrationRepository(t),
		transactionRepo:  transactionmocks.NewTransactionRepository(t),
		redisRepo:        redismocks.NewRepository(t),
		inventoryApp:     inventorymocks.NewInventoryApp(t),
		momo:             momomocks.NewGateway(t),
		events:           kafkamocks.NewPublisher(t),
	}
}

func newApp(f fields) payment.PaymentApp {
	return payment.NewPaymentApp(payment.Deps{
		TxRepo:           f.txRepo,
		OrderRepo:        f.orderRepo,
		RegistrationRepo: f.registrationRepo,
		TransactionRepo:  f.transactionRepo,
		RedisRepo:        f.redisRepo,
		InventoryApp:     f.inventoryApp,
		Momo:             f.momo,
		Events:           f.events,
	})
}

func callback(t *testing.T, resultCode int, extra momo.ExtraData) *momo.CallbackPayload {
	enc, err := momo.EncodeExtraData(extra)
	require.NoError(t, err)
	return &momo.CallbackPayload{
		PartnerCode:  "MOMO",
		OrderID:      "ORD7_1700000000",
		RequestID:    "ORD7_1700000000_x",
		Amount:       200000,
		OrderInfo:    "Thanh toán đơn hàng #7",
		OrderType:    "momo_wallet",
		TransID:      4088878653,
		ResultCode:   resultCode,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1700000123456,
		ExtraData:    enc,
		Signature:    "signed",
	}
}

func pendingOrder() *model.OrderDetail {
	return &model.OrderDetail{
		ID:            7,
		UserID:        "user-1",
		TotalAmount:   200000,
		Status:        constant.OrderStatusPending,
		PaymentStatus: constant.PaymentStatusPending,
		PaymentMethod: constant.PaymentMethodMomo,
	}
}

func expectLockAndRecord(f fields, tx *sqlx.Tx, inserted bool) {
	f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
	f.redisRepo.On("Get", mock.Anything, resultKey).Return("", nil).Once()
	f.redisRepo.On("AcquireLock", mock.Anything, lockKey, constant.TTLCallbackLock).Return(true, nil).Once()
	f.redisRepo.On("ReleaseLock", mock.Anything, lockKey).Return(nil).Once()
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.transactionRepo.On("InsertProcessedTx", mock.Anything, tx, mock.MatchedBy(func(p *model.ProcessedTransaction) bool {
		return p.Provider == constant.ProviderMomo && p.TransID == "4088878653" && p.Reference == "ORD7_1700000000"
	})).Return(inserted, nil).Once()
}

func expectResultCached(f fields, result string) {
	f.redisRepo.On("SetWithTTL", mock.Anything, resultKey, result, constant.TTLCallbackResult).Return(nil).Once()
}

func TestPaymentApp_HandleMomoCallback(t *testing.T) {
	tests := []struct {
		name     string
		payload  func(t *testing.T) *momo.CallbackPayload
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: order paid and confirmed",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(7)).Return(pendingOrder(), nil).Once()
				f.inventoryApp.On("CommitOrderStockTx", mock.Anything, tx, mock.MatchedBy(func(o *model.OrderDetail) bool { return o.ID == 7 }), false).Return(nil).Once()
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, &model.PaymentResultUpdate{
					OrderID:           7,
					FromPaymentStatus: constant.PaymentStatusPending,
					PaymentStatus:     constant.PaymentStatusPaid,
					Status:            constant.OrderStatusConfirmed,
				}).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				expectResultCached(f, "paid")
				f.events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(ev kafka.Event) bool {
					return ev.EventType == kafka.EventOrderPaid && ev.OrderID == 7
				})).Return(nil).Once()
			},
		},
		{
			name:    "success: failed payment cancels the order",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 1006, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(7)).Return(pendingOrder(), nil).Once()
				f.inventoryApp.On("ReleaseOrderStockTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, &model.PaymentResultUpdate{
					OrderID:           7,
					FromPaymentStatus: constant.PaymentStatusPending,
					PaymentStatus:     constant.PaymentStatusFailed,
					Status:            constant.OrderStatusCancelled,
				}).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				expectResultCached(f, "failed")
				f.events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(ev kafka.Event) bool {
					return ev.EventType == kafka.EventOrderPaymentFailed
				})).Return(nil).Once()
			},
		},
		{
			name:    "success: registration marked paid with amount",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{RegistrationID: 12}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				f.registrationRepo.On("GetByIDTx", mock.Anything, tx, uint64(12)).Return(&model.Registration{
					ID: 12, EventID: 3, UserID: "user-1", Distance: "21km", PaymentStatus: constant.PaymentStatusPending,
				}, nil).Once()
				f.registrationRepo.On("UpdatePaymentResultTx", mock.Anything, tx, uint64(12), constant.PaymentStatusPaid, int64(200000)).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				expectResultCached(f, "paid")
				f.events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(ev kafka.Event) bool {
					return ev.EventType == kafka.EventRegistrationPaid && ev.RegistrationID == 12
				})).Return(nil).Once()
			},
		},
		{
			name:    "success: registration payment failed",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 1005, momo.ExtraData{RegistrationID: 12}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				f.registrationRepo.On("GetByIDTx", mock.Anything, tx, uint64(12)).Return(&model.Registration{
					ID: 12, PaymentStatus: constant.PaymentStatusPending,
				}, nil).Once()
				f.registrationRepo.On("UpdatePaymentResultTx", mock.Anything, tx, uint64(12), constant.PaymentStatusFailed, int64(0)).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				expectResultCached(f, "failed")
				f.events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "no-op: transaction already processed",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, false)
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
		},
		{
			name:    "no-op: another delivery holds the lock",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
				f.redisRepo.On("Get", mock.Anything, resultKey).Return("", nil).Once()
				f.redisRepo.On("AcquireLock", mock.Anything, lockKey, constant.TTLCallbackLock).Return(false, nil).Once()
			},
		},
		{
			name:    "no-op: result already cached",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
				f.redisRepo.On("Get", mock.Anything, resultKey).Return("paid", nil).Once()
			},
		},
		{
			name:    "no-op: redis down, database guard rejects the duplicate",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
				f.redisRepo.On("Get", mock.Anything, resultKey).Return("", errors.New("dial tcp: connection refused")).Once()
				f.redisRepo.On("AcquireLock", mock.Anything, lockKey, constant.TTLCallbackLock).Return(false, errors.New("dial tcp: connection refused")).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.transactionRepo.On("InsertProcessedTx", mock.Anything, tx, mock.Anything).Return(false, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
		},
		{
			name:    "no-op: order already settled",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				settled := pendingOrder()
				settled.PaymentStatus = constant.PaymentStatusPaid
				settled.Status = constant.OrderStatusConfirmed
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(7)).Return(settled, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				expectResultCached(f, "ignored")
			},
		},
		{
			name:    "error: invalid signature changes nothing",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(false).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidSignature,
		},
		{
			name: "error: undecodable extraData",
			payload: func(t *testing.T) *momo.CallbackPayload {
				p := callback(t, 0, momo.ExtraData{OrderID: 7})
				p.ExtraData = "%%%"
				return p
			},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: order not found",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				expectLockAndRecord(f, tx, true)
				f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(7)).Return(nil, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
		{
			name:    "error: recording the transaction fails",
			payload: func(t *testing.T) *momo.CallbackPayload { return callback(t, 0, momo.ExtraData{OrderID: 7}) },
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.momo.On("VerifyCallback", mock.Anything).Return(true).Once()
				f.redisRepo.On("Get", mock.Anything, resultKey).Return("", nil).Once()
				f.redisRepo.On("AcquireLock", mock.Anything, lockKey, constant.TTLCallbackLock).Return(true, nil).Once()
				f.redisRepo.On("ReleaseLock", mock.Anything, lockKey).Return(nil).Once()
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.transactionRepo.On("InsertProcessedTx", mock.Anything, tx, mock.Anything).Return(false, errors.New("lock wait timeout")).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tx := &sqlx.Tx{}
			tt.mockCall(f, tx)

			err := newApp(f).HandleMomoCallback(context.Background(), tt.payload(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("HandleMomoCallback() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("expected CustomError, got %T", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
			}
		})
	}
}

// A redelivered success must confirm the order exactly once.
func TestPaymentApp_HandleMomoCallback_Redelivery(t *testing.T) {
	f := newFields(t)
	tx := &sqlx.Tx{}

	f.momo.On("VerifyCallback", mock.Anything).Return(true).Twice()
	// cached result evicted, the database guard still applies
	f.redisRepo.On("Get", mock.Anything, resultKey).Return("", nil).Twice()
	f.redisRepo.On("AcquireLock", mock.Anything, lockKey, constant.TTLCallbackLock).Return(true, nil).Twice()
	f.redisRepo.On("ReleaseLock", mock.Anything, lockKey).Return(nil).Twice()
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Twice()
	f.transactionRepo.On("InsertProcessedTx", mock.Anything, tx, mock.Anything).Return(true, nil).Once()
	f.transactionRepo.On("InsertProcessedTx", mock.Anything, tx, mock.Anything).Return(false, nil).Once()

	f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(7)).Return(pendingOrder(), nil).Once()
	f.inventoryApp.On("CommitOrderStockTx", mock.Anything, tx, mock.Anything, false).Return(nil).Once()
	f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, mock.Anything).Return(true, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()
	expectResultCached(f, "paid")
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()
	f.events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()

	app := newApp(f)
	p := callback(t, 0, momo.ExtraData{OrderID: 7})
	require.NoError(t, app.HandleMomoCallback(context.Background(), p))
	require.NoError(t, app.HandleMomoCallback(context.Background(), p))

	f.orderRepo.AssertNumberOfCalls(t, "UpdatePaymentResultTx", 1)
	f.inventoryApp.AssertNumberOfCalls(t, "CommitOrderStockTx", 1)
}

// Signature checks run against the real client so tampering is caught end to end.
func TestPaymentApp_HandleMomoCallback_TamperedPayload(t *testing.T) {
	gw, err := momo.NewClient(momo.Config{AccessKey: "ak", SecretKey: "sk", Endpoint: "http://unused"})
	require.NoError(t, err)

	f := newFields(t)
	app := payment.NewPaymentApp(payment.Deps{
		TxRepo:          f.txRepo,
		OrderRepo:       f.orderRepo,
		TransactionRepo: f.transactionRepo,
		RedisRepo:       f.redisRepo,
		InventoryApp:    f.inventoryApp,
		Momo:            gw,
	})

	p := callback(t, 0, momo.ExtraData{OrderID: 7})
	momo.SignCallback("ak", "sk", p)
	p.Amount = 1

	err = app.HandleMomoCallback(context.Background(), p)
	require.Error(t, err)
	require.True(t, cerr.IsType(err, constant.ErrInvalidSignature))
}
