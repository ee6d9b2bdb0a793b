package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	apporder "github.com/muhammadheryan/runhub-checkout/application/order"
	"github.com/muhammadheryan/runhub-checkout/constant"
	inventorymocks "github.com/muhammadheryan/runhub-checkout/mocks/application/inventory"
	ordermocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/order"
	txmocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/tx"
	kafkamocks "github.com/muhammadheryan/runhub-checkout/mocks/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	cerr "github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	txRepo       *txmocks.TxRepository
	orderRepo    *ordermocks.OrderRepository
	inventoryApp *inventorymocks.InventoryApp
	events       *kafkamocks.Publisher
}

func newFields(t *testing.T) fields {
	return fields{
		txRepo:       txmocks.NewTxRepository(t),
		orderRepo:    ordermocks.NewOrderRepository(t),
		inventoryApp: inventorymocks.NewInventoryApp(t),
		events:       kafkamocks.NewPublisher(t),
	}
}

func (f fields) app() apporder.OrderApp {
	return apporder.NewOrderApp(apporder.Deps{
		TxRepo:       f.txRepo,
		OrderRepo:    f.orderRepo,
		InventoryApp: f.inventoryApp,
		Events:       f.events,
	})
}

func order(status constant.OrderStatus, payment constant.PaymentStatus, method constant.PaymentMethod) *model.OrderDetail {
	return &model.OrderDetail{
		ID:            5,
		UserID:        "user-1",
		TotalAmount:   300000,
		Status:        status,
		PaymentStatus: payment,
		PaymentMethod: method,
	}
}

func checkErr(t *testing.T, err error, wantErr bool, errCode constant.ErrorType) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("error = %v, wantErr %v", err, wantErr)
	}
	if !wantErr {
		return
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestOrderApp_GetOrder(t *testing.T) {
	type args struct {
		userID  string
		orderID uint64
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: owner sees order and items",
			args: args{userID: "user-1", orderID: 5},
			mockCall: func(f fields) {
				f.orderRepo.On("GetOrderDetail", mock.Anything, uint64(5)).
					Return(order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodMomo), nil).Once()
				f.orderRepo.On("GetOrderItems", mock.Anything, uint64(5)).
					Return([]model.OrderItem{{ID: 1, OrderID: 5, ProductID: 2, ProductName: "Trail Shoe", Quantity: 1, UnitPrice: 300000}}, nil).Once()
			},
		},
		{
			name: "error: other user's order reads as not found",
			args: args{userID: "user-2", orderID: 5},
			mockCall: func(f fields) {
				f.orderRepo.On("GetOrderDetail", mock.Anything, uint64(5)).
					Return(order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodMomo), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
		{
			name: "error: missing order",
			args: args{userID: "user-1", orderID: 9},
			mockCall: func(f fields) {
				f.orderRepo.On("GetOrderDetail", mock.Anything, uint64(9)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
		{
			name:     "error: anonymous caller",
			args:     args{orderID: 5},
			mockCall: func(f fields) {},
			wantErr:  true,
			errCode:  constant.ErrUnauthorize,
		},
		{
			name: "error: database down",
			args: args{userID: "user-1", orderID: 5},
			mockCall: func(f fields) {
				f.orderRepo.On("GetOrderDetail", mock.Anything, uint64(5)).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().GetOrder(context.Background(), tt.args.userID, tt.args.orderID)
			checkErr(t, err, tt.wantErr, tt.errCode)
			if !tt.wantErr && (got.Order.ID != 5 || len(got.Items) != 1) {
				t.Fatalf("GetOrder() = %+v", got)
			}
		})
	}
}

func TestOrderApp_UpdateOrderStatus(t *testing.T) {
	type args struct {
		status constant.OrderStatus
	}
	tests := []struct {
		name     string
		current  *model.OrderDetail
		args     args
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: confirm cod order",
			current: order(constant.OrderStatusPending, constant.PaymentStatusCODPending, constant.PaymentMethodCOD),
			args:    args{status: constant.OrderStatusConfirmed},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(5), constant.OrderStatusConfirmed).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(ev kafka.Event) bool {
					return ev.EventType == kafka.EventOrderStatusChanged && ev.Payload["to"] == "confirmed"
				})).Return(nil).Once()
			},
		},
		{
			name:    "success: completing cod order marks it paid",
			current: order(constant.OrderStatusShipping, constant.PaymentStatusCODPending, constant.PaymentMethodCOD),
			args:    args{status: constant.OrderStatusCompleted},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, &model.PaymentResultUpdate{
					OrderID:           5,
					FromPaymentStatus: constant.PaymentStatusCODPending,
					PaymentStatus:     constant.PaymentStatusPaid,
					Status:            constant.OrderStatusCompleted,
				}).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "success: cancelling releases stock and fails cod payment",
			current: order(constant.OrderStatusConfirmed, constant.PaymentStatusCODPending, constant.PaymentMethodCOD),
			args:    args{status: constant.OrderStatusCancelled},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.inventoryApp.On("ReleaseOrderStockTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, &model.PaymentResultUpdate{
					OrderID:           5,
					FromPaymentStatus: constant.PaymentStatusCODPending,
					PaymentStatus:     constant.PaymentStatusFailed,
					Status:            constant.OrderStatusCancelled,
				}).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:    "success: cancelling a paid order keeps payment status",
			current: order(constant.OrderStatusConfirmed, constant.PaymentStatusPaid, constant.PaymentMethodMomo),
			args:    args{status: constant.OrderStatusCancelled},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.inventoryApp.On("ReleaseOrderStockTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(5), constant.OrderStatusCancelled).Return(nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.events.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
		{
			name:    "error: wallet order awaiting payment cannot be confirmed",
			current: order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodMomo),
			args:    args{status: constant.OrderStatusConfirmed},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name:    "error: skipping shipping",
			current: order(constant.OrderStatusPending, constant.PaymentStatusCODPending, constant.PaymentMethodCOD),
			args:    args{status: constant.OrderStatusCompleted},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name:    "error: cancelled is terminal",
			current: order(constant.OrderStatusCancelled, constant.PaymentStatusFailed, constant.PaymentMethodMomo),
			args:    args{status: constant.OrderStatusConfirmed},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidOrderStatus,
		},
		{
			name:    "error: update fails",
			current: order(constant.OrderStatusConfirmed, constant.PaymentStatusPaid, constant.PaymentMethodCard),
			args:    args{status: constant.OrderStatusShipping},
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(5), constant.OrderStatusShipping).Return(errors.New("deadlock")).Once()
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
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(5)).Return(tt.current, nil).Once()
			tt.mockCall(f, tx)

			err := f.app().UpdateOrderStatus(context.Background(), 5, tt.args.status)
			checkErr(t, err, tt.wantErr, tt.errCode)
		})
	}
}

func TestOrderApp_ExpireOrder(t *testing.T) {
	tests := []struct {
		name     string
		current  *model.OrderDetail
		mockCall func(f fields, tx *sqlx.Tx)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: unpaid wallet order is cancelled",
			current: order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodMomo),
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.inventoryApp.On("ReleaseOrderStockTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, &model.PaymentResultUpdate{
					OrderID:           5,
					FromPaymentStatus: constant.PaymentStatusPending,
					PaymentStatus:     constant.PaymentStatusFailed,
					Status:            constant.OrderStatusCancelled,
				}).Return(true, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(ev kafka.Event) bool {
					return ev.EventType == kafka.EventOrderExpired && ev.OrderID == 5
				})).Return(nil).Once()
			},
		},
		{
			name:    "no-op: already paid",
			current: order(constant.OrderStatusConfirmed, constant.PaymentStatusPaid, constant.PaymentMethodMomo),
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
		},
		{
			name:    "no-op: card orders never expire",
			current: order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodCard),
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
		},
		{
			name:    "no-op: callback won the race",
			current: order(constant.OrderStatusPending, constant.PaymentStatusPending, constant.PaymentMethodMomo),
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.inventoryApp.On("ReleaseOrderStockTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.orderRepo.On("UpdatePaymentResultTx", mock.Anything, tx, mock.Anything).Return(false, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
		},
		{
			name: "error: order not found",
			mockCall: func(f fields, tx *sqlx.Tx) {
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tx := &sqlx.Tx{}
			f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
			f.orderRepo.On("GetOrderDetailTx", mock.Anything, tx, uint64(5)).Return(tt.current, nil).Once()
			tt.mockCall(f, tx)

			err := f.app().ExpireOrder(context.Background(), 5)
			checkErr(t, err, tt.wantErr, tt.errCode)
		})
	}
}
