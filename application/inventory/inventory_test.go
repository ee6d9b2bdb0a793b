package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/runhub-checkout/application/inventory"
	"github.com/muhammadheryan/runhub-checkout/constant"
	ordermocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/order"
	productmocks "github.com/muhammadheryan/runhub-checkout/mocks/repository/product"
	"github.com/muhammadheryan/runhub-checkout/model"
	cerr "github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testItems = []model.OrderItem{
	{ProductID: 1, ProductName: "Running Cap", Quantity: 2, UnitPrice: 100000},
	{ProductID: 2, ProductName: "Energy Gel", Quantity: 3, UnitPrice: 25000},
}

func TestInventoryApp_CommitOrderStockTx(t *testing.T) {
	type fields struct {
		orderRepo   *ordermocks.OrderRepository
		productRepo *productmocks.ProductRepository
	}
	type args struct {
		order  *model.OrderDetail
		strict bool
	}
	tx := &sqlx.Tx{}
	tests := []struct {
		name          string
		args          args
		mockCall      func(f fields)
		wantErr       bool
		errCode       constant.ErrorType
		wantMessage   string
		wantCommitted bool
	}{
		{
			name: "success: decrements every line",
			args: args{order: &model.OrderDetail{ID: 5}, strict: true},
			mockCall: func(f fields) {
				f.orderRepo.On("MarkStockCommittedTx", mock.Anything, tx, uint64(5)).Return(true, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(5)).Return(testItems, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(1), 2).Return(true, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(2), 3).Return(true, nil).Once()
			},
			wantCommitted: true,
		},
		{
			name:          "no-op: order already committed",
			args:          args{order: &model.OrderDetail{ID: 5, StockCommitted: true}, strict: true},
			mockCall:      nil,
			wantCommitted: true,
		},
		{
			name: "no-op: flag raced by another transaction",
			args: args{order: &model.OrderDetail{ID: 5}, strict: false},
			mockCall: func(f fields) {
				f.orderRepo.On("MarkStockCommittedTx", mock.Anything, tx, uint64(5)).Return(false, nil).Once()
			},
			wantCommitted: true,
		},
		{
			name: "error: strict shortfall names the product",
			args: args{order: &model.OrderDetail{ID: 5}, strict: true},
			mockCall: func(f fields) {
				f.orderRepo.On("MarkStockCommittedTx", mock.Anything, tx, uint64(5)).Return(true, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(5)).Return(testItems, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(1), 2).Return(true, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(2), 3).Return(false, nil).Once()
			},
			wantErr:     true,
			errCode:     constant.ErrInsufficientStock,
			wantMessage: "insufficient stock for product Energy Gel",
		},
		{
			name: "success: lenient shortfall clamps to zero",
			args: args{order: &model.OrderDetail{ID: 5}, strict: false},
			mockCall: func(f fields) {
				f.orderRepo.On("MarkStockCommittedTx", mock.Anything, tx, uint64(5)).Return(true, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(5)).Return(testItems, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(1), 2).Return(false, nil).Once()
				f.productRepo.On("ClearStockTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(2), 3).Return(true, nil).Once()
			},
			wantCommitted: true,
		},
		{
			name: "error: decrement fails",
			args: args{order: &model.OrderDetail{ID: 5}, strict: true},
			mockCall: func(f fields) {
				f.orderRepo.On("MarkStockCommittedTx", mock.Anything, tx, uint64(5)).Return(true, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(5)).Return(testItems, nil).Once()
				f.productRepo.On("DecrementStockTx", mock.Anything, tx, uint64(1), 2).Return(false, errors.New("deadlock")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				orderRepo:   ordermocks.NewOrderRepository(t),
				productRepo: productmocks.NewProductRepository(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			app := inventory.NewInventoryApp(f.orderRepo, f.productRepo)
			err := app.CommitOrderStockTx(context.Background(), tx, tt.args.order, tt.args.strict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CommitOrderStockTx() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("expected CustomError, got %T", err)
				}
				assert.Equal(t, constant.ErrorTypeCode[tt.errCode], ce.ErrorCode())
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, ce.Error())
				}
				return
			}
			assert.Equal(t, tt.wantCommitted, tt.args.order.StockCommitted)
		})
	}
}

func TestInventoryApp_ReleaseOrderStockTx(t *testing.T) {
	tx := &sqlx.Tx{}

	t.Run("restores committed stock", func(t *testing.T) {
		orderRepo := ordermocks.NewOrderRepository(t)
		productRepo := productmocks.NewProductRepository(t)
		orderRepo.On("MarkStockReleasedTx", mock.Anything, tx, uint64(5)).Return(true, nil).Once()
		orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(5)).Return(testItems, nil).Once()
		productRepo.On("IncrementStockTx", mock.Anything, tx, uint64(1), 2).Return(nil).Once()
		productRepo.On("IncrementStockTx", mock.Anything, tx, uint64(2), 3).Return(nil).Once()

		order := &model.OrderDetail{ID: 5, StockCommitted: true}
		err := inventory.NewInventoryApp(orderRepo, productRepo).ReleaseOrderStockTx(context.Background(), tx, order)
		assert.NoError(t, err)
		assert.False(t, order.StockCommitted)
	})

	t.Run("nothing to release", func(t *testing.T) {
		orderRepo := ordermocks.NewOrderRepository(t)
		productRepo := productmocks.NewProductRepository(t)

		order := &model.OrderDetail{ID: 5}
		err := inventory.NewInventoryApp(orderRepo, productRepo).ReleaseOrderStockTx(context.Background(), tx, order)
		assert.NoError(t, err)
	})
}
