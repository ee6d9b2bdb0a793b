package model

import (
	"time"

	"github.com/muhammadheryan/runhub-checkout/constant"
)

type OrderItemRequest struct {
	ProductID uint64 `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the body shared by the COD and MoMo checkout endpoints.
type CheckoutRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	UserID          string             `json:"userId"`
	FullName        string             `json:"fullName" validate:"required"`
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
	Phone           string             `json:"phone" validate:"required,phone"`
}

type CardCheckoutRequest struct {
	OrderID     uint64             `json:"orderId"`
	Items       []OrderItemRequest `json:"items" validate:"omitempty,dive"`
	TotalAmount int64              `json:"totalAmount" validate:"gte=0"`
	Email       string             `json:"email" validate:"omitempty,email"`
	UserID      string             `json:"userId"`
}

type ShippingInfo struct {
	FullName        string
	Phone           string
	ShippingAddress string
}

type CODCheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID uint64 `json:"orderId"`
	Message string `json:"message"`
}

type MomoCheckoutResponse struct {
	Success bool   `json:"success"`
	PayURL  string `json:"payUrl"`
	OrderID uint64 `json:"orderId"`
}

type SessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

type InsertOrderTxItem struct {
	UserID          string
	FullName        string
	Phone           string
	ShippingAddress string
	TotalAmount     int64
	Status          constant.OrderStatus
	PaymentStatus   constant.PaymentStatus
	PaymentMethod   constant.PaymentMethod
}

type OrderDetail struct {
	ID               uint64                 `db:"id" json:"id"`
	UserID           string                 `db:"user_id" json:"userId"`
	FullName         string                 `db:"full_name" json:"fullName"`
	Phone            string                 `db:"phone" json:"phone"`
	ShippingAddress  string                 `db:"shipping_address" json:"shippingAddress"`
	TotalAmount      int64                  `db:"total_amount" json:"totalAmount"`
	Status           constant.OrderStatus   `db:"status" json:"status"`
	PaymentStatus    constant.PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PaymentMethod    constant.PaymentMethod `db:"payment_method" json:"paymentMethod"`
	PaymentSessionID *string                `db:"payment_session_id" json:"-"`
	StockCommitted   bool                   `db:"stock_committed" json:"-"`
	CreatedAt        time.Time              `db:"created_at" json:"createdAt"`
}

// OrderItem is a purchased line with the unit price captured at checkout.
type OrderItem struct {
	ID          uint64 `db:"id" json:"id"`
	OrderID     uint64 `db:"order_id" json:"orderId"`
	ProductID   uint64 `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	Quantity    int    `db:"quantity" json:"quantity"`
	UnitPrice   int64  `db:"unit_price" json:"unitPrice"`
}

// PaymentResultUpdate moves an order's payment_status from an expected value.
// The update affects nothing when the order already left FromPaymentStatus.
type PaymentResultUpdate struct {
	OrderID           uint64
	FromPaymentStatus constant.PaymentStatus
	PaymentStatus     constant.PaymentStatus
	Status            constant.OrderStatus
}

type OrderView struct {
	Order *OrderDetail `json:"order"`
	Items []OrderItem  `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipping completed cancelled"`
}
