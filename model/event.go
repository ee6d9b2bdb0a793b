package model

import "github.com/muhammadheryan/runhub-checkout/constant"

// Event prices are nullable, a missing price falls back to constant.DefaultDistancePrices.
type Event struct {
	ID        uint64 `db:"id"`
	Name      string `db:"name"`
	Price5km  *int64 `db:"price_5km"`
	Price10km *int64 `db:"price_10km"`
	Price21km *int64 `db:"price_21km"`
	Price42km *int64 `db:"price_42km"`
}

type Registration struct {
	ID               uint64                 `db:"id"`
	EventID          uint64                 `db:"event_id"`
	UserID           string                 `db:"user_id"`
	Distance         string                 `db:"distance"`
	PaymentStatus    constant.PaymentStatus `db:"payment_status"`
	AmountPaid       int64                  `db:"amount_paid"`
	PaymentSessionID *string                `db:"payment_session_id"`
}

type EventCheckoutRequest struct {
	RegistrationID uint64 `json:"registrationId" validate:"required"`
	EventID        uint64 `json:"eventId" validate:"required"`
	EventName      string `json:"eventName"`
	Distance       string `json:"distance" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type EventMomoResponse struct {
	Success        bool   `json:"success"`
	PayURL         string `json:"payUrl"`
	RegistrationID uint64 `json:"registrationId"`
}
