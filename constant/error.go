package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInsufficientStock
	ErrProductNotFound
	ErrOrderNotFound
	ErrRegistrationNotFound
	ErrEventNotFound
	ErrInvalidOrderStatus
	ErrInvalidSignature
	ErrPaymentGateway
	ErrInvalidDistance
	ErrAmountMismatch
	ErrForbidden
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:              "success",
	ErrInternal:             "error internal",
	ErrNotFound:             "data not found",
	ErrInvalidRequest:       "invalid request",
	ErrUnauthorize:          "unauthorize request",
	ErrInsufficientStock:    "insufficient stock",
	ErrProductNotFound:      "product not found",
	ErrOrderNotFound:        "order not found",
	ErrRegistrationNotFound: "registration not found",
	ErrEventNotFound:        "event not found",
	ErrInvalidOrderStatus:   "invalid order status",
	ErrInvalidSignature:     "Invalid signature",
	ErrPaymentGateway:       "payment gateway error",
	ErrInvalidDistance:      "invalid distance",
	ErrAmountMismatch:       "total amount mismatch",
	ErrForbidden:            "forbidden",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:              http.StatusOK,
	ErrInternal:             http.StatusInternalServerError,
	ErrNotFound:             http.StatusBadRequest,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrUnauthorize:          http.StatusUnauthorized,
	ErrInsufficientStock:    http.StatusBadRequest,
	ErrProductNotFound:      http.StatusBadRequest,
	ErrOrderNotFound:        http.StatusNotFound,
	ErrRegistrationNotFound: http.StatusNotFound,
	ErrEventNotFound:        http.StatusNotFound,
	ErrInvalidOrderStatus:   http.StatusBadRequest,
	ErrInvalidSignature:     http.StatusBadRequest,
	ErrPaymentGateway:       http.StatusBadRequest,
	ErrInvalidDistance:      http.StatusBadRequest,
	ErrAmountMismatch:       http.StatusBadRequest,
	ErrForbidden:            http.StatusForbidden,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:              "0000",
	ErrInternal:             "0001",
	ErrNotFound:             "0002",
	ErrInvalidRequest:       "0003",
	ErrUnauthorize:          "0004",
	ErrInsufficientStock:    "0005",
	ErrProductNotFound:      "0006",
	ErrOrderNotFound:        "0007",
	ErrRegistrationNotFound: "0008",
	ErrEventNotFound:        "0009",
	ErrInvalidOrderStatus:   "0010",
	ErrInvalidSignature:     "0011",
	ErrPaymentGateway:       "0012",
	ErrInvalidDistance:      "0013",
	ErrAmountMismatch:       "0014",
	ErrForbidden:            "0015",
}
