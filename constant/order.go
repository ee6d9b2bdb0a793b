package constant

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusCODPending PaymentStatus = "cod_pending"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodMomo PaymentMethod = "momo"
	PaymentMethodCard PaymentMethod = "card"
)

// Provider names used as the first half of the processed transaction key.
const (
	ProviderMomo   = "momo"
	ProviderStripe = "stripe"
)

// MomoResultSuccess is the resultCode MoMo sends for a captured payment.
const MomoResultSuccess = 0

// CurrencyVND is zero-decimal, amounts are stored and sent as whole dong.
const CurrencyVND = "vnd"
