package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_created_total",
			Help: "Orders created at checkout, by payment method",
		},
		[]string{"method"},
	)

	ordersCreatedAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_created_amount_total",
			Help: "Sum of order totals created at checkout, in VND",
		},
		[]string{"method"},
	)

	stockShortfallTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_stock_shortfall_total",
			Help: "Checkouts rejected because a cart line exceeded available stock",
		},
	)

	paymentSessionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_payment_session_errors_total",
			Help: "Failed attempts to open a payment session with a gateway",
		},
		[]string{"provider"},
	)

	paymentCallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_callbacks_total",
			Help: "Payment callbacks processed, by provider and result",
		},
		[]string{"provider", "result"},
	)

	paymentCallbackDuplicatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_callback_duplicates_total",
			Help: "Redelivered payment callbacks that were ignored",
		},
		[]string{"provider"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route"},
	)
)

func OrderCreated(method string, amount int64) {
	ordersCreatedTotal.WithLabelValues(method).Inc()
	ordersCreatedAmountTotal.WithLabelValues(method).Add(float64(amount))
}

func StockShortfall() {
	stockShortfallTotal.Inc()
}

func PaymentSessionError(provider string) {
	paymentSessionErrorsTotal.WithLabelValues(provider).Inc()
}

// PaymentCallback records a processed callback; result is "paid", "failed",
// "rejected" (bad signature) or "error".
func PaymentCallback(provider, result string) {
	paymentCallbacksTotal.WithLabelValues(provider, result).Inc()
}

func PaymentCallbackDuplicate(provider string) {
	paymentCallbackDuplicatesTotal.WithLabelValues(provider).Inc()
}

func HTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
