package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	checkoutapp "github.com/muhammadheryan/runhub-checkout/application/checkout"
	orderapp "github.com/muhammadheryan/runhub-checkout/application/order"
	paymentapp "github.com/muhammadheryan/runhub-checkout/application/payment"
	productapp "github.com/muhammadheryan/runhub-checkout/application/product"
	"github.com/muhammadheryan/runhub-checkout/cmd/config"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	validatorx "github.com/muhammadheryan/runhub-checkout/utils/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type RestHandler struct {
	CheckoutApp checkoutapp.CheckoutApp
	PaymentApp  paymentapp.PaymentApp
	OrderApp    orderapp.OrderApp
	ProductApp  productapp.ProductApp
}

func NewTransport(cfg *config.Config, checkoutApp checkoutapp.CheckoutApp, paymentApp paymentapp.PaymentApp, orderApp orderapp.OrderApp, productApp productapp.ProductApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		CheckoutApp: checkoutApp,
		PaymentApp:  paymentApp,
		OrderApp:    orderApp,
		ProductApp:  productApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	mux.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	mux.HandleFunc("/healthz", rh.Healthz).Methods(http.MethodGet)

	// Public routes
	mux.HandleFunc("/api/products", rh.ListProducts).Methods(http.MethodGet)
	mux.HandleFunc("/api/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)
	mux.HandleFunc("/api/checkout/momo/callback", rh.MomoCallback).Methods(http.MethodPost)

	// protected routes
	mux.HandleFunc("/api/checkout/cod", rh.CheckoutCOD).Methods(http.MethodPost)
	mux.HandleFunc("/api/checkout/momo", rh.CheckoutMomo).Methods(http.MethodPost)
	mux.HandleFunc("/api/checkout/cart", rh.CheckoutCard).Methods(http.MethodPost)
	mux.HandleFunc("/api/checkout/event", rh.CheckoutEventCard).Methods(http.MethodPost)
	mux.HandleFunc("/api/checkout/event/momo", rh.CheckoutEventMomo).Methods(http.MethodPost)
	mux.HandleFunc("/api/orders/{id:[0-9]+}", rh.GetOrder).Methods(http.MethodGet)

	// internal routes, called by the expiration worker and back office
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))
	internal.HandleFunc("/order/{id:[0-9]+}/expire", rh.ExpireOrder).Methods(http.MethodPost)
	internal.HandleFunc("/order/{id:[0-9]+}/status", rh.UpdateOrderStatus).Methods(http.MethodPatch)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(MetricsMiddleware())
	mux.Use(AuthMiddleware(cfg.Auth.JWTSecret))

	return mux
}

func (s *RestHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// ListProducts handler
// @Summary List products
// @Description Paginated catalogue with live stock
// @Tags Product
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} model.ProductListResponse
// @Failure 500 {object} transport.ErrorResponse
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.ProductApp.ListProducts(r.Context(), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductDetail
// @Failure 400 {object} transport.ErrorResponse
// @Router /api/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get own order
// @Description Order with its items, polled by the payment result page
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderView
// @Failure 404 {object} transport.ErrorResponse
// @Router /api/orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := contextUser(r)
	res, err := s.OrderApp.GetOrder(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ExpireOrder handler
// @Summary Expire unpaid wallet order
// @Tags Internal
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]bool
// @Router /internal/v1/order/{id}/expire [post]
func (s *RestHandler) ExpireOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.OrderApp.ExpireOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]bool{"success": true})
}

// UpdateOrderStatus handler
// @Summary Move order through fulfilment
// @Tags Internal
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} transport.ErrorResponse
// @Router /internal/v1/order/{id}/status [patch]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.OrderApp.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]bool{"success": true})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return 0, false
	}
	return id, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return false
	}
	if err := validatorx.ValidateStruct(dst); err != nil {
		msg := validatorx.Describe(err)
		logger.Info("[decodeAndValidate] invalid body", zap.String("path", r.URL.Path), zap.String("error", msg))
		writeError(w, errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, msg))
		return false
	}
	return true
}
