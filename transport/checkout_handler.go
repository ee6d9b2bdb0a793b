package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/momo"
	utilsContext "github.com/muhammadheryan/runhub-checkout/utils/context"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
)

// CheckoutCOD handler
// @Summary Cash on delivery checkout
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CheckoutRequest true "Cart and shipping"
// @Success 200 {object} model.CODCheckoutResponse
// @Failure 400 {object} transport.ErrorResponse
// @Failure 401 {object} transport.ErrorResponse
// @Router /api/checkout/cod [post]
func (s *RestHandler) CheckoutCOD(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := bodyUser(w, r, req.UserID)
	if !ok {
		return
	}

	res, err := s.CheckoutApp.CheckoutCOD(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CheckoutMomo handler
// @Summary MoMo wallet checkout
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CheckoutRequest true "Cart and shipping"
// @Success 200 {object} model.MomoCheckoutResponse
// @Failure 400 {object} transport.ErrorResponse
// @Router /api/checkout/momo [post]
func (s *RestHandler) CheckoutMomo(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := bodyUser(w, r, req.UserID)
	if !ok {
		return
	}

	res, err := s.CheckoutApp.CheckoutMomo(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// MomoCallback handler
// @Summary MoMo IPN
// @Description Signed payment result posted by MoMo
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body momo.CallbackPayload true "IPN payload"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} transport.ErrorResponse
// @Failure 404 {object} transport.ErrorResponse
// @Router /api/checkout/momo/callback [post]
func (s *RestHandler) MomoCallback(w http.ResponseWriter, r *http.Request) {
	var payload momo.CallbackPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&payload); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PaymentApp.HandleMomoCallback(r.Context(), &payload); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, map[string]bool{"success": true})
}

// CheckoutCard handler
// @Summary Card checkout via Stripe
// @Description Opens a Stripe Checkout session for a new cart or an existing card order
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CardCheckoutRequest true "Order or cart"
// @Success 200 {object} model.SessionResponse
// @Failure 400 {object} transport.ErrorResponse
// @Router /api/checkout/cart [post]
func (s *RestHandler) CheckoutCard(w http.ResponseWriter, r *http.Request) {
	var req model.CardCheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := bodyUser(w, r, req.UserID)
	if !ok {
		return
	}

	res, err := s.CheckoutApp.CheckoutCard(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CheckoutEventCard handler
// @Summary Pay event registration by card
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.EventCheckoutRequest true "Registration"
// @Success 200 {object} model.SessionResponse
// @Failure 400 {object} transport.ErrorResponse
// @Router /api/checkout/event [post]
func (s *RestHandler) CheckoutEventCard(w http.ResponseWriter, r *http.Request) {
	var req model.EventCheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := contextUser(r)

	res, err := s.CheckoutApp.CheckoutEventCard(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CheckoutEventMomo handler
// @Summary Pay event registration with MoMo
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.EventCheckoutRequest true "Registration"
// @Success 200 {object} model.EventMomoResponse
// @Failure 400 {object} transport.ErrorResponse
// @Router /api/checkout/event/momo [post]
func (s *RestHandler) CheckoutEventMomo(w http.ResponseWriter, r *http.Request) {
	var req model.EventCheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := contextUser(r)

	res, err := s.CheckoutApp.CheckoutEventMomo(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func contextUser(r *http.Request) (string, bool) {
	return utilsContext.GetUserID(r.Context())
}

// bodyUser requires the body userId to name the authenticated user.
func bodyUser(w http.ResponseWriter, r *http.Request, bodyUserID string) (string, bool) {
	userID, ok := contextUser(r)
	if !ok || bodyUserID == "" || bodyUserID != userID {
		writeError(w, errors.SetCustomErrorWithMessage(constant.ErrUnauthorize, "Vui lòng đăng nhập để đặt hàng"))
		return "", false
	}
	return userID, true
}
