package checkout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/muhammadheryan/runhub-checkout/application/inventory"
	"github.com/muhammadheryan/runhub-checkout/cmd/config"
	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
	eventrepo "github.com/muhammadheryan/runhub-checkout/repository/event"
	orderrepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	productrepo "github.com/muhammadheryan/runhub-checkout/repository/product"
	registrationrepo "github.com/muhammadheryan/runhub-checkout/repository/registration"
	txrepo "github.com/muhammadheryan/runhub-checkout/repository/tx"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/momo"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/rabbitmq"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/stripepay"
	"github.com/muhammadheryan/runhub-checkout/utils/errors"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"github.com/muhammadheryan/runhub-checkout/utils/metrics"
	"go.uber.org/zap"
)

type CheckoutApp interface {
	CheckoutCOD(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.CODCheckoutResponse, error)
	CheckoutMomo(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.MomoCheckoutResponse, error)
	CheckoutCard(ctx context.Context, userID string, req *model.CardCheckoutRequest) (*model.SessionResponse, error)
	CheckoutEventCard(ctx context.Context, userID string, req *model.EventCheckoutRequest) (*model.SessionResponse, error)
	CheckoutEventMomo(ctx context.Context, userID string, req *model.EventCheckoutRequest) (*model.EventMomoResponse, error)
}

// Deps are the collaborators of the checkout flows. Expiration and Events are
// optional; a nil value disables expiry scheduling or event publishing.
type Deps struct {
	Config           *config.Config
	TxRepo           txrepo.TxRepository
	ProductRepo      productrepo.ProductRepository
	OrderRepo        orderrepo.OrderRepository
	RegistrationRepo registrationrepo.RegistrationRepository
	EventRepo        eventrepo.EventRepository
	InventoryApp     inventory.InventoryApp
	Momo             momo.Gateway
	Stripe           stripepay.SessionCreator
	Expiration       rabbitmq.ExpirationPublisher
	Events           kafka.Publisher
	Now              func() time.Time
}

type checkoutAppImpl struct {
	config           *config.Config
	txRepo           txrepo.TxRepository
	productRepo      productrepo.ProductRepository
	orderRepo        orderrepo.OrderRepository
	registrationRepo registrationrepo.RegistrationRepository
	eventRepo        eventrepo.EventRepository
	inventoryApp     inventory.InventoryApp
	momo             momo.Gateway
	stripe           stripepay.SessionCreator
	expiration       rabbitmq.ExpirationPublisher
	events           kafka.Publisher
	now              func() time.Time
}

func NewCheckoutApp(d Deps) CheckoutApp {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &checkoutAppImpl{
		config:           d.Config,
		txRepo:           d.TxRepo,
		productRepo:      d.ProductRepo,
		orderRepo:        d.OrderRepo,
		registrationRepo: d.RegistrationRepo,
		eventRepo:        d.EventRepo,
		inventoryApp:     d.InventoryApp,
		momo:             d.Momo,
		stripe:           d.Stripe,
		expiration:       d.Expiration,
		events:           d.Events,
		now:              now,
	}
}

func (s *checkoutAppImpl) CheckoutCOD(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.CODCheckoutResponse, error) {
	order, _, err := s.placeOrder(ctx, &orderDraft{
		userID:        userID,
		method:        constant.PaymentMethodCOD,
		paymentStatus: constant.PaymentStatusCODPending,
		shipping:      shippingOf(req),
		items:         req.Items,
		commitStock:   true,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, orderCreatedEvent(order))
	return &model.CODCheckoutResponse{
		Success: true,
		OrderID: order.ID,
		Message: "Đặt hàng thành công. Bạn sẽ thanh toán khi nhận hàng.",
	}, nil
}

func (s *checkoutAppImpl) CheckoutMomo(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.MomoCheckoutResponse, error) {
	order, _, err := s.placeOrder(ctx, &orderDraft{
		userID:        userID,
		method:        constant.PaymentMethodMomo,
		paymentStatus: constant.PaymentStatusPending,
		shipping:      shippingOf(req),
		items:         req.Items,
	})
	if err != nil {
		return nil, err
	}

	momoOrderID := fmt.Sprintf("ORD%d_%d", order.ID, s.now().Unix())
	resp, err := s.momo.CreatePayment(ctx, momo.PaymentParams{
		OrderID:   momoOrderID,
		Amount:    order.TotalAmount,
		OrderInfo: fmt.Sprintf("Thanh toán đơn hàng #%d", order.ID),
		ExtraData: momo.ExtraData{OrderID: order.ID},
	})
	if msg, failed := momoFailure(resp, err); failed {
		metrics.PaymentSessionError(constant.ProviderMomo)
		logger.Error("[CheckoutMomo] create payment", zap.Uint64("order_id", order.ID), zap.String("error", msg))
		if !s.discardOrder(ctx, order.ID) {
			// the order stays pending, let the expiry cancel it
			s.scheduleExpiry(ctx, order)
		}
		return nil, errors.SetCustomErrorWithMessage(constant.ErrPaymentGateway, msg)
	}

	// the callback resolves the order from extraData, the stored id is for support lookups
	if err := s.orderRepo.UpdatePaymentSession(ctx, order.ID, momoOrderID); err != nil {
		logger.Error("[CheckoutMomo] store momo order id", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
	}

	s.scheduleExpiry(ctx, order)
	s.publish(ctx, orderCreatedEvent(order))

	return &model.MomoCheckoutResponse{
		Success: true,
		PayURL:  resp.PayURL,
		OrderID: order.ID,
	}, nil
}

func (s *checkoutAppImpl) CheckoutCard(ctx context.Context, userID string, req *model.CardCheckoutRequest) (*model.SessionResponse, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	var (
		order   *model.OrderDetail
		items   []model.OrderItem
		created bool
		err     error
	)
	if req.OrderID == 0 {
		order, items, err = s.placeOrder(ctx, &orderDraft{
			userID:        userID,
			method:        constant.PaymentMethodCard,
			paymentStatus: constant.PaymentStatusPending,
			items:         req.Items,
			expectedTotal: req.TotalAmount,
		})
		if err != nil {
			return nil, err
		}
		created = true
	} else {
		order, items, err = s.loadPayableOrder(ctx, userID, req)
		if err != nil {
			return nil, err
		}
	}

	lineItems := make([]stripepay.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, stripepay.LineItem{
			Name:       it.ProductName,
			UnitAmount: it.UnitPrice,
			Quantity:   int64(it.Quantity),
		})
	}

	orderRef := strconv.FormatUint(order.ID, 10)
	session, err := s.stripe.CreateCheckoutSession(ctx, &stripepay.CheckoutParams{
		Currency:          constant.CurrencyVND,
		LineItems:         lineItems,
		SuccessURL:        s.config.Site.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.config.Site.BaseURL + "/cart",
		CustomerEmail:     req.Email,
		ClientReferenceID: orderRef,
		Metadata:          map[string]string{"orderId": orderRef, "userId": userID},
	})
	if err != nil {
		metrics.PaymentSessionError(constant.ProviderStripe)
		logger.Error("[CheckoutCard] create session", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
		if created {
			s.discardOrder(ctx, order.ID)
		}
		return nil, errors.SetCustomErrorWithMessage(constant.ErrPaymentGateway, err.Error())
	}

	if err := s.orderRepo.UpdatePaymentSession(ctx, order.ID, session.ID); err != nil {
		logger.Error("[CheckoutCard] store session id", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
		if created {
			s.discardOrder(ctx, order.ID)
		}
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if created {
		s.publish(ctx, orderCreatedEvent(order))
	}
	return &model.SessionResponse{URL: session.URL, SessionID: session.ID}, nil
}

// loadPayableOrder returns an existing card order of userID that still awaits payment.
func (s *checkoutAppImpl) loadPayableOrder(ctx context.Context, userID string, req *model.CardCheckoutRequest) (*model.OrderDetail, []model.OrderItem, error) {
	order, err := s.orderRepo.GetOrderDetail(ctx, req.OrderID)
	if err != nil {
		logger.Error("[CheckoutCard] get order", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if order.UserID != userID {
		return nil, nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if order.PaymentMethod != constant.PaymentMethodCard ||
		order.Status != constant.OrderStatusPending ||
		order.PaymentStatus != constant.PaymentStatusPending {
		return nil, nil, errors.SetCustomError(constant.ErrInvalidOrderStatus)
	}
	if req.TotalAmount > 0 && req.TotalAmount != order.TotalAmount {
		return nil, nil, errors.SetCustomError(constant.ErrAmountMismatch)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		logger.Error("[CheckoutCard] get order items", zap.String("error", err.Error()))
		return nil, nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(items) == 0 {
		return nil, nil, errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "order has no items")
	}
	return order, items, nil
}

func (s *checkoutAppImpl) CheckoutEventCard(ctx context.Context, userID string, req *model.EventCheckoutRequest) (*model.SessionResponse, error) {
	p, err := s.preparePayableRegistration(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	regRef := strconv.FormatUint(p.registration.ID, 10)
	session, err := s.stripe.CreateCheckoutSession(ctx, &stripepay.CheckoutParams{
		Currency:          constant.CurrencyVND,
		LineItems:         []stripepay.LineItem{{Name: p.title, UnitAmount: p.price, Quantity: 1}},
		SuccessURL:        s.config.Site.BaseURL + "/events/registration/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         fmt.Sprintf("%s/events/%d", s.config.Site.BaseURL, p.event.ID),
		CustomerEmail:     req.Email,
		ClientReferenceID: "registration_" + regRef,
		Metadata: map[string]string{
			"registrationId": regRef,
			"eventId":        strconv.FormatUint(p.event.ID, 10),
			"distance":       p.distance,
			"userId":         userID,
		},
	})
	if err != nil {
		metrics.PaymentSessionError(constant.ProviderStripe)
		logger.Error("[CheckoutEventCard] create session", zap.Uint64("registration_id", p.registration.ID), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorWithMessage(constant.ErrPaymentGateway, err.Error())
	}

	if err := s.registrationRepo.UpdatePaymentSession(ctx, p.registration.ID, session.ID); err != nil {
		logger.Error("[CheckoutEventCard] store session id", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return &model.SessionResponse{URL: session.URL, SessionID: session.ID}, nil
}

func (s *checkoutAppImpl) CheckoutEventMomo(ctx context.Context, userID string, req *model.EventCheckoutRequest) (*model.EventMomoResponse, error) {
	p, err := s.preparePayableRegistration(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	momoOrderID := fmt.Sprintf("REG%d_%d", p.registration.ID, s.now().Unix())
	resp, err := s.momo.CreatePayment(ctx, momo.PaymentParams{
		OrderID:   momoOrderID,
		Amount:    p.price,
		OrderInfo: "Đăng ký " + p.title,
		ExtraData: momo.ExtraData{RegistrationID: p.registration.ID},
	})
	if msg, failed := momoFailure(resp, err); failed {
		metrics.PaymentSessionError(constant.ProviderMomo)
		logger.Error("[CheckoutEventMomo] create payment", zap.Uint64("registration_id", p.registration.ID), zap.String("error", msg))
		return nil, errors.SetCustomErrorWithMessage(constant.ErrPaymentGateway, msg)
	}

	if err := s.registrationRepo.UpdatePaymentSession(ctx, p.registration.ID, momoOrderID); err != nil {
		logger.Error("[CheckoutEventMomo] store momo order id", zap.String("error", err.Error()))
	}

	return &model.EventMomoResponse{
		Success:        true,
		PayURL:         resp.PayURL,
		RegistrationID: p.registration.ID,
	}, nil
}

type payableRegistration struct {
	registration *model.Registration
	event        *model.Event
	distance     string
	price        int64
	title        string
}

func (s *checkoutAppImpl) preparePayableRegistration(ctx context.Context, userID string, req *model.EventCheckoutRequest) (*payableRegistration, error) {
	if userID == "" {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	reg, err := s.registrationRepo.GetByID(ctx, req.RegistrationID)
	if err != nil {
		logger.Error("[preparePayableRegistration] get registration", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if reg == nil {
		return nil, errors.SetCustomError(constant.ErrRegistrationNotFound)
	}
	if reg.UserID != userID {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}
	if reg.EventID != req.EventID {
		return nil, errors.SetCustomErrorWithMessage(constant.ErrInvalidRequest, "registration does not belong to this event")
	}
	if reg.PaymentStatus != constant.PaymentStatusPending {
		return nil, errors.SetCustomErrorWithMessage(constant.ErrInvalidOrderStatus, "registration is not awaiting payment")
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		logger.Error("[preparePayableRegistration] get event", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if event == nil {
		return nil, errors.SetCustomError(constant.ErrEventNotFound)
	}

	// the distance chosen at registration wins over the request
	distance := reg.Distance
	if distance == "" {
		distance = req.Distance
	}
	price, km, ok := resolveDistancePrice(event, distance)
	if !ok {
		return nil, errors.SetCustomError(constant.ErrInvalidDistance)
	}

	name := event.Name
	if name == "" {
		name = req.EventName
	}
	return &payableRegistration{
		registration: reg,
		event:        event,
		distance:     distance,
		price:        price,
		title:        fmt.Sprintf("%s - %dkm", name, km),
	}, nil
}

// momoFailure folds a transport error and a non-zero resultCode into one message.
func momoFailure(resp *momo.CreatePaymentResponse, err error) (string, bool) {
	if err != nil {
		return err.Error(), true
	}
	if resp == nil {
		return "empty response from MoMo", true
	}
	if resp.ResultCode != constant.MomoResultSuccess {
		if resp.Message != "" {
			return resp.Message, true
		}
		return fmt.Sprintf("MoMo resultCode %d", resp.ResultCode), true
	}
	return "", false
}

func (s *checkoutAppImpl) scheduleExpiry(ctx context.Context, order *model.OrderDetail) {
	if s.expiration == nil {
		return
	}
	msg := rabbitmq.PaymentExpirationMessage{
		OrderID:   order.ID,
		UserID:    order.UserID,
		ExpiresAt: order.CreatedAt.Add(s.config.Order.PaymentExpiration),
	}
	if err := s.expiration.PublishPaymentExpiration(ctx, msg); err != nil {
		logger.Error("[scheduleExpiry] publish payment expiration", zap.Uint64("order_id", order.ID), zap.String("error", err.Error()))
	}
}

func (s *checkoutAppImpl) publish(ctx context.Context, ev kafka.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, ev); err != nil {
		logger.Warn("[publish] order event", zap.String("event_type", ev.EventType), zap.String("error", err.Error()))
	}
}

func orderCreatedEvent(order *model.OrderDetail) kafka.Event {
	return kafka.Event{
		EventType: kafka.EventOrderCreated,
		OrderID:   order.ID,
		Payload: map[string]interface{}{
			"userId":        order.UserID,
			"paymentMethod": order.PaymentMethod,
			"paymentStatus": order.PaymentStatus,
			"totalAmount":   order.TotalAmount,
		},
	}
}

func shippingOf(req *model.CheckoutRequest) model.ShippingInfo {
	return model.ShippingInfo{
		FullName:        req.FullName,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
	}
}
