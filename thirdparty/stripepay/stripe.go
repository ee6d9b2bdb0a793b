package stripepay

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutParams struct {
	Currency          string
	LineItems         []LineItem
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	Metadata          map[string]string
}

type Session struct {
	ID  string
	URL string
}

// SessionCreator opens hosted Stripe Checkout sessions.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, p *CheckoutParams) (*Session, error)
}

type stripeClient struct {
	api *client.API
}

func NewSessionCreator(secretKey string) SessionCreator {
	return &stripeClient{api: client.New(secretKey, nil)}
}

func (s *stripeClient) CreateCheckoutSession(ctx context.Context, p *CheckoutParams) (*Session, error) {
	if len(p.LineItems) == 0 {
		return nil, fmt.Errorf("checkout session needs at least one line item")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
	}
	for _, li := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
				UnitAmount: stripe.Int64(li.UnitAmount),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	if p.ClientReferenceID != "" {
		params.ClientReferenceID = stripe.String(p.ClientReferenceID)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Msg != "" {
			return nil, errors.New(serr.Msg)
		}
		return nil, err
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
