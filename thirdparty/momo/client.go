package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

// Gateway opens MoMo wallet payments and checks callback signatures.
type Gateway interface {
	CreatePayment(ctx context.Context, p PaymentParams) (*CreatePaymentResponse, error)
	VerifyCallback(p *CallbackPayload) bool
}

type client struct {
	cfg       Config
	http      *http.Client
	requestID func() string
}

func NewClient(cfg Config) (Gateway, error) {
	if cfg.Endpoint == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("momo endpoint and secret key are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Lang == "" {
		cfg.Lang = "vi"
	}
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return &client{
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.Timeout},
		requestID: gen,
	}, nil
}

func (c *client) CreatePayment(ctx context.Context, p PaymentParams) (*CreatePaymentResponse, error) {
	extra, err := EncodeExtraData(p.ExtraData)
	if err != nil {
		return nil, err
	}
	req := &CreatePaymentRequest{
		PartnerCode: c.cfg.PartnerCode,
		RequestID:   p.OrderID + "_" + c.requestID(),
		Amount:      p.Amount,
		OrderID:     p.OrderID,
		OrderInfo:   p.OrderInfo,
		RedirectURL: c.cfg.RedirectURL,
		IpnURL:      c.cfg.IPNURL,
		RequestType: c.cfg.RequestType,
		ExtraData:   extra,
		Lang:        c.cfg.Lang,
	}
	req.Signature = Sign(c.cfg.SecretKey, CreateRequestRaw(c.cfg.AccessKey, req))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call momo: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read momo response: %w", err)
	}

	var out CreatePaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("momo returned status %d: %s", resp.StatusCode, string(raw))
	}
	return &out, nil
}

func (c *client) VerifyCallback(p *CallbackPayload) bool {
	if p == nil || p.Signature == "" {
		return false
	}
	return Verify(c.cfg.SecretKey, CallbackRaw(c.cfg.AccessKey, p), p.Signature)
}
