package momo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Sign returns the lowercase hex HMAC-SHA256 of raw.
func Sign(secretKey, raw string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares signature against the HMAC of raw in constant time.
func Verify(secretKey, raw, signature string) bool {
	expected, err := hex.DecodeString(Sign(secretKey, raw))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}

// CreateRequestRaw builds the string signed on a create-payment request.
// Keys are in alphabetical order as MoMo expects.
func CreateRequestRaw(accessKey string, req *CreatePaymentRequest) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		accessKey, req.Amount, req.ExtraData, req.IpnURL, req.OrderID, req.OrderInfo,
		req.PartnerCode, req.RedirectURL, req.RequestID, req.RequestType,
	)
}

// CallbackRaw builds the string MoMo signs on an IPN callback.
func CallbackRaw(accessKey string, p *CallbackPayload) string {
	return fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		accessKey, p.Amount, p.ExtraData, p.Message, p.OrderID, p.OrderInfo, p.OrderType,
		p.PartnerCode, p.PayType, p.RequestID, p.ResponseTime, p.ResultCode, p.TransID,
	)
}

// SignCallback fills p.Signature. Used by tests and local tooling that replay callbacks.
func SignCallback(accessKey, secretKey string, p *CallbackPayload) {
	p.Signature = Sign(secretKey, CallbackRaw(accessKey, p))
}

// EncodeExtraData returns the base64 JSON carried through MoMo as extraData.
func EncodeExtraData(d ExtraData) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeExtraData(s string) (*ExtraData, error) {
	if s == "" {
		return nil, fmt.Errorf("empty extraData")
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode extraData: %w", err)
	}
	var d ExtraData
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("unmarshal extraData: %w", err)
	}
	if d.OrderID == 0 && d.RegistrationID == 0 {
		return nil, fmt.Errorf("extraData carries no reference")
	}
	return &d, nil
}
