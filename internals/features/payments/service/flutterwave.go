package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

/* =========================================================
   Flutterwave client

   Thin wrapper over the hosted-checkout REST API. Failures
   come back as structured errors so the route layer can fall
   back to bank-transfer instructions instead of blocking the
   registration funnel.
========================================================= */

type Flutterwave struct {
	client        *resty.Client
	webhookSecret string
}

func NewFlutterwave(baseURL, secretKey, webhookSecret string) *Flutterwave {
	r := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Flutterwave{client: r, webhookSecret: webhookSecret}
}

/* ===================== Create payment link ===================== */

type PaymentLinkRequest struct {
	TxRef         string
	Amount        int64
	Currency      string
	RedirectURL   string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Title         string
	Description   string
	Meta          map[string]interface{}
}

type PaymentLink struct {
	CheckoutURL string
	TxRef       string
	Raw         json.RawMessage
}

type flwEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreatePaymentLink asks the gateway for a hosted checkout URL.
func (f *Flutterwave) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	body := map[string]interface{}{
		"tx_ref":       req.TxRef,
		"amount":       req.Amount,
		"currency":     req.Currency,
		"redirect_url": req.RedirectURL,
		"customer": map[string]string{
			"email":       req.CustomerEmail,
			"name":        req.CustomerName,
			"phonenumber": req.CustomerPhone,
		},
		"customizations": map[string]string{
			"title":       req.Title,
			"description": req.Description,
		},
	}
	if len(req.Meta) > 0 {
		body["meta"] = req.Meta
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v3/payments")
	if err != nil {
		return nil, fmt.Errorf("flutterwave create payment: %w", err)
	}

	var env flwEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("flutterwave create payment: bad response: %w", err)
	}
	if resp.IsError() || env.Status != "success" {
		return nil, fmt.Errorf("flutterwave create payment rejected: %s", env.Message)
	}

	var data struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Link == "" {
		return nil, fmt.Errorf("flutterwave create payment: no checkout link returned")
	}

	return &PaymentLink{CheckoutURL: data.Link, TxRef: req.TxRef, Raw: resp.Body()}, nil
}

/* ===================== Verify ===================== */

type VerificationStatus string

const (
	VerificationSuccessful VerificationStatus = "successful"
	VerificationFailed     VerificationStatus = "failed"
	VerificationPending    VerificationStatus = "pending"
)

type Verification struct {
	Status        VerificationStatus
	TransactionID string
	TxRef         string
	Amount        float64
	Currency      string
	Raw           json.RawMessage
}

// VerifyTransaction asks the gateway for the authoritative status of a
// transaction id. Safe to call repeatedly for the same id.
func (f *Flutterwave) VerifyTransaction(ctx context.Context, transactionID string) (*Verification, error) {
	return f.verify(ctx, fmt.Sprintf("/v3/transactions/%s/verify", transactionID), nil)
}

// VerifyByReference resolves a transaction by our tx_ref instead, used by
// the sweeper and the client poll path when no transaction id is known.
func (f *Flutterwave) VerifyByReference(ctx context.Context, txRef string) (*Verification, error) {
	return f.verify(ctx, "/v3/transactions/verify_by_reference", map[string]string{"tx_ref": txRef})
}

func (f *Flutterwave) verify(ctx context.Context, path string, query map[string]string) (*Verification, error) {
	r := f.client.R().SetContext(ctx)
	if query != nil {
		r.SetQueryParams(query)
	}
	resp, err := r.Get(path)
	if err != nil {
		return nil, fmt.Errorf("flutterwave verify: %w", err)
	}

	var env flwEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("flutterwave verify: bad response: %w", err)
	}
	if resp.IsError() || env.Status != "success" {
		return nil, fmt.Errorf("flutterwave verify rejected: %s", env.Message)
	}

	var data struct {
		ID       json.Number `json:"id"`
		TxRef    string      `json:"tx_ref"`
		Status   string      `json:"status"`
		Amount   float64     `json:"amount"`
		Currency string      `json:"currency"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("flutterwave verify: bad data: %w", err)
	}

	return &Verification{
		Status:        MapGatewayStatus(data.Status),
		TransactionID: data.ID.String(),
		TxRef:         data.TxRef,
		Amount:        data.Amount,
		Currency:      data.Currency,
		Raw:           resp.Body(),
	}, nil
}

// MapGatewayStatus folds the gateway's status vocabulary onto the local
// tri-state. Anything unrecognized is treated as still pending.
func MapGatewayStatus(s string) VerificationStatus {
	switch strings.ToLower(s) {
	case "successful":
		return VerificationSuccessful
	case "failed":
		return VerificationFailed
	default:
		return VerificationPending
	}
}

/* ===================== Webhook signature ===================== */

// VerifyWebhookSignature recomputes HMAC-SHA256 over the raw body and
// compares the lowercase-hex digest to the verif-hash header in constant
// time. Strict byte comparison: any mutation of the header, case included,
// fails. Handlers must call this before parsing the body as trusted input.
func (f *Flutterwave) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	if signature == "" || f.webhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(f.webhookSecret))
	mac.Write(rawBody)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}
