package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway against the Razorpay
// v1 REST API using the server-held key id/secret pair via basic auth.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	base      string // e.g. https://api.razorpay.com/v1
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay key id/secret empty")
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		base:      "https://api.razorpay.com/v1",
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (g *RazorpayGateway) Name() string  { return "razorpay" }
func (g *RazorpayGateway) KeyID() string { return g.keyID }

// apiError is Razorpay's uniform error envelope. Its description is
// propagated verbatim to the caller.
type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (string, error) {
	payload := map[string]any{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if notes != nil {
		payload["notes"] = notes
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := g.do(ctx, http.MethodPost, "/orders", payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("razorpay order create returned no id")
	}
	return out.ID, nil
}

func (g *RazorpayGateway) CreateSubscription(ctx context.Context, externalPlanID string, totalCycles int, notes map[string]string) (string, error) {
	payload := map[string]any{
		"plan_id":         externalPlanID,
		"total_count":     totalCycles,
		"quantity":        1,
		"customer_notify": 1,
	}
	if notes != nil {
		payload["notes"] = notes
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := g.do(ctx, http.MethodPost, "/subscriptions", payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("razorpay subscription create returned no id")
	}
	return out.ID, nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*model.GatewayPayment, error) {
	var out struct {
		ID     string            `json:"id"`
		Status string            `json:"status"`
		Notes  map[string]string `json:"notes"`
	}
	if err := g.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &out); err != nil {
		return nil, err
	}
	return &model.GatewayPayment{ID: out.ID, Status: out.Status, Notes: out.Notes}, nil
}

func (g *RazorpayGateway) do(ctx context.Context, method, path string, payload any, out any) error {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("razorpay: %s", apiErr.Error.Description)
		}
		return fmt.Errorf("razorpay http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
