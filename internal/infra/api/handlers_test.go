//go:build !integration

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/usecase"
)

const testJWTSecret = "unit-test-secret"

// --- Stub use cases ---

type stubBillingUC struct {
	InitiateCheckoutFunc func(ctx context.Context, userID string, planID model.PlanID) (*model.CheckoutParams, error)
	VerifyCheckoutFunc   func(ctx context.Context, userID string, planID model.PlanID, conf model.PaymentConfirmation) error
	ForceVerifyFunc      func(ctx context.Context, userID, paymentID string) (model.PlanID, error)
}

func (s *stubBillingUC) InitiateCheckout(ctx context.Context, userID string, planID model.PlanID) (*model.CheckoutParams, error) {
	if s.InitiateCheckoutFunc != nil {
		return s.InitiateCheckoutFunc(ctx, userID, planID)
	}
	return &model.CheckoutParams{KeyID: "rzp_test_key", OrderID: "order_1", AmountPaise: 19900, Currency: "INR"}, nil
}

func (s *stubBillingUC) VerifyCheckout(ctx context.Context, userID string, planID model.PlanID, conf model.PaymentConfirmation) error {
	if s.VerifyCheckoutFunc != nil {
		return s.VerifyCheckoutFunc(ctx, userID, planID, conf)
	}
	return nil
}

func (s *stubBillingUC) ForceVerify(ctx context.Context, userID, paymentID string) (model.PlanID, error) {
	if s.ForceVerifyFunc != nil {
		return s.ForceVerifyFunc(ctx, userID, paymentID)
	}
	return model.PlanElite, nil
}

type stubCouponUC struct {
	RedeemFunc func(ctx context.Context, userID, code string) (model.PlanID, error)
}

func (s *stubCouponUC) Redeem(ctx context.Context, userID, code string) (model.PlanID, error) {
	if s.RedeemFunc != nil {
		return s.RedeemFunc(ctx, userID, code)
	}
	return model.PlanElite, nil
}

type stubSubscriptionUC struct{}

func (s *stubSubscriptionUC) Current(ctx context.Context, userID string) (*model.Subscription, error) {
	return &model.Subscription{UserID: userID, Plan: model.PlanFree}, nil
}

type stubVisionUC struct{}

func (s *stubVisionUC) Create(ctx context.Context, userID, title, category, timeHorizon, description string, imageURL *string) (*model.Vision, error) {
	return model.NewVision("v1", userID, title, category, timeHorizon, description, imageURL)
}
func (s *stubVisionUC) List(ctx context.Context, userID string) ([]*model.Vision, error) {
	return nil, nil
}
func (s *stubVisionUC) Delete(ctx context.Context, userID, id string) error { return nil }

type stubMilestoneUC struct{}

func (s *stubMilestoneUC) Create(ctx context.Context, userID, visionID, title, description string, deadline *time.Time) (*model.Milestone, error) {
	return model.NewMilestone("m1", userID, visionID, title, description, deadline)
}
func (s *stubMilestoneUC) ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error) {
	return nil, nil
}
func (s *stubMilestoneUC) Delete(ctx context.Context, userID, id string) error { return nil }

type stubTaskUC struct{}

func (s *stubTaskUC) Create(ctx context.Context, userID, title string, milestoneID *string, priority model.TaskPriority, estimatedMinutes *int, dueDate *time.Time) (*model.Task, error) {
	return model.NewTask("t1", userID, title, milestoneID, priority, estimatedMinutes, dueDate)
}
func (s *stubTaskUC) ToggleCompletion(ctx context.Context, userID, id string, completed bool) error {
	return nil
}
func (s *stubTaskUC) Delete(ctx context.Context, userID, id string) error { return nil }
func (s *stubTaskUC) SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error {
	return nil
}
func (s *stubTaskUC) PlannerDay(ctx context.Context, userID string, date time.Time) ([]*model.Task, *model.DailyLog, error) {
	return nil, nil, nil
}
func (s *stubTaskUC) SaveReflection(ctx context.Context, userID string, date time.Time, note string) error {
	return nil
}

type stubProgressUC struct{}

func (s *stubProgressUC) Snapshot(ctx context.Context, userID string) (*usecase.ProgressSnapshot, error) {
	return &usecase.ProgressSnapshot{}, nil
}

type stubCoachUC struct{}

func (s *stubCoachUC) Chat(ctx context.Context, userID, message string) (string, error) {
	return "ok", nil
}

// --- Harness ---

type serverOverrides struct {
	billing usecase.BillingUseCase
	coupons usecase.CouponUseCase
}

func newTestServer(over serverOverrides) *Server {
	logger := zerolog.New(io.Discard)
	var billing usecase.BillingUseCase = &stubBillingUC{}
	if over.billing != nil {
		billing = over.billing
	}
	var coupons usecase.CouponUseCase = &stubCouponUC{}
	if over.coupons != nil {
		coupons = over.coupons
	}
	return NewServer(
		billing,
		coupons,
		&stubSubscriptionUC{},
		&stubVisionUC{},
		&stubMilestoneUC{},
		&stubTaskUC{},
		&stubProgressUC{},
		&stubCoachUC{},
		NewAuthManager(testJWTSecret),
		5*time.Second,
		&logger,
	)
}

func bearerToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": subject + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

// --- Tests ---

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(serverOverrides{})

	t.Run("should reject a request without a token", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/subscriptions/me", "", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Please login to continue" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("should reject a token signed with the wrong secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		signed, _ := token.SignedString([]byte("some-other-secret"))

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/subscriptions/me", signed, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("should reject a token without a subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"})
		signed, _ := token.SignedString([]byte(testJWTSecret))

		rec := doRequest(t, srv, http.MethodGet, "/api/v1/subscriptions/me", signed, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("should pass a valid token through", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/subscriptions/me", bearerToken(t, "user-1"), "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("should leave healthz public", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/healthz", "", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCheckoutHandlers(t *testing.T) {
	token := bearerToken(t, "user-1")

	t.Run("should return checkout params", func(t *testing.T) {
		srv := newTestServer(serverOverrides{})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout", token, `{"plan":"elite"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var params model.CheckoutParams
		if err := json.NewDecoder(rec.Body).Decode(&params); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if params.KeyID != "rzp_test_key" || params.OrderID != "order_1" {
			t.Errorf("unexpected params %+v", params)
		}
	})

	t.Run("should map an unknown plan to 400", func(t *testing.T) {
		srv := newTestServer(serverOverrides{billing: &stubBillingUC{
			InitiateCheckoutFunc: func(ctx context.Context, userID string, planID model.PlanID) (*model.CheckoutParams, error) {
				return nil, domain.ErrUnknownPlan
			},
		}})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout", token, `{"plan":"platinum"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Invalid plan" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("should map an invalid signature to 400", func(t *testing.T) {
		srv := newTestServer(serverOverrides{billing: &stubBillingUC{
			VerifyCheckoutFunc: func(ctx context.Context, userID string, planID model.PlanID, conf model.PaymentConfirmation) error {
				return domain.ErrInvalidSignature
			},
		}})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/verify", token, `{"plan":"elite","razorpay_order_id":"o","razorpay_payment_id":"p","razorpay_signature":"s"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Invalid signature" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("should surface the payment status for an uncaptured payment", func(t *testing.T) {
		srv := newTestServer(serverOverrides{billing: &stubBillingUC{
			ForceVerifyFunc: func(ctx context.Context, userID, paymentID string) (model.PlanID, error) {
				return "", fmt.Errorf("%w: payment status is authorized, not captured", domain.ErrPaymentNotCaptured)
			},
		}})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/force-verify", token, `{"payment_id":"pay_1"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); !strings.Contains(msg, "authorized") {
			t.Errorf("expected the status in the message, got %q", msg)
		}
	})

	t.Run("should pass gateway rejections through as 502", func(t *testing.T) {
		srv := newTestServer(serverOverrides{billing: &stubBillingUC{
			ForceVerifyFunc: func(ctx context.Context, userID, paymentID string) (model.PlanID, error) {
				return "", errors.New("razorpay: The id provided does not exist")
			},
		}})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/force-verify", token, `{"payment_id":"pay_x"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "razorpay: The id provided does not exist" {
			t.Errorf("expected the provider description verbatim, got %q", msg)
		}
	})

	t.Run("should report the activated plan after force verification", func(t *testing.T) {
		srv := newTestServer(serverOverrides{})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/checkout/force-verify", token, `{"payment_id":"pay_1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp activationResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.Plan != "elite" {
			t.Errorf("unexpected response %+v", resp)
		}
	})
}

func TestCouponHandler(t *testing.T) {
	token := bearerToken(t, "user-1")

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"empty code", domain.ErrCouponCodeEmpty, http.StatusBadRequest, "Please enter a coupon code"},
		{"unknown code", domain.ErrCouponNotFound, http.StatusNotFound, "Invalid coupon code"},
		{"inactive", domain.ErrCouponInactive, http.StatusGone, "This coupon is no longer active"},
		{"exhausted", domain.ErrCouponExhausted, http.StatusGone, "This coupon has reached its usage limit"},
		{"expired", domain.ErrCouponExpired, http.StatusGone, "This coupon has expired"},
	}
	for _, tc := range cases {
		t.Run("should map "+tc.name, func(t *testing.T) {
			srv := newTestServer(serverOverrides{coupons: &stubCouponUC{
				RedeemFunc: func(ctx context.Context, userID, code string) (model.PlanID, error) {
					return "", tc.err
				},
			}})

			rec := doRequest(t, srv, http.MethodPost, "/api/v1/coupons/redeem", token, `{"code":"X"}`)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if msg := decodeError(t, rec); msg != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, msg)
			}
		})
	}

	t.Run("should return the activated plan", func(t *testing.T) {
		srv := newTestServer(serverOverrides{coupons: &stubCouponUC{
			RedeemFunc: func(ctx context.Context, userID, code string) (model.PlanID, error) {
				return model.PlanAIUltimate, nil
			},
		}})

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/coupons/redeem", token, `{"code":"FOUNDER"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp activationResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Plan != "ai_ultimate" {
			t.Errorf("unexpected plan %q", resp.Plan)
		}
	})
}
