package api

import (
	"encoding/json"
	"net/http"
	"time"

	"kinetic-flow-backend/internal/domain/model"
)

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type verifyCheckoutRequest struct {
	Plan           string `json:"plan"`
	OrderID        string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	SubscriptionID string `json:"razorpay_subscription_id"`
	Signature      string `json:"razorpay_signature"`
}

type forceVerifyRequest struct {
	PaymentID string `json:"payment_id"`
}

type redeemCouponRequest struct {
	Code string `json:"code"`
}

type activationResponse struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan"`
}

type subscriptionResponse struct {
	Plan           string  `json:"plan"`
	Status         string  `json:"status"`
	PaymentID      string  `json:"payment_id,omitempty"`
	SubscriptionID *string `json:"subscription_id,omitempty"`
}

func (s *Server) handleInitiateCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	params, err := s.billing.InitiateCheckout(r.Context(), userIDFrom(r.Context()), model.PlanID(req.Plan))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}

func (s *Server) handleVerifyCheckout(w http.ResponseWriter, r *http.Request) {
	var req verifyCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	conf := model.PaymentConfirmation{
		OrderID:        req.OrderID,
		SubscriptionID: req.SubscriptionID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	}
	if err := s.billing.VerifyCheckout(r.Context(), userIDFrom(r.Context()), model.PlanID(req.Plan), conf); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activationResponse{Success: true, Plan: req.Plan})
}

func (s *Server) handleForceVerify(w http.ResponseWriter, r *http.Request) {
	var req forceVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	plan, err := s.billing.ForceVerify(r.Context(), userIDFrom(r.Context()), req.PaymentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activationResponse{Success: true, Plan: string(plan)})
}

func (s *Server) handleRedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var req redeemCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	plan, err := s.coupons.Redeem(r.Context(), userIDFrom(r.Context()), req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activationResponse{Success: true, Plan: string(plan)})
}

func (s *Server) handleCurrentSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subs.Current(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionResponse{
		Plan:           string(sub.Plan),
		Status:         string(sub.Status),
		PaymentID:      sub.PaymentID,
		SubscriptionID: sub.SubscriptionID,
	})
}

// dateParam parses the planner's ?date=YYYY-MM-DD query, defaulting to today.
func dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}
