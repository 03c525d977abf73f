package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"kinetic-flow-backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError converts domain sentinels to the user-facing messages the
// UI renders. Everything falls through to a generic 500 rather than leaking
// internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Please login to subscribe")
	case errors.Is(err, domain.ErrUnknownPlan):
		writeError(w, http.StatusBadRequest, "Invalid plan")
	case errors.Is(err, domain.ErrGatewayNotConfigured):
		writeError(w, http.StatusInternalServerError, "Payment gateway configuration missing")
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "Invalid signature")
	case errors.Is(err, domain.ErrPaymentNotCaptured):
		// surface the actual gateway-reported status
		writeError(w, http.StatusConflict, trimSentinel(err, domain.ErrPaymentNotCaptured))
	case errors.Is(err, domain.ErrCouponCodeEmpty):
		writeError(w, http.StatusBadRequest, "Please enter a coupon code")
	case errors.Is(err, domain.ErrCouponNotFound):
		writeError(w, http.StatusNotFound, "Invalid coupon code")
	case errors.Is(err, domain.ErrCouponInactive):
		writeError(w, http.StatusGone, "This coupon is no longer active")
	case errors.Is(err, domain.ErrCouponExhausted):
		writeError(w, http.StatusGone, "This coupon has reached its usage limit")
	case errors.Is(err, domain.ErrCouponExpired):
		writeError(w, http.StatusGone, "This coupon has expired")
	case errors.Is(err, domain.ErrSubscriptionWrite):
		writeError(w, http.StatusInternalServerError, "Failed to update subscription")
	case errors.Is(err, domain.ErrVisionLimitReached):
		writeError(w, http.StatusForbidden, "Free Plan Limit Reached (Max 1 Vision). Please Upgrade.")
	case errors.Is(err, domain.ErrPlanRequired):
		writeError(w, http.StatusForbidden, "The AI coach requires the AI Ultimate plan")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many requests, slow down")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request")
	default:
		// gateway rejections carry the provider's own description verbatim
		if msg := err.Error(); len(msg) > 0 && isGatewayError(msg) {
			writeError(w, http.StatusBadGateway, msg)
			return
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// trimSentinel strips the wrapping sentinel prefix ("payment not captured: ")
// leaving the detail message for the user.
func trimSentinel(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func isGatewayError(msg string) bool {
	return len(msg) >= 9 && msg[:9] == "razorpay:"
}
