package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOperationFailed = errors.New("operation failed")
	ErrReadDatabaseRow = errors.New("failed to read database row")
	ErrUnauthenticated = errors.New("user not authenticated")

	// Billing flow errors
	ErrUnknownPlan          = errors.New("unknown plan identifier")
	ErrGatewayNotConfigured = errors.New("payment gateway configuration missing")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrPaymentNotCaptured   = errors.New("payment not captured")
	ErrSubscriptionWrite    = errors.New("failed to update subscription")

	// Coupon redemption errors
	ErrCouponCodeEmpty = errors.New("coupon code is empty")
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is no longer active")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponExpired   = errors.New("coupon has expired")

	// Goal tracking errors
	ErrVisionLimitReached = errors.New("free plan vision limit reached")
	ErrPlanRequired       = errors.New("feature requires a higher plan")
	ErrRateLimited        = errors.New("too many requests")
)
