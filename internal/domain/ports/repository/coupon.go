package repository

import (
	"context"

	"kinetic-flow-backend/internal/domain/model"
)

// CouponRepository is the port for coupon lookup and redemption accounting.
type CouponRepository interface {
	// FindByCode matches the code exactly (case-sensitive).
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)

	// ConsumeUse increments the usage counter by one only while it is still
	// under max_uses. The conditional update is atomic at the store, so the
	// cap holds under concurrent redemptions; a cap miss returns
	// ErrCouponExhausted.
	ConsumeUse(ctx context.Context, couponID string) error
}
