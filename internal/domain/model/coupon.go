package model

import (
	"time"

	"kinetic-flow-backend/internal/domain"
)

// Coupon is an alternate activation path that never touches the payment
// gateway. Codes are matched case-sensitively.
type Coupon struct {
	ID        string
	Code      string
	PlanID    PlanID
	IsActive  bool
	Uses      int
	MaxUses   int
	ExpiresAt *time.Time
}

// Validate runs the redemption checks in their fixed order and returns the
// first failure. The usage-cap check here is advisory only; the repository
// enforces the cap atomically when the counter is incremented.
func (c *Coupon) Validate(now time.Time) error {
	if !c.IsActive {
		return domain.ErrCouponInactive
	}
	if c.Uses >= c.MaxUses {
		return domain.ErrCouponExhausted
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return domain.ErrCouponExpired
	}
	return nil
}
