package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
	"kinetic-flow-backend/internal/infra/metrics"
)

// Compile-time check
var _ CouponUseCase = (*couponUC)(nil)

type CouponUseCase interface {
	// Redeem validates the code, consumes one use, and activates the
	// coupon's plan for the user. Returns the activated plan.
	Redeem(ctx context.Context, userID, code string) (model.PlanID, error)
}

type couponUC struct {
	coupons repository.CouponRepository
	writer  repository.SubscriptionWriter
	log     *zerolog.Logger
}

func NewCouponUseCase(coupons repository.CouponRepository, writer repository.SubscriptionWriter, log *zerolog.Logger) *couponUC {
	return &couponUC{coupons: coupons, writer: writer, log: log}
}

func (u *couponUC) Redeem(ctx context.Context, userID, code string) (model.PlanID, error) {
	if code == "" {
		return "", domain.ErrCouponCodeEmpty
	}
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}

	coupon, err := u.coupons.FindByCode(ctx, code)
	if err != nil {
		metrics.IncCouponRedemption("not_found")
		return "", err
	}
	if err := coupon.Validate(time.Now()); err != nil {
		metrics.IncCouponRedemption(redemptionOutcome(err))
		return "", err
	}

	// The store enforces the cap atomically; the Validate check above can
	// race and the loser lands here.
	if err := u.coupons.ConsumeUse(ctx, coupon.ID); err != nil {
		metrics.IncCouponRedemption(redemptionOutcome(err))
		return "", err
	}

	now := time.Now()
	sub, err := model.NewActiveSubscription(
		userID,
		coupon.PlanID,
		"coupon_"+code,
		optional(fmt.Sprintf("coupon_%s_%d", code, now.UnixMilli())),
	)
	if err != nil {
		return "", err
	}
	if err := u.writer.Upsert(ctx, sub); err != nil {
		// The consumed use is not rolled back; the count stays incremented
		// without the plan being granted.
		metrics.IncCouponRedemption("error")
		u.log.Error().Err(err).Str("user_id", userID).Str("code", code).
			Msg("coupon use consumed but subscription activation failed")
		return "", domain.ErrSubscriptionWrite
	}

	metrics.IncCouponRedemption("ok")
	return coupon.PlanID, nil
}

func redemptionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCouponInactive):
		return "inactive"
	case errors.Is(err, domain.ErrCouponExhausted):
		return "exhausted"
	case errors.Is(err, domain.ErrCouponExpired):
		return "expired"
	default:
		return "error"
	}
}
