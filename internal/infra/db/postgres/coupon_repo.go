package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.CouponRepository = (*couponRepo)(nil)

type couponRepo struct {
	pool *pgxpool.Pool
}

func NewCouponRepo(pool *pgxpool.Pool) repository.CouponRepository {
	return &couponRepo{pool: pool}
}

func (r *couponRepo) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	const q = `
SELECT id, code, plan_id, is_active, uses, max_uses, expires_at
  FROM coupons
 WHERE code = $1;`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, q, code).Scan(
		&c.ID, &c.Code, &c.PlanID, &c.IsActive, &c.Uses, &c.MaxUses, &c.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, mapError(err)
	}
	return &c, nil
}

// ConsumeUse increments uses only while the cap still holds. The WHERE clause
// makes the check-and-increment a single atomic statement, so two concurrent
// redemptions of the last use cannot both pass.
func (r *couponRepo) ConsumeUse(ctx context.Context, couponID string) error {
	const q = `
UPDATE coupons
   SET uses = uses + 1
 WHERE id = $1 AND uses < max_uses;`

	tag, err := r.pool.Exec(ctx, q, couponID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponExhausted
	}
	return nil
}
