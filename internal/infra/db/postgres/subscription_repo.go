package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) repository.SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) FindByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	const q = `
SELECT user_id, plan, status, payment_id, subscription_id, updated_at
  FROM subscriptions
 WHERE user_id = $1;`

	var s model.Subscription
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&s.UserID, &s.Plan, &s.Status, &s.PaymentID, &s.SubscriptionID, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}
