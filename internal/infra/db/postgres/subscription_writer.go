package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var (
	_ repository.SubscriptionWriter = (*adminSubscriptionWriter)(nil)
	_ repository.SubscriptionWriter = (*rpcSubscriptionWriter)(nil)
)

// adminSubscriptionWriter upserts directly over an elevated-privilege pool,
// bypassing row-level security. The acting user was already authenticated at
// the call boundary.
type adminSubscriptionWriter struct {
	pool *pgxpool.Pool
}

func NewAdminSubscriptionWriter(pool *pgxpool.Pool) repository.SubscriptionWriter {
	return &adminSubscriptionWriter{pool: pool}
}

func (w *adminSubscriptionWriter) Upsert(ctx context.Context, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (user_id, plan, status, payment_id, subscription_id, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE SET
  plan = EXCLUDED.plan,
  status = EXCLUDED.status,
  payment_id = EXCLUDED.payment_id,
  subscription_id = EXCLUDED.subscription_id,
  updated_at = EXCLUDED.updated_at;`

	_, err := w.pool.Exec(ctx, q, s.UserID, s.Plan, s.Status, s.PaymentID, s.SubscriptionID, s.UpdatedAt)
	return mapError(err)
}

// rpcSubscriptionWriter calls the upsert_subscription stored procedure under
// the caller's own row-level-secured role. Used when no elevated DSN is
// configured; the procedure is SECURITY DEFINER and scopes the write to the
// session user.
type rpcSubscriptionWriter struct {
	pool *pgxpool.Pool
}

func NewRPCSubscriptionWriter(pool *pgxpool.Pool, log *zerolog.Logger) repository.SubscriptionWriter {
	log.Warn().Msg("no admin database credentials configured; subscription writes fall back to the upsert_subscription procedure (reduced security)")
	return &rpcSubscriptionWriter{pool: pool}
}

func (w *rpcSubscriptionWriter) Upsert(ctx context.Context, s *model.Subscription) error {
	const q = `SELECT upsert_subscription($1, $2, $3, $4);`
	_, err := w.pool.Exec(ctx, q, s.UserID, s.Plan, s.PaymentID, s.SubscriptionID)
	return mapError(err)
}
