package repository

import (
	"context"

	"kinetic-flow-backend/internal/domain/model"
)

// SubscriptionWriter performs the reconciling upsert keyed on user_id.
// Exactly one implementation is selected at startup: the elevated-privilege
// writer (admin DSN present) or the stored-procedure writer running under the
// caller's row-level-secured role.
type SubscriptionWriter interface {
	// Upsert inserts or overwrites the caller's subscription row
	// (last-writer-wins, at most one row per user).
	Upsert(ctx context.Context, sub *model.Subscription) error
}

// SubscriptionRepository is the read-side port for subscription rows.
type SubscriptionRepository interface {
	// FindByUser returns the user's subscription row, or ErrNotFound when the
	// user has never activated a plan.
	FindByUser(ctx context.Context, userID string) (*model.Subscription, error)
}
