package redis

import (
	"context"
	"encoding/json"
	"time"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

var (
	_ repository.SubscriptionRepository = (*CachedSubscriptionRepo)(nil)
	_ repository.SubscriptionWriter     = (*InvalidatingSubscriptionWriter)(nil)
)

func subscriptionKey(userID string) string { return "subscription:" + userID }

// CachedSubscriptionRepo is a read-through cache in front of the postgres
// repository. Entitlement checks (vision limits, coach gating) hit this on
// every request, so the row is cached for a short TTL.
type CachedSubscriptionRepo struct {
	inner  repository.SubscriptionRepository
	client Client
	ttl    time.Duration
}

func NewCachedSubscriptionRepo(inner repository.SubscriptionRepository, client Client, ttl time.Duration) *CachedSubscriptionRepo {
	return &CachedSubscriptionRepo{inner: inner, client: client, ttl: ttl}
}

func (c *CachedSubscriptionRepo) FindByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	if data, err := c.client.Get(ctx, subscriptionKey(userID)); err == nil {
		var s model.Subscription
		if err := json.Unmarshal([]byte(data), &s); err == nil {
			return &s, nil
		}
	}

	s, err := c.inner.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(s); err == nil {
		// best-effort; a failed cache write never fails the read
		_ = c.client.Set(ctx, subscriptionKey(userID), data, c.ttl)
	}
	return s, nil
}

// InvalidatingSubscriptionWriter drops the cached row after every reconciling
// upsert so entitlement reads observe the new plan immediately.
type InvalidatingSubscriptionWriter struct {
	inner  repository.SubscriptionWriter
	client Client
}

func NewInvalidatingSubscriptionWriter(inner repository.SubscriptionWriter, client Client) *InvalidatingSubscriptionWriter {
	return &InvalidatingSubscriptionWriter{inner: inner, client: client}
}

func (w *InvalidatingSubscriptionWriter) Upsert(ctx context.Context, s *model.Subscription) error {
	if err := w.inner.Upsert(ctx, s); err != nil {
		return err
	}
	_ = w.client.Del(ctx, subscriptionKey(s.UserID))
	return nil
}
