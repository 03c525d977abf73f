package model

import (
	"time"

	"kinetic-flow-backend/internal/domain"
)

type SubscriptionStatus string

const (
	// SubscriptionStatusActive is the only status this flow ever writes.
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// Subscription is the durable per-user entitlement record. At most one row
// exists per user; every activation overwrites the previous one
// (upsert on user_id, last-writer-wins, no history).
type Subscription struct {
	UserID         string
	Plan           PlanID
	Status         SubscriptionStatus
	PaymentID      string
	SubscriptionID *string // gateway subscription id, recurring mode only
	UpdatedAt      time.Time
}

// NewActiveSubscription builds the record written after a verified payment or
// a coupon redemption.
func NewActiveSubscription(userID string, plan PlanID, paymentID string, subscriptionID *string) (*Subscription, error) {
	if userID == "" || plan == "" || paymentID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscription{
		UserID:         userID,
		Plan:           plan,
		Status:         SubscriptionStatusActive,
		PaymentID:      paymentID,
		SubscriptionID: subscriptionID,
		UpdatedAt:      time.Now(),
	}, nil
}
