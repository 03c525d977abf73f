package usecase

import (
	"context"
	"errors"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type SubscriptionUseCase interface {
	// Current returns the caller's subscription. Users without a row are on
	// the free tier; a synthetic free record is returned rather than an error.
	Current(ctx context.Context, userID string) (*model.Subscription, error)
}

type subscriptionUC struct {
	subs repository.SubscriptionRepository
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository) *subscriptionUC {
	return &subscriptionUC{subs: subs}
}

func (u *subscriptionUC) Current(ctx context.Context, userID string) (*model.Subscription, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	sub, err := u.subs.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &model.Subscription{UserID: userID, Plan: model.PlanFree}, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}
