package usecase

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ VisionUseCase = (*visionUC)(nil)

type VisionUseCase interface {
	Create(ctx context.Context, userID, title, category, timeHorizon, description string, imageURL *string) (*model.Vision, error)
	List(ctx context.Context, userID string) ([]*model.Vision, error)
	Delete(ctx context.Context, userID, id string) error
}

type visionUC struct {
	visions repository.VisionRepository
	subs    repository.SubscriptionRepository
}

func NewVisionUseCase(visions repository.VisionRepository, subs repository.SubscriptionRepository) *visionUC {
	return &visionUC{visions: visions, subs: subs}
}

func (u *visionUC) Create(ctx context.Context, userID, title, category, timeHorizon, description string, imageURL *string) (*model.Vision, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if err := u.checkPlanLimit(ctx, userID); err != nil {
		return nil, err
	}

	v, err := model.NewVision(ulid.Make().String(), userID, title, category, timeHorizon, description, imageURL)
	if err != nil {
		return nil, err
	}
	if err := u.visions.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// checkPlanLimit caps free users at FreeVisionLimit visions. A missing
// subscription row means the free tier.
func (u *visionUC) checkPlanLimit(ctx context.Context, userID string) error {
	plan := model.PlanFree
	sub, err := u.subs.FindByUser(ctx, userID)
	switch {
	case err == nil:
		plan = sub.Plan
	case errors.Is(err, domain.ErrNotFound):
		// free tier
	default:
		return err
	}

	if plan.Paid() {
		return nil
	}

	count, err := u.visions.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count >= model.FreeVisionLimit {
		return domain.ErrVisionLimitReached
	}
	return nil
}

func (u *visionUC) List(ctx context.Context, userID string) ([]*model.Vision, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.visions.ListByUser(ctx, userID)
}

func (u *visionUC) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.visions.Delete(ctx, userID, id)
}
