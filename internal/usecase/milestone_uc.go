package usecase

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ MilestoneUseCase = (*milestoneUC)(nil)

type MilestoneUseCase interface {
	Create(ctx context.Context, userID, visionID, title, description string, deadline *time.Time) (*model.Milestone, error)
	ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error)
	Delete(ctx context.Context, userID, id string) error
}

type milestoneUC struct {
	milestones repository.MilestoneRepository
	visions    repository.VisionRepository
}

func NewMilestoneUseCase(milestones repository.MilestoneRepository, visions repository.VisionRepository) *milestoneUC {
	return &milestoneUC{milestones: milestones, visions: visions}
}

func (u *milestoneUC) Create(ctx context.Context, userID, visionID, title, description string, deadline *time.Time) (*model.Milestone, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	// The vision must exist and belong to the caller.
	v, err := u.visions.FindByID(ctx, visionID)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, domain.ErrNotFound
	}

	m, err := model.NewMilestone(ulid.Make().String(), userID, visionID, title, description, deadline)
	if err != nil {
		return nil, err
	}
	if err := u.milestones.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *milestoneUC) ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.milestones.ListByVision(ctx, userID, visionID)
}

func (u *milestoneUC) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.milestones.Delete(ctx, userID, id)
}
