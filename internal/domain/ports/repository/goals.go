package repository

import (
	"context"
	"time"

	"kinetic-flow-backend/internal/domain/model"
)

// VisionRepository is the port for long-term goals.
type VisionRepository interface {
	Save(ctx context.Context, v *model.Vision) error
	FindByID(ctx context.Context, id string) (*model.Vision, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Vision, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, id string) error
}

// MilestoneRepository is the port for vision checkpoints.
type MilestoneRepository interface {
	Save(ctx context.Context, m *model.Milestone) error
	ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error)
	Delete(ctx context.Context, userID, id string) error
}

// TaskRepository is the port for actionable tasks and daily planning.
type TaskRepository interface {
	Save(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, userID, id string) (*model.Task, error)
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]*model.Task, error)
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error
	Delete(ctx context.Context, userID, id string) error

	// CountCompletedSince supports velocity stats.
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)
	// CompletionByVision returns (completed, total) task counts per vision id.
	CompletionByVision(ctx context.Context, userID string) (map[string][2]int, error)
}

// DailyLogRepository upserts the planner reflection keyed on (user_id, date).
type DailyLogRepository interface {
	Upsert(ctx context.Context, log *model.DailyLog) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.DailyLog, error)
}
