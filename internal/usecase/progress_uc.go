package usecase

import (
	"context"
	"time"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ ProgressUseCase = (*progressUC)(nil)

// VisionProgress is the completion state of one vision's tasks.
type VisionProgress struct {
	VisionID  string `json:"vision_id"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// ProgressSnapshot aggregates completion velocity for the progress page.
type ProgressSnapshot struct {
	CompletedLast7Days  int              `json:"completed_last_7_days"`
	CompletedLast30Days int              `json:"completed_last_30_days"`
	Visions             []VisionProgress `json:"visions"`
}

type ProgressUseCase interface {
	Snapshot(ctx context.Context, userID string) (*ProgressSnapshot, error)
}

type progressUC struct {
	tasks repository.TaskRepository
}

func NewProgressUseCase(tasks repository.TaskRepository) *progressUC {
	return &progressUC{tasks: tasks}
}

func (u *progressUC) Snapshot(ctx context.Context, userID string) (*ProgressSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now()
	week, err := u.tasks.CountCompletedSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	month, err := u.tasks.CountCompletedSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	byVision, err := u.tasks.CompletionByVision(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &ProgressSnapshot{
		CompletedLast7Days:  week,
		CompletedLast30Days: month,
	}
	for visionID, counts := range byVision {
		done, total := counts[0], counts[1]
		pct := 0
		if total > 0 {
			pct = done * 100 / total
		}
		snap.Visions = append(snap.Visions, VisionProgress{
			VisionID:  visionID,
			Completed: done,
			Total:     total,
			Percent:   pct,
		})
	}
	return snap, nil
}
