package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ TaskUseCase = (*taskUC)(nil)

type TaskUseCase interface {
	Create(ctx context.Context, userID, title string, milestoneID *string, priority model.TaskPriority, estimatedMinutes *int, dueDate *time.Time) (*model.Task, error)
	ToggleCompletion(ctx context.Context, userID, id string, completed bool) error
	Delete(ctx context.Context, userID, id string) error

	// SetDailyPriority plans the task for a date; setting it also stamps the
	// planned date, unsetting leaves the date untouched.
	SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error
	PlannerDay(ctx context.Context, userID string, date time.Time) ([]*model.Task, *model.DailyLog, error)
	SaveReflection(ctx context.Context, userID string, date time.Time, note string) error
}

type taskUC struct {
	tasks repository.TaskRepository
	logs  repository.DailyLogRepository
}

func NewTaskUseCase(tasks repository.TaskRepository, logs repository.DailyLogRepository) *taskUC {
	return &taskUC{tasks: tasks, logs: logs}
}

func (u *taskUC) Create(ctx context.Context, userID, title string, milestoneID *string, priority model.TaskPriority, estimatedMinutes *int, dueDate *time.Time) (*model.Task, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	t, err := model.NewTask(ulid.Make().String(), userID, title, milestoneID, priority, estimatedMinutes, dueDate)
	if err != nil {
		return nil, err
	}
	if err := u.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *taskUC) ToggleCompletion(ctx context.Context, userID, id string, completed bool) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.tasks.SetCompleted(ctx, userID, id, completed)
}

func (u *taskUC) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.tasks.Delete(ctx, userID, id)
}

func (u *taskUC) SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.tasks.SetDailyPriority(ctx, userID, id, date, isPriority)
}

func (u *taskUC) PlannerDay(ctx context.Context, userID string, date time.Time) ([]*model.Task, *model.DailyLog, error) {
	if userID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	tasks, err := u.tasks.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	log, err := u.logs.FindByUserAndDate(ctx, userID, date)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}
	return tasks, log, nil
}

func (u *taskUC) SaveReflection(ctx context.Context, userID string, date time.Time, note string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return u.logs.Upsert(ctx, &model.DailyLog{UserID: userID, Date: date, ReflectionNote: note})
}
