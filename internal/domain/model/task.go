package model

import (
	"time"

	"kinetic-flow-backend/internal/domain"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// Task is an actionable unit of work, optionally attached to a milestone and
// optionally planned for a specific day.
type Task struct {
	ID               string
	UserID           string
	MilestoneID      *string
	Title            string
	Priority         TaskPriority
	EstimatedMinutes *int
	DueDate          *time.Time
	PlannedDate      *time.Time
	IsDailyPriority  bool
	IsCompleted      bool
	CompletedAt      *time.Time
	CreatedAt        time.Time
}

func NewTask(id, userID, title string, milestoneID *string, priority TaskPriority, estimatedMinutes *int, dueDate *time.Time) (*Task, error) {
	if id == "" || userID == "" || title == "" {
		return nil, domain.ErrInvalidArgument
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}
	return &Task{
		ID:               id,
		UserID:           userID,
		MilestoneID:      milestoneID,
		Title:            title,
		Priority:         priority,
		EstimatedMinutes: estimatedMinutes,
		DueDate:          dueDate,
		CreatedAt:        time.Now(),
	}, nil
}

// DailyLog is the planner's end-of-day reflection, one row per (user, date).
type DailyLog struct {
	UserID         string
	Date           time.Time // date component only
	ReflectionNote string
}
