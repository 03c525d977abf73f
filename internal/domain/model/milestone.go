package model

import (
	"time"

	"kinetic-flow-backend/internal/domain"
)

type MilestoneStatus string

const (
	MilestoneStatusNotStarted MilestoneStatus = "Not Started"
	MilestoneStatusInProgress MilestoneStatus = "In Progress"
	MilestoneStatusCompleted  MilestoneStatus = "Completed"
)

// Milestone is a checkpoint under a vision.
type Milestone struct {
	ID          string
	UserID      string
	VisionID    string
	Title       string
	Description string
	Deadline    *time.Time
	Status      MilestoneStatus
	CreatedAt   time.Time
}

func NewMilestone(id, userID, visionID, title, description string, deadline *time.Time) (*Milestone, error) {
	if id == "" || userID == "" || visionID == "" || title == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Milestone{
		ID:          id,
		UserID:      userID,
		VisionID:    visionID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		Status:      MilestoneStatusNotStarted,
		CreatedAt:   time.Now(),
	}, nil
}
