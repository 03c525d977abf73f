package model

import (
	"time"

	"kinetic-flow-backend/internal/domain"
)

type VisionStatus string

const (
	VisionStatusInProgress VisionStatus = "In Progress"
	VisionStatusAchieved   VisionStatus = "Achieved"
	VisionStatusPaused     VisionStatus = "Paused"
)

// Vision is a user-defined long-term goal.
type Vision struct {
	ID          string
	UserID      string
	Title       string
	Category    string
	TimeHorizon string
	Description string
	ImageURL    *string
	Status      VisionStatus
	CreatedAt   time.Time
}

// FreeVisionLimit caps visions for users without a paid plan.
const FreeVisionLimit = 1

func NewVision(id, userID, title, category, timeHorizon, description string, imageURL *string) (*Vision, error) {
	if id == "" || userID == "" || title == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Vision{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Category:    category,
		TimeHorizon: timeHorizon,
		Description: description,
		ImageURL:    imageURL,
		Status:      VisionStatusInProgress,
		CreatedAt:   time.Now(),
	}, nil
}
