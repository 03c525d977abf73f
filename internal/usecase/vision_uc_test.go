//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/usecase"
)

func TestVisionUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should allow the first vision on the free tier", func(t *testing.T) {
		// --- Arrange ---
		visions := NewMockVisionRepo()
		uc := usecase.NewVisionUseCase(visions, NewMockSubscriptionStore())

		// --- Act ---
		v, err := uc.Create(ctx, "user-1", "Run a marathon", "Health", "1 year", "", nil)

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if v.ID == "" {
			t.Error("expected a generated id")
		}
		if v.Status != model.VisionStatusInProgress {
			t.Errorf("expected In Progress default, got %s", v.Status)
		}
	})

	t.Run("should block the second vision on the free tier", func(t *testing.T) {
		visions := NewMockVisionRepo()
		uc := usecase.NewVisionUseCase(visions, NewMockSubscriptionStore())

		if _, err := uc.Create(ctx, "user-1", "First", "Health", "1 year", "", nil); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := uc.Create(ctx, "user-1", "Second", "Career", "1 year", "", nil)

		if !errors.Is(err, domain.ErrVisionLimitReached) {
			t.Fatalf("expected ErrVisionLimitReached, got: %v", err)
		}
	})

	t.Run("should not cap paid users", func(t *testing.T) {
		visions := NewMockVisionRepo()
		store := NewMockSubscriptionStore()
		sub, _ := model.NewActiveSubscription("user-1", model.PlanElite, "pay_1", nil)
		_ = store.Upsert(ctx, sub)
		uc := usecase.NewVisionUseCase(visions, store)

		for i, title := range []string{"First", "Second", "Third"} {
			if _, err := uc.Create(ctx, "user-1", title, "Health", "1 year", "", nil); err != nil {
				t.Fatalf("create %d: %v", i, err)
			}
		}
	})

	t.Run("should reject an empty title", func(t *testing.T) {
		uc := usecase.NewVisionUseCase(NewMockVisionRepo(), NewMockSubscriptionStore())

		_, err := uc.Create(ctx, "user-1", "", "Health", "1 year", "", nil)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got: %v", err)
		}
	})
}

func TestMilestoneUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should refuse a vision owned by someone else", func(t *testing.T) {
		visions := NewMockVisionRepo()
		v, _ := model.NewVision("v1", "owner", "Theirs", "Health", "1 year", "", nil)
		_ = visions.Save(ctx, v)
		uc := usecase.NewMilestoneUseCase(NewMockMilestoneRepo(), visions)

		_, err := uc.Create(ctx, "intruder", "v1", "Sneaky", "", nil)

		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("should attach a milestone to the caller's vision", func(t *testing.T) {
		visions := NewMockVisionRepo()
		v, _ := model.NewVision("v1", "user-1", "Mine", "Health", "1 year", "", nil)
		_ = visions.Save(ctx, v)
		milestones := NewMockMilestoneRepo()
		uc := usecase.NewMilestoneUseCase(milestones, visions)

		m, err := uc.Create(ctx, "user-1", "v1", "First 5k", "", nil)

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if m.Status != model.MilestoneStatusNotStarted {
			t.Errorf("expected Not Started default, got %s", m.Status)
		}
		got, _ := milestones.ListByVision(ctx, "user-1", "v1")
		if len(got) != 1 {
			t.Errorf("expected 1 milestone saved, got %d", len(got))
		}
	})
}
