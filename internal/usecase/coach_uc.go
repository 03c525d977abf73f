package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
	"kinetic-flow-backend/internal/domain/ports/repository"
	"kinetic-flow-backend/internal/infra/metrics"
)

// Compile-time check
var _ CoachUseCase = (*coachUC)(nil)

// RateLimitFunc reports whether the user may make another coach call in the
// current window.
type RateLimitFunc func(ctx context.Context, userID string) (bool, error)

type CoachUseCase interface {
	// Chat sends a single coaching turn. Gated to the ai_ultimate plan.
	Chat(ctx context.Context, userID, message string) (string, error)
}

type coachUC struct {
	ai      adapter.AIServiceAdapter
	subs    repository.SubscriptionRepository
	visions repository.VisionRepository
	tasks   repository.TaskRepository
	allow   RateLimitFunc
	log     *zerolog.Logger
}

func NewCoachUseCase(ai adapter.AIServiceAdapter, subs repository.SubscriptionRepository, visions repository.VisionRepository, tasks repository.TaskRepository, allow RateLimitFunc, log *zerolog.Logger) *coachUC {
	return &coachUC{ai: ai, subs: subs, visions: visions, tasks: tasks, allow: allow, log: log}
}

func (u *coachUC) Chat(ctx context.Context, userID, message string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	if strings.TrimSpace(message) == "" {
		return "", domain.ErrInvalidArgument
	}
	if u.ai == nil {
		return "", fmt.Errorf("%w: no AI provider configured", domain.ErrOperationFailed)
	}

	sub, err := u.subs.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && sub.Plan != model.PlanAIUltimate) {
		metrics.IncCoachChat("plan_required")
		return "", domain.ErrPlanRequired
	}
	if err != nil {
		return "", err
	}

	if u.allow != nil {
		ok, err := u.allow(ctx, userID)
		if err != nil {
			u.log.Warn().Err(err).Msg("coach rate limit check failed; allowing request")
		} else if !ok {
			metrics.IncCoachChat("rate_limited")
			return "", domain.ErrRateLimited
		}
	}

	system, err := u.buildSystemPrompt(ctx, userID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	reply, err := u.ai.Chat(ctx, []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: message},
	})
	metrics.ObserveCoachLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncCoachChat("error")
		return "", err
	}

	metrics.IncCoachChat("ok")
	return reply, nil
}

// buildSystemPrompt grounds the coach in the user's visions and today's
// priorities so its advice references real goals.
func (u *coachUC) buildSystemPrompt(ctx context.Context, userID string) (string, error) {
	var b strings.Builder
	b.WriteString("You are an execution coach for a goal-tracking app. ")
	b.WriteString("Be concise, direct, and practical. The user's context follows.\n")

	visions, err := u.visions.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(visions) > 0 {
		b.WriteString("\nVisions:\n")
		for _, v := range visions {
			fmt.Fprintf(&b, "- %s (%s, horizon %s, status %s)\n", v.Title, v.Category, v.TimeHorizon, v.Status)
		}
	}

	today, err := u.tasks.ListByUserAndDate(ctx, userID, time.Now())
	if err != nil {
		return "", err
	}
	if len(today) > 0 {
		b.WriteString("\nToday's tasks:\n")
		for _, t := range today {
			state := "open"
			if t.IsCompleted {
				state = "done"
			}
			fmt.Fprintf(&b, "- [%s] %s (priority %s)\n", state, t.Title, t.Priority)
		}
	}
	return b.String(), nil
}
