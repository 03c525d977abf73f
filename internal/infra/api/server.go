package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/usecase"
)

// Server wires the HTTP surface to the use cases.
type Server struct {
	billing    usecase.BillingUseCase
	coupons    usecase.CouponUseCase
	subs       usecase.SubscriptionUseCase
	visions    usecase.VisionUseCase
	milestones usecase.MilestoneUseCase
	tasks      usecase.TaskUseCase
	progress   usecase.ProgressUseCase
	coach      usecase.CoachUseCase

	auth           *AuthManager
	requestTimeout time.Duration
	log            *zerolog.Logger
}

func NewServer(
	billing usecase.BillingUseCase,
	coupons usecase.CouponUseCase,
	subs usecase.SubscriptionUseCase,
	visions usecase.VisionUseCase,
	milestones usecase.MilestoneUseCase,
	tasks usecase.TaskUseCase,
	progress usecase.ProgressUseCase,
	coach usecase.CoachUseCase,
	auth *AuthManager,
	requestTimeout time.Duration,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		billing:        billing,
		coupons:        coupons,
		subs:           subs,
		visions:        visions,
		milestones:     milestones,
		tasks:          tasks,
		progress:       progress,
		coach:          coach,
		auth:           auth,
		requestTimeout: requestTimeout,
		log:            logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID)
	r.Use(Recover(s.log))
	r.Use(RequestLog(s.log))
	r.Use(Timeout(s.requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Post("/checkout", s.handleInitiateCheckout)
		r.Post("/checkout/verify", s.handleVerifyCheckout)
		r.Post("/checkout/force-verify", s.handleForceVerify)
		r.Post("/coupons/redeem", s.handleRedeemCoupon)
		r.Get("/subscriptions/me", s.handleCurrentSubscription)

		r.Post("/visions", s.handleCreateVision)
		r.Get("/visions", s.handleListVisions)
		r.Delete("/visions/{id}", s.handleDeleteVision)
		r.Post("/visions/{id}/milestones", s.handleCreateMilestone)
		r.Get("/visions/{id}/milestones", s.handleListMilestones)
		r.Delete("/milestones/{id}", s.handleDeleteMilestone)

		r.Post("/tasks", s.handleCreateTask)
		r.Post("/tasks/{id}/toggle", s.handleToggleTask)
		r.Post("/tasks/{id}/priority", s.handleTaskPriority)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
		r.Get("/planner", s.handlePlannerDay)
		r.Put("/planner/log", s.handleSaveReflection)

		r.Get("/progress", s.handleProgress)
		r.Post("/coach/chat", s.handleCoachChat)
	})

	return r
}
