package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kinetic-flow-backend/internal/config"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
	"kinetic-flow-backend/internal/domain/ports/repository"
	aiAdapters "kinetic-flow-backend/internal/infra/adapters/ai"
	payAdapters "kinetic-flow-backend/internal/infra/adapters/payment"
	"kinetic-flow-backend/internal/infra/api"
	pg "kinetic-flow-backend/internal/infra/db/postgres"
	"kinetic-flow-backend/internal/infra/logging"
	"kinetic-flow-backend/internal/infra/metrics"
	red "kinetic-flow-backend/internal/infra/redis"
	"kinetic-flow-backend/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop payment gateway)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	subRepo := red.NewCachedSubscriptionRepo(pg.NewSubscriptionRepo(pool), redisClient, cfg.Redis.TTL)
	couponRepo := pg.NewCouponRepo(pool)
	visionRepo := pg.NewVisionRepo(pool)
	milestoneRepo := pg.NewMilestoneRepo(pool)
	taskRepo := pg.NewTaskRepo(pool)
	dailyLogRepo := pg.NewDailyLogRepo(pool)

	// ---- Subscription writer (direct upsert with the elevated DSN,
	// stored-procedure fallback without it) ----
	var writer repository.SubscriptionWriter
	if cfg.Database.AdminURL != "" {
		adminPool, err := pg.NewPgxPool(ctx, cfg.Database.AdminURL, 4)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres admin")
		}
		defer adminPool.Close()
		writer = pg.NewAdminSubscriptionWriter(adminPool)
	} else {
		writer = pg.NewRPCSubscriptionWriter(pool, logger)
	}
	writer = red.NewInvalidatingSubscriptionWriter(writer, redisClient)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev && cfg.Payment.Razorpay.KeyID == "" {
		gateway = payAdapters.NewNoopPaymentGateway()
		logger.Warn().Msg("payment gateway: noop (dev)")
	} else {
		gateway, err = payAdapters.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
		if err != nil {
			logger.Fatal().Err(err).Msg("razorpay gateway")
		}
		logger.Info().Str("key_id", logging.Redact(cfg.Payment.Razorpay.KeyID, cfg.Runtime.Dev)).Msg("payment gateway: razorpay")
	}

	// ---- AI adapter ----
	var ai adapter.AIServiceAdapter
	if cfg.AI.OpenAIKey != "" {
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: OpenAI")
	} else {
		logger.Warn().Msg("ai.openai_key not set; coach chat disabled")
	}

	// ---- Use cases ----
	catalog := model.NewCatalog(cfg.Payment.Razorpay.ElitePlanID, cfg.Payment.Razorpay.UltimatePlanID)
	billingUC := usecase.NewBillingUseCase(catalog, gateway, writer, cfg.Payment.Razorpay.KeySecret, logger)
	couponUC := usecase.NewCouponUseCase(couponRepo, writer, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo)
	visionUC := usecase.NewVisionUseCase(visionRepo, subRepo)
	milestoneUC := usecase.NewMilestoneUseCase(milestoneRepo, visionRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, dailyLogRepo)
	progressUC := usecase.NewProgressUseCase(taskRepo)

	allowCoach := func(ctx context.Context, userID string) (bool, error) {
		return rateLimiter.Allow(ctx, red.UserActionKey(userID, "coach_chat"), cfg.AI.CoachRateLimit, time.Minute)
	}
	coachUC := usecase.NewCoachUseCase(ai, subRepo, visionRepo, taskRepo, allowCoach, logger)

	// ---- HTTP ----
	auth := api.NewAuthManager(cfg.Auth.JWTSecret)
	server := api.NewServer(billingUC, couponUC, subUC, visionUC, milestoneUC, taskUC, progressUC, coachUC, auth, cfg.Server.RequestTimeout, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
