// Flare Tracker API
//
// REST API for logging daily skin condition and finding delayed trigger patterns.
//
//	@title			Flare Tracker API
//	@version		1.0
//	@description	Record daily severity, foods and optional factors, then analyse which triggers precede flares.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management and module toggles
//
//	@tag.name			entries
//	@tag.description	Day entry tracking endpoints
//
//	@tag.name			analytics
//	@tag.description	Statistics and trigger pattern analysis
//
//	@tag.name			insights
//	@tag.description	LLM-generated insights and feedback
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/flare-tracker/internal/api"
	"github.com/blaisecz/flare-tracker/internal/api/handler"
	"github.com/blaisecz/flare-tracker/internal/config"
	"github.com/blaisecz/flare-tracker/internal/domain"
	"github.com/blaisecz/flare-tracker/internal/langfuse"
	"github.com/blaisecz/flare-tracker/internal/llm"
	"github.com/blaisecz/flare-tracker/internal/logger"
	"github.com/blaisecz/flare-tracker/internal/repository"
	"github.com/blaisecz/flare-tracker/internal/seed"
	"github.com/blaisecz/flare-tracker/internal/service"
	"github.com/blaisecz/flare-tracker/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "flare-tracker-api")
	if err != nil {
		log.Fatalw("failed to initialise tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Warnw("tracer shutdown failed", "error", err)
		}
	}()

	db, err := config.NewDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.DayEntry{}); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}
	log.Infow("database migration completed")

	if cfg.Seed {
		log.Infow("seeding database with sample data", "env", "SEED=true")
		if err := seed.Run(ctx, db, log); err != nil {
			log.Fatalw("failed to seed database", "error", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewDayEntryRepository(db)

	// Langfuse (no-op when keys are missing)
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Logger:      log,
	})

	var llmOpts []llm.Option
	prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.InsightsPromptName,
		PromptLabel: cfg.InsightsPromptLabel,
		SavePath:    cfg.InsightsPromptPath,
		Logger:      log,
	})
	if err != nil {
		log.Infow("using built-in insights prompt", "reason", err)
	} else {
		llmOpts = append(llmOpts, llm.WithSystemPrompt(prompt))
	}

	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIFlareInsightsModel, llmOpts...)
	if openaiClient == nil {
		log.Warnw("OpenAI API key not configured, insights endpoint will be unavailable")
	}

	// Services
	userService := service.NewUserService(userRepo)
	entryService := service.NewEntryService(entryRepo, userRepo)
	analyticsService := service.NewAnalyticsService(entryRepo, userRepo, service.AnalyticsSettings{
		DelayDays:           cfg.Analytics.DelayDays,
		Threshold:           cfg.Analytics.Threshold,
		FungalLookAheadDays: cfg.Analytics.FungalLookAheadDays,
		NickelRichFoods:     cfg.Analytics.NickelRichFoods,
		CacheTTL:            cfg.Analytics.CacheTTL,
		CacheSize:           cfg.Analytics.CacheSize,
	}, log)
	insightsService := service.NewInsightsService(analyticsService, userService, openaiClient, langfuseClient, log)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	entryHandler := handler.NewEntryHandler(entryService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	insightsHandler := handler.NewInsightsHandler(insightsService, langfuseClient, log)

	router := api.NewRouter(userHandler, entryHandler, analyticsHandler, insightsHandler, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infow("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
