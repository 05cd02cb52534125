// Package app wires the tracker service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"standup-tracker/internal/config"
	cronpkg "standup-tracker/internal/infrastructure/cron"
	"standup-tracker/internal/infrastructure/github"
	kafkapkg "standup-tracker/internal/infrastructure/kafka"
	"standup-tracker/internal/infrastructure/postgres"
	redispkg "standup-tracker/internal/infrastructure/redis"
	"standup-tracker/internal/infrastructure/smtp"
	"standup-tracker/internal/service"
	httpapi "standup-tracker/internal/transport/http"
	"standup-tracker/pkg/token"
)

// App represents the tracker service.
type App struct {
	config          *config.Config
	logger          *slog.Logger
	httpServer      *http.Server
	reminderChecker *cronpkg.ReminderChecker
	producer        *kafkapkg.Producer
	dbPool          *pgxpool.Pool
}

// New creates a new application.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(&cfg.Logging)
	logger.Info("configuration loaded", "environment", cfg.Service.Environment)

	ctx := context.Background()

	dbPool, err := postgres.NewPool(ctx, cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	redisClient, err := redispkg.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	standupRepo := postgres.NewStandupRepository(dbPool)
	milestoneRepo := postgres.NewMilestoneRepository(dbPool)
	sprintRepo := postgres.NewSprintRepository(dbPool)
	taskRepo := postgres.NewTaskRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	sessions := redispkg.NewSessionStorage(redisClient)

	var producer *kafkapkg.Producer
	var events service.EventPublisher
	if cfg.Kafka.Enabled {
		producer = kafkapkg.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		events = producer
		logger.Info("kafka producer initialized", "topic", cfg.Kafka.Topic)
	}

	ghClient := github.NewClient(cfg.GitHub.ClientID, cfg.GitHub.ClientSecret)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.JWT.Issuer)

	authSvc := service.NewAuthService(ghClient, userRepo, sessions, tokens, cfg.Redis.SessionTTL)
	standupSvc := service.NewStandupService(standupRepo, events)
	planningSvc := service.NewPlanningService(milestoneRepo, sprintRepo, taskRepo)

	var reminderChecker *cronpkg.ReminderChecker
	if cfg.Scheduler.Enabled {
		mailer, err := smtp.NewMailer(&cfg.SMTP, &cfg.Email)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create mailer: %w", err)
		}
		reminderChecker = cronpkg.NewReminderChecker(
			userRepo, standupRepo, mailer, cfg.Scheduler.ReminderSpec, logger)
	} else {
		logger.Info("reminder checker disabled in configuration")
	}

	router := httpapi.NewRouter(authSvc, standupSvc, planningSvc, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &App{
		config:          cfg,
		logger:          logger,
		httpServer:      httpServer,
		reminderChecker: reminderChecker,
		producer:        producer,
		dbPool:          dbPool,
	}, nil
}

// Run starts the application and blocks until a shutdown signal arrives.
func (a *App) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if a.reminderChecker != nil {
		if err := a.reminderChecker.Start(); err != nil {
			return fmt.Errorf("failed to start reminder checker: %w", err)
		}
	}

	go func() {
		a.logger.Info("http server listening", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("http server error", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	a.logger.Info("shutting down")

	shutdownTimeout := a.config.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}

	if a.reminderChecker != nil {
		a.reminderChecker.Stop()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", "error", err)
		}
	}
	a.dbPool.Close()

	a.logger.Info("shutdown complete")
	return nil
}

func newLogger(cfg *config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
