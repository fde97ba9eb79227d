package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/cache"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/config"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/controller"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/database"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/queue"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/repository"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/routes"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/scheduler"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/weather"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/worker"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Storage: Postgres when configured, in-memory otherwise (local runs).
	var (
		taskStore     repository.TaskStore
		snapshotStore repository.SnapshotStore
		healthCtrl    *controller.HealthController
	)
	c := cache.New(ctx, cfg)
	if cfg.DatabaseURL != "" {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			logger.Error(ctx, "Database not available", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error(ctx, "Schema migration failed", "error", err)
			os.Exit(1)
		}
		taskStore = repository.NewPostgresTaskStore(db)
		snapshotStore = repository.NewPostgresSnapshotStore(db)
		healthCtrl = controller.NewHealthController(db, c)
	} else {
		logger.Warn(ctx, "DATABASE_URL not set, using in-memory stores")
		taskStore = repository.NewMemoryTaskStore()
		snapshotStore = repository.NewMemorySnapshotStore()
		healthCtrl = controller.NewHealthController(nil, c)
	}

	// Kafka producer for task lifecycle events, consumer for cache
	// invalidation across replicas.
	events := queue.NewPublisher(ctx, cfg)
	defer events.Close()
	queue.EnsureTopic(ctx, cfg)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Run(workerCtx, cfg, c)

	// Weather gateway and snapshot log.
	gateway := weather.NewOpenWeatherClient(
		&http.Client{Timeout: cfg.WeatherTimeout},
		cfg.OpenWeatherAPIKey,
		cfg.OpenWeatherBaseURL,
	)
	weatherSvc := weather.NewService(gateway, snapshotStore, cfg.SnapshotHistoryMax)

	sched := scheduler.New(taskStore, weatherSvc, cfg.WeatherRefresh)
	if err := sched.Start(); err != nil {
		logger.Error(ctx, "Scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	router := routes.Router(
		controller.NewTaskController(taskStore, c, events),
		controller.NewReportController(taskStore, c),
		controller.NewWeatherController(taskStore, weatherSvc),
		healthCtrl,
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}
