package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/database"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/remotestore"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/summary"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level)
	logger.L.Info("starting dollar trade tracker", "version", version.Version)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
		logger.L.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.L.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		logger.L.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	logger.L.Info("connected to database", "path", cfg.Database.Path)

	transactionRepo := repository.NewTransactionRepository(db)

	var remote remotestore.Store = remotestore.NoopStore{}
	if cfg.RemoteStore.Enabled() {
		remote = remotestore.NewClient(cfg.RemoteStore.URL, cfg.RemoteStore.Timeout)
	} else {
		logger.L.Warn("REMOTE_STORE_URL not set, transactions are kept locally only")
	}

	summarizer := summary.NewSummarizer(nil)
	gemini, err := summary.NewGeminiClient(context.Background(), cfg.Summary.APIKey, cfg.Summary.Model)
	switch {
	case errors.Is(err, apperrors.ErrMissingCredential):
		logger.L.Warn("GEMINI_API_KEY not set, summaries fall back to static text")
	case err != nil:
		logger.L.Error("failed to create summary client", "error", err)
	default:
		summarizer = summary.NewSummarizer(gemini)
	}

	// Create services
	syncService := service.NewSyncService(transactionRepo, remote, cfg.Sync.Concurrency)
	services := api.Services{
		System: service.NewSystemService(db, map[string]bool{
			"remote_store": cfg.RemoteStore.Enabled(),
			"summary":      gemini != nil,
		}),
		Transaction: service.NewTransactionService(transactionRepo, syncService),
		Portfolio:   service.NewPortfolioService(transactionRepo),
		Summary:     service.NewSummaryService(transactionRepo, summarizer),
		Sync:        syncService,
	}

	if cfg.RemoteStore.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		syncService.InitialPull(ctx)
		cancel()
	}

	// Retry records that did not reach the remote store
	scheduler := cron.New()
	if cfg.RemoteStore.Enabled() {
		if _, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			result, err := syncService.Push(ctx)
			if err != nil {
				logger.L.Error("scheduled push failed", "error", err)
				return
			}
			if result.Attempted > 0 {
				logger.L.Info("scheduled push finished", "attempted", result.Attempted, "synced", result.Synced, "failed", result.Failed)
			}
		}); err != nil {
			logger.L.Error("invalid SYNC_SCHEDULE", "schedule", cfg.Sync.Schedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
	}

	router := api.NewRouter(services, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.L.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down server")

	<-scheduler.Stop().Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.L.Error("server forced to shutdown", "error", err)
		return
	}

	logger.L.Info("server exited")
}
