package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senya/senya/internal/api"
	"github.com/senya/senya/internal/classifier"
	"github.com/senya/senya/internal/config"
	"github.com/senya/senya/internal/db"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/repository/sqlite"
	"github.com/senya/senya/internal/services"
	"github.com/senya/senya/internal/verification"
	"github.com/senya/senya/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Senya Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("classifier_url=%s", cfg.ClassifierURL)
	log.Debug("confidence_threshold=%.2f", cfg.ConfidenceThreshold)
	log.Debug("hearts_cap=%d", cfg.HeartsCap)
	log.Debug("heart_regen_interval=%s", cfg.HeartRegenInterval)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)
	log.Debug("session_ttl=%s", cfg.SessionTTL)
	log.Debug("log_level=%s", cfg.LogLevel)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	accountRepo := sqlite.NewAccountRepository(database.DB)
	profileRepo := sqlite.NewProfileRepository(database.DB)
	catalogRepo := sqlite.NewCatalogRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	practiceRepo := sqlite.NewPracticeRepository(database.DB)
	shopRepo := sqlite.NewShopRepository(database.DB)
	analyticsRepo := sqlite.NewAnalyticsRepository(database.DB)

	// Classifier and verification pipeline
	signClassifier := classifier.New(cfg.ClassifierURL, cfg.ClassifierTimeout)
	pipeline := verification.NewPipeline(signClassifier)

	// Services
	authService := services.NewAuthService(accountRepo, profileRepo, cfg.SessionTTL, cfg.HeartsCap)
	catalogService := services.NewCatalogService(catalogRepo, progressRepo)
	progressService := services.NewProgressService(progressRepo, catalogRepo, profileRepo, pipeline, cfg.ConfidenceThreshold, cfg.HeartsCap)
	economyService := services.NewEconomyService(profileRepo, progressRepo)
	shopService := services.NewShopService(shopRepo, profileRepo, cfg.HeartsCap)
	practiceService := services.NewPracticeService(practiceRepo, progressRepo, profileRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	// Background worker pool
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)

	srv := &api.Server{
		DB:               database,
		AuthService:      authService,
		CatalogService:   catalogService,
		ProgressService:  progressService,
		EconomyService:   economyService,
		ShopService:      shopService,
		PracticeService:  practiceService,
		AnalyticsService: analyticsService,
		Classifier:       signClassifier,
		Pool:             pool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// Periodic jobs: heart regeneration and expired session cleanup.
	pool.Schedule(cfg.HeartRegenInterval, &worker.HeartRegenJob{Profiles: profileRepo, HeartsCap: cfg.HeartsCap})
	pool.Schedule(time.Hour, &worker.SessionSweepJob{Accounts: accountRepo})

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background jobs")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("Senya Server Stopped")
	log.Info("===========================================")
}
