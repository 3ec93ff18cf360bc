package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	zlog "github.com/rs/zerolog/log"

	"github.com/Rahul-Chotaliya/tradehub/internal/api"
	"github.com/Rahul-Chotaliya/tradehub/internal/config"
	"github.com/Rahul-Chotaliya/tradehub/internal/database"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
	"github.com/Rahul-Chotaliya/tradehub/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log.Format).Level(logger.ParseLevel(cfg.Log.Level))
	zlog.Logger = log

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("Connected to database")

	key, generated, err := service.LoadKey(cfg.Auth.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load auth key")
	}
	if generated {
		log.Warn().Msg("AUTH_SECRET is not set, using a random key; tokens will not survive a restart")
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Create services
	services := api.Services{
		System:   service.NewSystemService(db),
		Category: service.NewCategoryService(categoryRepo, assetRepo),
		Asset: service.NewAssetService(
			db,
			assetRepo,
			transactionRepo,
			categoryRepo,
			cfg.Ledger.OversellPolicy,
		),
		Auth: service.NewAuthService(userRepo, key, cfg.Auth.TokenTTL),
	}
	reconcileService := service.NewReconcileService(
		db,
		assetRepo,
		transactionRepo,
		cfg.Ledger.OversellPolicy,
		cfg.Reconcile.Concurrency,
	)

	// Scheduled reconcile
	scheduler := cron.New()
	if cfg.Reconcile.Schedule != "" {
		if _, err := reconcileService.Schedule(scheduler, cfg.Reconcile.Schedule, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule reconcile")
		}
		scheduler.Start()
		log.Info().Str("schedule", cfg.Reconcile.Schedule).Msg("Reconcile job scheduled")
	}

	// Create router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Wait for a running reconcile to finish
	<-scheduler.Stop().Done()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited")
}
