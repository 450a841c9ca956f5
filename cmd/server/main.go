// Package main is the entry point for Volcast, a volatility forecasting
// service: it fetches daily price history, fits GARCH(1,1) and EGARCH(1,1)
// models by maximum likelihood, and serves forecasts and model comparisons
// over HTTP.
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

	"github.com/aristath/volcast/internal/clientdata"
	"github.com/aristath/volcast/internal/clients/yahoo"
	"github.com/aristath/volcast/internal/config"
	"github.com/aristath/volcast/internal/database"
	"github.com/aristath/volcast/internal/modules/comparison"
	comparisonhandlers "github.com/aristath/volcast/internal/modules/comparison/handlers"
	"github.com/aristath/volcast/internal/modules/marketdata"
	marketdatahandlers "github.com/aristath/volcast/internal/modules/marketdata/handlers"
	"github.com/aristath/volcast/internal/modules/statistics"
	statisticshandlers "github.com/aristath/volcast/internal/modules/statistics/handlers"
	"github.com/aristath/volcast/internal/modules/volatility"
	volatilityhandlers "github.com/aristath/volcast/internal/modules/volatility/handlers"
	"github.com/aristath/volcast/internal/scheduler"
	"github.com/aristath/volcast/internal/server"
	"github.com/aristath/volcast/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	log.Info().Str("data_dir", cfg.DataDir).Int("port", cfg.Port).Msg("Starting Volcast")

	// Cache database
	cacheDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "cache.db"),
		Name: "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	cacheRepo, err := clientdata.NewRepository(cacheDB.Conn())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache repository")
	}

	// Services
	yahooClient := yahoo.NewClient(log)
	marketSvc := marketdata.NewService(yahooClient, cacheRepo, cfg.CacheTTL, log)
	statsSvc := statistics.NewService(log)
	modelSvc := volatility.NewService(log)
	compareSvc := comparison.NewService(log)

	// Background jobs
	sched := scheduler.New(log)
	warmJob := scheduler.NewWarmCacheJob(marketSvc, cfg.Watchlist, log)
	if err := sched.AddJob(cfg.WarmSchedule, warmJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WarmSchedule).Msg("Failed to register cache warm job")
	}
	cleanupJob := scheduler.NewCacheCleanupJob(cacheRepo, log)
	if err := sched.AddJob("0 30 * * * *", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	sched.Start()

	// Warm the watchlist once at startup so the dashboard's first load is
	// served from cache.
	if len(cfg.Watchlist) > 0 {
		go func() {
			if err := sched.RunNow(warmJob); err != nil {
				log.Warn().Err(err).Msg("Startup cache warm failed")
			}
		}()
	}

	// HTTP server
	srv := server.New(server.Config{
		Log:                log,
		Config:             cfg,
		CacheDB:            cacheDB,
		CacheStats:         cacheRepo,
		MarketDataHandlers: marketdatahandlers.NewHandler(marketSvc, log),
		StatisticsHandlers: statisticshandlers.NewHandler(marketSvc, statsSvc, log),
		VolatilityHandlers: volatilityhandlers.NewHandler(marketSvc, modelSvc, log),
		ComparisonHandlers: comparisonhandlers.NewHandler(marketSvc, modelSvc, compareSvc, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
