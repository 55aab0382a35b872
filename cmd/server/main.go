package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/username/etftracker/internal/api"
	"github.com/username/etftracker/internal/cache"
	"github.com/username/etftracker/internal/config"
	"github.com/username/etftracker/internal/database"
	"github.com/username/etftracker/internal/logger"
	"github.com/username/etftracker/internal/repository"
	"github.com/username/etftracker/internal/service"
	"github.com/username/etftracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories and adapters
	holdingRepo := repository.NewHoldingRepository(db)
	financeClient := yahoo.NewFinanceClient(cfg.Yahoo.BaseURL)
	quoteCache := cache.New(cfg.Cache.QuoteTTL)
	historyCache := cache.New(cfg.Cache.HistoryTTL)

	// Create services
	marketDataService := service.NewMarketDataService(financeClient, quoteCache, historyCache, log)
	metricsService := service.NewMetricsService(log)
	projectionService := service.NewProjectionService(log)
	holdingService := service.NewHoldingService(holdingRepo, marketDataService, log)
	csvService := service.NewCSVService(holdingRepo, log)

	// Create router
	router := api.NewRouter(db, api.Services{
		Holding:    holdingService,
		MarketData: marketDataService,
		Metrics:    metricsService,
		Projection: projectionService,
		CSV:        csvService,
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until interrupted, then shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server exited")
}
