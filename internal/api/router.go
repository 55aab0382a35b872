package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/api/handlers"
	custommiddleware "github.com/username/etftracker/internal/api/middleware"
	"github.com/username/etftracker/internal/config"
	"github.com/username/etftracker/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	Holding    *service.HoldingService
	MarketData *service.MarketDataService
	Metrics    *service.MetricsService
	Projection *service.ProjectionService
	CSV        *service.CSVService
}

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, svcs Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.VersionInfo)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(svcs.Holding)
			csvHandler := handlers.NewCSVHandler(svcs.Holding, svcs.MarketData, svcs.Metrics, svcs.Projection, svcs.CSV)
			r.Get("/", holdingHandler.List)
			r.Post("/", holdingHandler.Upsert)
			r.Delete("/{ticker}", holdingHandler.Delete)
			r.Get("/export", csvHandler.Export)
			r.Post("/import", csvHandler.Import)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Holding, svcs.MarketData, svcs.Metrics)
			r.Get("/metrics", portfolioHandler.Metrics)
		})

		r.Route("/dividends", func(r chi.Router) {
			calendarHandler := handlers.NewCalendarHandler(svcs.Holding, svcs.MarketData, svcs.Metrics, svcs.Projection)
			r.Get("/calendar", calendarHandler.Calendar)
		})
	})

	return r
}
