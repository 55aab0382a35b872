package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/cache"
	"github.com/username/etftracker/internal/repository"
	"github.com/username/etftracker/internal/service"
)

// NewTestLogger returns a no-op logger for tests.
func NewTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

// NewTestMarketDataService wires a market data service around the given mock
// client with short-lived caches.
func NewTestMarketDataService(t *testing.T, client service.FinanceAPI) *service.MarketDataService {
	t.Helper()
	return service.NewMarketDataService(
		client,
		cache.New(time.Minute),
		cache.New(time.Minute),
		NewTestLogger(),
	)
}

// NewTestHoldingService wires a holding service around the given database and
// mock client.
func NewTestHoldingService(t *testing.T, db *sql.DB, client service.FinanceAPI) *service.HoldingService {
	t.Helper()
	return service.NewHoldingService(
		repository.NewHoldingRepository(db),
		NewTestMarketDataService(t, client),
		NewTestLogger(),
	)
}

// NewTestCSVService wires a CSV service around the given database.
func NewTestCSVService(t *testing.T, db *sql.DB) *service.CSVService {
	t.Helper()
	return service.NewCSVService(repository.NewHoldingRepository(db), NewTestLogger())
}
