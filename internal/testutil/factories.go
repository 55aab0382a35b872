package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/username/etftracker/internal/model"
)

// CreateHolding inserts a holding row directly and returns the created model.
// Category and currency get sensible defaults; use CreateHoldingFull when a
// test needs control over them.
func CreateHolding(t *testing.T, db *sql.DB, ticker string, shares, avgCost float64) model.Holding {
	t.Helper()
	return CreateHoldingFull(t, db, ticker, shares, avgCost, "", "USD")
}

// CreateHoldingFull inserts a holding row with every column specified.
func CreateHoldingFull(t *testing.T, db *sql.DB, ticker string, shares, avgCost float64, category, currency string) model.Holding {
	t.Helper()

	holding := model.Holding{
		ID:       uuid.New().String(),
		Ticker:   ticker,
		Shares:   shares,
		AvgCost:  avgCost,
		Category: category,
		Currency: currency,
	}

	var categoryValue any
	if category != "" {
		categoryValue = category
	}

	_, err := db.Exec(
		`INSERT INTO holding (id, ticker, shares, avg_cost, category, currency) VALUES (?, ?, ?, ?, ?, ?)`,
		holding.ID, holding.Ticker, holding.Shares, holding.AvgCost, categoryValue, holding.Currency,
	)
	if err != nil {
		t.Fatalf("Failed to insert test holding %s: %v", ticker, err)
	}

	return holding
}
