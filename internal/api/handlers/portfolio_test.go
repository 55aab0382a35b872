package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/username/etftracker/internal/api/handlers"
	"github.com/username/etftracker/internal/service"
	"github.com/username/etftracker/internal/testutil"
)

func newPortfolioHandler(t *testing.T, db *sql.DB, mock *testutil.MockFinanceClient) *handlers.PortfolioHandler {
	t.Helper()
	marketData := testutil.NewTestMarketDataService(t, mock)
	return handlers.NewPortfolioHandler(
		testutil.NewTestHoldingService(t, db, mock),
		marketData,
		service.NewMetricsService(testutil.NewTestLogger()),
	)
}

// TestPortfolioHandler_Metrics tests GET /api/portfolio/metrics.
func TestPortfolioHandler_Metrics(t *testing.T) {
	t.Run("returns rows and summary for the portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "SCHD", 100, 25)
		mock := testutil.NewMockFinanceClient().
			WithQuote("SCHD", 27.00, 3.5, "Financial Services", "Schwab US Dividend Equity ETF")
		handler := newPortfolioHandler(t, db, mock)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/metrics", nil)
		w := httptest.NewRecorder()
		handler.Metrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.MetricsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(resp.Rows))
		}
		row := resp.Rows[0]
		if row.MarketValue != 2700 || row.TotalGain != 200 {
			t.Errorf("Unexpected row values: %+v", row)
		}
		if resp.Summary.TotalValue != 2700 || resp.Summary.TotalCost != 2500 {
			t.Errorf("Unexpected summary: %+v", resp.Summary)
		}
	})

	t.Run("holding with no quote is reported flat, not dropped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "DELISTED", 10, 40)
		handler := newPortfolioHandler(t, db, testutil.NewMockFinanceClient())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/metrics", nil)
		w := httptest.NewRecorder()
		handler.Metrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp handlers.MetricsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(resp.Rows))
		}
		if resp.Rows[0].TotalGain != 0 {
			t.Errorf("Expected a flat position without a quote, got gain %v", resp.Rows[0].TotalGain)
		}
	})

	t.Run("empty portfolio returns empty rows and zero summary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := newPortfolioHandler(t, db, testutil.NewMockFinanceClient())

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/metrics", nil)
		w := httptest.NewRecorder()
		handler.Metrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp handlers.MetricsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Rows) != 0 {
			t.Errorf("Expected no rows, got %d", len(resp.Rows))
		}
		if resp.Summary.TotalValue != 0 {
			t.Errorf("Expected zero summary, got %+v", resp.Summary)
		}
	})
}
