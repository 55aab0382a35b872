package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/username/etftracker/internal/api/handlers"
	"github.com/username/etftracker/internal/service"
	"github.com/username/etftracker/internal/testutil"
	"github.com/username/etftracker/internal/yahoo"
)

func newCalendarHandler(t *testing.T, db *sql.DB, mock *testutil.MockFinanceClient) *handlers.CalendarHandler {
	t.Helper()
	return handlers.NewCalendarHandler(
		testutil.NewTestHoldingService(t, db, mock),
		testutil.NewTestMarketDataService(t, mock),
		service.NewMetricsService(testutil.NewTestLogger()),
		service.NewProjectionService(testutil.NewTestLogger()),
	)
}

// recentQuarterly builds a year of quarterly payments ending last month, so
// the history is always inside the projection's recent window regardless of
// when the test runs.
func recentQuarterly(amount float64) []yahoo.DividendPayment {
	payments := []yahoo.DividendPayment{}
	now := time.Now()
	// Day 15 keeps AddDate month arithmetic exact near month boundaries.
	date := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	for i := 0; i < 4; i++ {
		payments = append(payments, yahoo.DividendPayment{Date: date, Amount: amount})
		date = date.AddDate(0, -3, 0)
	}
	return payments
}

// TestCalendarHandler_Calendar tests GET /api/dividends/calendar.
func TestCalendarHandler_Calendar(t *testing.T) {
	t.Run("returns twelve months with projected totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "SCHD", 100, 25)
		mock := testutil.NewMockFinanceClient().
			WithQuote("SCHD", 27.00, 3.5, "Financial Services", "Schwab US Dividend Equity ETF").
			WithDividends("SCHD", recentQuarterly(0.74))
		handler := newCalendarHandler(t, db, mock)

		req := httptest.NewRequest(http.MethodGet, "/api/dividends/calendar", nil)
		w := httptest.NewRecorder()
		handler.Calendar(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.CalendarResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Months) != 12 {
			t.Fatalf("Expected 12 months, got %d", len(resp.Months))
		}

		var total float64
		paying := 0
		for _, m := range resp.Months {
			total += m.Total
			if m.Total > 0 {
				paying++
			}
		}
		if paying != 4 {
			t.Errorf("Expected 4 paying months for a quarterly payer, got %d", paying)
		}
		if total != 4*0.74*100 {
			t.Errorf("Expected projected annual total 296, got %v", total)
		}
		if resp.CrossCheck.ProjectedAnnual != total {
			t.Errorf("Expected cross-check to match the calendar total, got %v", resp.CrossCheck.ProjectedAnnual)
		}
	})

	t.Run("yield-derived income appears in the cross-check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "SCHD", 100, 25)
		mock := testutil.NewMockFinanceClient().
			WithQuote("SCHD", 27.00, 3.5, "Financial Services", "Schwab US Dividend Equity ETF").
			WithDividends("SCHD", recentQuarterly(0.74))
		handler := newCalendarHandler(t, db, mock)

		req := httptest.NewRequest(http.MethodGet, "/api/dividends/calendar", nil)
		w := httptest.NewRecorder()
		handler.Calendar(w, req)

		var resp handlers.CalendarResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		// 2700 market value at 3.5% yield.
		if resp.CrossCheck.YieldAnnual != 94.5 {
			t.Errorf("Expected yield-derived income 94.5, got %v", resp.CrossCheck.YieldAnnual)
		}
		if resp.CrossCheck.Delta != resp.CrossCheck.ProjectedAnnual-resp.CrossCheck.YieldAnnual {
			t.Errorf("Expected delta to be the difference of the estimates, got %v", resp.CrossCheck.Delta)
		}
	})

	t.Run("ticker without history contributes an empty calendar", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateHolding(t, db, "GROWTH", 10, 100)
		mock := testutil.NewMockFinanceClient().
			WithQuote("GROWTH", 120, 0, "Technology", "Growth ETF")
		handler := newCalendarHandler(t, db, mock)

		req := httptest.NewRequest(http.MethodGet, "/api/dividends/calendar", nil)
		w := httptest.NewRecorder()
		handler.Calendar(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp handlers.CalendarResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Months) != 12 {
			t.Fatalf("Expected 12 months even with no payments, got %d", len(resp.Months))
		}
		for _, m := range resp.Months {
			if m.Total != 0 {
				t.Errorf("Expected empty month %s, got total %v", m.MonthKey, m.Total)
			}
		}
	})
}
