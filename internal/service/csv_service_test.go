package service_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/repository"
	"github.com/username/etftracker/internal/testutil"
)

// TestCSVService_Export tests serialization to the fixed-column layout.
func TestCSVService_Export(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCSVService(t, db)

	t.Run("renders rows in the fixed column order", func(t *testing.T) {
		rows := []model.PortfolioRow{
			{
				Ticker:       "SCHD",
				Name:         "Schwab US Dividend Equity ETF",
				Category:     "금융",
				Shares:       100,
				AvgCost:      25,
				CurrentPrice: 27,
				Yield:        0.035,
			},
		}
		months := map[string][]int{"SCHD": {3, 6, 9, 12}}

		out, err := svc.Export(rows, months)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
		if err != nil {
			t.Fatalf("Expected parseable CSV, got %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected header plus 1 row, got %d records", len(records))
		}

		header := strings.Join(records[0], ",")
		if header != "Ticker,Name,Shares,AvgPrice,Yield,Months,Category,CurrentPrice" {
			t.Errorf("Unexpected header: %s", header)
		}

		row := records[1]
		if row[0] != "SCHD" || row[2] != "100" || row[3] != "25" {
			t.Errorf("Unexpected row values: %v", row)
		}
		if row[4] != "3.50%" {
			t.Errorf("Expected yield rendered as 3.50%%, got %s", row[4])
		}
		if row[5] != "3,6,9,12" {
			t.Errorf("Expected months 3,6,9,12, got %s", row[5])
		}
	})

	t.Run("empty portfolio exports header only", func(t *testing.T) {
		out, err := svc.Export([]model.PortfolioRow{}, map[string][]int{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 1 {
			t.Errorf("Expected header only, got %d lines", len(lines))
		}
	})

	t.Run("ticker without inferred months leaves the column empty", func(t *testing.T) {
		rows := []model.PortfolioRow{{Ticker: "QQQ", Shares: 10, AvgCost: 400}}

		out, err := svc.Export(rows, map[string][]int{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		records, _ := csv.NewReader(strings.NewReader(out)).ReadAll()
		if records[1][5] != "" {
			t.Errorf("Expected empty Months column, got %q", records[1][5])
		}
	})
}

// TestCSVService_Import tests the tolerant row-at-a-time import.
//
// WHY: Imports come from hand-edited spreadsheets. The contract is precise
// about what is forgiven (bad share counts skip the row) versus what aborts
// (missing required columns, unparsable cost) versus what persists after an
// abort (rows already applied).
func TestCSVService_Import(t *testing.T) {
	t.Run("imports valid rows and reports the count", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		content := "Ticker,Name,Shares,AvgPrice,Yield,Months,Category,CurrentPrice\n" +
			"SCHD,Schwab US Dividend Equity ETF,100,25,3.50%,\"3,6,9,12\",금융,27\n" +
			"jepi,JPMorgan Equity Premium Income,50,55.25,,,,\n"

		result := svc.Import(strings.NewReader(content))
		if !result.Success {
			t.Fatalf("Expected success, got: %s", result.Message)
		}
		if result.Imported != 2 {
			t.Errorf("Expected 2 imported, got %d", result.Imported)
		}

		repo := repository.NewHoldingRepository(db)
		h, err := repo.GetByTicker("JEPI")
		if err != nil {
			t.Fatalf("Expected lowercase ticker stored uppercased, got %v", err)
		}
		if h.Shares != 50 || h.AvgCost != 55.25 {
			t.Errorf("Unexpected imported values: %+v", h)
		}
	})

	t.Run("round-trips an exported portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		rows := []model.PortfolioRow{
			{Ticker: "SCHD", Shares: 100.5, AvgCost: 25.33, Category: "금융"},
			{Ticker: "JEPI", Shares: 50, AvgCost: 55.25},
		}
		out, err := svc.Export(rows, map[string][]int{})
		if err != nil {
			t.Fatalf("Expected no export error, got %v", err)
		}

		result := svc.Import(strings.NewReader(out))
		if !result.Success || result.Imported != 2 {
			t.Fatalf("Expected 2 imported, got %+v", result)
		}

		repo := repository.NewHoldingRepository(db)
		h, err := repo.GetByTicker("SCHD")
		if err != nil {
			t.Fatalf("Expected SCHD persisted, got %v", err)
		}
		if h.Shares != 100.5 || h.AvgCost != 25.33 || h.Category != "금융" {
			t.Errorf("Round-trip mismatch: %+v", h)
		}
	})

	t.Run("accepts case-insensitive headers and currency formatting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		content := "TICKER,shares,AvgPrice,Sector\n" +
			"SCHD,\"1,000\",$25.50,Financial Services\n"

		result := svc.Import(strings.NewReader(content))
		if !result.Success {
			t.Fatalf("Expected success, got: %s", result.Message)
		}

		repo := repository.NewHoldingRepository(db)
		h, err := repo.GetByTicker("SCHD")
		if err != nil {
			t.Fatalf("Expected SCHD persisted, got %v", err)
		}
		if h.Shares != 1000 || h.AvgCost != 25.50 {
			t.Errorf("Expected normalized numbers, got %+v", h)
		}
		if h.Category != "Financial Services" {
			t.Errorf("Expected Sector column mapped to category, got %q", h.Category)
		}
	})

	t.Run("missing required columns fail with a named list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		content := "Ticker,Name\nSCHD,Schwab\n"

		result := svc.Import(strings.NewReader(content))
		if result.Success {
			t.Fatal("Expected failure for missing columns")
		}
		if !strings.Contains(result.Message, "shares") || !strings.Contains(result.Message, "avgprice") {
			t.Errorf("Expected message naming missing columns, got: %s", result.Message)
		}
	})

	t.Run("skips rows with bad or non-positive share counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		content := "Ticker,Shares,AvgPrice\n" +
			"SCHD,100,25\n" +
			"BAD,abc,10\n" +
			"ZERO,0,10\n" +
			",5,10\n" +
			"JEPI,50,55\n"

		result := svc.Import(strings.NewReader(content))
		if !result.Success {
			t.Fatalf("Expected success with bad rows skipped, got: %s", result.Message)
		}
		if result.Imported != 2 {
			t.Errorf("Expected 2 imported with 3 skipped, got %d", result.Imported)
		}
	})

	t.Run("unparsable cost aborts but keeps earlier rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)

		content := "Ticker,Shares,AvgPrice\n" +
			"SCHD,100,25\n" +
			"JEPI,50,not-a-price\n"

		result := svc.Import(strings.NewReader(content))
		if result.Success {
			t.Fatal("Expected failure for unparsable AvgPrice")
		}
		if !strings.Contains(result.Message, "JEPI") {
			t.Errorf("Expected message naming the bad row, got: %s", result.Message)
		}
		if result.Imported != 1 {
			t.Errorf("Expected 1 row applied before the abort, got %d", result.Imported)
		}

		repo := repository.NewHoldingRepository(db)
		if _, err := repo.GetByTicker("SCHD"); err != nil {
			t.Errorf("Expected SCHD to persist after abort, got %v", err)
		}
	})

	t.Run("import updates an existing holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestCSVService(t, db)
		testutil.CreateHolding(t, db, "SCHD", 10, 20)

		content := "Ticker,Shares,AvgPrice\nSCHD,100,25\n"

		result := svc.Import(strings.NewReader(content))
		if !result.Success {
			t.Fatalf("Expected success, got: %s", result.Message)
		}

		repo := repository.NewHoldingRepository(db)
		h, _ := repo.GetByTicker("SCHD")
		if h.Shares != 100 || h.AvgCost != 25 {
			t.Errorf("Expected upsert to overwrite, got %+v", h)
		}
	})
}
