package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/repository"
)

// csvHeaders is the fixed column layout shared with the spreadsheet sync
// format. Import only requires Ticker, Shares and AvgPrice.
var csvHeaders = []string{"Ticker", "Name", "Shares", "AvgPrice", "Yield", "Months", "Category", "CurrentPrice"}

// ImportResult is the structured outcome of a CSV import. Imports are not
// transactional: holdings are upserted one row at a time, so rows applied
// before a failure persist.
type ImportResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// CSVService serializes holdings to and from the fixed-column CSV layout.
type CSVService struct {
	holdingRepo *repository.HoldingRepository
	log         zerolog.Logger
}

// NewCSVService creates a new CSVService with the provided repository.
func NewCSVService(holdingRepo *repository.HoldingRepository, log zerolog.Logger) *CSVService {
	return &CSVService{
		holdingRepo: holdingRepo,
		log:         log,
	}
}

// Export renders portfolio rows as CSV in the fixed column order. Yield is
// rendered as a percentage string with two decimals; the Months column
// carries each ticker's inferred payment months as a comma-joined list.
func (s *CSVService) Export(rows []model.PortfolioRow, monthsByTicker map[string][]int) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Ticker,
			row.Name,
			strconv.FormatFloat(row.Shares, 'f', -1, 64),
			strconv.FormatFloat(row.AvgCost, 'f', -1, 64),
			fmt.Sprintf("%.2f%%", row.Yield*100),
			joinMonths(monthsByTicker[row.Ticker]),
			row.Category,
			strconv.FormatFloat(row.CurrentPrice, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row for %s: %w", row.Ticker, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	return sb.String(), nil
}

// Import reads holdings from CSV content and upserts them one at a time.
//
// Header matching is case-insensitive. Ticker, Shares and AvgPrice are
// required: a missing column is a reported failure naming what is missing.
// Rows with an empty ticker or a non-positive or unparsable share count are
// skipped; any other row-level parse error aborts the import with a reported
// failure. Already-applied upserts persist after an abort.
func (s *CSVService) Import(r io.Reader) ImportResult {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{Success: false, Message: "failed to read CSV header"}
	}

	columns := matchColumns(header)
	missing := missingRequired(columns)
	if len(missing) > 0 {
		return ImportResult{
			Success: false,
			Message: fmt.Sprintf("missing required columns: %s (expected header: %s)",
				strings.Join(missing, ", "), strings.Join(csvHeaders, ", ")),
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{Success: false, Message: fmt.Sprintf("failed to read CSV row: %v", err), Imported: count}
		}

		ticker := strings.ToUpper(strings.TrimSpace(field(record, columns["ticker"])))
		if ticker == "" {
			continue
		}

		shares, err := strconv.ParseFloat(normalizeNumber(field(record, columns["shares"])), 64)
		if err != nil || shares <= 0 {
			// Bad share counts skip the row rather than aborting the import.
			continue
		}

		avgCost, err := strconv.ParseFloat(normalizeNumber(field(record, columns["avgprice"])), 64)
		if err != nil {
			return ImportResult{
				Success:  false,
				Message:  fmt.Sprintf("row for %s has an unparsable AvgPrice value", ticker),
				Imported: count,
			}
		}

		category := ""
		if idx, ok := columns["category"]; ok {
			category = strings.TrimSpace(field(record, idx))
		}

		holding := model.Holding{
			Ticker:   ticker,
			Shares:   shares,
			AvgCost:  avgCost,
			Category: category,
		}
		if err := s.holdingRepo.Upsert(holding); err != nil {
			s.log.Error().Err(err).Str("ticker", ticker).Msg("failed to upsert imported holding")
			return ImportResult{Success: false, Message: fmt.Sprintf("failed to save %s", ticker), Imported: count}
		}
		count++
	}

	return ImportResult{
		Success:  true,
		Message:  fmt.Sprintf("successfully imported %d holdings", count),
		Imported: count,
	}
}

// matchColumns resolves header positions case-insensitively. Keys are the
// lowercased canonical column names.
func matchColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "ticker":
			columns["ticker"] = i
		case "shares":
			columns["shares"] = i
		case "avgprice":
			columns["avgprice"] = i
		case "category", "sector":
			columns["category"] = i
		}
	}
	return columns
}

// missingRequired reports which of the mandatory import columns are absent.
func missingRequired(columns map[string]int) []string {
	missing := []string{}
	for _, name := range []string{"ticker", "shares", "avgprice"} {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// field returns the record value at idx, or "" when the row is short.
func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// normalizeNumber strips currency symbols, thousands separators and
// whitespace from spreadsheet-formatted numbers.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}

// joinMonths renders a payment-month set like "3,6,9,12".
func joinMonths(months []int) string {
	if len(months) == 0 {
		return ""
	}
	parts := make([]string, len(months))
	for i, m := range months {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}
