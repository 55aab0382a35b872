package service

import (
	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/model"
)

// sectorCategories maps the upstream sector taxonomy to the display
// categories the UI renders. Sectors absent from the map pass through
// unchanged; user-entered categories are unaffected unless they happen to
// equal a raw sector name.
var sectorCategories = map[string]string{
	"Technology":             "기술",
	"Healthcare":             "헬스케어",
	"Financial Services":     "금융",
	"Consumer Cyclical":      "소비재(임의)",
	"Consumer Defensive":     "소비재(필수)",
	"Communication Services": "통신",
	"Industrials":            "산업재",
	"Energy":                 "에너지",
	"Utilities":              "유틸리티",
	"Real Estate":            "부동산",
	"Basic Materials":        "기초소재",
}

// MapSectorToCategory maps a raw upstream sector to a display category.
// Empty or unknown sectors fall back to the generic "기타" bucket.
func MapSectorToCategory(sector string) string {
	if sector == "" || sector == "Unknown" {
		return "기타"
	}
	if mapped, ok := sectorCategories[sector]; ok {
		return mapped
	}
	return sector
}

// MetricsService is the calculation engine that joins holdings with market
// quotes into the derived per-position row set. It is pure: no I/O, no
// stored state beyond the logger.
type MetricsService struct {
	log zerolog.Logger
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(log zerolog.Logger) *MetricsService {
	return &MetricsService{log: log}
}

// ComputeMetrics performs a left join of holdings onto quotes by ticker and
// computes the derived financial columns for every holding.
//
// Join semantics:
//   - One output row per input holding, in input order.
//   - A holding with no matching quote is reported flat rather than dropped:
//     its price defaults to its own average cost (zero gain), yield to 0,
//     name to the ticker and sector to "Unknown".
//
// Division policy: any ratio with a zero or negative denominator yields 0.0,
// never an error or NaN. This holds for TotalGainPct and WeightPct.
//
// Failure mode: an unexpected internal error produces an empty result set.
// Callers must treat an empty result for a non-empty holdings input as
// "metrics unavailable", not as partial data.
func (s *MetricsService) ComputeMetrics(holdings []model.Holding, quotes []model.Quote) (rows []model.PortfolioRow) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Any("panic", r).Msg("metric calculation failed")
			rows = []model.PortfolioRow{}
		}
	}()

	if len(holdings) == 0 {
		s.log.Info().Msg("no holdings provided for calculation")
		return []model.PortfolioRow{}
	}

	quotesByTicker := make(map[string]model.Quote, len(quotes))
	for _, q := range quotes {
		quotesByTicker[q.Ticker] = q
	}

	rows = make([]model.PortfolioRow, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, mergeHoldingQuote(h, quotesByTicker))
	}

	// Weight needs the full market value, so it is a second pass.
	var totalValue float64
	for _, row := range rows {
		totalValue += row.MarketValue
	}
	for i := range rows {
		rows[i].WeightPct = safePct(rows[i].MarketValue, totalValue)
	}

	return rows
}

// mergeHoldingQuote is the explicit merge step producing one row from a
// holding and its optional quote, applying the default-substitution rule
// when the quote is missing.
func mergeHoldingQuote(h model.Holding, quotes map[string]model.Quote) model.PortfolioRow {
	quote, found := quotes[h.Ticker]
	if !found {
		// Fetch failed or ticker unknown upstream: report the position flat.
		quote = model.Quote{
			Ticker:        h.Ticker,
			CurrentPrice:  h.AvgCost,
			TrailingYield: 0,
			Sector:        "Unknown",
			Name:          h.Ticker,
		}
	}

	category := h.Category
	if category == "" {
		category = quote.Sector
	}
	if category == "" {
		category = "Unknown"
	}
	if mapped, ok := sectorCategories[category]; ok {
		category = mapped
	}

	marketValue := h.Shares * quote.CurrentPrice
	costBasis := h.Shares * h.AvgCost
	totalGain := marketValue - costBasis

	return model.PortfolioRow{
		ID:              h.ID,
		Ticker:          h.Ticker,
		Name:            quote.Name,
		Category:        category,
		Currency:        h.Currency,
		Shares:          h.Shares,
		AvgCost:         h.AvgCost,
		CurrentPrice:    quote.CurrentPrice,
		Yield:           quote.TrailingYield,
		MarketValue:     marketValue,
		CostBasis:       costBasis,
		TotalGain:       totalGain,
		TotalGainPct:    safePct(totalGain, costBasis),
		EstAnnualIncome: marketValue * quote.TrailingYield,
	}
}

// Summarize aggregates portfolio rows into the dashboard totals.
func (s *MetricsService) Summarize(rows []model.PortfolioRow) model.PortfolioSummary {
	var summary model.PortfolioSummary
	for _, row := range rows {
		summary.TotalValue += row.MarketValue
		summary.TotalCost += row.CostBasis
		summary.AnnualIncome += row.EstAnnualIncome
	}
	summary.TotalGain = summary.TotalValue - summary.TotalCost
	summary.TotalGainPct = safePct(summary.TotalGain, summary.TotalCost)
	return summary
}

// safePct returns numerator/denominator*100, or 0 when the denominator is
// zero or negative.
func safePct(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0.0
	}
	return numerator / denominator * 100.0
}
