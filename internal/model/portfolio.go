package model

// PortfolioRow represents one holding enriched with market data and derived
// metrics. Rows are produced by the metrics engine per request and never
// persisted.
//
// Derivations:
//   - MarketValue = Shares * CurrentPrice
//   - CostBasis = Shares * AvgCost
//   - TotalGain = MarketValue - CostBasis
//   - TotalGainPct = TotalGain / CostBasis * 100 (0 when CostBasis <= 0)
//   - EstAnnualIncome = MarketValue * Yield
//   - WeightPct = MarketValue / sum(MarketValue) * 100 (0 when the sum is <= 0)
type PortfolioRow struct {
	ID              string  `json:"id"`
	Ticker          string  `json:"ticker"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Currency        string  `json:"currency"`
	Shares          float64 `json:"shares"`
	AvgCost         float64 `json:"avgCost"`
	CurrentPrice    float64 `json:"currentPrice"`
	Yield           float64 `json:"yield"`
	MarketValue     float64 `json:"marketValue"`
	CostBasis       float64 `json:"costBasis"`
	TotalGain       float64 `json:"totalGain"`
	TotalGainPct    float64 `json:"totalGainPct"`
	EstAnnualIncome float64 `json:"estAnnualIncome"`
	WeightPct       float64 `json:"weightPct"`
}

// PortfolioSummary represents the aggregate state of the whole portfolio,
// used for the dashboard metric cards.
type PortfolioSummary struct {
	TotalValue   float64 `json:"totalValue"`   // Current market value
	TotalCost    float64 `json:"totalCost"`    // Total cost basis
	TotalGain    float64 `json:"totalGain"`    // Unrealized gain/loss
	TotalGainPct float64 `json:"totalGainPct"` // Gain as percentage of cost
	AnnualIncome float64 `json:"annualIncome"` // Estimated annual dividend income
}
