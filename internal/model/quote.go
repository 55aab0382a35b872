package model

// Quote represents a best-effort market snapshot for a single ticker.
// Quotes are fetched per request and never persisted. A ticker whose fetch
// failed simply has no Quote: callers must handle the missing case.
//
// TrailingYield is normalized to a decimal fraction (0.035 for 3.5%).
type Quote struct {
	Ticker        string  `json:"ticker"`
	CurrentPrice  float64 `json:"currentPrice"`
	TrailingYield float64 `json:"trailingYield"`
	Sector        string  `json:"sector"`
	Name          string  `json:"name"`
}
