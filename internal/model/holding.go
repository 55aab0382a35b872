package model

// Holding represents a single ETF position from the database.
// Ticker is the natural key: upserts are keyed on the uppercased ticker.
type Holding struct {
	ID       string  `json:"id"`
	Ticker   string  `json:"ticker"`
	Shares   float64 `json:"shares"`
	AvgCost  float64 `json:"avgCost"`
	Category string  `json:"category"`
	Currency string  `json:"currency"`
}
