package model

import "time"

// DividendEvent represents a single historical dividend payment for a ticker.
// Events are returned by the history adapter sorted descending by date.
type DividendEvent struct {
	Date           time.Time `json:"date"`
	AmountPerShare float64   `json:"amountPerShare"`
}

// ProjectedPayment represents one expected future dividend payment for a
// (ticker, month) pair within the next twelve calendar months.
//
// PayDate approximates the payment date: the day-of-month is carried over
// from the projection anchor, not the fund's true upstream pay date.
// MonthKey is the "YYYY-MM" bucket used for calendar grouping.
type ProjectedPayment struct {
	Ticker         string    `json:"ticker"`
	Shares         float64   `json:"shares"`
	PayDate        time.Time `json:"payDate"`
	AmountPerShare float64   `json:"amountPerShare"`
	TotalAmount    float64   `json:"totalAmount"`
	MonthKey       string    `json:"monthKey"`
}

// MonthlyDividend aggregates projected payments for one calendar month.
// All twelve forward months are represented, including months with no
// expected payments. Payments are sorted by amount descending for display.
type MonthlyDividend struct {
	MonthKey string             `json:"monthKey"`
	Label    string             `json:"label"`
	Total    float64            `json:"total"`
	Payments []ProjectedPayment `json:"payments"`
}
