package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/model"
)

// recentWindowDays is the trailing slice of dividend history used to infer a
// ticker's payment-month pattern: a full annual cycle plus slack for
// irregular and semiannual payers, without over-weighting stale history.
const recentWindowDays = 365 + 180

// HistoryFunc returns the dividend history for one ticker, sorted descending
// by date. An empty slice means no history (or a failed fetch): the ticker
// contributes no projected payments.
type HistoryFunc func(ticker string) []model.DividendEvent

// ProjectionService projects dividend income across the next twelve calendar
// months from each ticker's payment history. The projection itself is pure
// given (history, today): history fetching stays in the adapter.
type ProjectionService struct {
	log zerolog.Logger
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(log zerolog.Logger) *ProjectionService {
	return &ProjectionService{log: log}
}

// ProjectDividends produces the expected payments for all holdings over the
// next twelve calendar months (offsets 1..12 from today; today's own month is
// excluded). Holdings are projected independently and the results
// concatenated.
//
// Per ticker, the heuristic is:
//  1. No history at all: no rows.
//  2. Events within the last 540 days define the set of distinct calendar
//     months the ticker pays in, year-agnostic. Month-set membership, rather
//     than fixed N-month spacing, reproduces irregular real-world schedules
//     (a March/June/September/December payer projects exactly that pattern).
//  3. If the recent window is empty, the single most recent event is the sole
//     evidence: its calendar month is the one expected payment month.
//  4. The most recent event's amount, not an average, is the flat per-share
//     projection for every future payment. Dividend amounts trend more than
//     they revert, so the latest declared amount is the best single-point
//     estimate.
//
// A payer that shifts which months it pays in year-over-year will be
// mis-projected until enough recent history accumulates.
func (s *ProjectionService) ProjectDividends(holdings []model.Holding, historyOf HistoryFunc, today time.Time) []model.ProjectedPayment {
	payments := []model.ProjectedPayment{}

	for _, h := range holdings {
		events := historyOf(h.Ticker)
		if len(events) == 0 {
			continue
		}

		payMonths, amountPerShare := inferPaymentPattern(events, today)
		if len(payMonths) == 0 {
			continue
		}

		for offset := 1; offset <= 12; offset++ {
			future := addMonths(today, offset)
			if !payMonths[int(future.Month())] {
				continue
			}
			payments = append(payments, model.ProjectedPayment{
				Ticker:         h.Ticker,
				Shares:         h.Shares,
				PayDate:        future,
				AmountPerShare: amountPerShare,
				TotalAmount:    amountPerShare * h.Shares,
				MonthKey:       future.Format("2006-01"),
			})
		}
	}

	return payments
}

// inferPaymentPattern derives the set of calendar months a ticker pays in and
// the per-share amount to project. Events must be sorted descending by date.
func inferPaymentPattern(events []model.DividendEvent, today time.Time) (map[int]bool, float64) {
	cutoff := today.AddDate(0, 0, -recentWindowDays)

	payMonths := make(map[int]bool)
	var amountPerShare float64

	for _, ev := range events {
		if !ev.Date.After(cutoff) {
			continue
		}
		if len(payMonths) == 0 {
			// First recent event in descending order is the most recent one.
			amountPerShare = ev.AmountPerShare
		}
		payMonths[int(ev.Date.Month())] = true
	}

	if len(payMonths) == 0 {
		// Newly-discontinued or very sparse payer: the single most recent
		// historical event is the sole evidence.
		latest := events[0]
		payMonths[int(latest.Date.Month())] = true
		amountPerShare = latest.AmountPerShare
	}

	return payMonths, amountPerShare
}

// GroupByMonth buckets projected payments into the twelve forward calendar
// months. Every month is represented, including months with no expected
// payments; per-month details are sorted by amount descending for display.
func (s *ProjectionService) GroupByMonth(payments []model.ProjectedPayment, today time.Time) []model.MonthlyDividend {
	byKey := make(map[string][]model.ProjectedPayment)
	for _, p := range payments {
		byKey[p.MonthKey] = append(byKey[p.MonthKey], p)
	}

	months := make([]model.MonthlyDividend, 0, 12)
	for offset := 1; offset <= 12; offset++ {
		future := addMonths(today, offset)
		key := future.Format("2006-01")

		detail := byKey[key]
		sort.Slice(detail, func(i, j int) bool {
			return detail[i].TotalAmount > detail[j].TotalAmount
		})

		var total float64
		for _, p := range detail {
			total += p.TotalAmount
		}

		months = append(months, model.MonthlyDividend{
			MonthKey: key,
			Label:    fmt.Sprintf("%d월", int(future.Month())),
			Total:    total,
			Payments: detail,
		})
	}

	return months
}

// CrossCheckResult compares the projector's twelve-month total against the
// annual income the metrics engine derives from the live trailing yield. The
// two estimates use independent inputs and are expected to be close but not
// to match exactly: a visible discrepancy is informative, not a bug.
type CrossCheckResult struct {
	ProjectedAnnual float64 `json:"projectedAnnual"`
	YieldAnnual     float64 `json:"yieldAnnual"`
	Delta           float64 `json:"delta"`
}

// CrossCheck computes both annual income estimates and their difference.
func (s *ProjectionService) CrossCheck(payments []model.ProjectedPayment, rows []model.PortfolioRow) CrossCheckResult {
	var projected float64
	for _, p := range payments {
		projected += p.TotalAmount
	}

	var yieldBased float64
	for _, row := range rows {
		yieldBased += row.EstAnnualIncome
	}

	return CrossCheckResult{
		ProjectedAnnual: projected,
		YieldAnnual:     yieldBased,
		Delta:           projected - yieldBased,
	}
}

// PaymentMonths returns the inferred payment-month set for one ticker as a
// sorted list of month numbers. Used by the CSV export's Months column.
func (s *ProjectionService) PaymentMonths(events []model.DividendEvent, today time.Time) []int {
	if len(events) == 0 {
		return []int{}
	}

	payMonths, _ := inferPaymentPattern(events, today)
	months := make([]int, 0, len(payMonths))
	for m := range payMonths {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// addMonths advances t by the given number of calendar months, clamping the
// day-of-month to the target month's length (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
