package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that no holding exists for the given ticker.
	ErrHoldingNotFound = errors.New("holding not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidTicker indicates that a ticker symbol is empty or malformed.
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrInvalidShares indicates that a share count is zero, negative, or unparsable.
	ErrInvalidShares = errors.New("shares must be a positive number")

	// ErrInvalidAvgCost indicates that an average cost is zero or negative.
	ErrInvalidAvgCost = errors.New("average cost must be a positive number")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToUpsertHolding    = errors.New("failed to save holding")
	ErrFailedToDeleteHolding    = errors.New("failed to delete holding")

	// ErrMetricsUnavailable indicates that the metrics engine failed internally
	// and produced no rows for a non-empty holdings set. Callers must surface
	// this as "metrics unavailable" rather than treating it as an empty portfolio.
	ErrMetricsUnavailable = errors.New("portfolio metrics unavailable")

	ErrFailedToExportCSV = errors.New("failed to export CSV")
)
