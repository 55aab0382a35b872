// Package validation contains request-level field checks. Validation errors
// are apperrors sentinels so handlers can map them to HTTP status codes.
package validation

import (
	"strings"

	"github.com/username/etftracker/internal/apperrors"
)

const maxTickerLength = 10

// ValidateTicker checks that a ticker symbol is present and plausibly shaped.
func ValidateTicker(ticker string) error {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" || len(ticker) > maxTickerLength {
		return apperrors.ErrInvalidTicker
	}
	for _, r := range ticker {
		if !isTickerRune(r) {
			return apperrors.ErrInvalidTicker
		}
	}
	return nil
}

// ValidateHolding checks the fields of an upsert request.
func ValidateHolding(ticker string, shares, avgCost float64) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if shares <= 0 {
		return apperrors.ErrInvalidShares
	}
	if avgCost <= 0 {
		return apperrors.ErrInvalidAvgCost
	}
	return nil
}

// isTickerRune allows exchange symbols like "SCHD", "BRK.B" or "005930.KS".
func isTickerRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '-':
		return true
	}
	return false
}
