package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/username/etftracker/internal/apperrors"
	"github.com/username/etftracker/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// It handles the single flat table this application persists: one row per
// ticker with share count, cost basis, category and currency.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// Upsert inserts a holding or updates the existing row for the same ticker.
// The ticker is uppercased before use and acts as the natural key.
//
// On conflict, shares, avg_cost and category are overwritten; currency is
// kept as originally stored. The surrogate id is assigned on first insert
// and never changes.
func (r *HoldingRepository) Upsert(holding model.Holding) error {
	ticker := strings.ToUpper(strings.TrimSpace(holding.Ticker))
	currency := holding.Currency
	if currency == "" {
		currency = "USD"
	}

	query := `
		INSERT INTO holding (id, ticker, shares, avg_cost, category, currency)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			shares = excluded.shares,
			avg_cost = excluded.avg_cost,
			category = excluded.category
	`

	_, err := r.db.Exec(query,
		uuid.New().String(),
		ticker,
		holding.Shares,
		holding.AvgCost,
		toNullString(holding.Category),
		currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding %s: %w", ticker, err)
	}

	return nil
}

// ListAll retrieves all holdings from the database.
// Returns an empty slice if no holdings exist.
func (r *HoldingRepository) ListAll() ([]model.Holding, error) {
	query := `
		SELECT id, ticker, shares, avg_cost, category, currency
		FROM holding
		ORDER BY ticker
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		var h model.Holding
		var category sql.NullString

		err := rows.Scan(
			&h.ID,
			&h.Ticker,
			&h.Shares,
			&h.AvgCost,
			&category,
			&h.Currency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		h.Category = category.String
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetByTicker retrieves a single holding by its uppercased ticker.
// Returns apperrors.ErrHoldingNotFound when no row exists.
func (r *HoldingRepository) GetByTicker(ticker string) (model.Holding, error) {
	query := `
		SELECT id, ticker, shares, avg_cost, category, currency
		FROM holding
		WHERE ticker = ?
	`

	var h model.Holding
	var category sql.NullString

	err := r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(ticker))).Scan(
		&h.ID,
		&h.Ticker,
		&h.Shares,
		&h.AvgCost,
		&category,
		&h.Currency,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding %s: %w", ticker, err)
	}
	h.Category = category.String

	return h, nil
}

// DeleteByTicker removes the holding for the given ticker.
// Deleting a ticker that does not exist returns apperrors.ErrHoldingNotFound.
func (r *HoldingRepository) DeleteByTicker(ticker string) error {
	result, err := r.db.Exec(
		`DELETE FROM holding WHERE ticker = ?`,
		strings.ToUpper(strings.TrimSpace(ticker)),
	)
	if err != nil {
		return fmt.Errorf("failed to delete holding %s: %w", ticker, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for %s: %w", ticker, err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// toNullString maps an empty string to SQL NULL so the category column keeps
// its tri-state meaning (unset vs explicitly empty is not distinguished).
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
