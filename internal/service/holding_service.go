package service

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/repository"
	"github.com/username/etftracker/internal/validation"
)

// QuoteProvider is the slice of the market data service the holding service
// needs for category backfill.
type QuoteProvider interface {
	FetchQuotes(tickers []string) []model.Quote
}

// HoldingService handles holding CRUD operations and the category backfill
// that runs when a holding is saved without an explicit category.
type HoldingService struct {
	holdingRepo *repository.HoldingRepository
	marketData  QuoteProvider
	log         zerolog.Logger
}

// NewHoldingService creates a new HoldingService with the provided dependencies.
func NewHoldingService(holdingRepo *repository.HoldingRepository, marketData QuoteProvider, log zerolog.Logger) *HoldingService {
	return &HoldingService{
		holdingRepo: holdingRepo,
		marketData:  marketData,
		log:         log,
	}
}

// Upsert validates and saves a holding, creating it or overwriting the
// existing row for the same ticker.
//
// When no category is given, the ticker's sector is looked up and mapped to a
// display category; a failed lookup falls back to the generic bucket. The
// backfill is best-effort and never blocks the save.
func (s *HoldingService) Upsert(holding model.Holding) (model.Holding, error) {
	if err := validation.ValidateHolding(holding.Ticker, holding.Shares, holding.AvgCost); err != nil {
		return model.Holding{}, err
	}

	holding.Ticker = strings.ToUpper(strings.TrimSpace(holding.Ticker))

	if holding.Category == "" {
		holding.Category = s.resolveCategory(holding.Ticker)
	}

	if err := s.holdingRepo.Upsert(holding); err != nil {
		return model.Holding{}, err
	}

	saved, err := s.holdingRepo.GetByTicker(holding.Ticker)
	if err != nil {
		return model.Holding{}, err
	}

	s.log.Info().Str("ticker", saved.Ticker).Str("category", saved.Category).Msg("upserted holding")
	return saved, nil
}

// ListAll retrieves all holdings.
func (s *HoldingService) ListAll() ([]model.Holding, error) {
	return s.holdingRepo.ListAll()
}

// Delete removes the holding for the given ticker.
func (s *HoldingService) Delete(ticker string) error {
	if err := validation.ValidateTicker(ticker); err != nil {
		return err
	}
	if err := s.holdingRepo.DeleteByTicker(ticker); err != nil {
		return err
	}
	s.log.Info().Str("ticker", strings.ToUpper(ticker)).Msg("deleted holding")
	return nil
}

// resolveCategory fetches the ticker's sector and maps it to a display
// category. Lookup failures yield the generic bucket.
func (s *HoldingService) resolveCategory(ticker string) string {
	quotes := s.marketData.FetchQuotes([]string{ticker})
	if len(quotes) == 0 {
		return MapSectorToCategory("")
	}
	return MapSectorToCategory(quotes[0].Sector)
}
