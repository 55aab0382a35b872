package service

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/username/etftracker/internal/cache"
	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/yahoo"
)

// FinanceAPI is the subset of the Yahoo client the market data service uses.
// Tests inject a mock implementation instead of the real HTTP client.
type FinanceAPI interface {
	QuerySummary(symbol string) (yahoo.SummaryResponse, error)
	QueryDividendHistory(symbol string, startDate, endDate time.Time) (yahoo.ChartResponse, error)
	ParseDividends(response yahoo.ChartResponse) []yahoo.DividendPayment
}

// MarketDataService fetches quotes and dividend history from the upstream
// market data API. All fetches are best-effort: a ticker whose fetch fails is
// logged and omitted from the result, never surfaced as a hard error.
//
// Results are memoized in injected TTL caches (quotes on the order of
// minutes, dividend history for a day) to avoid redundant upstream calls
// within a session. Fetches run sequentially per ticker.
type MarketDataService struct {
	client       FinanceAPI
	quoteCache   *cache.TTLCache
	historyCache *cache.TTLCache
	log          zerolog.Logger
}

// NewMarketDataService creates a new MarketDataService with the provided
// client and caches.
func NewMarketDataService(client FinanceAPI, quoteCache, historyCache *cache.TTLCache, log zerolog.Logger) *MarketDataService {
	return &MarketDataService{
		client:       client,
		quoteCache:   quoteCache,
		historyCache: historyCache,
		log:          log,
	}
}

// FetchQuotes returns a best-effort quote for each of the given tickers.
// Input tickers are uppercased and deduplicated. A ticker whose fetch failed
// is omitted from the result set: there is no placeholder row, and partial
// failure never raises.
func (s *MarketDataService) FetchQuotes(tickers []string) []model.Quote {
	unique := uniqueUppercase(tickers)
	if len(unique) == 0 {
		return []model.Quote{}
	}

	s.log.Info().Strs("tickers", unique).Msg("fetching market data")

	quotes := make([]model.Quote, 0, len(unique))
	for _, ticker := range unique {
		if cached, ok := s.quoteCache.Get(ticker); ok {
			quotes = append(quotes, cached.(model.Quote))
			continue
		}

		response, err := s.client.QuerySummary(ticker)
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("failed to fetch quote, skipping ticker")
			continue
		}

		quote := buildQuote(ticker, response.QuoteSummary.Result[0])
		s.quoteCache.Set(ticker, quote)
		quotes = append(quotes, quote)
	}

	return quotes
}

// FetchHistory returns the dividend payment history for one ticker, sorted
// descending by date. A ticker with no history, or whose fetch failed,
// yields an empty slice: history lookups never raise.
func (s *MarketDataService) FetchHistory(ticker string) []model.DividendEvent {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return []model.DividendEvent{}
	}

	if cached, ok := s.historyCache.Get(ticker); ok {
		return cached.([]model.DividendEvent)
	}

	// Full history: the projector needs the 540-day recent window plus the
	// single most recent event as a fallback, which may be arbitrarily old.
	response, err := s.client.QueryDividendHistory(ticker, time.Unix(0, 0), time.Now())
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("failed to fetch dividend history")
		return []model.DividendEvent{}
	}

	payments := s.client.ParseDividends(response)
	events := make([]model.DividendEvent, 0, len(payments))
	for _, p := range payments {
		events = append(events, model.DividendEvent{
			Date:           p.Date,
			AmountPerShare: p.Amount,
		})
	}

	s.historyCache.Set(ticker, events)
	return events
}

// buildQuote maps a quoteSummary result onto the internal quote shape,
// applying the price fallback chain and the yield normalization heuristic.
func buildQuote(ticker string, result yahoo.SummaryResult) model.Quote {
	// Price priority: live price, then market price, then previous close.
	price := 0.0
	if v, ok := result.FinancialData.CurrentPrice.Value(); ok {
		price = v
	} else if v, ok := result.Price.RegularMarketPrice.Value(); ok {
		price = v
	} else if v, ok := result.SummaryDetail.PreviousClose.Value(); ok {
		price = v
	}

	// Yield normalization heuristic, preserved as documented behavior:
	// dividendYield is assumed to be a percentage and divided by 100;
	// trailingAnnualDividendYield is assumed to already be a decimal fraction.
	// Neither assumption is validated against ground truth.
	yield := 0.0
	if v, ok := result.SummaryDetail.DividendYield.Value(); ok {
		yield = v / 100.0
	} else if v, ok := result.SummaryDetail.TrailingAnnualDividendYield.Value(); ok {
		yield = v
	}

	sector := result.AssetProfile.Sector
	if sector == "" {
		sector = "Unknown"
	}

	name := result.Price.ShortName
	if name == "" {
		name = ticker
	}

	return model.Quote{
		Ticker:        ticker,
		CurrentPrice:  price,
		TrailingYield: yield,
		Sector:        sector,
		Name:          name,
	}
}

// uniqueUppercase uppercases, trims and deduplicates tickers, preserving a
// stable order for logging and sequential fetching.
func uniqueUppercase(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	unique := make([]string, 0, len(tickers))
	for _, t := range tickers {
		ticker := strings.ToUpper(strings.TrimSpace(t))
		if ticker == "" || seen[ticker] {
			continue
		}
		seen[ticker] = true
		unique = append(unique, ticker)
	}
	sort.Strings(unique)
	return unique
}
