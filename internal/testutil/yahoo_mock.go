package testutil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/username/etftracker/internal/yahoo"
)

// MockFinanceClient is a mock implementation of the Yahoo Finance client for
// testing. It returns predefined per-symbol test data instead of making
// actual API calls and satisfies the service.FinanceAPI interface.
type MockFinanceClient struct {
	// Summaries holds the quoteSummary response per symbol.
	Summaries map[string]yahoo.SummaryResponse
	// Dividends holds the dividend events per symbol.
	Dividends map[string][]yahoo.DividendPayment
	// Errors holds per-symbol errors returned by both query methods.
	Errors map[string]error
	// QueryCount tracks how many times a query method was called.
	QueryCount int
}

// NewMockFinanceClient creates an empty mock; configure it with the With* methods.
func NewMockFinanceClient() *MockFinanceClient {
	return &MockFinanceClient{
		Summaries: map[string]yahoo.SummaryResponse{},
		Dividends: map[string][]yahoo.DividendPayment{},
		Errors:    map[string]error{},
	}
}

// WithQuote configures a full quote for a symbol. yieldPct is the percentage
// figure Yahoo reports in dividendYield (e.g. 3.5 for 3.5%).
func (m *MockFinanceClient) WithQuote(symbol string, price, yieldPct float64, sector, name string) *MockFinanceClient {
	m.Summaries[symbol] = CreateSummaryResponse(symbol, &price, &yieldPct, nil, sector, name)
	return m
}

// WithSummary configures a raw summary response for a symbol, for tests that
// need control over which upstream fields are populated.
func (m *MockFinanceClient) WithSummary(symbol string, resp yahoo.SummaryResponse) *MockFinanceClient {
	m.Summaries[symbol] = resp
	return m
}

// WithDividends configures the dividend history returned for a symbol.
func (m *MockFinanceClient) WithDividends(symbol string, payments []yahoo.DividendPayment) *MockFinanceClient {
	m.Dividends[symbol] = payments
	return m
}

// WithError configures both query methods to fail for a symbol.
func (m *MockFinanceClient) WithError(symbol string, err error) *MockFinanceClient {
	m.Errors[symbol] = err
	return m
}

// QuerySummary mocks the quoteSummary query with predefined test data.
func (m *MockFinanceClient) QuerySummary(symbol string) (yahoo.SummaryResponse, error) {
	m.QueryCount++
	if err := m.Errors[symbol]; err != nil {
		return yahoo.SummaryResponse{}, err
	}
	resp, ok := m.Summaries[symbol]
	if !ok {
		return yahoo.SummaryResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return resp, nil
}

// QueryDividendHistory mocks the chart query with predefined dividend events.
func (m *MockFinanceClient) QueryDividendHistory(symbol string, _, _ time.Time) (yahoo.ChartResponse, error) {
	m.QueryCount++
	if err := m.Errors[symbol]; err != nil {
		return yahoo.ChartResponse{}, err
	}
	return CreateChartResponse(symbol, m.Dividends[symbol]), nil
}

// ParseDividends delegates to the real implementation since it is pure logic.
func (m *MockFinanceClient) ParseDividends(response yahoo.ChartResponse) []yahoo.DividendPayment {
	client := yahoo.NewFinanceClient("")
	return client.ParseDividends(response)
}

// CreateSummaryResponse builds a quoteSummary response with the given fields.
// Nil pointers leave the corresponding upstream field absent, which is how
// Yahoo omits data it does not have.
//
// The yieldPct parameter populates summaryDetail.dividendYield (a percentage
// figure); trailingYield populates trailingAnnualDividendYield (a decimal
// fraction). Pass one or the other to exercise the normalization heuristic.
func CreateSummaryResponse(symbol string, price, yieldPct, trailingYield *float64, sector, name string) yahoo.SummaryResponse {
	result := yahoo.SummaryResult{}
	result.Price.Symbol = symbol
	result.Price.ShortName = name
	result.Price.Currency = "USD"
	if price != nil {
		result.Price.RegularMarketPrice = yahoo.RawValue{Raw: price}
	}
	if yieldPct != nil {
		result.SummaryDetail.DividendYield = yahoo.RawValue{Raw: yieldPct}
	}
	if trailingYield != nil {
		result.SummaryDetail.TrailingAnnualDividendYield = yahoo.RawValue{Raw: trailingYield}
	}
	result.AssetProfile.Sector = sector

	var resp yahoo.SummaryResponse
	resp.QuoteSummary.Result = []yahoo.SummaryResult{result}
	return resp
}

// CreateChartResponse builds a chart response carrying the given dividend
// events in Yahoo's timestamp-keyed events map.
func CreateChartResponse(symbol string, payments []yahoo.DividendPayment) yahoo.ChartResponse {
	dividends := make(map[string]yahoo.ChartDividend, len(payments))
	for _, p := range payments {
		ts := p.Date.Unix()
		dividends[strconv.FormatInt(ts, 10)] = yahoo.ChartDividend{
			Amount: p.Amount,
			Date:   ts,
		}
	}

	result := yahoo.ChartResult{}
	result.Meta.Symbol = symbol
	result.Meta.Currency = "USD"
	result.Events.Dividends = dividends

	var resp yahoo.ChartResponse
	resp.Chart.Result = []yahoo.ChartResult{result}
	return resp
}
