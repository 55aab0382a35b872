package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and throttles outbound requests so a
// large portfolio refresh does not hammer the upstream API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewFinanceClient creates a new Yahoo Finance client.
// baseURL is normally "https://query1.finance.yahoo.com" and is configurable
// so tests can point the client at a local server.
func NewFinanceClient(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// QuerySummary fetches the quoteSummary modules needed for a portfolio quote:
// price, summaryDetail, assetProfile and financialData.
//
// Parameters:
//   - symbol: ticker symbol (e.g. "SCHD")
//
// Returns the raw response, or an error if the HTTP request fails, the
// response cannot be parsed, or Yahoo returns no result for the symbol.
func (c *FinanceClient) QuerySummary(symbol string) (SummaryResponse, error) {
	reqURL := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,assetProfile,financialData",
		c.baseURL,
		url.PathEscape(symbol),
	)

	var response SummaryResponse
	if err := c.queryYahoo(reqURL, &response); err != nil {
		return SummaryResponse{}, err
	}

	if response.QuoteSummary.Error != nil {
		return SummaryResponse{}, fmt.Errorf("yahoo error for %s: %s", symbol, response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return SummaryResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}

// QueryDividendHistory fetches dividend events for a symbol within a date range
// using the v8 chart API with events=div.
//
// Parameters:
//   - symbol: ticker symbol
//   - startDate: beginning of the range (inclusive)
//   - endDate: end of the range (inclusive)
//
// Returns the raw chart response, or an error if the request fails or Yahoo
// returns no result for the symbol.
func (c *FinanceClient) QueryDividendHistory(symbol string, startDate, endDate time.Time) (ChartResponse, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1mo&period1=%d&period2=%d&events=div",
		c.baseURL,
		url.PathEscape(symbol),
		startDate.Unix(),
		endDate.Unix(),
	)

	var response ChartResponse
	if err := c.queryYahoo(reqURL, &response); err != nil {
		return ChartResponse{}, err
	}

	if response.Chart.Error != nil {
		return ChartResponse{}, fmt.Errorf("yahoo error for %s: %s", symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return ChartResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}

// ParseDividends extracts the dividend events from a chart response and
// returns them sorted descending by date (most recent first), matching the
// order the history adapter contract promises.
//
// A symbol with no dividend events yields an empty slice, not an error.
func (c *FinanceClient) ParseDividends(response ChartResponse) []DividendPayment {
	if len(response.Chart.Result) == 0 {
		return []DividendPayment{}
	}

	events := response.Chart.Result[0].Events.Dividends
	payments := make([]DividendPayment, 0, len(events))
	for _, ev := range events {
		if ev.Amount <= 0 {
			continue
		}
		payments = append(payments, DividendPayment{
			Date:   time.Unix(ev.Date, 0).UTC(),
			Amount: ev.Amount,
		})
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})

	return payments
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance API and decodes the JSON body into target.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(reqURL string, target any) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		// Yahoo reports symbol-level errors inside a 404/400 JSON body; other
		// statuses carry no usable payload.
		if resp.StatusCode != http.StatusNotFound {
			return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
		}
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode yahoo response: %w", err)
	}

	return nil
}
