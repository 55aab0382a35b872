package yahoo

import "time"

// RawValue represents Yahoo's {raw, fmt} number wrapper. The raw field is a
// pointer because Yahoo omits it entirely for fields it has no data for.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// Value returns the raw number, or ok=false when the field was absent.
func (v RawValue) Value() (float64, bool) {
	if v.Raw == nil {
		return 0, false
	}
	return *v.Raw, true
}

// SummaryResponse represents the raw JSON response structure from the Yahoo
// Finance quoteSummary API. Only the modules this application requests are
// mapped: price, summaryDetail, assetProfile and financialData.
type SummaryResponse struct {
	QuoteSummary struct {
		Result []SummaryResult `json:"result"`
		Error  *APIError       `json:"error"`
	} `json:"quoteSummary"`
}

// SummaryResult holds the per-symbol module data of a quoteSummary response.
type SummaryResult struct {
	Price         PriceModule         `json:"price"`
	SummaryDetail SummaryDetailModule `json:"summaryDetail"`
	AssetProfile  AssetProfileModule  `json:"assetProfile"`
	FinancialData FinancialDataModule `json:"financialData"`
}

// PriceModule carries the live pricing and naming fields of the price module.
type PriceModule struct {
	Symbol             string   `json:"symbol"`
	ShortName          string   `json:"shortName"`
	LongName           string   `json:"longName"`
	Currency           string   `json:"currency"`
	RegularMarketPrice RawValue `json:"regularMarketPrice"`
}

// SummaryDetailModule carries yield and previous-close fields.
//
// Yahoo reports two yield figures with inconsistent units: dividendYield is
// usually a percentage (3.74 for 3.74%) while trailingAnnualDividendYield is
// usually a decimal fraction (0.0374). Normalization between the two is a
// documented heuristic handled by the market data service, not here.
type SummaryDetailModule struct {
	DividendYield               RawValue `json:"dividendYield"`
	TrailingAnnualDividendYield RawValue `json:"trailingAnnualDividendYield"`
	PreviousClose               RawValue `json:"previousClose"`
}

// AssetProfileModule carries the upstream sector taxonomy string.
type AssetProfileModule struct {
	Sector string `json:"sector"`
}

// FinancialDataModule carries the live price field when Yahoo populates it.
type FinancialDataModule struct {
	CurrentPrice RawValue `json:"currentPrice"`
}

// ChartResponse represents the raw JSON response structure from the Yahoo
// Finance v8 chart API, requested with events=div so the events block carries
// the dividend payments within the queried range.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// ChartResult holds one symbol's chart data and dividend events.
type ChartResult struct {
	Meta struct {
		Currency string `json:"currency"`
		Symbol   string `json:"symbol"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]ChartDividend `json:"dividends"`
	} `json:"events"`
}

// ChartDividend is a single dividend event in a chart response, keyed in the
// events map by its Unix timestamp rendered as a string.
type ChartDividend struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// APIError is the error object Yahoo embeds in otherwise-valid responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DividendPayment is the parsed form of a chart dividend event.
type DividendPayment struct {
	Date   time.Time
	Amount float64
}
