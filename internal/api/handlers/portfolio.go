package handlers

import (
	"net/http"

	"github.com/username/etftracker/internal/api/response"
	"github.com/username/etftracker/internal/apperrors"
	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio dashboard.
// Each request triggers one synchronous recomputation pass: holdings are
// loaded, quotes fetched (through the TTL cache) and metrics derived.
type PortfolioHandler struct {
	holdingService *service.HoldingService
	marketData     *service.MarketDataService
	metricsService *service.MetricsService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(holdingService *service.HoldingService, marketData *service.MarketDataService, metricsService *service.MetricsService) *PortfolioHandler {
	return &PortfolioHandler{
		holdingService: holdingService,
		marketData:     marketData,
		metricsService: metricsService,
	}
}

// MetricsResponse carries the per-position rows and the aggregate summary.
type MetricsResponse struct {
	Rows    []model.PortfolioRow   `json:"rows"`
	Summary model.PortfolioSummary `json:"summary"`
}

// Metrics handles GET requests for the full portfolio metrics table.
//
// Endpoint: GET /api/portfolio/metrics
// Response: 200 OK with rows and summary
// Error: 500 when holdings cannot be loaded or the metrics engine fails
func (h *PortfolioHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.ListAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	quotes := h.marketData.FetchQuotes(tickersOf(holdings))
	rows := h.metricsService.ComputeMetrics(holdings, quotes)

	// A non-empty holdings set with an empty row set means the engine failed
	// internally, not that the portfolio is empty.
	if len(holdings) > 0 && len(rows) == 0 {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrMetricsUnavailable.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, MetricsResponse{
		Rows:    rows,
		Summary: h.metricsService.Summarize(rows),
	})
}

// tickersOf collects the ticker of every holding.
func tickersOf(holdings []model.Holding) []string {
	tickers := make([]string, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}
