package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/username/etftracker/internal/api/response"
	"github.com/username/etftracker/internal/apperrors"
	"github.com/username/etftracker/internal/service"
)

// CSVHandler handles CSV import and export of holdings.
type CSVHandler struct {
	holdingService    *service.HoldingService
	marketData        *service.MarketDataService
	metricsService    *service.MetricsService
	projectionService *service.ProjectionService
	csvService        *service.CSVService
}

// NewCSVHandler creates a new CSVHandler with the provided service dependencies.
func NewCSVHandler(
	holdingService *service.HoldingService,
	marketData *service.MarketDataService,
	metricsService *service.MetricsService,
	projectionService *service.ProjectionService,
	csvService *service.CSVService,
) *CSVHandler {
	return &CSVHandler{
		holdingService:    holdingService,
		marketData:        marketData,
		metricsService:    metricsService,
		projectionService: projectionService,
		csvService:        csvService,
	}
}

// Export handles GET requests to download holdings as CSV.
//
// The export is enriched with live market data (name, yield, current price)
// and each ticker's inferred payment months, so the file matches the
// spreadsheet sync layout.
//
// Endpoint: GET /api/holdings/export
// Response: 200 OK, text/csv attachment
// Error: 500 when holdings cannot be loaded or serialization fails
func (h *CSVHandler) Export(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.ListAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	today := time.Now()
	quotes := h.marketData.FetchQuotes(tickersOf(holdings))
	rows := h.metricsService.ComputeMetrics(holdings, quotes)

	monthsByTicker := make(map[string][]int, len(holdings))
	for _, holding := range holdings {
		events := h.marketData.FetchHistory(holding.Ticker)
		monthsByTicker[holding.Ticker] = h.projectionService.PaymentMonths(events, today)
	}

	csvContent, err := h.csvService.Export(rows, monthsByTicker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportCSV.Error(), err.Error())
		return
	}

	filename := fmt.Sprintf("etf_portfolio_%s.csv", today.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvContent))
}

// Import handles POST requests to import holdings from a CSV body.
//
// Endpoint: POST /api/holdings/import
// Response: 200 OK with the structured import result
// Error: 400 Bad Request with the result when the import failed
func (h *CSVHandler) Import(w http.ResponseWriter, r *http.Request) {
	result := h.csvService.Import(r.Body)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	response.RespondJSON(w, status, result)
}
