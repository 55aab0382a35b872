package handlers

import (
	"net/http"
	"time"

	"github.com/username/etftracker/internal/api/response"
	"github.com/username/etftracker/internal/apperrors"
	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/service"
)

// CalendarHandler handles HTTP requests for the dividend calendar.
type CalendarHandler struct {
	holdingService    *service.HoldingService
	marketData        *service.MarketDataService
	metricsService    *service.MetricsService
	projectionService *service.ProjectionService
}

// NewCalendarHandler creates a new CalendarHandler with the provided service dependencies.
func NewCalendarHandler(
	holdingService *service.HoldingService,
	marketData *service.MarketDataService,
	metricsService *service.MetricsService,
	projectionService *service.ProjectionService,
) *CalendarHandler {
	return &CalendarHandler{
		holdingService:    holdingService,
		marketData:        marketData,
		metricsService:    metricsService,
		projectionService: projectionService,
	}
}

// CalendarResponse carries the twelve-month dividend calendar plus the
// cross-check between the projected annual total and the yield-derived
// annual income. The two estimates come from independent data sources and
// are not expected to match exactly.
type CalendarResponse struct {
	Months     []model.MonthlyDividend  `json:"months"`
	CrossCheck service.CrossCheckResult `json:"crossCheck"`
}

// Calendar handles GET requests for the projected dividend calendar.
//
// Endpoint: GET /api/dividends/calendar
// Response: 200 OK with twelve monthly buckets and cross-check totals
// Error: 500 when holdings cannot be loaded
func (h *CalendarHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.ListAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	today := time.Now()
	payments := h.projectionService.ProjectDividends(holdings, h.marketData.FetchHistory, today)
	months := h.projectionService.GroupByMonth(payments, today)

	quotes := h.marketData.FetchQuotes(tickersOf(holdings))
	rows := h.metricsService.ComputeMetrics(holdings, quotes)

	response.RespondJSON(w, http.StatusOK, CalendarResponse{
		Months:     months,
		CrossCheck: h.projectionService.CrossCheck(payments, rows),
	})
}
