package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/etftracker/internal/api/response"
	"github.com/username/etftracker/internal/apperrors"
	"github.com/username/etftracker/internal/model"
	"github.com/username/etftracker/internal/service"
)

// HoldingHandler handles HTTP requests for holding endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the holding service.
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler with the provided service dependency.
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// UpsertHoldingRequest is the JSON body for creating or updating a holding.
type UpsertHoldingRequest struct {
	Ticker   string  `json:"ticker"`
	Shares   float64 `json:"shares"`
	AvgCost  float64 `json:"avgCost"`
	Category string  `json:"category"`
	Currency string  `json:"currency"`
}

// List handles GET requests to retrieve all holdings.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of holdings
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingHandler) List(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.ListAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// Upsert handles POST requests to create or update a holding.
//
// Endpoint: POST /api/holdings
// Response: 200 OK with the saved holding
// Error: 400 Bad Request on validation failure, 500 on save failure
func (h *HoldingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	saved, err := h.holdingService.Upsert(model.Holding{
		Ticker:   req.Ticker,
		Shares:   req.Shares,
		AvgCost:  req.AvgCost,
		Category: req.Category,
		Currency: req.Currency,
	})
	if err != nil {
		if isValidationError(err) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpsertHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE requests to remove a holding by ticker.
//
// Endpoint: DELETE /api/holdings/{ticker}
// Response: 204 No Content
// Error: 404 Not Found for an unknown ticker, 400 for an invalid one
func (h *HoldingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	err := h.holdingService.Delete(ticker)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			response.RespondError(w, http.StatusNotFound, err.Error(), nil)
		case isValidationError(err):
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteHolding.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// isValidationError reports whether err is one of the request validation sentinels.
func isValidationError(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidTicker) ||
		errors.Is(err, apperrors.ErrInvalidShares) ||
		errors.Is(err, apperrors.ErrInvalidAvgCost)
}
