package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/techiepharm/FinSim-sub001/internal/api/response"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/service"
)

// MarketHandler serves the simulated market: the instrument catalog, price
// series and per-instrument trade suggestions.
type MarketHandler struct {
	marketService    *service.MarketService
	analyticsService *service.AnalyticsService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService *service.MarketService, analyticsService *service.AnalyticsService) *MarketHandler {
	return &MarketHandler{
		marketService:    marketService,
		analyticsService: analyticsService,
	}
}

func symbolParam(r *http.Request) string {
	return strings.ToUpper(chi.URLParam(r, "symbol"))
}

// Instruments handles GET requests for the catalog with current prices.
//
// Endpoint: GET /api/market/instruments
// Response: 200 OK with array of Quote
func (h *MarketHandler) Instruments(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.marketService.Quotes())
}

// Series handles GET requests for one instrument's price history, oldest first.
//
// Endpoint: GET /api/market/instruments/{symbol}/series
// Response: 200 OK with PriceSeries
// Error: 404 Not Found if the symbol is not in the catalog
func (h *MarketHandler) Series(w http.ResponseWriter, r *http.Request) {
	series, err := h.marketService.Series(symbolParam(r))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveMarket.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Suggestion handles GET requests for the trade signal of one instrument.
//
// Endpoint: GET /api/market/instruments/{symbol}/suggestion
// Response: 200 OK with Suggestion
// Error: 404 Not Found if the symbol is not in the catalog
func (h *MarketHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.analyticsService.Suggestion(symbolParam(r))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeAnalytics.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, suggestion)
}

// Refresh handles POST requests to regenerate every price series.
//
// Endpoint: POST /api/market/refresh
// Response: 200 OK with the refreshed array of Quote
// Error: 500 Internal Server Error if regeneration fails
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.marketService.Refresh(r.Context()); err != nil {
		log.Printf("[market] refresh failed: %v", err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshMarket.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.marketService.Quotes())
}
