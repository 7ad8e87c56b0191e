package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
	"github.com/techiepharm/FinSim-sub001/internal/api/response"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/service"
)

// AnalyticsHandler serves the read-only portfolio analytics.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) fail(w http.ResponseWriter, err error) {
	response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
}

// Valuation handles GET requests for the portfolio marked to current prices.
//
// Endpoint: GET /api/portfolio/{uuid}/analytics/valuation
// Response: 200 OK with Valuation
func (h *AnalyticsHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	v, err := h.analyticsService.Valuation(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, v)
}

// Metrics handles GET requests for monthly income and expenses.
//
// Endpoint: GET /api/portfolio/{uuid}/analytics/metrics?months=N
// Response: 200 OK with Period
// Error: 400 Bad Request if months is not a positive integer
func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	months := analytics.DefaultMonthsBack
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 120 {
			response.RespondError(w, http.StatusBadRequest, "invalid months parameter", "months must be an integer between 1 and 120")
			return
		}
		months = n
	}

	period, err := h.analyticsService.PeriodMetrics(r.Context(), chi.URLParam(r, "uuid"), months)
	if err != nil {
		h.fail(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, period)
}

// Categories handles GET requests for outflows grouped by category.
//
// Endpoint: GET /api/portfolio/{uuid}/analytics/categories
// Response: 200 OK with array of Category
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.analyticsService.CategoryBreakdown(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, categories)
}

// Risk handles GET requests for the portfolio risk level.
//
// Endpoint: GET /api/portfolio/{uuid}/analytics/risk
// Response: 200 OK with Risk
func (h *AnalyticsHandler) Risk(w http.ResponseWriter, r *http.Request) {
	risk, err := h.analyticsService.RiskAssessment(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, risk)
}

// Recommendations handles GET requests for portfolio advice.
//
// Endpoint: GET /api/portfolio/{uuid}/analytics/recommendations
// Response: 200 OK with array of Recommendation
func (h *AnalyticsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.analyticsService.Recommendations(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		h.fail(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, recs)
}
