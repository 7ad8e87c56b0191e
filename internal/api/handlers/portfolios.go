package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/api/request"
	"github.com/techiepharm/FinSim-sub001/internal/api/response"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/service"
	"github.com/techiepharm/FinSim-sub001/internal/trading"
	"github.com/techiepharm/FinSim-sub001/internal/validation"
)

// PortfolioHandler handles HTTP requests for a single paper-trading portfolio.
// It parses and validates requests and delegates every mutation to the
// TradingService.
type PortfolioHandler struct {
	tradingService *service.TradingService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(tradingService *service.TradingService) *PortfolioHandler {
	return &PortfolioHandler{
		tradingService: tradingService,
	}
}

// PortfolioResponse is the snapshot returned by GET /api/portfolio/{uuid}.
// Holdings are listed by symbol.
type PortfolioResponse struct {
	ID        string          `json:"id"`
	Cash      decimal.Decimal `json:"cash"`
	Savings   decimal.Decimal `json:"savings"`
	Premium   bool            `json:"premium"`
	Holdings  []model.Holding `json:"holdings"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

func newPortfolioResponse(p model.Portfolio) PortfolioResponse {
	resp := PortfolioResponse{
		ID:       p.ID,
		Cash:     p.Cash,
		Savings:  p.Savings,
		Premium:  p.Premium,
		Holdings: p.SortedHoldings(),
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}
	return resp
}

// Portfolio handles GET requests for the current portfolio snapshot. A
// portfolio that has never traded is returned with its starting cash.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with PortfolioResponse
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	p, err := h.tradingService.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newPortfolioResponse(p))
}

// Transactions handles GET requests for the portfolio's ledger, newest first.
//
// Endpoint: GET /api/portfolio/{uuid}/transactions
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	ledger, err := h.tradingService.GetTransactions(r.Context(), portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}
	if ledger == nil {
		ledger = []model.Transaction{}
	}

	response.RespondJSON(w, http.StatusOK, ledger)
}

// ExecuteOrder handles POST requests to buy or sell shares at the current
// market price.
//
// Endpoint: POST /api/portfolio/{uuid}/orders
// Request Body: OrderRequest (type, symbol, shares)
// Response: 201 Created with Receipt
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if the symbol is not in the catalog
// Error: 422 Unprocessable Entity with {requested, available} if cash or shares are insufficient
// Error: 500 Internal Server Error if the transaction cannot be persisted
func (h *PortfolioHandler) ExecuteOrder(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.OrderRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateOrder(req); err != nil {
		respondValidationError(w, err)
		return
	}

	shares, _ := trading.ParseQuantity(req.Shares)
	order := trading.Order{
		Side:   trading.Side(strings.ToUpper(req.Type)),
		Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Shares: shares,
	}

	receipt, err := h.tradingService.ExecuteOrder(r.Context(), portfolioID, order)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExecuteOrder.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, receipt)
}

// Deposit handles POST requests to move cash into savings.
//
// Endpoint: POST /api/portfolio/{uuid}/savings/deposit
// Request Body: AmountRequest (amount)
// Response: 201 Created with Receipt
// Error: 400 Bad Request if the amount is missing or invalid
// Error: 422 Unprocessable Entity if cash is insufficient
// Error: 500 Internal Server Error if the transaction cannot be persisted
func (h *PortfolioHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveCash(w, r, h.tradingService.Deposit)
}

// Withdraw handles POST requests to move savings back into cash.
//
// Endpoint: POST /api/portfolio/{uuid}/savings/withdraw
// Request Body: AmountRequest (amount)
// Response: 201 Created with Receipt
// Error: 400 Bad Request if the amount is missing or invalid
// Error: 422 Unprocessable Entity if savings are insufficient
// Error: 500 Internal Server Error if the transaction cannot be persisted
func (h *PortfolioHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveCash(w, r, h.tradingService.Withdraw)
}

type cashMove func(ctx context.Context, portfolioID string, amount decimal.Decimal) (model.Receipt, error)

func (h *PortfolioHandler) moveCash(w http.ResponseWriter, r *http.Request, move cashMove) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AmountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAmount(req); err != nil {
		respondValidationError(w, err)
		return
	}

	receipt, err := move(r.Context(), portfolioID, *req.Amount)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToMoveCash.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, receipt)
}

// Premium handles POST requests to upgrade the portfolio to premium.
//
// Endpoint: POST /api/portfolio/{uuid}/premium
// Response: 201 Created with Receipt
// Error: 422 Unprocessable Entity if cash is insufficient
// Error: 500 Internal Server Error if the transaction cannot be persisted
func (h *PortfolioHandler) Premium(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	receipt, err := h.tradingService.UpgradePremium(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToMoveCash.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, receipt)
}
