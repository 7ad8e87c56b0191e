package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrPortfolioNotFound indicates that no portfolio snapshot has been stored for the ID yet.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrUnknownSymbol indicates that the instrument catalog has no entry for a symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Business logic errors are expected, user-facing conditions. They never
// leave a portfolio or the ledger partially mutated.
var (
	// ErrInvalidQuantity indicates a non-positive or non-integer share count.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidAmount indicates a non-positive cash amount for a savings movement.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidOrderType indicates an order type other than BUY or SELL.
	ErrInvalidOrderType = errors.New("invalid order type")

	// ErrInsufficientFunds indicates that a debit exceeds the available cash or savings.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares indicates that a sell exceeds the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// Persistence errors are hard failures.
var (
	// ErrPersistenceFailure indicates that the paired portfolio save and ledger
	// append could not be committed. State is left unchanged.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Operation failure errors are the user-facing messages returned by handlers
// when an operation fails for reasons other than validation.
var (
	ErrFailedToRetrievePortfolio    = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToExecuteOrder         = errors.New("failed to execute order")
	ErrFailedToMoveCash             = errors.New("failed to move cash")
	ErrFailedToComputeAnalytics     = errors.New("failed to compute analytics")
	ErrFailedToRetrieveMarket       = errors.New("failed to retrieve market data")
	ErrFailedToRefreshMarket        = errors.New("failed to refresh market")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

// OrderError carries the context a caller needs to explain a rejected
// order: what was requested and what was available. It unwraps to Kind, so
// errors.Is(err, ErrInsufficientFunds) works on it.
type OrderError struct {
	Kind      error
	Symbol    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *OrderError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s requested %s, available %s", e.Kind, e.Symbol, e.Requested, e.Available)
	}
	return fmt.Sprintf("%s: requested %s, available %s", e.Kind, e.Requested, e.Available)
}

func (e *OrderError) Unwrap() error {
	return e.Kind
}

// Details returns the requested/available pair in a form suitable for JSON error bodies.
func (e *OrderError) Details() map[string]string {
	d := map[string]string{
		"requested": e.Requested.String(),
		"available": e.Available.String(),
	}
	if e.Symbol != "" {
		d["symbol"] = e.Symbol
	}
	return d
}
