package validation

import (
	"fmt"
	"strings"

	"github.com/techiepharm/FinSim-sub001/internal/api/request"
	"github.com/techiepharm/FinSim-sub001/internal/trading"
)

// ValidateOrder validates an order request.
//
// Required fields:
//   - type: BUY or SELL (case-insensitive)
//   - symbol: non-empty
//   - shares: a positive whole number
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateOrder(req request.OrderRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if _, err := trading.ParseSide(strings.ToUpper(req.Type)); err != nil {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if _, err := trading.ParseQuantity(req.Shares); err != nil {
		errors["shares"] = "shares must be a positive whole number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateAmount validates a savings deposit or withdrawal request. The
// amount must be present, positive and have at most two decimal places.
func ValidateAmount(req request.AmountRequest) error {
	errors := make(map[string]string)

	switch {
	case req.Amount == nil:
		errors["amount"] = "amount is required"
	case !req.Amount.IsPositive():
		errors["amount"] = "amount must be positive"
	case !req.Amount.Equal(req.Amount.Round(trading.CashPlaces)):
		errors["amount"] = "amount must have at most 2 decimal places"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
