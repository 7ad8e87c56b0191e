// Package trading applies orders and cash movements to a portfolio.
//
// Every function here is pure: the input portfolio is never modified and
// the caller receives the updated copy together with the ledger entry that
// describes the change. Persisting both is the caller's job.
package trading

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Money values are kept at cent precision; average cost keeps more digits
// so repeated weighted averages don't drift.
const (
	CashPlaces        = 2
	AverageCostPlaces = 6
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Order is a market order for a whole number of shares.
type Order struct {
	Side   Side
	Symbol string
	Shares int64
}

// ParseQuantity converts a requested share count into an integer quantity.
// Non-positive, fractional and non-finite values are rejected with
// ErrInvalidQuantity.
func ParseQuantity(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidQuantity, v)
	}
	return int64(v), nil
}

// ParseSide maps a case-sensitive order type onto a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidOrderType, s)
}

// Execute applies order to p at price. On success it returns the updated
// portfolio and the ledger entry; on failure p is returned unchanged with a
// typed error and no transaction.
func Execute(order Order, p model.Portfolio, price decimal.Decimal, now time.Time, id string) (model.Portfolio, model.Transaction, error) {
	if order.Shares <= 0 {
		return p, model.Transaction{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidQuantity, order.Shares)
	}
	if !price.IsPositive() {
		return p, model.Transaction{}, fmt.Errorf("price for %s must be positive, got %s", order.Symbol, price)
	}

	shares := decimal.NewFromInt(order.Shares)
	value := price.Mul(shares).Round(CashPlaces)
	next := p.Clone()

	var txType model.TransactionType
	var amount decimal.Decimal
	var description string

	switch order.Side {
	case Buy:
		if p.Cash.LessThan(value) {
			return p, model.Transaction{}, &apperrors.OrderError{
				Kind:      apperrors.ErrInsufficientFunds,
				Symbol:    order.Symbol,
				Requested: value,
				Available: p.Cash,
			}
		}
		next.Cash = p.Cash.Sub(value)
		next.Holdings[order.Symbol] = addLot(p.Holdings[order.Symbol], order.Symbol, order.Shares, price)

		txType = model.TransactionBuy
		amount = value.Neg()
		description = fmt.Sprintf("Bought %d shares of %s at %s", order.Shares, order.Symbol, price.StringFixed(CashPlaces))
	case Sell:
		held, ok := p.Holdings[order.Symbol]
		if !ok || held.Shares < order.Shares {
			return p, model.Transaction{}, &apperrors.OrderError{
				Kind:      apperrors.ErrInsufficientShares,
				Symbol:    order.Symbol,
				Requested: shares,
				Available: decimal.NewFromInt(held.Shares),
			}
		}
		next.Cash = p.Cash.Add(value)
		held.Shares -= order.Shares
		if held.Shares == 0 {
			delete(next.Holdings, order.Symbol)
		} else {
			next.Holdings[order.Symbol] = held
		}

		txType = model.TransactionSell
		amount = value
		description = fmt.Sprintf("Sold %d shares of %s at %s", order.Shares, order.Symbol, price.StringFixed(CashPlaces))
	default:
		return p, model.Transaction{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidOrderType, order.Side)
	}

	next.UpdatedAt = now
	tx := model.Transaction{
		ID:          id,
		PortfolioID: p.ID,
		Timestamp:   now,
		Type:        txType,
		Symbol:      order.Symbol,
		Shares:      order.Shares,
		Price:       price,
		Amount:      amount,
		Tax:         decimal.Zero,
		Description: description,
	}
	return next, tx, nil
}

// addLot folds a new purchase into an existing holding using the weighted
// mean of the old cost basis and the new lot. A zero-value holding means
// there was no position yet.
func addLot(h model.Holding, symbol string, shares int64, price decimal.Decimal) model.Holding {
	if h.Shares <= 0 {
		return model.Holding{Symbol: symbol, Shares: shares, AverageCost: price}
	}
	oldShares := decimal.NewFromInt(h.Shares)
	newShares := decimal.NewFromInt(shares)
	total := h.Shares + shares

	avg := h.AverageCost.Mul(oldShares).
		Add(price.Mul(newShares)).
		Div(decimal.NewFromInt(total)).
		Round(AverageCostPlaces)

	return model.Holding{Symbol: symbol, Shares: total, AverageCost: avg}
}
