package trading

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// ApplyCashMovement applies a cash-only ledger event to p.
//
//   - SAVINGS_DEPOSIT moves amount from cash into savings and records a
//     positive ledger amount.
//   - SAVINGS_WITHDRAWAL moves amount from savings back into cash and
//     records a negative ledger amount.
//   - PREMIUM_UPGRADE debits amount from cash, records a negative ledger
//     amount and marks the portfolio as premium.
//
// Like Execute, p is never modified and failures return it unchanged.
func ApplyCashMovement(kind model.TransactionType, amount decimal.Decimal, p model.Portfolio, now time.Time, id string) (model.Portfolio, model.Transaction, error) {
	if !amount.IsPositive() {
		return p, model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidAmount, amount)
	}
	amount = amount.Round(CashPlaces)
	if amount.IsZero() {
		return p, model.Transaction{}, fmt.Errorf("%w: rounds to zero", apperrors.ErrInvalidAmount)
	}

	next := p.Clone()
	var signed decimal.Decimal
	var description string

	switch kind {
	case model.TransactionSavingsDeposit:
		if p.Cash.LessThan(amount) {
			return p, model.Transaction{}, insufficient(amount, p.Cash)
		}
		next.Cash = p.Cash.Sub(amount)
		next.Savings = p.Savings.Add(amount)
		signed = amount
		description = "Deposit to savings"
	case model.TransactionSavingsWithdrawal:
		if p.Savings.LessThan(amount) {
			return p, model.Transaction{}, insufficient(amount, p.Savings)
		}
		next.Savings = p.Savings.Sub(amount)
		next.Cash = p.Cash.Add(amount)
		signed = amount.Neg()
		description = "Withdrawal from savings"
	case model.TransactionPremiumUpgrade:
		if p.Cash.LessThan(amount) {
			return p, model.Transaction{}, insufficient(amount, p.Cash)
		}
		next.Cash = p.Cash.Sub(amount)
		next.Premium = true
		signed = amount.Neg()
		description = "Premium upgrade"
	default:
		return p, model.Transaction{}, fmt.Errorf("%s is not a cash movement", kind)
	}

	next.UpdatedAt = now
	tx := model.Transaction{
		ID:          id,
		PortfolioID: p.ID,
		Timestamp:   now,
		Type:        kind,
		Price:       decimal.Zero,
		Amount:      signed,
		Tax:         decimal.Zero,
		Description: description,
	}
	return next, tx, nil
}

func insufficient(requested, available decimal.Decimal) error {
	return &apperrors.OrderError{
		Kind:      apperrors.ErrInsufficientFunds,
		Requested: requested,
		Available: available,
	}
}

// CashDelta returns the change in trading cash caused by t. For trades and
// premium upgrades this equals the ledger amount; savings movements carry the
// opposite sign because the ledger records them from the savings side.
func CashDelta(t model.Transaction) decimal.Decimal {
	switch t.Type {
	case model.TransactionSavingsDeposit, model.TransactionSavingsWithdrawal:
		return t.Amount.Neg()
	}
	return t.Amount
}
