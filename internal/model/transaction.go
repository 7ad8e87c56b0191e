package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the ledger entry kinds.
type TransactionType string

const (
	TransactionBuy               TransactionType = "BUY"
	TransactionSell              TransactionType = "SELL"
	TransactionSavingsDeposit    TransactionType = "SAVINGS_DEPOSIT"
	TransactionSavingsWithdrawal TransactionType = "SAVINGS_WITHDRAWAL"
	TransactionPremiumUpgrade    TransactionType = "PREMIUM_UPGRADE"
)

// IsTrade reports whether the type carries symbol, shares and price.
func (t TransactionType) IsTrade() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Valid reports whether t is a known ledger type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionSavingsDeposit,
		TransactionSavingsWithdrawal, TransactionPremiumUpgrade:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. Amount is signed: negative for
// outflows such as BUY, positive for inflows such as SELL proceeds.
// Symbol, Shares and Price are only set for BUY and SELL.
type Transaction struct {
	ID          string          `json:"id"`
	PortfolioID string          `json:"portfolioId"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        TransactionType `json:"type"`
	Symbol      string          `json:"symbol,omitempty"`
	Shares      int64           `json:"shares,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	Tax         decimal.Decimal `json:"tax"` // placeholder, always zero
	Description string          `json:"description"`
}

// Receipt is the read-only projection of an executed transaction shown to
// the trader. It is never persisted.
type Receipt struct {
	TransactionID string          `json:"transactionId"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	Symbol        string          `json:"symbol,omitempty"`
	Shares        int64           `json:"shares,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
	Fee           decimal.Decimal `json:"fee"`
	CashBalance   decimal.Decimal `json:"cashBalance"`
}

// NewReceipt builds the receipt for t. Fees are not charged in the
// simulator so Fee is always 0.00.
func NewReceipt(t Transaction, cash decimal.Decimal) Receipt {
	return Receipt{
		TransactionID: t.ID,
		Date:          t.Timestamp,
		Type:          t.Type,
		Symbol:        t.Symbol,
		Shares:        t.Shares,
		Price:         t.Price,
		Total:         t.Amount.Abs(),
		Fee:           decimal.Zero,
		CashBalance:   cash,
	}
}

// MarshalJSON renders the money fields with exactly two decimal places.
func (r Receipt) MarshalJSON() ([]byte, error) {
	type plain Receipt
	return json.Marshal(struct {
		plain
		Price       string `json:"price"`
		Total       string `json:"total"`
		Fee         string `json:"fee"`
		CashBalance string `json:"cashBalance"`
	}{
		plain:       plain(r),
		Price:       r.Price.StringFixed(2),
		Total:       r.Total.StringFixed(2),
		Fee:         r.Fee.StringFixed(2),
		CashBalance: r.CashBalance.StringFixed(2),
	})
}
