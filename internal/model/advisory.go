package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvisoryEvent is emitted after every successful execution.
// Amount is the absolute cash delta, not the signed ledger amount.
type AdvisoryEvent struct {
	PortfolioID   string          `json:"portfolioId"`
	TransactionID string          `json:"transactionId"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Symbol        string          `json:"symbol,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Timestamp     time.Time       `json:"timestamp"`
}
