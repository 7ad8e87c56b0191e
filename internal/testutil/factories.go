package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults (1000.00 cash, no holdings)
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithCash("440.00").
//	    WithHolding("NEXO", 5, "112").
//	    Build(t, db)
type PortfolioBuilder struct {
	p model.Portfolio
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	p := model.NewPortfolio(MakeID(), decimal.NewFromInt(1000))
	p.UpdatedAt = FixedNow
	return &PortfolioBuilder{p: p}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.p.ID = id
	return b
}

// WithCash sets the cash balance.
func (b *PortfolioBuilder) WithCash(cash string) *PortfolioBuilder {
	b.p.Cash = D(cash)
	return b
}

// WithSavings sets the savings balance.
func (b *PortfolioBuilder) WithSavings(savings string) *PortfolioBuilder {
	b.p.Savings = D(savings)
	return b
}

// WithHolding adds a position.
func (b *PortfolioBuilder) WithHolding(symbol string, shares int64, averageCost string) *PortfolioBuilder {
	b.p.Holdings[symbol] = model.Holding{Symbol: symbol, Shares: shares, AverageCost: D(averageCost)}
	return b
}

// Premium marks the portfolio as upgraded.
func (b *PortfolioBuilder) Premium() *PortfolioBuilder {
	b.p.Premium = true
	return b
}

// Build saves the portfolio snapshot and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	if err := repository.NewPortfolioRepository(db).SavePortfolio(context.Background(), b.p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return b.p.Clone()
}

// TransactionBuilder provides a fluent interface for creating ledger entries.
// The portfolio must already exist.
//
// Example usage:
//
//	testutil.NewTransaction(portfolio.ID).
//	    WithType(model.TransactionBuy).
//	    WithAmount("-200.00").
//	    Build(t, db)
type TransactionBuilder struct {
	t model.Transaction
}

// NewTransaction creates a TransactionBuilder for a 1 share BUY of NEXO at 100.00.
func NewTransaction(portfolioID string) *TransactionBuilder {
	return &TransactionBuilder{t: model.Transaction{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Timestamp:   FixedNow,
		Type:        model.TransactionBuy,
		Symbol:      "NEXO",
		Shares:      1,
		Price:       D("100.00"),
		Amount:      D("-100.00"),
		Tax:         decimal.Zero,
		Description: "Bought 1 shares of NEXO at 100.00",
	}}
}

// WithType sets the transaction type. Cash movements clear symbol, shares and price.
func (b *TransactionBuilder) WithType(typ model.TransactionType) *TransactionBuilder {
	b.t.Type = typ
	if !typ.IsTrade() {
		b.t.Symbol = ""
		b.t.Shares = 0
		b.t.Price = decimal.Zero
		b.t.Description = string(typ)
	}
	return b
}

// WithAmount sets the signed ledger amount.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.t.Amount = D(amount)
	return b
}

// WithDate sets the timestamp.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.t.Timestamp = date
	return b
}

// Build appends the transaction to the ledger and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), b.t); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return b.t
}

// CreatePortfolio creates a portfolio with the given cash and no holdings.
//
// Example usage:
//
//	portfolio := testutil.CreatePortfolio(t, db, "800.00")
func CreatePortfolio(t *testing.T, db *sql.DB, cash string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithCash(cash).Build(t, db)
}
