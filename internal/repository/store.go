package repository

import (
	"context"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Store is the persistence port for portfolio snapshots and the ledger.
//
// Commit writes the portfolio snapshot and appends the transaction as one
// unit: either both become visible or neither does.
type Store interface {
	// LoadPortfolio returns apperrors.ErrPortfolioNotFound when nothing has
	// been committed for id.
	LoadPortfolio(ctx context.Context, id string) (model.Portfolio, error)
	// ListTransactions returns the ledger for id, newest first.
	ListTransactions(ctx context.Context, id string) ([]model.Transaction, error)
	// Snapshot reads the portfolio and its ledger from one consistent view,
	// so no Commit can land between the two. Returns
	// apperrors.ErrPortfolioNotFound like LoadPortfolio.
	Snapshot(ctx context.Context, id string) (model.Portfolio, []model.Transaction, error)
	Commit(ctx context.Context, p model.Portfolio, t model.Transaction) error
}
