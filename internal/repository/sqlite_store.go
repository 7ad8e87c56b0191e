package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// SQLiteStore is the database/sql backed Store.
type SQLiteStore struct {
	db           *sql.DB
	portfolios   *PortfolioRepository
	transactions *TransactionRepository
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store over an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:           db,
		portfolios:   NewPortfolioRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *SQLiteStore) LoadPortfolio(ctx context.Context, id string) (model.Portfolio, error) {
	return s.portfolios.GetPortfolio(ctx, id)
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, id string) ([]model.Transaction, error) {
	return s.transactions.GetTransactions(ctx, id)
}

// Snapshot reads the portfolio and ledger inside one database transaction.
func (s *SQLiteStore) Snapshot(ctx context.Context, id string) (model.Portfolio, []model.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Portfolio{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	p, err := s.portfolios.WithTx(tx).GetPortfolio(ctx, id)
	if err != nil {
		return model.Portfolio{}, nil, err
	}
	ledger, err := s.transactions.WithTx(tx).GetTransactions(ctx, id)
	if err != nil {
		return model.Portfolio{}, nil, err
	}
	return p, ledger, nil
}

// Commit saves p and appends t inside one database transaction.
func (s *SQLiteStore) Commit(ctx context.Context, p model.Portfolio, t model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.portfolios.WithTx(tx).SavePortfolio(ctx, p); err != nil {
		return err
	}
	if err := s.transactions.WithTx(tx).InsertTransaction(ctx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
