package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// TransactionRepository provides data access methods for the append-only transaction table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetTransactions returns the ledger for portfolioID, newest first.
// Entries sharing a timestamp keep their insertion order reversed.
func (r *TransactionRepository) GetTransactions(ctx context.Context, portfolioID string) ([]model.Transaction, error) {
	query := `
		SELECT id, portfolio_id, created_at, type, symbol, shares, price, amount, tax, description
		FROM "transaction"
		WHERE portfolio_id = ?
		ORDER BY seq DESC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			t         model.Transaction
			createdAt string
		)
		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&createdAt,
			&t.Type,
			&t.Symbol,
			&t.Shares,
			&t.Price,
			&t.Amount,
			&t.Tax,
			&t.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		if !t.Type.Valid() {
			return nil, fmt.Errorf("failed to read transaction %s: unknown type %q", t.ID, t.Type)
		}
		t.Timestamp, err = ParseTime(createdAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return transactions, nil
}

// InsertTransaction appends t to the ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, portfolio_id, created_at, type, symbol, shares, price, amount, tax, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.PortfolioID,
		formatTime(t.Timestamp),
		string(t.Type),
		t.Symbol,
		t.Shares,
		t.Price.String(),
		t.Amount.String(),
		t.Tax.String(),
		t.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
