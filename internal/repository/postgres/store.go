// Package postgres implements repository.Store on PostgreSQL with pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
)

// Store implements repository.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store over a migrated database.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Compile-time interface check.
var _ repository.Store = (*Store)(nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LoadPortfolio returns apperrors.ErrPortfolioNotFound when no row exists.
func (s *Store) LoadPortfolio(ctx context.Context, id string) (model.Portfolio, error) {
	return loadPortfolio(ctx, s.pool, id)
}

// ListTransactions returns the ledger newest first.
func (s *Store) ListTransactions(ctx context.Context, id string) ([]model.Transaction, error) {
	return listTransactions(ctx, s.pool, id)
}

// Snapshot reads the portfolio and ledger in one read-only repeatable-read
// transaction.
func (s *Store) Snapshot(ctx context.Context, id string) (model.Portfolio, []model.Transaction, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return model.Portfolio{}, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := loadPortfolio(ctx, tx, id)
	if err != nil {
		return model.Portfolio{}, nil, err
	}
	ledger, err := listTransactions(ctx, tx, id)
	if err != nil {
		return model.Portfolio{}, nil, err
	}
	return p, ledger, nil
}

func loadPortfolio(ctx context.Context, q querier, id string) (model.Portfolio, error) {
	var (
		p             model.Portfolio
		cash, savings string
	)
	err := q.QueryRow(ctx, `
		SELECT id::text, cash::text, savings::text, premium, updated_at
		FROM portfolio
		WHERE id = $1
	`, id).Scan(&p.ID, &cash, &savings, &p.Premium, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("query portfolio: %w", err)
	}
	if p.Cash, err = decimal.NewFromString(cash); err != nil {
		return model.Portfolio{}, fmt.Errorf("parse cash: %w", err)
	}
	if p.Savings, err = decimal.NewFromString(savings); err != nil {
		return model.Portfolio{}, fmt.Errorf("parse savings: %w", err)
	}
	p.UpdatedAt = p.UpdatedAt.UTC()

	rows, err := q.Query(ctx, `
		SELECT symbol, shares, average_cost::text
		FROM holding
		WHERE portfolio_id = $1
		ORDER BY symbol
	`, id)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	p.Holdings = make(map[string]model.Holding)
	for rows.Next() {
		var (
			h    model.Holding
			cost string
		)
		if err := rows.Scan(&h.Symbol, &h.Shares, &cost); err != nil {
			return model.Portfolio{}, fmt.Errorf("scan holding: %w", err)
		}
		if h.AverageCost, err = decimal.NewFromString(cost); err != nil {
			return model.Portfolio{}, fmt.Errorf("parse average cost: %w", err)
		}
		p.Holdings[h.Symbol] = h
	}
	if err := rows.Err(); err != nil {
		return model.Portfolio{}, fmt.Errorf("iterate holdings: %w", err)
	}
	return p, nil
}

func listTransactions(ctx context.Context, q querier, id string) ([]model.Transaction, error) {
	rows, err := q.Query(ctx, `
		SELECT id::text, portfolio_id::text, created_at, type, symbol, shares,
		       price::text, amount::text, tax::text, description
		FROM ledger_transaction
		WHERE portfolio_id = $1
		ORDER BY seq DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []model.Transaction{}
	for rows.Next() {
		var (
			t                  model.Transaction
			typ                string
			price, amount, tax string
		)
		if err := rows.Scan(&t.ID, &t.PortfolioID, &t.Timestamp, &typ, &t.Symbol, &t.Shares,
			&price, &amount, &tax, &t.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = model.TransactionType(typ)
		if !t.Type.Valid() {
			return nil, fmt.Errorf("transaction %s: unknown type %q", t.ID, typ)
		}
		t.Timestamp = t.Timestamp.UTC()
		if t.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		if t.Tax, err = decimal.NewFromString(tax); err != nil {
			return nil, fmt.Errorf("parse tax: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Commit upserts the snapshot, replaces holdings and appends t in one transaction.
func (s *Store) Commit(ctx context.Context, p model.Portfolio, t model.Transaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO portfolio (id, cash, savings, premium, updated_at)
		VALUES ($1, $2::numeric, $3::numeric, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			cash = EXCLUDED.cash,
			savings = EXCLUDED.savings,
			premium = EXCLUDED.premium,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.Cash.String(), p.Savings.String(), p.Premium, p.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert portfolio: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM holding WHERE portfolio_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear holdings: %w", err)
	}

	if len(p.Holdings) > 0 {
		batch := &pgx.Batch{}
		for _, h := range p.SortedHoldings() {
			batch.Queue(`
				INSERT INTO holding (portfolio_id, symbol, shares, average_cost)
				VALUES ($1, $2, $3, $4::numeric)
			`, p.ID, h.Symbol, h.Shares, h.AverageCost.String())
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert holdings: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_transaction (
			id, portfolio_id, created_at, type, symbol, shares, price, amount, tax, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric, $10)
	`, t.ID, t.PortfolioID, t.Timestamp.UTC(), string(t.Type), t.Symbol, t.Shares,
		t.Price.String(), t.Amount.String(), t.Tax.String(), t.Description)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
