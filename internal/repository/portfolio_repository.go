package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and holding tables.
// A portfolio row stores the cash side; holdings are stored one row per symbol.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// WithTx returns a new PortfolioRepository scoped to the provided transaction.
func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PortfolioRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPortfolio loads the snapshot for portfolioID including all holdings.
// Returns apperrors.ErrPortfolioNotFound if nothing has been saved yet.
func (r *PortfolioRepository) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, cash, savings, premium, updated_at
		FROM portfolio
		WHERE id = ?
	`

	var (
		p         model.Portfolio
		updatedAt string
	)
	err := r.getQuerier().QueryRowContext(ctx, query, portfolioID).Scan(
		&p.ID,
		&p.Cash,
		&p.Savings,
		&p.Premium,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	p.UpdatedAt, err = ParseTime(updatedAt)
	if err != nil {
		return model.Portfolio{}, err
	}

	p.Holdings, err = r.getHoldings(ctx, portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

func (r *PortfolioRepository) getHoldings(ctx context.Context, portfolioID string) (map[string]model.Holding, error) {
	query := `
		SELECT symbol, shares, average_cost
		FROM holding
		WHERE portfolio_id = ?
		ORDER BY symbol ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := make(map[string]model.Holding)
	for rows.Next() {
		var h model.Holding
		if err := rows.Scan(&h.Symbol, &h.Shares, &h.AverageCost); err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings[h.Symbol] = h
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}
	return holdings, nil
}

// SavePortfolio upserts the cash side and replaces the holdings with p.Holdings.
// Call it through WithTx so the snapshot is written atomically.
func (r *PortfolioRepository) SavePortfolio(ctx context.Context, p model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, cash, savings, premium, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cash = excluded.cash,
			savings = excluded.savings,
			premium = excluded.premium,
			updated_at = excluded.updated_at
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.Cash.String(),
		p.Savings.String(),
		p.Premium,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio: %w", err)
	}

	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM holding WHERE portfolio_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}

	for _, h := range p.SortedHoldings() {
		_, err := r.getQuerier().ExecContext(ctx,
			`INSERT INTO holding (portfolio_id, symbol, shares, average_cost) VALUES (?, ?, ?, ?)`,
			p.ID,
			h.Symbol,
			h.Shares,
			h.AverageCost.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.Symbol, err)
		}
	}
	return nil
}
