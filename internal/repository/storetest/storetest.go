// Package storetest holds the behaviour every repository.Store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Run exercises store against the repository.Store contract. newStore is
// called once per subtest and must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Helper()
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	t.Run("missing portfolio", func(t *testing.T) {
		s := newStore(t)
		_, err := s.LoadPortfolio(ctx, uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)

		ledger, err := s.ListTransactions(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, ledger)
	})

	t.Run("commit round trip", func(t *testing.T) {
		s := newStore(t)
		id := uuid.NewString()

		p := model.NewPortfolio(id, d("800.00"))
		p.Savings = d("25.50")
		p.Premium = true
		p.UpdatedAt = at
		p.Holdings["NEXO"] = model.Holding{Symbol: "NEXO", Shares: 2, AverageCost: d("112.123456")}
		tx := model.Transaction{
			ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionBuy,
			Symbol: "NEXO", Shares: 2, Price: d("100.00"), Amount: d("-200.00"), Tax: decimal.Zero,
			Description: "Bought 2 shares of NEXO at 100.00",
		}
		require.NoError(t, s.Commit(ctx, p, tx))

		got, err := s.LoadPortfolio(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.True(t, got.Cash.Equal(d("800")), "cash %s", got.Cash)
		assert.True(t, got.Savings.Equal(d("25.5")))
		assert.True(t, got.Premium)
		assert.True(t, got.UpdatedAt.Equal(at))
		require.Len(t, got.Holdings, 1)
		assert.Equal(t, int64(2), got.Holdings["NEXO"].Shares)
		assert.True(t, got.Holdings["NEXO"].AverageCost.Equal(d("112.123456")))

		ledger, err := s.ListTransactions(ctx, id)
		require.NoError(t, err)
		require.Len(t, ledger, 1)
		assert.Equal(t, tx.ID, ledger[0].ID)
		assert.Equal(t, model.TransactionBuy, ledger[0].Type)
		assert.True(t, ledger[0].Amount.Equal(d("-200")))
		assert.True(t, ledger[0].Price.Equal(d("100")))
		assert.True(t, ledger[0].Timestamp.Equal(at))
		assert.Equal(t, tx.Description, ledger[0].Description)
	})

	t.Run("holdings are replaced and ledger is newest first", func(t *testing.T) {
		s := newStore(t)
		id := uuid.NewString()

		p := model.NewPortfolio(id, d("800"))
		p.Holdings["NEXO"] = model.Holding{Symbol: "NEXO", Shares: 2, AverageCost: d("100")}
		first := model.Transaction{ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionBuy, Symbol: "NEXO", Shares: 2, Price: d("100"), Amount: d("-200")}
		require.NoError(t, s.Commit(ctx, p, first))

		p = model.NewPortfolio(id, d("1000"))
		second := model.Transaction{ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionSell, Symbol: "NEXO", Shares: 2, Price: d("100"), Amount: d("200")}
		require.NoError(t, s.Commit(ctx, p, second))

		got, err := s.LoadPortfolio(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, got.Holdings)
		assert.True(t, got.Cash.Equal(d("1000")))

		ledger, err := s.ListTransactions(ctx, id)
		require.NoError(t, err)
		require.Len(t, ledger, 2)
		assert.Equal(t, second.ID, ledger[0].ID)
		assert.Equal(t, first.ID, ledger[1].ID)
	})

	t.Run("snapshot pairs portfolio and ledger", func(t *testing.T) {
		s := newStore(t)

		_, _, err := s.Snapshot(ctx, uuid.NewString())
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)

		id := uuid.NewString()
		p := model.NewPortfolio(id, d("800"))
		p.Holdings["NEXO"] = model.Holding{Symbol: "NEXO", Shares: 2, AverageCost: d("100")}
		tx := model.Transaction{ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionBuy, Symbol: "NEXO", Shares: 2, Price: d("100"), Amount: d("-200")}
		require.NoError(t, s.Commit(ctx, p, tx))

		got, ledger, err := s.Snapshot(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.Cash.Equal(d("800")))
		assert.Equal(t, int64(2), got.Holdings["NEXO"].Shares)
		require.Len(t, ledger, 1)
		assert.Equal(t, tx.ID, ledger[0].ID)
	})

	t.Run("loaded snapshot is a copy", func(t *testing.T) {
		s := newStore(t)
		id := uuid.NewString()
		p := model.NewPortfolio(id, d("10"))
		p.Holdings["QBIT"] = model.Holding{Symbol: "QBIT", Shares: 1, AverageCost: d("5")}
		require.NoError(t, s.Commit(ctx, p, model.Transaction{ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionBuy, Symbol: "QBIT", Shares: 1, Price: d("5"), Amount: d("-5")}))

		got, err := s.LoadPortfolio(ctx, id)
		require.NoError(t, err)
		delete(got.Holdings, "QBIT")
		delete(p.Holdings, "QBIT")

		again, err := s.LoadPortfolio(ctx, id)
		require.NoError(t, err)
		assert.Contains(t, again.Holdings, "QBIT")
	})

	t.Run("failed commit leaves nothing behind", func(t *testing.T) {
		s := newStore(t)
		id := uuid.NewString()
		p := model.NewPortfolio(id, d("10"))
		tx := model.Transaction{ID: uuid.NewString(), PortfolioID: id, Timestamp: at, Type: model.TransactionPremiumUpgrade, Amount: d("-9.99")}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		require.Error(t, s.Commit(cancelled, p, tx))

		_, err := s.LoadPortfolio(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrPortfolioNotFound)
		ledger, err := s.ListTransactions(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, ledger)
	})
}
