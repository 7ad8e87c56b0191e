package trading_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/trading"
)

func TestApplyCashMovement(t *testing.T) {
	t.Run("deposit moves cash into savings with a positive amount", func(t *testing.T) {
		p, tx, err := trading.ApplyCashMovement(model.TransactionSavingsDeposit, d("250"), startingPortfolio(), now, "t1")
		require.NoError(t, err)
		assert.True(t, p.Cash.Equal(d("750")))
		assert.True(t, p.Savings.Equal(d("250")))
		assert.True(t, tx.Amount.Equal(d("250")))
		assert.True(t, trading.CashDelta(tx).Equal(d("-250")))
	})

	t.Run("withdrawal reverses a deposit with a negative amount", func(t *testing.T) {
		p, _, err := trading.ApplyCashMovement(model.TransactionSavingsDeposit, d("250"), startingPortfolio(), now, "t1")
		require.NoError(t, err)
		p, tx, err := trading.ApplyCashMovement(model.TransactionSavingsWithdrawal, d("100"), p, now, "t2")
		require.NoError(t, err)
		assert.True(t, p.Cash.Equal(d("850")))
		assert.True(t, p.Savings.Equal(d("150")))
		assert.True(t, tx.Amount.Equal(d("-100")))
		assert.True(t, trading.CashDelta(tx).Equal(d("100")))
	})

	t.Run("withdrawal beyond savings is rejected", func(t *testing.T) {
		p := startingPortfolio()
		next, _, err := trading.ApplyCashMovement(model.TransactionSavingsWithdrawal, d("1"), p, now, "t1")
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		assert.Equal(t, p, next)
	})

	t.Run("deposit beyond cash is rejected", func(t *testing.T) {
		_, _, err := trading.ApplyCashMovement(model.TransactionSavingsDeposit, d("1000.01"), startingPortfolio(), now, "t1")
		require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	})

	t.Run("premium upgrade debits cash", func(t *testing.T) {
		p, tx, err := trading.ApplyCashMovement(model.TransactionPremiumUpgrade, d("9.99"), startingPortfolio(), now, "t1")
		require.NoError(t, err)
		assert.True(t, p.Premium)
		assert.True(t, p.Cash.Equal(d("990.01")))
		assert.True(t, tx.Amount.Equal(d("-9.99")))
	})

	t.Run("non-positive amounts", func(t *testing.T) {
		for _, a := range []decimal.Decimal{decimal.Zero, d("-5"), d("0.001")} {
			_, _, err := trading.ApplyCashMovement(model.TransactionSavingsDeposit, a, startingPortfolio(), now, "t1")
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "amount %s", a)
		}
	})

	t.Run("trade types are not cash movements", func(t *testing.T) {
		_, _, err := trading.ApplyCashMovement(model.TransactionBuy, d("5"), startingPortfolio(), now, "t1")
		assert.Error(t, err)
	})
}
