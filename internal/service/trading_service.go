package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
	"github.com/techiepharm/FinSim-sub001/internal/trading"
)

// DefaultStartingCash is the cash a portfolio starts with before its first transaction.
var DefaultStartingCash = decimal.NewFromInt(1000)

// DefaultPremiumPrice is charged by UpgradePremium.
var DefaultPremiumPrice = decimal.RequireFromString("9.99")

// TradingService executes orders and cash movements against a Store.
// Every mutation for a portfolio runs under that portfolio's lock, so two
// requests cannot interleave their read-modify-write.
type TradingService struct {
	store        repository.Store
	prices       PriceSource
	advisor      Advisor
	metrics      *metrics.Metrics
	startingCash decimal.Decimal
	premiumPrice decimal.Decimal
	now          func() time.Time
	newID        func() string
	locks        keyedMutex
}

// TradingOption configures a TradingService.
type TradingOption func(*TradingService)

// WithAdvisor sets where advisory events are sent.
func WithAdvisor(a Advisor) TradingOption {
	return func(s *TradingService) { s.advisor = a }
}

// WithMetrics records executions and rejections on m.
func WithMetrics(m *metrics.Metrics) TradingOption {
	return func(s *TradingService) { s.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) TradingOption {
	return func(s *TradingService) { s.now = now }
}

// WithIDGenerator overrides the transaction ID source.
func WithIDGenerator(fn func() string) TradingOption {
	return func(s *TradingService) { s.newID = fn }
}

// WithStartingCash sets the cash of a portfolio that has never been saved.
func WithStartingCash(amount decimal.Decimal) TradingOption {
	return func(s *TradingService) { s.startingCash = amount }
}

// WithPremiumPrice sets the premium upgrade charge.
func WithPremiumPrice(amount decimal.Decimal) TradingOption {
	return func(s *TradingService) { s.premiumPrice = amount }
}

// NewTradingService creates a new TradingService with the provided dependencies.
func NewTradingService(store repository.Store, prices PriceSource, opts ...TradingOption) *TradingService {
	s := &TradingService{
		store:        store,
		prices:       prices,
		startingCash: DefaultStartingCash,
		premiumPrice: DefaultPremiumPrice,
		now:          time.Now,
		newID:        newTransactionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTransactionID returns a time-ordered UUIDv7 so IDs sort in commit order.
func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GetPortfolio returns the stored snapshot, or a fresh portfolio holding
// only the starting cash if nothing has been committed yet.
func (s *TradingService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	return loadPortfolio(ctx, s.store, portfolioID, s.startingCash)
}

// GetTransactions returns the ledger, newest first.
func (s *TradingService) GetTransactions(ctx context.Context, portfolioID string) ([]model.Transaction, error) {
	ledger, err := s.store.ListTransactions(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return ledger, nil
}

// ExecuteOrder fills order at the current market price.
func (s *TradingService) ExecuteOrder(ctx context.Context, portfolioID string, order trading.Order) (model.Receipt, error) {
	txType := string(order.Side)
	if order.Shares <= 0 {
		err := fmt.Errorf("%w: %d", apperrors.ErrInvalidQuantity, order.Shares)
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}
	if _, err := trading.ParseSide(txType); err != nil {
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}

	price, err := s.prices.CurrentPrice(order.Symbol)
	if err != nil {
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}

	return s.apply(ctx, portfolioID, txType, func(p model.Portfolio, now time.Time, id string) (model.Portfolio, model.Transaction, error) {
		return trading.Execute(order, p, price, now, id)
	})
}

// Deposit moves amount from cash into savings.
func (s *TradingService) Deposit(ctx context.Context, portfolioID string, amount decimal.Decimal) (model.Receipt, error) {
	return s.moveCash(ctx, portfolioID, model.TransactionSavingsDeposit, amount)
}

// Withdraw moves amount from savings back into cash.
func (s *TradingService) Withdraw(ctx context.Context, portfolioID string, amount decimal.Decimal) (model.Receipt, error) {
	return s.moveCash(ctx, portfolioID, model.TransactionSavingsWithdrawal, amount)
}

// UpgradePremium charges the premium price and flags the portfolio.
func (s *TradingService) UpgradePremium(ctx context.Context, portfolioID string) (model.Receipt, error) {
	return s.moveCash(ctx, portfolioID, model.TransactionPremiumUpgrade, s.premiumPrice)
}

func (s *TradingService) moveCash(ctx context.Context, portfolioID string, kind model.TransactionType, amount decimal.Decimal) (model.Receipt, error) {
	return s.apply(ctx, portfolioID, string(kind), func(p model.Portfolio, now time.Time, id string) (model.Portfolio, model.Transaction, error) {
		return trading.ApplyCashMovement(kind, amount, p, now, id)
	})
}

type mutation func(p model.Portfolio, now time.Time, id string) (model.Portfolio, model.Transaction, error)

// apply runs the load, mutate, commit sequence under the portfolio lock.
// Nothing is observable unless Commit succeeds.
func (s *TradingService) apply(ctx context.Context, portfolioID, txType string, fn mutation) (model.Receipt, error) {
	start := time.Now()
	unlock := s.locks.Lock(portfolioID)
	defer unlock()

	p, err := s.GetPortfolio(ctx, portfolioID)
	if err != nil {
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}

	next, tx, err := fn(p, s.now().UTC(), s.newID())
	if err != nil {
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}

	if err := s.store.Commit(ctx, next, tx); err != nil {
		err = fmt.Errorf("%w: %w", apperrors.ErrPersistenceFailure, err)
		log.Printf("[trading] portfolio=%s %s commit failed: %v", portfolioID, txType, err)
		s.metrics.RecordRejected(txType, err)
		return model.Receipt{}, err
	}

	s.metrics.RecordExecuted(txType, time.Since(start))
	log.Printf("[trading] portfolio=%s %s %s amount=%s cash=%s", portfolioID, tx.Type, tx.Symbol, tx.Amount, next.Cash)

	if s.advisor != nil {
		s.advisor.Dispatch(model.AdvisoryEvent{
			PortfolioID:   portfolioID,
			TransactionID: tx.ID,
			Type:          tx.Type,
			Amount:        trading.CashDelta(tx).Abs(),
			Symbol:        tx.Symbol,
			Balance:       next.Cash,
			Timestamp:     tx.Timestamp,
		})
	}

	return model.NewReceipt(tx, next.Cash), nil
}

// loadPortfolio substitutes a fresh portfolio for one that has never been committed.
func loadPortfolio(ctx context.Context, store repository.Store, portfolioID string, startingCash decimal.Decimal) (model.Portfolio, error) {
	p, err := store.LoadPortfolio(ctx, portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return model.NewPortfolio(portfolioID, startingCash), nil
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return p, nil
}
