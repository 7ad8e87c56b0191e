package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
)

// AnalyticsService serves read-only views over the store and the market.
// It never writes, so results only change when a transaction is committed
// or prices move.
type AnalyticsService struct {
	store        repository.Store
	prices       PriceSource
	policy       analytics.Policy
	startingCash decimal.Decimal
	now          func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. A nil now uses time.Now.
func NewAnalyticsService(store repository.Store, prices PriceSource, policy analytics.Policy, startingCash decimal.Decimal, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		store:        store,
		prices:       prices,
		policy:       policy,
		startingCash: startingCash,
		now:          now,
	}
}

// Valuation marks the portfolio to the current prices.
func (s *AnalyticsService) Valuation(ctx context.Context, portfolioID string) (analytics.Valuation, error) {
	p, err := loadPortfolio(ctx, s.store, portfolioID, s.startingCash)
	if err != nil {
		return analytics.Valuation{}, err
	}
	return analytics.Valuate(p, s.prices.Prices()), nil
}

// PeriodMetrics summarises ledger cash flow over the last monthsBack months.
func (s *AnalyticsService) PeriodMetrics(ctx context.Context, portfolioID string, monthsBack int) (analytics.Period, error) {
	ledger, err := s.ledger(ctx, portfolioID)
	if err != nil {
		return analytics.Period{}, err
	}
	return analytics.PeriodMetrics(ledger, monthsBack, s.now()), nil
}

// CategoryBreakdown groups outflows by spending category.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, portfolioID string) ([]analytics.Category, error) {
	ledger, err := s.ledger(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryBreakdown(ledger), nil
}

// RiskAssessment classifies how much of the portfolio is committed to holdings.
func (s *AnalyticsService) RiskAssessment(ctx context.Context, portfolioID string) (analytics.Risk, error) {
	v, err := s.Valuation(ctx, portfolioID)
	if err != nil {
		return analytics.Risk{}, err
	}
	return analytics.AssessRisk(v, s.policy), nil
}

// Recommendations evaluates the rule table against the current aggregates.
func (s *AnalyticsService) Recommendations(ctx context.Context, portfolioID string) ([]analytics.Recommendation, error) {
	p, ledger, err := s.snapshot(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	v := analytics.Valuate(p, s.prices.Prices())
	return analytics.Recommend(analytics.NewAggregates(v, ledger), s.policy, analytics.Rules), nil
}

// Suggestion returns the trade signal for one instrument.
func (s *AnalyticsService) Suggestion(symbol string) (analytics.Suggestion, error) {
	series, err := s.prices.Series(symbol)
	if err != nil {
		return analytics.Suggestion{}, err
	}
	return analytics.SuggestTrade(series), nil
}

// snapshot reads the portfolio and ledger from one store view. A portfolio
// that has never been committed is fresh, with an empty ledger.
func (s *AnalyticsService) snapshot(ctx context.Context, portfolioID string) (model.Portfolio, []model.Transaction, error) {
	p, ledger, err := s.store.Snapshot(ctx, portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return model.NewPortfolio(portfolioID, s.startingCash), nil, nil
	}
	if err != nil {
		return model.Portfolio{}, nil, fmt.Errorf("failed to read portfolio snapshot: %w", err)
	}
	return p, ledger, nil
}

func (s *AnalyticsService) ledger(ctx context.Context, portfolioID string) ([]model.Transaction, error) {
	ledger, err := s.store.ListTransactions(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return ledger, nil
}
