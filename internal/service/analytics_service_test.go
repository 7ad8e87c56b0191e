package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
	"github.com/techiepharm/FinSim-sub001/internal/service"
	"github.com/techiepharm/FinSim-sub001/internal/testutil"
)

// interleavingStore runs between once, right after the first LoadPortfolio
// returns, to simulate a commit racing a reader.
type interleavingStore struct {
	repository.Store
	between func()
	once    sync.Once
}

func (s *interleavingStore) LoadPortfolio(ctx context.Context, id string) (model.Portfolio, error) {
	p, err := s.Store.LoadPortfolio(ctx, id)
	s.once.Do(s.between)
	return p, err
}

// TestAnalyticsService_Valuation tests marking a stored portfolio to market.
//
// WHY: Analytics must read the committed snapshot and current prices without
// writing anything, so calling it twice must return the same result.
func TestAnalyticsService_Valuation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	prices := testutil.NewStaticMarket(map[string]string{"NEXO": "130.00"})
	svc := testutil.NewTestAnalyticsService(t, db, prices)
	p := testutil.NewPortfolio().
		WithCash("440.00").
		WithHolding("NEXO", 5, "112").
		WithHolding("QBIT", 2, "50").
		Build(t, db)

	first, err := svc.Valuation(ctx, p.ID)
	if err != nil {
		t.Fatalf("Valuation() returned unexpected error: %v", err)
	}
	second, _ := svc.Valuation(ctx, p.ID)

	if !first.TotalValue.Equal(second.TotalValue) || len(first.Positions) != len(second.Positions) {
		t.Error("Valuation() is not repeatable")
	}
	if !first.HoldingsValue.Equal(testutil.D("750")) {
		t.Errorf("Expected holdings value 750.00, got %s", first.HoldingsValue)
	}
	if !first.TotalValue.Equal(testutil.D("1190")) {
		t.Errorf("Expected total value 1190.00, got %s", first.TotalValue)
	}
	if !first.TotalGain.Equal(testutil.D("90")) {
		t.Errorf("Expected total gain 90.00, got %s", first.TotalGain)
	}

	// QBIT has no price and is carried at cost.
	qbit := first.Positions[1]
	if qbit.Symbol != "QBIT" || !qbit.PriceUnknown || !qbit.Gain.IsZero() {
		t.Errorf("Expected QBIT carried at cost with PriceUnknown, got %+v", qbit)
	}

	ledger, _ := testutil.NewTestTradingService(t, db, prices).GetTransactions(ctx, p.ID)
	if len(ledger) != 0 {
		t.Errorf("Valuation() wrote %d ledger entries", len(ledger))
	}
}

// TestAnalyticsService_FreshPortfolio tests analytics for a portfolio that has never traded.
func TestAnalyticsService_FreshPortfolio(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db, testutil.NewStaticMarket(nil))
	id := testutil.MakeID()

	v, err := svc.Valuation(ctx, id)
	if err != nil {
		t.Fatalf("Valuation() returned unexpected error: %v", err)
	}
	if !v.TotalValue.Equal(testutil.D("1000")) || len(v.Positions) != 0 {
		t.Errorf("Expected 1000.00 cash only, got %+v", v)
	}

	risk, _ := svc.RiskAssessment(ctx, id)
	if risk.Level != analytics.RiskConservative {
		t.Errorf("Expected Conservative risk, got %s", risk.Level)
	}

	categories, _ := svc.CategoryBreakdown(ctx, id)
	if len(categories) != 0 {
		t.Errorf("Expected no categories, got %+v", categories)
	}

	period, _ := svc.PeriodMetrics(ctx, id, 0)
	if len(period.Months) != analytics.DefaultMonthsBack {
		t.Errorf("Expected %d months, got %d", analytics.DefaultMonthsBack, len(period.Months))
	}
}

// TestAnalyticsService_LedgerViews tests the period, category, risk and recommendation views over one ledger.
//
// WHY: These views all derive from the same ledger and valuation. Checking
// them together catches a view reading the wrong side of a signed amount.
func TestAnalyticsService_LedgerViews(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db, testutil.NewStaticMarket(map[string]string{"NEXO": "130.00"}))
	p := testutil.NewPortfolio().WithCash("430.01").WithHolding("NEXO", 5, "112").Build(t, db)

	testutil.NewTransaction(p.ID).WithAmount("-200.00").WithDate(testutil.FixedNow.AddDate(0, -1, 0)).Build(t, db)
	testutil.NewTransaction(p.ID).WithAmount("-360.00").Build(t, db)
	testutil.NewTransaction(p.ID).WithType(model.TransactionPremiumUpgrade).WithAmount("-9.99").Build(t, db)
	testutil.NewTransaction(p.ID).WithType(model.TransactionSavingsWithdrawal).WithAmount("-10.00").
		WithDate(testutil.FixedNow.AddDate(-1, 0, 0)).Build(t, db)

	t.Run("period metrics", func(t *testing.T) {
		period, err := svc.PeriodMetrics(ctx, p.ID, 3)
		if err != nil {
			t.Fatalf("PeriodMetrics() returned unexpected error: %v", err)
		}
		if len(period.Months) != 3 || period.Months[0].Month != "2026-01" || period.Months[2].Month != "2026-03" {
			t.Fatalf("Unexpected month window: %+v", period.Months)
		}
		if !period.Months[1].Expenses.Equal(testutil.D("200")) {
			t.Errorf("Expected February expenses 200.00, got %s", period.Months[1].Expenses)
		}
		if !period.Months[2].Expenses.Equal(testutil.D("369.99")) {
			t.Errorf("Expected March expenses 369.99, got %s", period.Months[2].Expenses)
		}
		if !period.TotalExpenses.Equal(testutil.D("569.99")) {
			t.Errorf("Expected total expenses 569.99 (last year's entry excluded), got %s", period.TotalExpenses)
		}
	})

	t.Run("category breakdown", func(t *testing.T) {
		categories, err := svc.CategoryBreakdown(ctx, p.ID)
		if err != nil {
			t.Fatalf("CategoryBreakdown() returned unexpected error: %v", err)
		}
		want := []string{analytics.CategoryInvestments, analytics.CategorySubscriptions, analytics.CategoryOther}
		if len(categories) != len(want) {
			t.Fatalf("Expected %d categories, got %+v", len(want), categories)
		}
		for i, name := range want {
			if categories[i].Name != name {
				t.Errorf("Category %d: expected %s, got %s", i, name, categories[i].Name)
			}
		}
		if !categories[0].Total.Equal(testutil.D("560")) {
			t.Errorf("Expected investments total 560.00, got %s", categories[0].Total)
		}
	})

	t.Run("risk", func(t *testing.T) {
		risk, err := svc.RiskAssessment(ctx, p.ID)
		if err != nil {
			t.Fatalf("RiskAssessment() returned unexpected error: %v", err)
		}
		// 560 / (650 + 430.01)
		if risk.Level != analytics.RiskConservative || risk.Score != 35 {
			t.Errorf("Expected Conservative/35, got %s/%d", risk.Level, risk.Score)
		}
	})

	t.Run("recommendations", func(t *testing.T) {
		recs, err := svc.Recommendations(ctx, p.ID)
		if err != nil {
			t.Fatalf("Recommendations() returned unexpected error: %v", err)
		}
		want := []string{"invest-excess-cash", "review-balance", "build-emergency-savings", "strong-performance"}
		if len(recs) != len(want) {
			t.Fatalf("Expected %d recommendations, got %+v", len(want), recs)
		}
		for i, id := range want {
			if recs[i].ID != id {
				t.Errorf("Recommendation %d: expected %s, got %s", i, id, recs[i].ID)
			}
		}
	})
}

// TestAnalyticsService_RecommendationsSnapshot tests that recommendations
// are computed from one consistent store view.
//
// WHY: The rules combine the valuation with trade counts from the ledger. A
// commit landing between the two reads would count a buy whose holding the
// valuation never saw.
func TestAnalyticsService_RecommendationsSnapshot(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	p := testutil.CreatePortfolio(t, db, "1000.00")

	store := &interleavingStore{
		Store:   repository.NewSQLiteStore(db),
		between: func() { testutil.NewTransaction(p.ID).Build(t, db) },
	}
	svc := service.NewAnalyticsService(
		store,
		testutil.NewStaticMarket(map[string]string{"NEXO": "100.00"}),
		analytics.DefaultPolicy(),
		decimal.NewFromInt(1000),
		func() time.Time { return testutil.FixedNow },
	)

	recs, err := svc.Recommendations(ctx, p.ID)
	if err != nil {
		t.Fatalf("Recommendations() returned unexpected error: %v", err)
	}

	// All cash and no trades: only the excess cash rule applies.
	if len(recs) != 1 || recs[0].ID != "invest-excess-cash" {
		t.Errorf("Expected only invest-excess-cash, got %+v", recs)
	}
}

// TestAnalyticsService_Suggestion tests the per-instrument trade signal.
func TestAnalyticsService_Suggestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	prices := testutil.NewStaticMarket(nil)
	prices.SetSeries("NEXO", "100", "101", "102", "103", "104", "105", "106", "107", "108", "109", "110")
	prices.SetSeries("QBIT", "50", "40")
	svc := testutil.NewTestAnalyticsService(t, db, prices)

	tests := []struct {
		symbol string
		want   analytics.Signal
	}{
		{"NEXO", analytics.SignalStrongBuy},
		{"QBIT", analytics.SignalSell},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			s, err := svc.Suggestion(tt.symbol)
			if err != nil {
				t.Fatalf("Suggestion() returned unexpected error: %v", err)
			}
			if s.Signal != tt.want {
				t.Errorf("Expected %s, got %s (%.2f%%)", tt.want, s.Signal, s.ChangePct)
			}
		})
	}

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := svc.Suggestion("ZZZZ")
		if !errors.Is(err, apperrors.ErrUnknownSymbol) {
			t.Errorf("Expected ErrUnknownSymbol, got %v", err)
		}
	})
}
