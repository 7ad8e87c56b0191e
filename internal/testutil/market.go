package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/catalog"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/pricing"
)

// NewTestMarket returns the default catalog with one seeded refresh applied,
// so prices are identical on every run.
func NewTestMarket(t *testing.T) *pricing.Market {
	t.Helper()

	m := pricing.NewMarket(catalog.Default(), pricing.DefaultLength, pricing.WithSeed(42))
	if err := m.Refresh(context.Background()); err != nil {
		t.Fatalf("Failed to refresh test market: %v", err)
	}
	return m
}

// StaticMarket is a service.PriceSource with hand-set prices.
//
// Example usage:
//
//	prices := testutil.NewStaticMarket(map[string]string{"NEXO": "100.00"})
//	prices.SetPrice("NEXO", "120.00")
type StaticMarket struct {
	mu     sync.RWMutex
	series map[string]model.PriceSeries
}

// NewStaticMarket creates a market where each symbol has a one-point series.
func NewStaticMarket(prices map[string]string) *StaticMarket {
	m := &StaticMarket{series: make(map[string]model.PriceSeries)}
	for symbol, price := range prices {
		m.SetPrice(symbol, price)
	}
	return m
}

// SetPrice replaces symbol's series with a single point at price.
func (m *StaticMarket) SetPrice(symbol, price string) {
	m.SetSeries(symbol, price)
}

// SetSeries replaces symbol's series, oldest price first, with daily points ending on FixedNow.
func (m *StaticMarket) SetSeries(symbol string, prices ...string) {
	s := model.PriceSeries{Symbol: symbol}
	for i, p := range prices {
		s.Points = append(s.Points, model.PricePoint{
			Date:  FixedNow.AddDate(0, 0, i-len(prices)+1),
			Price: decimal.RequireFromString(p),
		})
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[symbol] = s
}

func (m *StaticMarket) CurrentPrice(symbol string) (decimal.Decimal, error) {
	s, err := m.Series(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	last, _ := s.Last()
	return last.Price, nil
}

func (m *StaticMarket) Series(symbol string) (model.PriceSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[symbol]
	if !ok || len(s.Points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbol)
	}
	return s, nil
}

func (m *StaticMarket) Prices() map[string]decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(m.series))
	for symbol, s := range m.series {
		if last, ok := s.Last(); ok {
			out[symbol] = last.Price
		}
	}
	return out
}
