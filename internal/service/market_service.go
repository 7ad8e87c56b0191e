package service

import (
	"context"

	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/pricing"
)

// MarketService exposes the simulated market to the API.
type MarketService struct {
	market *pricing.Market
}

// NewMarketService creates a new MarketService.
func NewMarketService(market *pricing.Market) *MarketService {
	return &MarketService{market: market}
}

// Quotes lists every instrument with its current price.
func (s *MarketService) Quotes() []model.Quote {
	return s.market.Quotes()
}

// Instrument returns one catalog entry.
func (s *MarketService) Instrument(symbol string) (model.Instrument, error) {
	return s.market.Instrument(symbol)
}

// Series returns the price history for symbol, oldest point first.
func (s *MarketService) Series(symbol string) (model.PriceSeries, error) {
	return s.market.Series(symbol)
}

// Refresh regenerates every series.
func (s *MarketService) Refresh(ctx context.Context) error {
	return s.market.Refresh(ctx)
}
