package pricing

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Market holds the instrument catalog together with the latest generated
// series for each instrument. The current price of a symbol is the last
// point of its series.
type Market struct {
	instruments []model.Instrument
	bySymbol    map[string]model.Instrument
	length      int
	seed        *uint64

	mu     sync.RWMutex
	series map[string]model.PriceSeries
	epoch  uint64

	onRefresh func(error)
}

// MarketOption configures a Market.
type MarketOption func(*Market)

// WithSeed makes every refresh reproducible: refresh n of instrument i uses
// seed + n·len(catalog) + i.
func WithSeed(seed uint64) MarketOption {
	return func(m *Market) { m.seed = &seed }
}

// WithRefreshHook is called after every refresh with its result.
func WithRefreshHook(fn func(error)) MarketOption {
	return func(m *Market) { m.onRefresh = fn }
}

// NewMarket creates a market for the given instruments. Call Refresh before
// asking for prices.
func NewMarket(instruments []model.Instrument, length int, opts ...MarketOption) *Market {
	if length < 1 {
		length = DefaultLength
	}
	m := &Market{
		instruments: instruments,
		bySymbol:    make(map[string]model.Instrument, len(instruments)),
		length:      length,
		series:      make(map[string]model.PriceSeries),
	}
	for _, in := range instruments {
		m.bySymbol[in.Symbol] = in
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Refresh regenerates every series concurrently and swaps the whole set in
// at once, so readers see either the previous market or the new one.
func (m *Market) Refresh(ctx context.Context) error {
	m.mu.RLock()
	epoch := m.epoch
	m.mu.RUnlock()

	results := make([]model.PriceSeries, len(m.instruments))
	g, ctx := errgroup.WithContext(ctx)
	for i, in := range m.instruments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gen := m.generatorFor(epoch, i)
			s, err := gen.GenerateWithBias(in.BasePrice, m.length, in.Bias)
			if err != nil {
				return fmt.Errorf("generate %s: %w", in.Symbol, err)
			}
			s.Symbol = in.Symbol
			results[i] = s
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		next := make(map[string]model.PriceSeries, len(results))
		for _, s := range results {
			next[s.Symbol] = s
		}
		m.mu.Lock()
		m.series = next
		m.epoch++
		m.mu.Unlock()
	}
	if m.onRefresh != nil {
		m.onRefresh(err)
	}
	return err
}

func (m *Market) generatorFor(epoch uint64, i int) *Generator {
	if m.seed == nil {
		return NewRandomGenerator()
	}
	return NewGenerator(*m.seed + epoch*uint64(len(m.instruments)) + uint64(i))
}

// StartScheduler refreshes the market on the given cron spec (for example
// "@daily" or "0 */6 * * *"). Stop the returned cron to end the schedule.
func (m *Market) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := m.Refresh(context.Background()); err != nil {
			log.Printf("[market] scheduled refresh failed: %v", err)
			return
		}
		log.Printf("[market] refreshed %d instruments", len(m.instruments))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

// Instrument returns the catalog entry for symbol.
func (m *Market) Instrument(symbol string) (model.Instrument, error) {
	in, ok := m.bySymbol[symbol]
	if !ok {
		return model.Instrument{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbol)
	}
	return in, nil
}

// CurrentPrice returns the latest simulated price for symbol.
func (m *Market) CurrentPrice(symbol string) (decimal.Decimal, error) {
	s, err := m.Series(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	last, ok := s.Last()
	if !ok {
		return decimal.Zero, fmt.Errorf("no prices generated for %s", symbol)
	}
	return last.Price, nil
}

// Series returns the current series for symbol.
func (m *Market) Series(symbol string) (model.PriceSeries, error) {
	if _, ok := m.bySymbol[symbol]; !ok {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbol)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[symbol]
	if !ok {
		return model.PriceSeries{}, fmt.Errorf("no prices generated for %s", symbol)
	}
	return s, nil
}

// Prices returns a snapshot of every current price keyed by symbol.
func (m *Market) Prices() map[string]decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(m.series))
	for sym, s := range m.series {
		if last, ok := s.Last(); ok {
			out[sym] = last.Price
		}
	}
	return out
}

// Quotes returns the catalog in catalog order with current prices.
func (m *Market) Quotes() []model.Quote {
	prices := m.Prices()
	out := make([]model.Quote, 0, len(m.instruments))
	for _, in := range m.instruments {
		out = append(out, model.Quote{Instrument: in, Price: prices[in.Symbol]})
	}
	return out
}
