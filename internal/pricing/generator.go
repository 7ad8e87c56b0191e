// Package pricing generates synthetic price histories and keeps the current
// simulated market for the instrument catalog.
package pricing

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// DefaultLength is the number of daily points in a generated series.
const DefaultLength = 30

const (
	stepScale  = 0.03 // each step moves up to ~3% of the base price
	floorRatio = 0.7
	capRatio   = 1.3
)

// walk parameters per bias. The walk runs backward from today, so a centre
// above 0.5 makes earlier prices lower and the forward series drift up.
type walk struct {
	center float64
	spread float64
}

var walks = map[model.Bias]walk{
	model.BiasNeutral:  {center: 0.52, spread: 1},
	model.BiasUp:       {center: 0.60, spread: 1},
	model.BiasDown:     {center: 0.40, spread: 1},
	model.BiasVolatile: {center: 0.50, spread: 2},
}

// Generator produces bounded random-walk series. A Generator is not safe for
// concurrent use; give each goroutine its own.
type Generator struct {
	rng   *rand.Rand
	today func() time.Time
}

// NewGenerator returns a generator whose output is fully determined by seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		today: today,
	}
}

// NewRandomGenerator returns an unseeded generator; every call yields a
// fresh, non-reproducible series.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.Uint64())
}

// WithClock pins the date of the last point. Used by tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.today = func() time.Time { return truncateDay(now()) }
	return g
}

func today() time.Time {
	return truncateDay(time.Now())
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Generate returns an unbiased series of length points around basePrice.
func (g *Generator) Generate(basePrice decimal.Decimal, length int) (model.PriceSeries, error) {
	return g.GenerateWithBias(basePrice, length, model.BiasNeutral)
}

// GenerateWithBias returns a series whose drift and variance follow bias.
// Prices stay within [0.7, 1.3] × basePrice and are rounded to cents.
func (g *Generator) GenerateWithBias(basePrice decimal.Decimal, length int, bias model.Bias) (model.PriceSeries, error) {
	if !basePrice.IsPositive() {
		return model.PriceSeries{}, errors.New("base price must be positive")
	}
	if length < 1 {
		return model.PriceSeries{}, errors.New("series length must be at least 1")
	}
	w, ok := walks[bias]
	if !ok {
		w = walks[model.BiasNeutral]
	}

	base := basePrice.InexactFloat64()
	lo, hi := base*floorRatio, base*capRatio
	day := g.today()

	points := make([]model.PricePoint, length)
	price := base
	for i := length - 1; i >= 0; i-- {
		price += (g.rng.Float64() - w.center) * w.spread * stepScale * base
		price = min(max(price, lo), hi)

		points[i] = model.PricePoint{
			Date:  day.AddDate(0, 0, i-(length-1)),
			Price: clampRounded(decimal.NewFromFloat(price).Round(2), basePrice),
		}
	}
	return model.PriceSeries{Points: points}, nil
}

// clampRounded keeps the rounded price inside the band; rounding a float at
// the edge can otherwise step one cent outside it.
func clampRounded(p, base decimal.Decimal) decimal.Decimal {
	lo := base.Mul(decimal.NewFromFloat(floorRatio)).RoundCeil(2)
	hi := base.Mul(decimal.NewFromFloat(capRatio)).RoundFloor(2)
	if p.LessThan(lo) {
		return lo
	}
	if p.GreaterThan(hi) {
		return hi
	}
	return p
}
