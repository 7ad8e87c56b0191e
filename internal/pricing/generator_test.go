package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/pricing"
)

var fixedNow = func() time.Time { return time.Date(2026, 5, 20, 18, 30, 0, 0, time.UTC) }

func TestGenerator_SameSeedSameSeries(t *testing.T) {
	a, err := pricing.NewGenerator(42).WithClock(fixedNow).Generate(decimal.NewFromInt(100), 30)
	require.NoError(t, err)
	b, err := pricing.NewGenerator(42).WithClock(fixedNow).Generate(decimal.NewFromInt(100), 30)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := pricing.NewGenerator(43).WithClock(fixedNow).Generate(decimal.NewFromInt(100), 30)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerator_Dates(t *testing.T) {
	s, err := pricing.NewGenerator(1).WithClock(fixedNow).Generate(decimal.NewFromInt(50), 30)
	require.NoError(t, err)
	require.Len(t, s.Points, 30)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC), last.Date)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), s.Points[0].Date)
	for i := 1; i < len(s.Points); i++ {
		assert.Equal(t, s.Points[i-1].Date.AddDate(0, 0, 1), s.Points[i].Date)
	}
}

func TestGenerator_InvalidInput(t *testing.T) {
	g := pricing.NewGenerator(1)
	_, err := g.Generate(decimal.Zero, 10)
	assert.Error(t, err)
	_, err = g.Generate(decimal.NewFromInt(-5), 10)
	assert.Error(t, err)
	_, err = g.Generate(decimal.NewFromInt(10), 0)
	assert.Error(t, err)
}

// Every point stays in the clamp band and carries at most two decimals.
func TestProperty_SeriesBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := decimal.New(rapid.Int64Range(100, 1_000_000).Draw(t, "baseCents"), -2)
		length := rapid.IntRange(1, 120).Draw(t, "length")
		bias := rapid.SampledFrom([]model.Bias{model.BiasNeutral, model.BiasUp, model.BiasDown, model.BiasVolatile}).Draw(t, "bias")
		seed := rapid.Uint64().Draw(t, "seed")

		s, err := pricing.NewGenerator(seed).GenerateWithBias(base, length, bias)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(s.Points) != length {
			t.Fatalf("got %d points, want %d", len(s.Points), length)
		}
		lo := base.Mul(decimal.RequireFromString("0.7"))
		hi := base.Mul(decimal.RequireFromString("1.3"))
		for _, p := range s.Points {
			if p.Price.LessThan(lo) || p.Price.GreaterThan(hi) {
				t.Fatalf("price %s outside [%s, %s]", p.Price, lo, hi)
			}
			if !p.Price.Equal(p.Price.Round(2)) {
				t.Fatalf("price %s has more than two decimals", p.Price)
			}
		}
	})
}

// Averaged over many seeds, an up-biased walk ends higher than it starts
// and a down-biased one lower.
func TestGenerator_BiasDirection(t *testing.T) {
	drift := func(bias model.Bias) float64 {
		var total float64
		for seed := uint64(0); seed < 200; seed++ {
			s, err := pricing.NewGenerator(seed).GenerateWithBias(decimal.NewFromInt(100), 30, bias)
			require.NoError(t, err)
			first := s.Points[0].Price.InexactFloat64()
			last := s.Points[len(s.Points)-1].Price.InexactFloat64()
			total += last - first
		}
		return total / 200
	}

	assert.Greater(t, drift(model.BiasUp), 0.0)
	assert.Less(t, drift(model.BiasDown), 0.0)
	assert.Greater(t, drift(model.BiasNeutral), 0.0)
}
