package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// SuggestionLookback is how many points back the trade suggestion compares against.
const SuggestionLookback = 10

// Signal is a per-instrument trade bucket.
type Signal string

const (
	SignalStrongBuy       Signal = "Strong Buy"
	SignalBuy             Signal = "Buy"
	SignalHold            Signal = "Hold"
	SignalConsiderSelling Signal = "Consider Selling"
	SignalSell            Signal = "Sell"
)

var rationales = map[Signal]string{
	SignalStrongBuy:       "Strong upward momentum over the last 10 days.",
	SignalBuy:             "Moderate upward trend over the last 10 days.",
	SignalHold:            "Price has been stable over the last 10 days.",
	SignalConsiderSelling: "Moderate downward trend over the last 10 days.",
	SignalSell:            "Significant decline over the last 10 days.",
}

// Suggestion is the trade signal for one instrument.
type Suggestion struct {
	Symbol       string          `json:"symbol"`
	Signal       Signal          `json:"signal"`
	ChangePct    float64         `json:"changePercent"`
	FromPrice    decimal.Decimal `json:"fromPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Rationale    string          `json:"rationale"`
}

var (
	fivePct   = decimal.NewFromInt(5)
	twoPct    = decimal.NewFromInt(2)
	minusTwo  = decimal.NewFromInt(-2)
	minusFive = decimal.NewFromInt(-5)
)

// SuggestTrade buckets the change between the last point and the point
// SuggestionLookback entries before it, or the first point for shorter
// series. An empty series is a Hold.
func SuggestTrade(s model.PriceSeries) Suggestion {
	out := Suggestion{Symbol: s.Symbol, Signal: SignalHold, FromPrice: decimal.Zero, CurrentPrice: decimal.Zero}
	n := len(s.Points)
	if n == 0 {
		out.Rationale = rationales[SignalHold]
		return out
	}
	from := s.Points[max(0, n-1-SuggestionLookback)].Price
	last := s.Points[n-1].Price
	out.FromPrice, out.CurrentPrice = from, last

	change := decimal.Zero
	if !from.IsZero() {
		change = last.Sub(from).Div(from).Mul(hundred)
	}
	switch {
	case change.GreaterThan(fivePct):
		out.Signal = SignalStrongBuy
	case change.GreaterThan(twoPct):
		out.Signal = SignalBuy
	case change.GreaterThanOrEqual(minusTwo):
		out.Signal = SignalHold
	case change.GreaterThan(minusFive):
		out.Signal = SignalConsiderSelling
	default:
		out.Signal = SignalSell
	}
	out.ChangePct = change.Round(2).InexactFloat64()
	out.Rationale = rationales[out.Signal]
	return out
}
