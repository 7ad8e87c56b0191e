package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Priority is the caller-facing urgency of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Aggregates is everything the recommendation rules look at.
type Aggregates struct {
	Cash       decimal.Decimal
	Savings    decimal.Decimal
	TotalValue decimal.Decimal
	Invested   decimal.Decimal
	Gain       decimal.Decimal
	BuyCount   int64
	SellCount  int64
}

// NewAggregates combines a valuation with trade counts from the ledger.
func NewAggregates(v Valuation, ledger []model.Transaction) Aggregates {
	a := Aggregates{
		Cash:       v.Cash,
		Savings:    v.Savings,
		TotalValue: v.TotalValue,
		Invested:   v.CostBasis,
		Gain:       v.TotalGain,
	}
	for _, t := range ledger {
		switch t.Type {
		case model.TransactionBuy:
			a.BuyCount++
		case model.TransactionSell:
			a.SellCount++
		}
	}
	return a
}

// Recommendation is one piece of advice.
type Recommendation struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Rule fires its recommendation when Applies returns true.
type Rule struct {
	Recommendation
	Applies func(a Aggregates, p Policy) bool
}

// Rules is the ordered rule table evaluated by Recommend.
var Rules = []Rule{
	{
		Recommendation: Recommendation{
			ID:       "invest-excess-cash",
			Title:    "Consider investing excess cash",
			Message:  "A large share of your portfolio is sitting in cash. Putting some of it to work could improve long-term returns.",
			Priority: PriorityMedium,
		},
		Applies: func(a Aggregates, p Policy) bool {
			return !a.TotalValue.IsZero() && a.Cash.Div(a.TotalValue).GreaterThan(p.ExcessCashRatio)
		},
	},
	{
		Recommendation: Recommendation{
			ID:       "review-balance",
			Title:    "Review your trading balance",
			Message:  "You buy far more often than you sell. Review whether some positions have met their goals.",
			Priority: PriorityLow,
		},
		Applies: func(a Aggregates, p Policy) bool {
			return a.BuyCount > p.BuySellMultiple*a.SellCount
		},
	},
	{
		Recommendation: Recommendation{
			ID:       "build-emergency-savings",
			Title:    "Build emergency savings",
			Message:  "Your savings are small compared to what you have invested. Setting aside a cushion protects you from selling at a bad time.",
			Priority: PriorityHigh,
		},
		Applies: func(a Aggregates, p Policy) bool {
			return a.Savings.LessThan(p.SavingsRatio.Mul(a.Invested))
		},
	},
	{
		Recommendation: Recommendation{
			ID:       "strong-performance",
			Title:    "Strong performance",
			Message:  "Your investments are up more than expected. Consider taking some profit or rebalancing.",
			Priority: PriorityLow,
		},
		Applies: func(a Aggregates, p Policy) bool {
			return a.Gain.GreaterThan(p.StrongGainRatio.Mul(a.Invested))
		},
	},
}

// Recommend evaluates rules in order and returns every one that fires.
func Recommend(a Aggregates, p Policy, rules []Rule) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		if r.Applies(a, p) {
			out = append(out, r.Recommendation)
		}
	}
	return out
}
