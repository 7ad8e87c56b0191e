package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a position in one instrument. A holding only exists while
// Shares > 0; a fully sold position is removed from the portfolio.
type Holding struct {
	Symbol      string          `json:"symbol"`
	Shares      int64           `json:"shares"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// CostBasis returns shares × average cost.
func (h Holding) CostBasis() decimal.Decimal {
	return h.AverageCost.Mul(decimal.NewFromInt(h.Shares))
}

// Portfolio is the cash-and-holdings aggregate for one trader.
// Holdings are keyed by symbol, at most one per symbol.
type Portfolio struct {
	ID        string             `json:"id"`
	Cash      decimal.Decimal    `json:"cash"`
	Savings   decimal.Decimal    `json:"savings"`
	Premium   bool               `json:"premium"`
	Holdings  map[string]Holding `json:"holdings"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewPortfolio returns an empty portfolio holding only the starting cash.
func NewPortfolio(id string, startingCash decimal.Decimal) Portfolio {
	return Portfolio{
		ID:       id,
		Cash:     startingCash,
		Savings:  decimal.Zero,
		Holdings: make(map[string]Holding),
	}
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original snapshot.
func (p Portfolio) Clone() Portfolio {
	c := p
	c.Holdings = make(map[string]Holding, len(p.Holdings))
	for k, v := range p.Holdings {
		c.Holdings[k] = v
	}
	return c
}

// SortedHoldings returns the holdings ordered by symbol.
func (p Portfolio) SortedHoldings() []Holding {
	out := make([]Holding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// CostBasis returns Σ shares × average cost across all holdings.
func (p Portfolio) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Holdings {
		total = total.Add(h.CostBasis())
	}
	return total
}
