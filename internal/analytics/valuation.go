package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Position is one holding marked to market.
type Position struct {
	Symbol       string          `json:"symbol"`
	Shares       int64           `json:"shares"`
	AverageCost  decimal.Decimal `json:"averageCost"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	MarketValue  decimal.Decimal `json:"marketValue"`
	Gain         decimal.Decimal `json:"gain"`
	GainPercent  float64         `json:"gainPercent"`
	PriceUnknown bool            `json:"priceUnknown,omitempty"`
}

// Valuation is a point-in-time mark of a portfolio.
type Valuation struct {
	Cash             decimal.Decimal `json:"cash"`
	Savings          decimal.Decimal `json:"savings"`
	HoldingsValue    decimal.Decimal `json:"holdingsValue"`
	CostBasis        decimal.Decimal `json:"costBasis"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	TotalGain        decimal.Decimal `json:"totalGain"`
	TotalGainPercent float64         `json:"totalGainPercent"`
	Positions        []Position      `json:"positions"`
}

// Valuate marks every holding at prices[symbol]. A holding without a price
// is carried at its average cost so it contributes no gain.
func Valuate(p model.Portfolio, prices map[string]decimal.Decimal) Valuation {
	v := Valuation{
		Cash:          p.Cash,
		Savings:       p.Savings,
		HoldingsValue: decimal.Zero,
		CostBasis:     p.CostBasis(),
		TotalGain:     decimal.Zero,
		Positions:     make([]Position, 0, len(p.Holdings)),
	}

	for _, h := range p.SortedHoldings() {
		price, ok := prices[h.Symbol]
		if !ok {
			price = h.AverageCost
		}
		shares := decimal.NewFromInt(h.Shares)
		cost := h.CostBasis()
		value := shares.Mul(price)
		gain := shares.Mul(price.Sub(h.AverageCost))

		v.Positions = append(v.Positions, Position{
			Symbol:       h.Symbol,
			Shares:       h.Shares,
			AverageCost:  h.AverageCost,
			CurrentPrice: price,
			CostBasis:    cost.Round(2),
			MarketValue:  value.Round(2),
			Gain:         gain.Round(2),
			GainPercent:  percent(gain, cost),
			PriceUnknown: !ok,
		})
		v.HoldingsValue = v.HoldingsValue.Add(value)
		v.TotalGain = v.TotalGain.Add(gain)
	}

	v.TotalValue = v.Cash.Add(v.HoldingsValue)
	v.TotalGainPercent = percent(v.TotalGain, v.TotalValue.Sub(v.TotalGain))

	v.HoldingsValue = v.HoldingsValue.Round(2)
	v.CostBasis = v.CostBasis.Round(2)
	v.TotalValue = v.TotalValue.Round(2)
	v.TotalGain = v.TotalGain.Round(2)
	return v
}
