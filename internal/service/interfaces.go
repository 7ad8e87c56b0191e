package service

import (
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// PriceSource is the read side of the simulated market.
type PriceSource interface {
	CurrentPrice(symbol string) (decimal.Decimal, error)
	Series(symbol string) (model.PriceSeries, error)
	Prices() map[string]decimal.Decimal
}

// Advisor receives an event after every committed transaction. It must not block.
type Advisor interface {
	Dispatch(ev model.AdvisoryEvent)
}
