package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bias describes the direction a simulated instrument tends to move.
type Bias string

const (
	BiasNeutral  Bias = "neutral"
	BiasUp       Bias = "up"
	BiasDown     Bias = "down"
	BiasVolatile Bias = "volatile"
)

// Valid reports whether b is a known bias. The empty bias counts as neutral.
func (b Bias) Valid() bool {
	switch b {
	case "", BiasNeutral, BiasUp, BiasDown, BiasVolatile:
		return true
	}
	return false
}

// Instrument is a tradable symbol from the catalog.
type Instrument struct {
	Symbol    string          `json:"symbol" yaml:"symbol"`
	Name      string          `json:"name" yaml:"name"`
	Sector    string          `json:"sector" yaml:"sector"`
	BasePrice decimal.Decimal `json:"basePrice" yaml:"-"`
	Bias      Bias            `json:"bias" yaml:"bias"`
}

// PricePoint is one day of a simulated series.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// PriceSeries is an ordered price history, oldest point first.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Last returns the most recent point. ok is false for an empty series.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Quote pairs an instrument with its current simulated price.
type Quote struct {
	Instrument
	Price decimal.Decimal `json:"price"`
}
