package request

import "github.com/shopspring/decimal"

// OrderRequest is the body of POST /api/portfolio/{uuid}/orders.
type OrderRequest struct {
	Type   string  `json:"type"`
	Symbol string  `json:"symbol"`
	Shares float64 `json:"shares"`
}

// AmountRequest is the body of the savings endpoints. Amount accepts a JSON
// number or a quoted decimal string.
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
