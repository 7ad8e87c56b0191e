// Package analytics derives read-only views of a portfolio and its ledger:
// valuation, period cash flow, spending categories, risk and advice.
// Nothing here mutates its inputs, so every function is safe to call at any rate.
package analytics

import "github.com/shopspring/decimal"

// Policy holds the thresholds used for risk classification and recommendations.
type Policy struct {
	HighRiskRatio     decimal.Decimal
	ModerateRiskRatio decimal.Decimal
	ExcessCashRatio   decimal.Decimal
	BuySellMultiple   int64
	SavingsRatio      decimal.Decimal
	StrongGainRatio   decimal.Decimal
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		HighRiskRatio:     decimal.RequireFromString("0.8"),
		ModerateRiskRatio: decimal.RequireFromString("0.6"),
		ExcessCashRatio:   decimal.RequireFromString("0.3"),
		BuySellMultiple:   3,
		SavingsRatio:      decimal.RequireFromString("0.2"),
		StrongGainRatio:   decimal.RequireFromString("0.1"),
	}
}

var hundred = decimal.NewFromInt(100)

// percent returns num / den × 100 rounded to 2dp, or 0 when den is zero.
func percent(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).Mul(hundred).Round(2).InexactFloat64()
}

// ratio returns num / den, or zero when den is zero.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
