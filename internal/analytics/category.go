package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// Spending categories, in report order.
const (
	CategoryInvestments   = "Investments"
	CategorySavings       = "Savings"
	CategorySubscriptions = "Subscriptions"
	CategoryOther         = "Other"
)

var categoryOrder = []string{CategoryInvestments, CategorySavings, CategorySubscriptions, CategoryOther}

// Category is the outflow total for one spending category.
type Category struct {
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

func categorize(t model.TransactionType) string {
	switch t {
	case model.TransactionBuy:
		return CategoryInvestments
	case model.TransactionSavingsDeposit:
		return CategorySavings
	case model.TransactionPremiumUpgrade:
		return CategorySubscriptions
	default:
		return CategoryOther
	}
}

// CategoryBreakdown groups negative-amount ledger entries by category.
// Empty categories are omitted.
func CategoryBreakdown(ledger []model.Transaction) []Category {
	totals := make(map[string]decimal.Decimal, len(categoryOrder))
	grand := decimal.Zero
	for _, t := range ledger {
		if !t.Amount.IsNegative() {
			continue
		}
		name := categorize(t.Type)
		totals[name] = totals[name].Add(t.Amount.Abs())
		grand = grand.Add(t.Amount.Abs())
	}

	out := make([]Category, 0, len(totals))
	for _, name := range categoryOrder {
		total, ok := totals[name]
		if !ok {
			continue
		}
		out = append(out, Category{Name: name, Total: total, Percentage: percent(total, grand)})
	}
	return out
}
