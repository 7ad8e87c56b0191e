package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// DefaultMonthsBack is the window used when a caller passes monthsBack <= 0.
const DefaultMonthsBack = 6

// MonthFlow is the cash in and out of one calendar month.
type MonthFlow struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Period summarises ledger cash flow over a trailing window of months.
type Period struct {
	Months        []MonthFlow     `json:"months"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetFlow       decimal.Decimal `json:"netFlow"`
	SavingsRate   float64         `json:"savingsRate"`
}

// PeriodMetrics partitions the ledger into the monthsBack calendar months
// ending with the month containing now, oldest first. Entries outside the
// window are ignored. Months are computed in UTC.
func PeriodMetrics(ledger []model.Transaction, monthsBack int, now time.Time) Period {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := current.AddDate(0, -(monthsBack - 1), 0)

	out := Period{
		Months:        make([]MonthFlow, monthsBack),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	index := make(map[string]int, monthsBack)
	for i := range monthsBack {
		key := start.AddDate(0, i, 0).Format("2006-01")
		out.Months[i] = MonthFlow{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
		index[key] = i
	}

	for _, t := range ledger {
		i, ok := index[t.Timestamp.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		switch {
		case t.Amount.IsPositive():
			out.Months[i].Income = out.Months[i].Income.Add(t.Amount)
			out.TotalIncome = out.TotalIncome.Add(t.Amount)
		case t.Amount.IsNegative():
			out.Months[i].Expenses = out.Months[i].Expenses.Add(t.Amount.Abs())
			out.TotalExpenses = out.TotalExpenses.Add(t.Amount.Abs())
		}
	}

	out.NetFlow = out.TotalIncome.Sub(out.TotalExpenses)
	out.SavingsRate = percent(out.NetFlow, out.TotalIncome)
	return out
}
