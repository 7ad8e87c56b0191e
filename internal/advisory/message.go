package advisory

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/model"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = money.USD

// Message is the human-readable form of an advisory event.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FormatMoney renders amount in the currency's display format, e.g. "$1,090.00".
func FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Compose builds the message shown to the trader for ev.
func Compose(ev model.AdvisoryEvent, currency string) Message {
	amount := FormatMoney(ev.Amount, currency)
	balance := FormatMoney(ev.Balance, currency)

	switch ev.Type {
	case model.TransactionBuy:
		return Message{
			Title: "Order filled",
			Body:  fmt.Sprintf("Bought %s for %s. Cash balance is now %s.", ev.Symbol, amount, balance),
		}
	case model.TransactionSell:
		return Message{
			Title: "Order filled",
			Body:  fmt.Sprintf("Sold %s for %s. Cash balance is now %s.", ev.Symbol, amount, balance),
		}
	case model.TransactionSavingsDeposit:
		return Message{
			Title: "Savings deposit",
			Body:  fmt.Sprintf("Moved %s into savings. Cash balance is now %s.", amount, balance),
		}
	case model.TransactionSavingsWithdrawal:
		return Message{
			Title: "Savings withdrawal",
			Body:  fmt.Sprintf("Moved %s out of savings. Cash balance is now %s.", amount, balance),
		}
	case model.TransactionPremiumUpgrade:
		return Message{
			Title: "Premium unlocked",
			Body:  fmt.Sprintf("Premium upgrade charged %s. Cash balance is now %s.", amount, balance),
		}
	default:
		return Message{
			Title: "Transaction recorded",
			Body:  fmt.Sprintf("%s of %s. Cash balance is now %s.", ev.Type, amount, balance),
		}
	}
}
