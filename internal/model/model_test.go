package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestReceipt_MarshalJSON(t *testing.T) {
	tx := Transaction{
		ID:        "t3",
		Timestamp: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		Type:      TransactionSell,
		Symbol:    "NEXO",
		Shares:    5,
		Price:     decimal.NewFromInt(130),
		Amount:    decimal.NewFromInt(650),
	}

	body, err := json.Marshal(NewReceipt(tx, decimal.NewFromInt(1090)))
	if err != nil {
		t.Fatalf("Marshal() returned unexpected error: %v", err)
	}

	got := string(body)
	for _, want := range []string{
		`"price":"130.00"`,
		`"total":"650.00"`,
		`"fee":"0.00"`,
		`"cashBalance":"1090.00"`,
		`"transactionId":"t3"`,
		`"shares":5`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}
	if strings.Count(got, `"fee"`) != 1 {
		t.Errorf("Expected one fee field, got %s", got)
	}

	var back Receipt
	if err := json.Unmarshal(body, &back); err != nil {
		t.Fatalf("Unmarshal() returned unexpected error: %v", err)
	}
	if !back.Total.Equal(decimal.NewFromInt(650)) {
		t.Errorf("Expected total 650, got %s", back.Total)
	}
}

func TestTransactionType_Valid(t *testing.T) {
	for _, typ := range []TransactionType{TransactionBuy, TransactionSell, TransactionSavingsDeposit, TransactionSavingsWithdrawal, TransactionPremiumUpgrade} {
		if !typ.Valid() {
			t.Errorf("Expected %s to be valid", typ)
		}
	}
	if TransactionType("DIVIDEND").Valid() {
		t.Error("Expected DIVIDEND to be invalid")
	}
}

func TestPortfolio_CostBasis(t *testing.T) {
	p := NewPortfolio("p1", decimal.NewFromInt(440))
	p.Holdings["NEXO"] = Holding{Symbol: "NEXO", Shares: 5, AverageCost: decimal.NewFromInt(112)}
	p.Holdings["QBIT"] = Holding{Symbol: "QBIT", Shares: 2, AverageCost: decimal.RequireFromString("50.25")}

	if got := p.CostBasis(); !got.Equal(decimal.RequireFromString("660.5")) {
		t.Errorf("Expected cost basis 660.50, got %s", got)
	}
}
