package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/api/request"
	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
)

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name       string
		req        request.OrderRequest
		wantFields []string
	}{
		{"valid buy", request.OrderRequest{Type: "BUY", Symbol: "NEXO", Shares: 2}, nil},
		{"lower-case sell", request.OrderRequest{Type: "sell", Symbol: "NEXO", Shares: 1}, nil},
		{"missing everything", request.OrderRequest{}, []string{"type", "symbol", "shares"}},
		{"unknown type", request.OrderRequest{Type: "HOLD", Symbol: "NEXO", Shares: 1}, []string{"type"}},
		{"fractional shares", request.OrderRequest{Type: "BUY", Symbol: "NEXO", Shares: 1.5}, []string{"shares"}},
		{"negative shares", request.OrderRequest{Type: "BUY", Symbol: "NEXO", Shares: -2}, []string{"shares"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrder(tt.req)
			assertFields(t, err, tt.wantFields)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	tests := []struct {
		name       string
		req        request.AmountRequest
		wantFields []string
	}{
		{"valid", request.AmountRequest{Amount: amount("12.50")}, nil},
		{"missing", request.AmountRequest{}, []string{"amount"}},
		{"zero", request.AmountRequest{Amount: amount("0")}, []string{"amount"}},
		{"negative", request.AmountRequest{Amount: amount("-1")}, []string{"amount"}},
		{"sub-cent", request.AmountRequest{Amount: amount("1.005")}, []string{"amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.req)
			assertFields(t, err, tt.wantFields)
		})
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	if err := ValidateUUID("not-a-uuid"); !errors.Is(err, apperrors.ErrInvalidUUID) {
		t.Errorf("Expected ErrInvalidUUID, got %v", err)
	}
}

func assertFields(t *testing.T, err error, want []string) {
	t.Helper()

	if len(want) == 0 {
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		return
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *Error, got %T (%v)", err, err)
	}
	if len(verr.Fields) != len(want) {
		t.Errorf("Expected %d field errors, got %v", len(want), verr.Fields)
	}
	for _, field := range want {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Expected error for field %q, got %v", field, verr.Fields)
		}
	}
}
