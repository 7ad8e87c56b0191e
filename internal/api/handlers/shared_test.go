package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
)

// TestRespondJSON tests the respondJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// respondJSON is unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "success"}

		respondJSON(w, 200, data)

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, 204, nil)

		if w.Code != 204 {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		data := map[string]any{
			"channel": make(chan int),
		}

		// Should not panic, just log the error
		respondJSON(w, 200, data)

		// Status should still be set even if encoding fails
		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		// Content-Type should still be set
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type to be set")
		}
	})

	t.Run("encodes valid data successfully", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{
			"name":  "test",
			"value": "data",
		}

		respondJSON(w, 200, data)

		if w.Body.Len() == 0 {
			t.Error("Expected response body to contain JSON data")
		}

		body := w.Body.String()
		if body == "" {
			t.Error("Expected non-empty response body")
		}
	})
}

func TestParseJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"NEXO"}`))

		got, err := parseJSON[body](req)
		if err != nil {
			t.Fatalf("parseJSON() returned unexpected error: %v", err)
		}
		if got.Name != "NEXO" {
			t.Errorf("Expected name NEXO, got %s", got.Name)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"NEXO","extra":1}`))

		if _, err := parseJSON[body](req); err == nil {
			t.Error("Expected error for unknown field, got nil")
		}
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		if _, err := parseJSON[body](req); err == nil {
			t.Error("Expected error for empty body, got nil")
		}
	})
}

// TestRespondServiceError tests the mapping from domain errors to HTTP statuses.
//
// WHY: Clients branch on the status code. A wrapped sentinel must map the same
// way as the bare one.
func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"insufficient funds", &apperrors.OrderError{Kind: apperrors.ErrInsufficientFunds, Requested: decimal.NewFromInt(2), Available: decimal.NewFromInt(1)}, http.StatusUnprocessableEntity},
		{"insufficient shares", &apperrors.OrderError{Kind: apperrors.ErrInsufficientShares, Symbol: "NEXO"}, http.StatusUnprocessableEntity},
		{"invalid quantity", fmt.Errorf("%w: 0", apperrors.ErrInvalidQuantity), http.StatusBadRequest},
		{"invalid amount", apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid order type", apperrors.ErrInvalidOrderType, http.StatusBadRequest},
		{"unknown symbol", fmt.Errorf("%w: ZZZZ", apperrors.ErrUnknownSymbol), http.StatusNotFound},
		{"persistence failure", fmt.Errorf("%w: %w", apperrors.ErrPersistenceFailure, errors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondServiceError(w, tt.err, "operation failed")

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}
