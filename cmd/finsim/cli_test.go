package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techiepharm/FinSim-sub001/internal/apperrors"
)

// run executes one finsim invocation against dbPath with a fixed seed and
// returns what it printed.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	c := &cli{}
	root := c.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", dbPath, "--seed", "7"}, args...))

	err := root.Execute()
	c.close()
	return out.String(), err
}

func TestCLI_TradeAndInspect(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finsim.db")

	out, err := run(t, dbPath, "buy", "nexo", "2")
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if !strings.Contains(out, "BUY") || !strings.Contains(out, "NEXO") {
		t.Errorf("Expected a BUY receipt for NEXO, got:\n%s", out)
	}
	if !strings.Contains(out, "»") {
		t.Errorf("Expected an advisory line, got:\n%s", out)
	}

	t.Run("portfolio survives between invocations", func(t *testing.T) {
		out, err := run(t, dbPath, "portfolio")
		if err != nil {
			t.Fatalf("portfolio failed: %v", err)
		}
		if !strings.Contains(out, "NEXO") {
			t.Errorf("Expected NEXO holding, got:\n%s", out)
		}
	})

	t.Run("ledger lists the buy", func(t *testing.T) {
		out, err := run(t, dbPath, "ledger")
		if err != nil {
			t.Fatalf("ledger failed: %v", err)
		}
		if strings.Count(out, "BUY") != 1 {
			t.Errorf("Expected one BUY row, got:\n%s", out)
		}
	})

	t.Run("selling more than held is rejected", func(t *testing.T) {
		_, err := run(t, dbPath, "sell", "NEXO", "5")
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Errorf("Expected ErrInsufficientShares, got %v", err)
		}
	})

	t.Run("quiet suppresses advisories", func(t *testing.T) {
		out, err := run(t, dbPath, "-q", "deposit", "10")
		if err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
		if strings.Contains(out, "»") {
			t.Errorf("Expected no advisory output, got:\n%s", out)
		}
	})
}

func TestCLI_Commands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finsim.db")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"migrate", []string{"migrate"}, "schema at version 1"},
		{"market", []string{"market"}, "MKTS"},
		{"empty ledger", []string{"ledger"}, "No transactions yet."},
		{"analytics", []string{"analytics", "--months", "3"}, "Risk"},
		{"suggest", []string{"suggest", "qbit"}, "QBIT:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, dbPath, tt.args...)
			if err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestCLI_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finsim.db")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad portfolio id", []string{"-p", "not-a-uuid", "portfolio"}, apperrors.ErrInvalidUUID},
		{"unknown symbol", []string{"buy", "ZZZZ", "1"}, apperrors.ErrUnknownSymbol},
		{"withdraw more than savings", []string{"withdraw", "5"}, apperrors.ErrInsufficientFunds},
		{"sub-cent deposit", []string{"deposit", "0.001"}, apperrors.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dbPath, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("shares must be whole", func(t *testing.T) {
		if _, err := run(t, dbPath, "buy", "NEXO", "1.5"); err == nil {
			t.Error("Expected an error for fractional shares")
		}
	})
}
