package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
	"github.com/techiepharm/FinSim-sub001/internal/database"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
	"github.com/techiepharm/FinSim-sub001/internal/service"
)

// FixedNow is the clock used by the test service constructors.
var FixedNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

// NewTestTradingService wires a TradingService over db with a fixed clock.
// Extra options are applied after the defaults.
func NewTestTradingService(t *testing.T, db *sql.DB, prices service.PriceSource, opts ...service.TradingOption) *service.TradingService {
	t.Helper()

	defaults := []service.TradingOption{
		service.WithClock(func() time.Time { return FixedNow }),
	}
	return service.NewTradingService(
		repository.NewSQLiteStore(db),
		prices,
		append(defaults, opts...)...,
	)
}

// NewTestAnalyticsService wires an AnalyticsService over db with the default
// policy, 1000.00 starting cash and a fixed clock.
func NewTestAnalyticsService(t *testing.T, db *sql.DB, prices service.PriceSource) *service.AnalyticsService {
	t.Helper()

	return service.NewAnalyticsService(
		repository.NewSQLiteStore(db),
		prices,
		analytics.DefaultPolicy(),
		decimal.NewFromInt(1000),
		func() time.Time { return FixedNow },
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, database.SQLite, "sqlite")
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// D parses a decimal literal and panics on malformed input.
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
