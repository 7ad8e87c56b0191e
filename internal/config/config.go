package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/techiepharm/FinSim-sub001/internal/analytics"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Trading  TradingConfig
	Policy   analytics.Policy
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Backend     string
	Path        string
	PostgresDSN string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig controls the simulated price feed.
type MarketConfig struct {
	CatalogPath     string // empty uses the built-in catalog
	SeriesLength    int
	Seed            *uint64 // nil means a fresh random walk on every refresh
	RefreshSchedule string  // cron spec; empty disables scheduled refreshes
}

// TradingConfig holds the money settings for new portfolios.
type TradingConfig struct {
	StartingCash decimal.Decimal
	PremiumPrice decimal.Decimal
	Currency     string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	p := &parser{}
	defaults := analytics.DefaultPolicy()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Backend:     getEnv("STORE_BACKEND", BackendSQLite),
			Path:        getEnv("DB_PATH", "./data/finsim.db"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Market: MarketConfig{
			CatalogPath:     getEnv("CATALOG_PATH", ""),
			SeriesLength:    p.int("PRICE_SERIES_LENGTH", 30),
			Seed:            p.optionalUint("PRICE_SEED"),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@daily"),
		},
		Trading: TradingConfig{
			StartingCash: p.decimal("STARTING_CASH", decimal.NewFromInt(1000)),
			PremiumPrice: p.decimal("PREMIUM_PRICE", decimal.RequireFromString("9.99")),
			Currency:     strings.ToUpper(getEnv("CURRENCY", "USD")),
		},
		Policy: analytics.Policy{
			HighRiskRatio:     p.decimal("RISK_HIGH_RATIO", defaults.HighRiskRatio),
			ModerateRiskRatio: p.decimal("RISK_MODERATE_RATIO", defaults.ModerateRiskRatio),
			ExcessCashRatio:   p.decimal("REC_EXCESS_CASH_RATIO", defaults.ExcessCashRatio),
			BuySellMultiple:   int64(p.int("REC_BUY_SELL_MULTIPLE", int(defaults.BuySellMultiple))),
			SavingsRatio:      p.decimal("REC_SAVINGS_RATIO", defaults.SavingsRatio),
			StrongGainRatio:   p.decimal("REC_STRONG_GAIN_RATIO", defaults.StrongGainRatio),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.validate(); err != nil {
		p.errs = append(p.errs, err)
	}
	if len(p.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(p.errs...))
	}
	return config, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.Database.Backend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if c.Database.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when STORE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of sqlite, memory, postgres; got %q", c.Database.Backend))
	}
	if c.Market.SeriesLength <= 0 {
		errs = append(errs, errors.New("PRICE_SERIES_LENGTH must be positive"))
	}
	if c.Trading.StartingCash.IsNegative() {
		errs = append(errs, errors.New("STARTING_CASH must not be negative"))
	}
	if !c.Trading.PremiumPrice.IsPositive() {
		errs = append(errs, errors.New("PREMIUM_PRICE must be positive"))
	}
	if c.Policy.ModerateRiskRatio.GreaterThan(c.Policy.HighRiskRatio) {
		errs = append(errs, errors.New("RISK_MODERATE_RATIO must not exceed RISK_HIGH_RATIO"))
	}
	return errors.Join(errs...)
}

// parser collects every malformed value so Load can report them together.
type parser struct {
	errs []error
}

func (p *parser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (p *parser) optionalUint(key string) *uint64 {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return nil
	}
	return &v
}

func (p *parser) decimal(key string, def decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
