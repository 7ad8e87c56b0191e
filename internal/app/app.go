// Package app assembles the store, market and advisory pipeline from
// configuration. Both the HTTP server and the CLI start from here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/techiepharm/FinSim-sub001/internal/advisory"
	"github.com/techiepharm/FinSim-sub001/internal/catalog"
	"github.com/techiepharm/FinSim-sub001/internal/config"
	"github.com/techiepharm/FinSim-sub001/internal/database"
	"github.com/techiepharm/FinSim-sub001/internal/metrics"
	"github.com/techiepharm/FinSim-sub001/internal/model"
	"github.com/techiepharm/FinSim-sub001/internal/pricing"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
	"github.com/techiepharm/FinSim-sub001/internal/repository/postgres"
)

// Backend is an opened, migrated store together with the SQL handle the
// system service reports on.
type Backend struct {
	Store   repository.Store
	DB      *sql.DB // nil for the memory backend
	Dialect database.Dialect
	Name    string

	closeFn func()
}

// Close releases the underlying connections.
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// OpenBackend opens the configured store and applies pending migrations.
func OpenBackend(ctx context.Context, cfg config.DatabaseConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &Backend{Store: repository.NewMemoryStore(), Name: cfg.Backend}, nil

	case config.BackendPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		db := database.PoolDB(pool)
		closeFn := func() {
			db.Close()
			pool.Close()
		}
		version, err := database.Migrate(ctx, db, database.Postgres)
		if err != nil {
			closeFn()
			return nil, err
		}
		log.Printf("[database] postgres schema at version %d", version)
		return &Backend{Store: postgres.NewStore(pool), DB: db, Dialect: database.Postgres, Name: cfg.Backend, closeFn: closeFn}, nil

	case config.BackendSQLite:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := database.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		version, err := database.Migrate(ctx, db, database.SQLite)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Printf("[database] %s schema at version %d", cfg.Path, version)
		return &Backend{Store: repository.NewSQLiteStore(db), DB: db, Dialect: database.SQLite, Name: cfg.Backend, closeFn: func() { db.Close() }}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewMarket loads the catalog and generates the first set of series. m may be nil.
func NewMarket(ctx context.Context, cfg config.MarketConfig, m *metrics.Metrics) (*pricing.Market, error) {
	instruments, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	opts := []pricing.MarketOption{pricing.WithRefreshHook(m.RecordMarketRefresh)}
	if cfg.Seed != nil {
		opts = append(opts, pricing.WithSeed(*cfg.Seed))
	}
	market := pricing.NewMarket(instruments, cfg.SeriesLength, opts...)
	if err := market.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to generate initial prices: %w", err)
	}
	return market, nil
}

// NewDispatcher starts the advisory pipeline: every event is logged and, when
// hub is non-nil, pushed to websocket subscribers. Drops and failures are
// counted on m.
func NewDispatcher(currency string, hub *advisory.Hub, m *metrics.Metrics) *advisory.Dispatcher {
	notifiers := advisory.Multi{advisory.LogNotifier{Currency: currency}}
	if hub != nil {
		notifiers = append(notifiers, hub)
	}
	return advisory.NewDispatcher(notifiers,
		advisory.WithDropHook(func(model.AdvisoryEvent) { m.RecordAdvisoryDropped() }),
		advisory.WithErrorHook(func(model.AdvisoryEvent, error) { m.RecordAdvisoryFailed() }),
	)
}
