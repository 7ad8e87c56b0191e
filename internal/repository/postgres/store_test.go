package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/techiepharm/FinSim-sub001/internal/database"
	"github.com/techiepharm/FinSim-sub001/internal/repository"
	"github.com/techiepharm/FinSim-sub001/internal/repository/postgres"
	"github.com/techiepharm/FinSim-sub001/internal/repository/storetest"
)

// setupTestDB starts a PostgreSQL container and applies the goose migrations.
func setupTestDB(t *testing.T) func(t *testing.T) repository.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("finsim"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = database.Migrate(ctx, database.PoolDB(pool), database.Postgres)
	require.NoError(t, err, "failed to apply migrations")

	// Portfolio IDs are random UUIDs, so subtests can share one database.
	return func(t *testing.T) repository.Store {
		return postgres.NewStore(pool)
	}
}

func TestStore(t *testing.T) {
	storetest.Run(t, setupTestDB(t))
}
