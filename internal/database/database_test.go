package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techiepharm/FinSim-sub001/internal/database"
)

func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "finsim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	version, err := database.Migrate(ctx, db, database.SQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Re-running is a no-op.
	version, err = database.Migrate(ctx, db, database.SQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	got, err := database.SchemaVersion(ctx, db, database.SQLite)
	require.NoError(t, err)
	assert.Equal(t, version, got)

	for _, table := range []string{"portfolio", "holding", "transaction"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}

	assert.NoError(t, database.HealthCheck(ctx, db))
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.Migrate(context.Background(), db, database.Dialect("oracle"))
	assert.Error(t, err)
}
