package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/techiepharm/FinSim-sub001/internal/database"
)

// SetupTestDB creates an in-memory SQLite database with the production
// migrations applied. The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// database.Open pins the pool to one connection, so the in-memory
	// database lives as long as db does.
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	if _, err := database.Migrate(context.Background(), db, database.SQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
