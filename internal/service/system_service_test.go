package service_test

import (
	"context"
	"testing"

	"github.com/techiepharm/FinSim-sub001/internal/service"
	"github.com/techiepharm/FinSim-sub001/internal/testutil"
	"github.com/techiepharm/FinSim-sub001/internal/version"
)

// TestSystemService_CheckHealth tests the database health probe.
func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)

		if err := svc.CheckHealth(context.Background()); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)
		db.Close()

		if err := svc.CheckHealth(context.Background()); err == nil {
			t.Error("Expected error for closed database, got nil")
		}
	})

	t.Run("memory backend has no database", func(t *testing.T) {
		svc := service.NewSystemService(nil, "", "memory")

		if err := svc.CheckHealth(context.Background()); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})
}

// TestSystemService_GetVersionInfo tests version reporting.
//
// WHY: Operators use the schema version to confirm migrations ran on deploy.
func TestSystemService_GetVersionInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSystemService(t, db)

	info, err := svc.GetVersionInfo(context.Background())
	if err != nil {
		t.Fatalf("GetVersionInfo() returned unexpected error: %v", err)
	}
	if info.AppVersion != version.Version {
		t.Errorf("Expected app version %s, got %s", version.Version, info.AppVersion)
	}
	if info.DbVersion != "1" {
		t.Errorf("Expected schema version 1, got %s", info.DbVersion)
	}
	if info.Backend != "sqlite" {
		t.Errorf("Expected backend sqlite, got %s", info.Backend)
	}

	memory, _ := service.NewSystemService(nil, "", "memory").GetVersionInfo(context.Background())
	if memory.DbVersion != "n/a" {
		t.Errorf("Expected n/a schema version for memory backend, got %s", memory.DbVersion)
	}
}
