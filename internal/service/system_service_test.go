package service_test

import (
	"context"
	"testing"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/version"
)

func TestSystemService(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		if err := testutil.NewTestSystemService(t, db).CheckHealth(); err != nil {
			t.Errorf("CheckHealth() returned unexpected error: %v", err)
		}
	})

	t.Run("version reports a fully migrated schema", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewSystemService(db, map[string]bool{"summary": true})

		info, err := svc.CheckVersion(ctx)
		if err != nil {
			t.Fatalf("CheckVersion() returned unexpected error: %v", err)
		}
		if info.AppVersion != version.Version {
			t.Errorf("Expected app version %s, got %s", version.Version, info.AppVersion)
		}
		if info.DbVersion != "3" {
			t.Errorf("Expected db version 3, got %s", info.DbVersion)
		}
		if info.MigrationNeeded || info.MigrationMessage != nil {
			t.Errorf("Expected no pending migration, got %+v", info)
		}
		if !info.Features["summary"] {
			t.Errorf("Expected features to be reported, got %v", info.Features)
		}
	})

	t.Run("closed database is unhealthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSystemService(t, db)
		db.Close()

		if err := svc.CheckHealth(); err == nil {
			t.Error("Expected error for closed database")
		}
	})
}
