package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/testutil"
)

// TestReconcileService_ReconcileAll tests cached position repair.
//
// WHY: Cached positions are derived data. The reconcile job is the safety net that
// brings them back in line with the ledger after manual edits or partial failures.
func TestReconcileService_ReconcileAll(t *testing.T) {
	ctx := context.Background()

	t.Run("reports nothing on an empty store", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconcileService(t, db)

		report, err := svc.ReconcileAll(ctx)
		if err != nil {
			t.Fatalf("ReconcileAll() returned unexpected error: %v", err)
		}

		if report.Checked != 0 || report.Drifted != 0 || report.Failed != 0 {
			t.Errorf("Expected empty report, got %+v", report)
		}
	})

	t.Run("repairs drifted positions and leaves correct ones alone", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconcileService(t, db)
		assetRepo := repository.NewAssetRepository(db)
		user := testutil.NewUser().Build(t, db)

		correct := testutil.NewAsset(user.ID).WithPosition("2", "5", "10").Build(t, db)
		testutil.NewTransaction(correct.ID).Buy("2", "10").Build(t, db)

		drifted := testutil.NewAsset(user.ID).WithPosition("99", "1", "99").Build(t, db)
		testutil.NewTransaction(drifted.ID).Buy("4", "40").WithTimestamp(time.Now().Add(-time.Hour)).Build(t, db)
		testutil.NewTransaction(drifted.ID).Sell("1").Build(t, db)

		empty := testutil.NewAsset(user.ID).WithPosition("1", "1", "1").Build(t, db)

		// Execute
		report, err := svc.ReconcileAll(ctx)

		// Assert
		if err != nil {
			t.Fatalf("ReconcileAll() returned unexpected error: %v", err)
		}
		if report.Checked != 3 || report.Drifted != 2 || report.Failed != 0 {
			t.Errorf("Expected 3 checked and 2 drifted, got %+v", report)
		}

		got, err := assetRepo.GetAssetByID(ctx, drifted.ID)
		if err != nil {
			t.Fatalf("GetAssetByID() returned unexpected error: %v", err)
		}
		if !got.Quantity.Equal(dec("3")) || !got.TotalCost.Equal(dec("30")) || !got.AverageCost.Equal(dec("10")) {
			t.Errorf("Expected 3 units for 30, got %+v", got.Position)
		}

		got, err = assetRepo.GetAssetByID(ctx, empty.ID)
		if err != nil {
			t.Fatalf("GetAssetByID() returned unexpected error: %v", err)
		}
		if !got.Quantity.IsZero() || !got.TotalCost.IsZero() {
			t.Errorf("Expected zero position, got %+v", got.Position)
		}

		// A second run finds nothing to repair
		report, err = svc.ReconcileAll(ctx)
		if err != nil {
			t.Fatalf("ReconcileAll() returned unexpected error: %v", err)
		}
		if report.Drifted != 0 {
			t.Errorf("Expected no drift on second run, got %+v", report)
		}
	})

	t.Run("counts ledgers the calculator rejects", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReconcileService(t, db)
		user := testutil.NewUser().Build(t, db)

		broken := testutil.NewAsset(user.ID).WithPosition("0", "0", "0").Build(t, db)
		testutil.NewTransaction(broken.ID).Sell("5").Build(t, db)
		testutil.NewAsset(user.ID).Build(t, db)

		// Execute
		report, err := svc.ReconcileAll(ctx)

		// Assert
		if err != nil {
			t.Fatalf("ReconcileAll() returned unexpected error: %v", err)
		}
		if report.Failed != 1 || report.Checked != 1 {
			t.Errorf("Expected 1 failed and 1 checked, got %+v", report)
		}
	})
}

func TestReconcileService_Schedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestReconcileService(t, db)
	c := cron.New()

	if _, err := svc.Schedule(c, "@every 1h", zerolog.Nop()); err != nil {
		t.Fatalf("Schedule() returned unexpected error: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("Expected 1 cron entry, got %d", len(c.Entries()))
	}

	if _, err := svc.Schedule(c, "whenever", zerolog.Nop()); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}
