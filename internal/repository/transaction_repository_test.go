package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/testutil"
)

// TestTransactionRepository_GetTransactions tests ledger ordering.
//
// WHY: Sells are priced at the running average, so the cost basis depends on the
// order the ledger is folded in. Backdated rows must sort by timestamp, and ties must
// break by insertion.
func TestTransactionRepository_GetTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice for an empty ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)

		txs, err := repo.GetTransactions(ctx, asset.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}

		if txs == nil || len(txs) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", txs)
		}
	})

	t.Run("orders by timestamp then insertion", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)

		day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		late := testutil.NewTransaction(asset.ID).Buy("1", "1").WithTimestamp(day.AddDate(0, 0, 2)).Build(t, db)
		early := testutil.NewTransaction(asset.ID).Buy("2", "2").WithTimestamp(day).Build(t, db)
		tieFirst := testutil.NewTransaction(asset.ID).Buy("3", "3").WithTimestamp(day.AddDate(0, 0, 1)).Build(t, db)
		tieSecond := testutil.NewTransaction(asset.ID).Sell("1").WithTimestamp(day.AddDate(0, 0, 1)).Build(t, db)

		// Execute
		txs, err := repo.GetTransactions(ctx, asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		want := []string{early.ID, tieFirst.ID, tieSecond.ID, late.ID}
		if len(txs) != len(want) {
			t.Fatalf("Expected %d transactions, got %d", len(want), len(txs))
		}
		for i, id := range want {
			if txs[i].ID != id {
				t.Errorf("Position %d: expected %s, got %s", i, id, txs[i].ID)
			}
		}
	})

	t.Run("round-trips amounts, sides and timestamps", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)

		ts := time.Date(2023, 11, 5, 14, 30, 15, 123456789, time.UTC)
		in := model.Transaction{
			ID:        testutil.MakeID(),
			AssetID:   asset.ID,
			Amount:    decimal.RequireFromString("0.0000000015"),
			Cost:      decimal.RequireFromString("123456789012345678901234567890.99"),
			Side:      model.SideBuy,
			Timestamp: ts,
			CreatedAt: ts,
		}

		// Execute
		if err := repo.InsertTransaction(ctx, &in); err != nil {
			t.Fatalf("InsertTransaction() returned unexpected error: %v", err)
		}
		txs, err := repo.GetTransactions(ctx, asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(txs) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(txs))
		}
		got := txs[0]
		if !got.Amount.Equal(in.Amount) || !got.Cost.Equal(in.Cost) {
			t.Errorf("Expected %s for %s, got %s for %s", in.Amount, in.Cost, got.Amount, got.Cost)
		}
		if got.Side != model.SideBuy {
			t.Errorf("Expected side buy, got %s", got.Side)
		}
		if !got.Timestamp.Equal(ts) {
			t.Errorf("Expected timestamp %s, got %s", ts, got.Timestamp)
		}
	})

	t.Run("only returns the asset's own ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)
		other := testutil.NewAsset(user.ID).Build(t, db)
		testutil.NewTransaction(asset.ID).Build(t, db)
		testutil.NewTransaction(other.ID).Build(t, db)

		txs, err := repo.GetTransactions(ctx, asset.ID)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}

		if len(txs) != 1 {
			t.Errorf("Expected 1 transaction, got %d", len(txs))
		}
	})
}

// TestTransactionRepository_DeleteTransaction tests ledger row removal.
//
// WHY: A transaction id is only deletable through the asset that owns it.
func TestTransactionRepository_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)
		tx := testutil.NewTransaction(asset.ID).Build(t, db)

		if err := repo.DeleteTransaction(ctx, asset.ID, tx.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("refuses a transaction of another asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		user := testutil.NewUser().Build(t, db)
		asset := testutil.NewAsset(user.ID).Build(t, db)
		other := testutil.NewAsset(user.ID).Build(t, db)
		tx := testutil.NewTransaction(other.ID).Build(t, db)

		// Execute
		err := repo.DeleteTransaction(ctx, asset.ID, tx.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})
}
