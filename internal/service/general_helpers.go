package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
)

// runInTx executes fn inside a database transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
//
// Connections are opened with _txlock=immediate, so BeginTx takes the SQLite write lock and
// everything fn reads is stable until commit.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// calculatePosition loads the asset's full ledger and folds it with the cost basis calculator.
func calculatePosition(
	ctx context.Context,
	transactionRepo *repository.TransactionRepository,
	assetID string,
	policy costbasis.Policy,
) (model.Position, []model.Transaction, error) {
	ledger, err := transactionRepo.GetTransactions(ctx, assetID)
	if err != nil {
		return model.Position{}, nil, err
	}

	pos, err := costbasis.Calculate(costbasis.FromTransactions(ledger), policy)
	if err != nil {
		return model.Position{}, nil, err
	}

	return pos, ledger, nil
}
