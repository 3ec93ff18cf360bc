package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// TransactionRepository provides data access methods for the transaction table,
// the per-asset ledger of buy and sell events.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetTransactions returns the ledger of an asset in calculation order: timestamp, then
// creation time, then insertion order.
func (r *TransactionRepository) GetTransactions(ctx context.Context, assetID string) ([]model.Transaction, error) {
	query := `
		SELECT id, asset_id, amount, cost, side, timestamp, created_at
		FROM "transaction"
		WHERE asset_id = ?
		ORDER BY timestamp ASC, created_at ASC, rowid ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var amountStr, costStr, timestampStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.AssetID,
			&amountStr,
			&costStr,
			&t.Side,
			&timestampStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		if t.Amount, err = parseDecimal(amountStr); err != nil {
			return nil, err
		}
		if t.Cost, err = parseDecimal(costStr); err != nil {
			return nil, err
		}
		if t.Timestamp, err = ParseTime(timestampStr); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// InsertTransaction appends a transaction to the asset's ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, amount, cost, side, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.AssetID,
		t.Amount.String(),
		t.Cost.String(),
		string(t.Side),
		FormatTime(t.Timestamp),
		FormatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes a transaction from the given asset's ledger.
// Returns ErrTransactionNotFound if the transaction does not exist on that asset.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, assetID, transactionID string) error {
	query := `DELETE FROM "transaction" WHERE id = ? AND asset_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, transactionID, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}
