package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// AssetRepository provides data access methods for the asset table.
// Every lookup that serves a user request is scoped by owner in SQL.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a new AssetRepository scoped to the provided transaction.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const assetColumns = `
	a.id, a.name, a.slug, a.category_id, c.slug, a.owner_id,
	a.quantity, a.average_cost, a.total_cost, a.created_at, a.updated_at
`

func scanAsset(s scanner) (model.Asset, error) {
	var a model.Asset
	var quantity, averageCost, totalCost, createdAtStr, updatedAtStr string

	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Slug,
		&a.CategoryID,
		&a.CategorySlug,
		&a.OwnerID,
		&quantity,
		&averageCost,
		&totalCost,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.Asset{}, err
	}

	if a.Quantity, err = parseDecimal(quantity); err != nil {
		return model.Asset{}, err
	}
	if a.AverageCost, err = parseDecimal(averageCost); err != nil {
		return model.Asset{}, err
	}
	if a.TotalCost, err = parseDecimal(totalCost); err != nil {
		return model.Asset{}, err
	}
	if a.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Asset{}, err
	}
	if a.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.Asset{}, err
	}

	return a, nil
}

// GetAssetForOwner resolves an asset by category slug and asset slug within the owner's scope.
// Returns ErrAssetNotFound when the asset is missing or owned by someone else.
func (r *AssetRepository) GetAssetForOwner(ctx context.Context, categorySlug, assetSlug, ownerID string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM asset a
		JOIN category c ON c.id = a.category_id
		WHERE c.slug = ? AND a.slug = ? AND a.owner_id = ?
	`

	a, err := scanAsset(r.getQuerier().QueryRowContext(ctx, query, categorySlug, assetSlug, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, apperrors.ErrAssetNotFound
		}
		return model.Asset{}, fmt.Errorf("failed to get asset: %w", err)
	}

	return a, nil
}

// GetAssetByID returns an asset regardless of owner. Used by maintenance jobs only.
func (r *AssetRepository) GetAssetByID(ctx context.Context, id string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM asset a
		JOIN category c ON c.id = a.category_id
		WHERE a.id = ?
	`

	a, err := scanAsset(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Asset{}, apperrors.ErrAssetNotFound
		}
		return model.Asset{}, fmt.Errorf("failed to get asset: %w", err)
	}

	return a, nil
}

// GetAssets returns the owner's assets, newest first. An empty categoryID lists all categories.
func (r *AssetRepository) GetAssets(ctx context.Context, ownerID, categoryID string) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM asset a
		JOIN category c ON c.id = a.category_id
		WHERE a.owner_id = ?
	`
	args := []any{ownerID}
	if categoryID != "" {
		query += ` AND a.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY a.created_at DESC, a.rowid DESC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAssetIDs returns the id of every asset in the store.
func (r *AssetRepository) GetAssetIDs(ctx context.Context) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `SELECT id FROM asset ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan asset id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset ids: %w", err)
	}

	return ids, nil
}

// InsertAsset stores a new asset with its cached position.
// Returns ErrSlugTaken on a (category, slug) collision and ErrDuplicateAsset on an
// (owner, category, name) collision.
func (r *AssetRepository) InsertAsset(ctx context.Context, a *model.Asset) error {
	query := `
		INSERT INTO asset (id, name, slug, category_id, owner_id, quantity, average_cost, total_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Slug,
		a.CategoryID,
		a.OwnerID,
		a.Quantity.String(),
		a.AverageCost.String(),
		a.TotalCost.String(),
		FormatTime(a.CreatedAt),
		FormatTime(a.UpdatedAt),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "asset.category_id, asset.slug"):
			return apperrors.ErrSlugTaken
		case isUniqueViolation(err, "asset.owner_id, asset.category_id, asset.name"):
			return apperrors.ErrDuplicateAsset
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdatePosition overwrites the cached position of an asset.
func (r *AssetRepository) UpdatePosition(ctx context.Context, assetID string, pos model.Position, updatedAt time.Time) error {
	query := `
		UPDATE asset
		SET quantity = ?, average_cost = ?, total_cost = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		pos.Quantity.String(),
		pos.AverageCost.String(),
		pos.TotalCost.String(),
		FormatTime(updatedAt),
		assetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// DeleteAsset removes an asset; its transactions go with it through ON DELETE CASCADE.
// Returns ErrAssetNotFound if no record with the given ID exists.
func (r *AssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}
