package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// AssetService handles asset and ledger business logic. Every operation is scoped to the
// requesting owner; assets owned by someone else behave as if they did not exist.
type AssetService struct {
	db              *sql.DB
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	categoryRepo    *repository.CategoryRepository
	policy          costbasis.Policy
	newSlug         func() (string, error)
	now             func() time.Time
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	categoryRepo *repository.CategoryRepository,
	policy costbasis.Policy,
) *AssetService {
	return &AssetService{
		db:              db,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		policy:          policy,
		newSlug:         generateSlug,
		now:             time.Now,
	}
}

// WithSlugGenerator returns a copy of the service that draws asset slugs from gen.
func (s *AssetService) WithSlugGenerator(gen func() (string, error)) *AssetService {
	c := *s
	c.newSlug = gen
	return &c
}

// GetAssets returns all of the owner's assets, newest first.
func (s *AssetService) GetAssets(ctx context.Context, ownerID string) ([]model.Asset, error) {
	return s.assetRepo.GetAssets(ctx, ownerID, "")
}

// GetAssetsInCategory returns the owner's assets in one category, newest first.
// Returns ErrCategoryNotFound for an unknown category slug.
func (s *AssetService) GetAssetsInCategory(ctx context.Context, categorySlug, ownerID string) ([]model.Asset, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.assetRepo.GetAssets(ctx, ownerID, category.ID)
}

// GetAsset returns the asset with its ledger ordered by timestamp ascending.
func (s *AssetService) GetAsset(ctx context.Context, categorySlug, assetSlug, ownerID string) (*model.AssetDetail, error) {
	asset, err := s.assetRepo.GetAssetForOwner(ctx, categorySlug, assetSlug, ownerID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactions(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	return &model.AssetDetail{Asset: asset, Transactions: transactions}, nil
}

// CreateAsset creates an empty asset in the category with a random slug.
// Slug collisions are retried; after slugMaxAttempts it fails with ErrSlugExhausted.
func (s *AssetService) CreateAsset(ctx context.Context, categorySlug, ownerID string, req request.CreateAssetRequest) (*model.Asset, error) {
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	asset := &model.Asset{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		CategoryID:   category.ID,
		CategorySlug: category.Slug,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	log := logger.FromContext(ctx)
	for attempt := 1; attempt <= slugMaxAttempts; attempt++ {
		if asset.Slug, err = s.newSlug(); err != nil {
			return nil, err
		}

		err = s.assetRepo.InsertAsset(ctx, asset)
		if err == nil {
			log.Info().
				Str("asset_id", asset.ID).
				Str("category", category.Slug).
				Str("slug", asset.Slug).
				Msg("asset created")
			return asset, nil
		}
		if !errors.Is(err, apperrors.ErrSlugTaken) {
			return nil, err
		}

		log.Debug().Int("attempt", attempt).Str("slug", asset.Slug).Msg("asset slug collision")
	}

	return nil, apperrors.ErrSlugExhausted
}

// DeleteAsset removes the asset together with its ledger.
func (s *AssetService) DeleteAsset(ctx context.Context, categorySlug, assetSlug, ownerID string) error {
	var assetID string

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		assetRepo := s.assetRepo.WithTx(tx)

		asset, err := assetRepo.GetAssetForOwner(ctx, categorySlug, assetSlug, ownerID)
		if err != nil {
			return err
		}
		assetID = asset.ID

		return assetRepo.DeleteAsset(ctx, asset.ID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("asset_id", assetID).Msg("asset deleted")
	return nil
}

// AddTransaction appends a buy or sell to the asset's ledger and recomputes its cached
// position from the full ledger in the same database transaction. Sells that would exceed
// the quantity held at their point in the ledger fail with ErrInsufficientHoldings under
// the reject policy, and nothing is written.
func (s *AssetService) AddTransaction(
	ctx context.Context,
	categorySlug, assetSlug, ownerID string,
	req request.CreateTransactionRequest,
) (*model.TransactionResult, error) {
	side, err := costbasis.ParseSide(req.TransactionType)
	if err != nil {
		return nil, err
	}
	if !req.Amount.Valid {
		return nil, apperrors.ErrInvalidAmount
	}

	cost := decimal.Zero
	if req.Cost.Valid {
		cost = req.Cost.Decimal
	}

	entry := costbasis.Entry{Amount: req.Amount.Decimal, Cost: cost, Side: side}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	timestamp := now
	if strings.TrimSpace(req.Date) != "" {
		if timestamp, err = validation.ParseTime(req.Date); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	var result model.TransactionResult
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		assetRepo := s.assetRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		asset, err := assetRepo.GetAssetForOwner(ctx, categorySlug, assetSlug, ownerID)
		if err != nil {
			return err
		}

		transaction := model.Transaction{
			ID:        uuid.New().String(),
			AssetID:   asset.ID,
			Amount:    entry.Amount,
			Cost:      entry.Cost,
			Side:      side,
			Timestamp: timestamp,
			CreatedAt: now,
		}
		if err := transactionRepo.InsertTransaction(ctx, &transaction); err != nil {
			return err
		}

		if err := s.storePosition(ctx, assetRepo, transactionRepo, &asset, now); err != nil {
			return err
		}

		result = model.TransactionResult{Transaction: transaction, Asset: asset}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("asset_id", result.Asset.ID).
		Str("transaction_id", result.Transaction.ID).
		Str("side", string(side)).
		Str("quantity", result.Asset.Quantity.String()).
		Msg("transaction added")

	return &result, nil
}

// DeleteTransaction removes a transaction from the asset's ledger and recomputes the cached
// position. The transaction must belong to the resolved asset.
func (s *AssetService) DeleteTransaction(
	ctx context.Context,
	categorySlug, assetSlug, transactionID, ownerID string,
) (*model.Asset, error) {
	now := s.now().UTC()

	var asset model.Asset
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		assetRepo := s.assetRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		var err error
		asset, err = assetRepo.GetAssetForOwner(ctx, categorySlug, assetSlug, ownerID)
		if err != nil {
			return err
		}

		if err := transactionRepo.DeleteTransaction(ctx, asset.ID, transactionID); err != nil {
			return err
		}

		return s.storePosition(ctx, assetRepo, transactionRepo, &asset, now)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("asset_id", asset.ID).
		Str("transaction_id", transactionID).
		Msg("transaction deleted")

	return &asset, nil
}

// storePosition recomputes the asset's position from its ledger and writes it to the cache.
func (s *AssetService) storePosition(
	ctx context.Context,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	asset *model.Asset,
	now time.Time,
) error {
	pos, _, err := calculatePosition(ctx, transactionRepo, asset.ID, s.policy)
	if err != nil {
		return err
	}

	if err := assetRepo.UpdatePosition(ctx, asset.ID, pos, now); err != nil {
		return err
	}

	asset.Position = pos
	asset.UpdatedAt = now
	return nil
}
