package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
)

// ReconcileService recomputes the cached position of every asset from its ledger and
// repairs the ones that drifted.
type ReconcileService struct {
	db              *sql.DB
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	policy          costbasis.Policy
	concurrency     int
}

// NewReconcileService creates a new ReconcileService processing up to concurrency assets at once.
func NewReconcileService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	policy costbasis.Policy,
	concurrency int,
) *ReconcileService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReconcileService{
		db:              db,
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		policy:          policy,
		concurrency:     concurrency,
	}
}

// ReconcileAll checks every asset, each in its own database transaction.
// Ledgers the calculator rejects are counted as failed and left untouched.
func (s *ReconcileService) ReconcileAll(ctx context.Context) (model.ReconcileReport, error) {
	log := logger.FromContext(ctx)

	ids, err := s.assetRepo.GetAssetIDs(ctx)
	if err != nil {
		return model.ReconcileReport{}, err
	}

	var checked, drifted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			changed, err := s.reconcileAsset(gctx, id)
			switch {
			case err == nil:
			case errors.Is(err, apperrors.ErrAssetNotFound):
				// deleted since the id listing
				return nil
			case errors.Is(err, apperrors.ErrValidation):
				failed.Add(1)
				log.Warn().Err(err).Str("asset_id", id).Msg("ledger rejected by cost basis calculator")
				return nil
			default:
				return fmt.Errorf("failed to reconcile asset %s: %w", id, err)
			}

			checked.Add(1)
			if changed {
				drifted.Add(1)
				log.Warn().Str("asset_id", id).Msg("cached position drifted, repaired")
			}
			return nil
		})
	}

	err = g.Wait()
	report := model.ReconcileReport{
		Checked: int(checked.Load()),
		Drifted: int(drifted.Load()),
		Failed:  int(failed.Load()),
	}
	if err != nil {
		return report, err
	}

	log.Info().
		Int("checked", report.Checked).
		Int("drifted", report.Drifted).
		Int("failed", report.Failed).
		Msg("reconcile finished")

	return report, nil
}

func (s *ReconcileService) reconcileAsset(ctx context.Context, assetID string) (bool, error) {
	var changed bool

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		assetRepo := s.assetRepo.WithTx(tx)

		asset, err := assetRepo.GetAssetByID(ctx, assetID)
		if err != nil {
			return err
		}

		pos, _, err := calculatePosition(ctx, s.transactionRepo.WithTx(tx), assetID, s.policy)
		if err != nil {
			return err
		}

		if pos.Equal(asset.Position) {
			return nil
		}

		changed = true
		return assetRepo.UpdatePosition(ctx, assetID, pos, time.Now().UTC())
	})

	return changed, err
}

// Schedule registers ReconcileAll on c using a standard cron spec. Runs log through log.
func (s *ReconcileService) Schedule(c *cron.Cron, spec string, log zerolog.Logger) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx := logger.WithContext(context.Background(), log.With().Str("job", "reconcile").Logger())
		if _, err := s.ReconcileAll(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled reconcile failed")
		}
	})
	if err != nil {
		return 0, fmt.Errorf("failed to schedule reconcile: %w", err)
	}
	return id, nil
}
