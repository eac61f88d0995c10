package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
)

// supplyService is the gorm-backed supply pool. The conditional UPDATE
// carries the precondition in its WHERE clause, so the check and the
// mutation are one atomic statement; concurrent adjustments on the same
// coin serialize on the row while different coins never contend.
type supplyService struct {
	db *gorm.DB
}

// NewSupplyService creates a new SupplyPooler.
func NewSupplyService(db *gorm.DB) SupplyPooler {
	return &supplyService{db: db}
}

// TryAdjust atomically applies available += delta if the result stays
// non-negative, returning the post-adjustment snapshot.
func (s *supplyService) TryAdjust(ctx context.Context, symbol string, delta int64) (*models.Coin, error) {
	symbol = models.CanonicalSymbol(symbol)

	var coin models.Coin
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Coin{}).
			Where("symbol = ? AND available + ? >= 0", symbol, delta).
			Update("available", gorm.Expr("available + ?", delta))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStorageFailure, res.Error)
		}

		if res.RowsAffected == 0 {
			// Distinguish a missing coin from an insufficient pool. Coins
			// are never deleted, so this read cannot race with the update.
			var count int64
			if err := tx.Model(&models.Coin{}).Where("symbol = ?", symbol).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorageFailure, err)
			}
			if count == 0 {
				return apperrors.ErrCoinNotFound
			}
			return apperrors.ErrInsufficientSupply
		}

		// Reading inside the same transaction returns the exact value the
		// update produced, not some later committed state.
		if err := tx.Where("symbol = ?", symbol).First(&coin).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorageFailure, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

// Get returns a committed snapshot of the coin.
func (s *supplyService) Get(ctx context.Context, symbol string) (*models.Coin, error) {
	var coin models.Coin
	if err := s.db.WithContext(ctx).
		Where("symbol = ?", models.CanonicalSymbol(symbol)).
		First(&coin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCoinNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	return &coin, nil
}
