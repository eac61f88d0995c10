package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
	"coinvault/internal/pagination"
)

// ledgerService is the gorm-backed append-only trade ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerStorer.
func NewLedgerService(db *gorm.DB) LedgerStorer {
	return &ledgerService{db: db}
}

// Append persists an immutable trade record.
func (s *ledgerService) Append(ctx context.Context, trade *models.Trade) error {
	if err := s.db.WithContext(ctx).Create(trade).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}
	return nil
}

// ListByUser returns the user's trades newest-first. The ID tiebreak keeps
// ordering stable for trades sharing an execution timestamp (UUIDv7 keys
// are themselves time-ordered).
func (s *ledgerService) ListByUser(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Trade{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	var trades []models.Trade
	if err := base.Scopes(pagination.Paginate(page)).
		Order("executed_at DESC, id DESC").
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, totalItems)
	return &result, nil
}
