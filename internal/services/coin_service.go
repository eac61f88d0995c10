package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
	"coinvault/internal/pagination"
)

// coinService handles coin listing and administrative seeding. It never
// touches a coin's available supply after creation; that is the supply
// service's job.
type coinService struct {
	db *gorm.DB
}

// NewCoinService creates a new CoinServicer.
func NewCoinService(db *gorm.DB) CoinServicer {
	return &coinService{db: db}
}

// CreateCoin seeds a new tradable coin with its initial supply.
func (s *coinService) CreateCoin(symbol, name string, total, available int64) (*models.Coin, error) {
	symbol = models.CanonicalSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}
	if total < 0 || available < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "supply counts cannot be negative")
	}

	var count int64
	if err := s.db.Model(&models.Coin{}).Where("symbol = ?", symbol).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateSymbol
	}

	coin := &models.Coin{
		Symbol:    symbol,
		Name:      name,
		Total:     total,
		Available: available,
	}
	if err := s.db.Create(coin).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return coin, nil
}

// ListCoins returns a paginated list of all coins ordered by symbol.
func (s *coinService) ListCoins(page pagination.PageRequest) (*pagination.PageResponse[models.Coin], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Coin{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var coins []models.Coin
	if err := s.db.Scopes(pagination.Paginate(page)).
		Order("symbol ASC").
		Find(&coins).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(coins, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCoinBySymbol retrieves a coin by its canonical symbol.
func (s *coinService) GetCoinBySymbol(symbol string) (*models.Coin, error) {
	var coin models.Coin
	if err := s.db.Where("symbol = ?", models.CanonicalSymbol(symbol)).First(&coin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCoinNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &coin, nil
}
