package services

import (
	"context"
	"time"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/logger"
	"coinvault/internal/models"
	"coinvault/internal/pagination"
)

// tradeService composes the supply pool and the ledger into one unit of
// work per request. The pool adjustment and the ledger append are separate
// storage steps, so a failed append after a committed adjustment is undone
// with an inverse adjustment rather than left dangling.
//
// Resubmitting an identical request executes a new trade: there is no
// request-id deduplication and no automatic retry.
type tradeService struct {
	pool           SupplyPooler
	ledger         LedgerStorer
	storageTimeout time.Duration
}

// NewTradeService creates a new TradeServicer. storageTimeout bounds each
// individual pool and ledger call.
func NewTradeService(pool SupplyPooler, ledger LedgerStorer, storageTimeout time.Duration) TradeServicer {
	return &tradeService{
		pool:           pool,
		ledger:         ledger,
		storageTimeout: storageTimeout,
	}
}

// Execute validates the request, atomically adjusts the coin's available
// supply, and appends the matching ledger record.
func (s *tradeService) Execute(
	ctx context.Context,
	userID string,
	side models.TradeSide,
	symbol string,
	quantity, unitPrice int64,
) (*TradeResult, error) {
	// Preconditions are checked before any shared state is touched.
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be greater than zero")
	}
	if unitPrice <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be greater than zero")
	}
	symbol = models.CanonicalSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	var delta int64
	switch side {
	case models.TradeSideBuy:
		delta = -quantity
	case models.TradeSideSell:
		delta = quantity
	default:
		return nil, apperrors.ErrInvalidTradeSide
	}

	// A caller that is already gone must not mutate the pool.
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageFailure, err)
	}

	adjustCtx, cancelAdjust := context.WithTimeout(ctx, s.storageTimeout)
	coin, err := s.pool.TryAdjust(adjustCtx, symbol, delta)
	cancelAdjust()
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		UserID:     userID,
		Side:       side,
		Symbol:     coin.Symbol,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		ExecutedAt: time.Now(),
	}

	// The adjustment has committed; the append and, on failure, the
	// compensation must run to completion even if the caller aborts now.
	appendCtx, cancelAppend := context.WithTimeout(context.WithoutCancel(ctx), s.storageTimeout)
	err = s.ledger.Append(appendCtx, trade)
	cancelAppend()
	if err != nil {
		s.compensate(ctx, symbol, delta)
		return nil, err
	}

	return &TradeResult{Trade: trade, Coin: coin}, nil
}

// compensate issues the inverse supply adjustment after a failed ledger
// append. If it fails, the pool holds an adjustment with no matching
// ledger record; that cannot be repaired here, so it is logged with
// everything a reconciliation pass needs.
func (s *tradeService) compensate(ctx context.Context, symbol string, delta int64) {
	compCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storageTimeout)
	defer cancel()

	if _, err := s.pool.TryAdjust(compCtx, symbol, -delta); err != nil {
		logger.Get().Errorw("supply_ledger_inconsistency",
			"symbol", symbol,
			"unreconciled_delta", delta,
			"error", err.Error(),
		)
	}
}

// GetUserTrades returns the caller's trade history newest-first.
func (s *tradeService) GetUserTrades(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	return s.ledger.ListByUser(ctx, userID, page)
}
