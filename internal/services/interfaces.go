package services

import (
	"context"

	"coinvault/internal/models"
	"coinvault/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(userID string) error
}

// CoinServicer defines the contract for coin listing and administrative
// seeding. Seeding is the only path that creates coins; once created, a
// coin's available supply is mutated exclusively through SupplyPooler.
type CoinServicer interface {
	CreateCoin(symbol, name string, total, available int64) (*models.Coin, error)
	ListCoins(page pagination.PageRequest) (*pagination.PageResponse[models.Coin], error)
	GetCoinBySymbol(symbol string) (*models.Coin, error)
}

// SupplyPooler is the per-coin available-supply store. TryAdjust is the
// sole write path: the precondition check and the mutation are a single
// atomic step, so callers can never observe or create a negative pool.
type SupplyPooler interface {
	// TryAdjust applies available += delta only if available + delta >= 0,
	// returning the updated coin snapshot. Returns ErrCoinNotFound for an
	// unregistered symbol and ErrInsufficientSupply when the precondition
	// fails (only reachable for negative deltas).
	TryAdjust(ctx context.Context, symbol string, delta int64) (*models.Coin, error)
	// Get returns a committed snapshot of the coin.
	Get(ctx context.Context, symbol string) (*models.Coin, error)
}

// LedgerStorer is the append-only trade history. Records are immutable;
// there is no update or delete operation.
type LedgerStorer interface {
	Append(ctx context.Context, trade *models.Trade) error
	// ListByUser returns the user's trades newest-first.
	ListByUser(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}

// TradeResult pairs a persisted trade with the coin snapshot taken at the
// moment the supply adjustment committed.
type TradeResult struct {
	Trade *models.Trade `json:"trade"`
	Coin  *models.Coin  `json:"coin"`
}

// TradeServicer is the trade execution engine: the sole entry point for
// mutating trade state. Each call performs exactly one supply adjustment
// and at most one ledger append.
type TradeServicer interface {
	Execute(ctx context.Context, userID string, side models.TradeSide, symbol string, quantity, unitPrice int64) (*TradeResult, error)
	GetUserTrades(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}
