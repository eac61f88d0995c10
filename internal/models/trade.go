package models

import "time"

// TradeSide represents the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is one immutable ledger entry describing a single executed
// buy or sell. Rows are append-only: no service exposes an update or
// delete path for them.
type Trade struct {
	Base
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Side       TradeSide `gorm:"not null" json:"side"`
	Symbol     string    `gorm:"not null;index" json:"symbol"`
	Quantity   int64     `gorm:"type:bigint;not null" json:"quantity"`
	UnitPrice  int64     `gorm:"type:bigint;not null" json:"unit_price"`
	ExecutedAt time.Time `gorm:"not null" json:"executed_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}
