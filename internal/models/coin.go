package models

import "strings"

// CanonicalSymbol normalizes a coin symbol to its canonical uppercase form.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Coin represents a tradable asset and its shared supply pool.
// Available is the number of units left in the pool; it is never
// negative and is only ever mutated through the supply service's
// conditional adjustment.
type Coin struct {
	Base
	Symbol    string `gorm:"uniqueIndex;not null" json:"symbol"`
	Name      string `json:"name"`
	Total     int64  `gorm:"type:bigint;not null;default:0" json:"total"`
	Available int64  `gorm:"type:bigint;not null;default:0" json:"available"`
}
