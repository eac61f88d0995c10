package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"coinvault/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCoin creates a coin with the given symbol and available supply.
// Total is seeded to match available.
func CreateTestCoin(t *testing.T, db *gorm.DB, symbol string, available int64) *models.Coin {
	t.Helper()

	coin := &models.Coin{
		Symbol:    models.CanonicalSymbol(symbol),
		Name:      fmt.Sprintf("Test Coin %s", symbol),
		Total:     available,
		Available: available,
	}
	if err := db.Create(coin).Error; err != nil {
		t.Fatalf("failed to create test coin: %v", err)
	}
	return coin
}

// CreateTestTrade creates a ledger entry for the given user and symbol.
func CreateTestTrade(t *testing.T, db *gorm.DB, userID string, side models.TradeSide, symbol string, quantity int64) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		UserID:     userID,
		Side:       side,
		Symbol:     models.CanonicalSymbol(symbol),
		Quantity:   quantity,
		UnitPrice:  100,
		ExecutedAt: time.Now(),
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}

// CountTrades returns the number of ledger entries matching the symbol.
func CountTrades(t *testing.T, db *gorm.DB, symbol string) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.Trade{}).Where("symbol = ?", models.CanonicalSymbol(symbol)).Count(&count).Error; err != nil {
		t.Fatalf("failed to count trades: %v", err)
	}
	return count
}

// GetCoin fetches the current committed state of a coin.
func GetCoin(t *testing.T, db *gorm.DB, symbol string) *models.Coin {
	t.Helper()

	var coin models.Coin
	if err := db.Where("symbol = ?", models.CanonicalSymbol(symbol)).First(&coin).Error; err != nil {
		t.Fatalf("failed to fetch coin %s: %v", symbol, err)
	}
	return &coin
}
