package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coinvault/internal/handlers"
	"coinvault/internal/logger"
	"coinvault/internal/middleware"
	"coinvault/internal/models"
	"coinvault/internal/services"
	"coinvault/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	// SQLite allows a single writer; serialize at the pool.
	sqlDB.SetMaxOpenConns(1)

	allModels := []interface{}{
		&models.User{},
		&models.Coin{},
		&models.Trade{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	coinService := services.NewCoinService(db)
	supplyService := services.NewSupplyService(db)
	ledgerService := services.NewLedgerService(db)
	tradeService := services.NewTradeService(supplyService, ledgerService, 2*time.Second)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	coinHandler := handlers.NewCoinHandler(coinService)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	coins := v1.Group("/coins")
	coins.GET("", coinHandler.ListCoins)
	coins.GET("/:symbol", coinHandler.GetCoinBySymbol)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/coins", coinHandler.CreateCoin)

	trades := protected.Group("/trades")
	trades.POST("/buy", tradeHandler.Buy)
	trades.POST("/sell", tradeHandler.Sell)
	trades.GET("", tradeHandler.GetHistory)

	return &testApp{DB: db, Router: router}
}

// doJSON performs a JSON request against the app, optionally authenticated.
func (app *testApp) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

// registerUser registers a fresh user and returns their auth token.
func (app *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := app.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test Trader",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register user: %d %s", w.Code, w.Body.String())
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected a token from registration")
	}
	return payload.Token
}

// seedCoin creates a coin through the administrative endpoint.
func (app *testApp) seedCoin(t *testing.T, token, symbol string, available int64) {
	t.Helper()

	w := app.doJSON(t, http.MethodPost, "/api/v1/coins", token, gin.H{
		"symbol":    symbol,
		"name":      "Test " + symbol,
		"total":     available,
		"available": available,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to seed coin: %d %s", w.Code, w.Body.String())
	}
}

// decode unmarshals a response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
	return payload
}
