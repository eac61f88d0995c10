package main

import (
	"fmt"
	"net/http"
	"os"

	"coinvault/internal/config"
	"coinvault/internal/database"
	"coinvault/internal/handlers"
	"coinvault/internal/logger"
	"coinvault/internal/middleware"
	"coinvault/internal/services"
	"coinvault/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	coinService := services.NewCoinService(db)
	supplyService := services.NewSupplyService(db)
	ledgerService := services.NewLedgerService(db)
	tradeService := services.NewTradeService(supplyService, ledgerService, appConfig.StorageTimeout)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	coinHandler := handlers.NewCoinHandler(coinService)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	coins := v1.Group("/coins")
	coins.GET("", coinHandler.ListCoins)
	coins.GET("/:symbol", coinHandler.GetCoinBySymbol)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	// Coin seeding is administrative and requires authentication
	protected.POST("/coins", coinHandler.CreateCoin)

	trades := protected.Group("/trades")
	trades.POST("/buy", tradeHandler.Buy)
	trades.POST("/sell", tradeHandler.Sell)
	trades.GET("", tradeHandler.GetHistory)

	log.Infof("Starting Coinvault backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
