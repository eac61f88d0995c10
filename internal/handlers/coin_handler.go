package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/pagination"
	"coinvault/internal/services"
)

// CoinHandler handles coin listing and administrative seeding requests.
type CoinHandler struct {
	coinService services.CoinServicer
}

// NewCoinHandler creates a new CoinHandler
func NewCoinHandler(coinService services.CoinServicer) *CoinHandler {
	return &CoinHandler{coinService: coinService}
}

// CreateCoinRequest represents the coin seeding request payload.
type CreateCoinRequest struct {
	Symbol    string `json:"symbol" binding:"required,coin_symbol"`
	Name      string `json:"name" binding:"max=100"`
	Total     int64  `json:"total" binding:"min=0"`
	Available int64  `json:"available" binding:"min=0"`
}

// CreateCoin seeds a new tradable coin.
func (h *CoinHandler) CreateCoin(c *gin.Context) {
	var req CreateCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	coin, err := h.coinService.CreateCoin(req.Symbol, req.Name, req.Total, req.Available)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"coin": coin})
}

// ListCoins returns all coins with their current available supply.
func (h *CoinHandler) ListCoins(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	coins, err := h.coinService.ListCoins(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, coins)
}

// GetCoinBySymbol returns a single coin by symbol.
func (h *CoinHandler) GetCoinBySymbol(c *gin.Context) {
	symbol := c.Param("symbol")

	coin, err := h.coinService.GetCoinBySymbol(symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coin": coin})
}
