package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
	"coinvault/internal/pagination"
	"coinvault/internal/services"
)

// TradeHandler handles trade execution and history requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// TradeRequest represents a buy or sell request payload. The side comes
// from the route, not the body.
type TradeRequest struct {
	Symbol    string `json:"symbol" binding:"required,coin_symbol"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
	UnitPrice int64  `json:"unit_price" binding:"required,gt=0"`
}

// Buy executes a buy against the coin's supply pool.
func (h *TradeHandler) Buy(c *gin.Context) {
	h.execute(c, models.TradeSideBuy)
}

// Sell executes a sell, returning units to the supply pool.
func (h *TradeHandler) Sell(c *gin.Context) {
	h.execute(c, models.TradeSideSell)
}

func (h *TradeHandler) execute(c *gin.Context, side models.TradeSide) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradeService.Execute(c.Request.Context(), userID, side, req.Symbol, req.Quantity, req.UnitPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coin":  result.Coin,
		"trade": result.Trade,
	})
}

// GetHistory returns the caller's trades newest-first.
func (h *TradeHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	trades, err := h.tradeService.GetUserTrades(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trades)
}
