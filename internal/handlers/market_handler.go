package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradepulse/internal/services"
)

type MarketHandler struct {
	market *services.MarketDataService
}

func NewMarketHandler(market *services.MarketDataService) *MarketHandler {
	return &MarketHandler{market: market}
}

func (h *MarketHandler) GetQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stocks": h.market.Quotes()})
}

func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	c.JSON(http.StatusOK, h.market.Quote(symbol))
}
