package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tradepulse/internal/ledger"
	"tradepulse/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type PlaceOrderRequest struct {
	Symbol    string  `json:"symbol" binding:"required"`
	Side      string  `json:"side" binding:"required"`      // "buy" or "sell"
	OrderType string  `json:"orderType" binding:"required"` // "market" or "limit"
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price"` // required for limit orders
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	session := currentSession(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Side != "buy" && req.Side != "sell" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid side. Must be 'buy' or 'sell'"})
		return
	}
	if req.OrderType != "market" && req.OrderType != "limit" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order type. Must be 'market' or 'limit'"})
		return
	}
	if req.OrderType == "limit" && req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit orders require a positive price"})
		return
	}

	receipt, err := h.orders.Place(session, services.OrderRequest{
		Side:      ledger.Side(req.Side),
		Symbol:    req.Symbol,
		OrderType: req.OrderType,
		Quantity:  decimal.NewFromFloat(req.Quantity),
		Price:     decimal.NewFromFloat(req.Price),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"kind":  failureKind(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"receipt": receipt,
	})
}

func (h *OrderHandler) GetPortfolio(c *gin.Context) {
	session := currentSession(c)
	acct := session.AccountSnapshot()

	positions := make([]ledger.Position, 0, len(acct.Holdings))
	for _, pos := range acct.Holdings {
		positions = append(positions, pos)
	}

	marketValue := h.orders.PortfolioValue(session)
	c.JSON(http.StatusOK, gin.H{
		"positions":   positions,
		"cashBalance": acct.CashBalance,
		"totalAssets": acct.CashBalance.Add(marketValue),
		"xp":          acct.XP,
		"level":       acct.Level,
	})
}

func (h *OrderHandler) GetTransactions(c *gin.Context) {
	session := currentSession(c)
	acct := session.AccountSnapshot()
	c.JSON(http.StatusOK, gin.H{"transactions": acct.Transactions})
}

type CashRequest struct {
	Action string  `json:"action" binding:"required"` // "deposit" or "withdraw"
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *OrderHandler) MoveCash(c *gin.Context) {
	session := currentSession(c)

	var req CashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Action != "deposit" && req.Action != "withdraw" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be 'deposit' or 'withdraw'"})
		return
	}

	receipt, err := h.orders.MoveCash(session, req.Action, decimal.NewFromFloat(req.Amount))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"kind":  failureKind(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrInsufficientShares):
		return "insufficient_shares"
	default:
		return "invalid_request"
	}
}
