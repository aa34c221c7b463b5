package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type WatchlistHandler struct{}

func NewWatchlistHandler() *WatchlistHandler {
	return &WatchlistHandler{}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	session := currentSession(c)
	c.JSON(http.StatusOK, gin.H{"watchlist": session.Watchlist()})
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	session := currentSession(c)
	symbol := strings.ToUpper(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol required"})
		return
	}
	session.AddToWatchlist(symbol)
	c.JSON(http.StatusOK, gin.H{"watchlist": session.Watchlist()})
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	session := currentSession(c)
	symbol := strings.ToUpper(c.Param("symbol"))
	session.RemoveFromWatchlist(symbol)
	c.JSON(http.StatusOK, gin.H{"watchlist": session.Watchlist()})
}
