package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradepulse/internal/services"
)

type AssistantHandler struct {
	assistant *services.Assistant
}

func NewAssistantHandler(assistant *services.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

func (h *AssistantHandler) GetNews(c *gin.Context) {
	items := h.assistant.MarketNews(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"news": items,
		"mock": h.assistant.MockMode(),
	})
}

func (h *AssistantHandler) Analyze(c *gin.Context) {
	symbol := c.Param("symbol")
	c.JSON(http.StatusOK, gin.H{
		"symbol":   symbol,
		"analysis": h.assistant.Analyze(c.Request.Context(), symbol),
		"mock":     h.assistant.MockMode(),
	})
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reply": h.assistant.Chat(c.Request.Context(), req.Message),
		"mock":  h.assistant.MockMode(),
	})
}
