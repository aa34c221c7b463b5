package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradepulse/internal/services"
)

const sessionKey = "session"

type SessionHandler struct {
	sessions *services.SessionService
	notifier *services.Notifier
}

func NewSessionHandler(sessions *services.SessionService, notifier *services.Notifier) *SessionHandler {
	return &SessionHandler{sessions: sessions, notifier: notifier}
}

type LoginRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Email string `json:"email" binding:"required,email"`
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, token, err := h.sessions.Login(req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	h.notifier.Welcome(session.Name)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"name":    session.Name,
		"email":   session.Email,
		"account": session.AccountSnapshot(),
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	session := currentSession(c)
	h.sessions.Logout(session.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *SessionHandler) Me(c *gin.Context) {
	session := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"name":    session.Name,
		"email":   session.Email,
		"account": session.AccountSnapshot(),
	})
}

// AuthMiddleware resolves the bearer token to a live session and aborts
// with 401 when the token is invalid or the session is gone.
func (h *SessionHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		session, err := h.sessions.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func currentSession(c *gin.Context) *services.Session {
	return c.MustGet(sessionKey).(*services.Session)
}
