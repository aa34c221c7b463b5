package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepulse/config"
	"tradepulse/internal/handlers"
	"tradepulse/internal/ledger"
	"tradepulse/internal/logger"
	"tradepulse/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Services
	marketService := services.NewMarketDataService(cfg.Market.Symbols, log)
	wsHub := services.NewWebSocketHub(log)
	notifier := services.NewNotifier(wsHub, log)
	engine := ledger.NewEngine(
		decimal.NewFromFloat(cfg.Trading.FeeRate),
		ledger.WithXPPerTrade(cfg.Trading.XPPerTrade),
	)
	sessionService := services.NewSessionService(
		cfg.JWTSecret,
		decimal.NewFromFloat(cfg.Trading.StartingCash),
		log,
	)
	orderService := services.NewOrderService(engine, marketService, notifier, log)
	assistant := services.NewAssistant(ctx, cfg.GeminiAPIKey, cfg.Assistant.Model, log)

	go wsHub.Run()
	go services.RunQuoteTicker(ctx, wsHub, marketService,
		time.Duration(cfg.Market.TickMs)*time.Millisecond, log)
	go services.RunMarketAlerts(ctx, notifier, marketService,
		time.Duration(cfg.Market.AlertMs)*time.Millisecond, log)

	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Handlers
	marketHandler := handlers.NewMarketHandler(marketService)
	orderHandler := handlers.NewOrderHandler(orderService)
	sessionHandler := handlers.NewSessionHandler(sessionService, notifier)
	watchlistHandler := handlers.NewWatchlistHandler()
	assistantHandler := handlers.NewAssistantHandler(assistant)

	authMiddleware := sessionHandler.AuthMiddleware()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"message": "TradePulse API is running",
		})
	})

	// Market data
	router.GET("/api/stocks", marketHandler.GetQuotes)
	router.GET("/api/stocks/:symbol", marketHandler.GetQuote)

	// WebSocket stream
	router.GET("/ws", func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			username = "Anonymous"
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("failed to upgrade connection", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to upgrade to WebSocket"})
			return
		}

		client := wsHub.RegisterClient(conn, username)
		go client.WritePump()
		go client.ReadPump()
	})

	// Sessions
	router.POST("/api/session/login", sessionHandler.Login)
	router.POST("/api/session/logout", authMiddleware, sessionHandler.Logout)
	router.GET("/api/session/me", authMiddleware, sessionHandler.Me)

	// Trading
	router.POST("/api/orders", authMiddleware, orderHandler.PlaceOrder)
	router.GET("/api/portfolio", authMiddleware, orderHandler.GetPortfolio)
	router.GET("/api/transactions", authMiddleware, orderHandler.GetTransactions)
	router.POST("/api/cash", authMiddleware, orderHandler.MoveCash)

	// Watchlist
	router.GET("/api/watchlist", authMiddleware, watchlistHandler.List)
	router.POST("/api/watchlist/:symbol", authMiddleware, watchlistHandler.Add)
	router.DELETE("/api/watchlist/:symbol", authMiddleware, watchlistHandler.Remove)

	// Assistant
	router.GET("/api/news", assistantHandler.GetNews)
	router.GET("/api/analysis/:symbol", assistantHandler.Analyze)
	router.POST("/api/assistant/chat", authMiddleware, assistantHandler.Chat)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("TradePulse backend running",
			zap.String("port", cfg.Server.Port),
			zap.Bool("assistant_mock_mode", assistant.MockMode()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
