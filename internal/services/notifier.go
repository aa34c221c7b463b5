package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepulse/internal/ledger"
	"tradepulse/internal/models"
)

// Notifier turns ledger receipts and system events into the human-readable
// toasts the dashboard shows. Delivery is fire-and-forget over the hub; the
// ledger never depends on it.
type Notifier struct {
	hub *WebSocketHub
	log *zap.Logger
}

func NewNotifier(hub *WebSocketHub, log *zap.Logger) *Notifier {
	return &Notifier{hub: hub, log: log}
}

func (n *Notifier) Notify(title, message, typ string) {
	notification := models.Notification{
		ID:        fmt.Sprintf("%x", rand.Int63()),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: time.Now(),
	}
	n.hub.BroadcastNotification(notification)
	n.log.Debug("notification sent",
		zap.String("title", title),
		zap.String("type", typ))
}

func (n *Notifier) Welcome(name string) {
	n.Notify("Welcome Back!", fmt.Sprintf("Logged in as %s", name), "success")
}

func (n *Notifier) TradeExecuted(side ledger.Side, symbol string, quantity decimal.Decimal) {
	verb := "bought"
	if side == ledger.Sell {
		verb = "sold"
	}
	n.Notify("Order Executed",
		fmt.Sprintf("Successfully %s %s %s", verb, quantity, symbol), "success")
}

func (n *Notifier) TradeFailed(err error) {
	n.Notify("Trade Failed", err.Error(), "error")
}

func (n *Notifier) LevelUp(level int64) {
	n.Notify("Level Up!",
		fmt.Sprintf("Congratulations! You reached Level %d.", level), "success")
}
