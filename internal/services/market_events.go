package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// RunQuoteTicker broadcasts a fresh quote for every tracked symbol on each
// tick until the context is cancelled.
func RunQuoteTicker(ctx context.Context, hub *WebSocketHub, market *MarketDataService, interval time.Duration, log *zap.Logger) {
	log.Info("starting market data simulation", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("market data simulation stopped")
			return
		case <-ticker.C:
			for _, symbol := range market.Symbols() {
				hub.BroadcastQuote(market.Quote(symbol))
			}
		}
	}
}

type alertTemplate struct {
	title   string
	message string // format string taking the symbol
	typ     string
}

var alertTemplates = []alertTemplate{
	{"Price Surge", "%s just jumped 2.5%% in the last 5 minutes!", "warning"},
	{"Volume Alert", "High trading volume detected for %s.", "info"},
	{"New Analyst Rating", "Goldman Sachs upgraded %s to BUY.", "success"},
	{"Market Dip", "%s is testing support levels. Watch out!", "error"},
}

// RunMarketAlerts emits random market-event toasts: each interval there is a
// 30% chance to pick one of the alert templates for a random tracked symbol.
func RunMarketAlerts(ctx context.Context, notifier *Notifier, market *MarketDataService, interval time.Duration, log *zap.Logger) {
	log.Info("starting market alert simulation", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("market alert simulation stopped")
			return
		case <-ticker.C:
			if rand.Float64() > 0.3 {
				continue
			}
			symbols := market.Symbols()
			if len(symbols) == 0 {
				continue
			}
			symbol := symbols[rand.Intn(len(symbols))]
			tmpl := alertTemplates[rand.Intn(len(alertTemplates))]
			notifier.Notify(tmpl.title, fmt.Sprintf(tmpl.message, symbol), tmpl.typ)
		}
	}
}
