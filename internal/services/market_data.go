package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepulse/config"
	"tradepulse/internal/models"
)

const defaultBasePrice = 100.0

// MarketDataService generates simulated quotes: every call to Quote applies
// a small random step to the symbol's last price and keeps the result as the
// base for the next call. No external feed is involved.
type MarketDataService struct {
	mu      sync.Mutex
	prices  map[string]float64
	names   map[string]string
	symbols []string
	log     *zap.Logger
}

func NewMarketDataService(symbols []config.SymbolConfig, log *zap.Logger) *MarketDataService {
	m := &MarketDataService{
		prices: make(map[string]float64, len(symbols)),
		names:  make(map[string]string, len(symbols)),
		log:    log,
	}
	for _, s := range symbols {
		symbol := strings.ToUpper(s.Symbol)
		m.prices[symbol] = s.Price
		m.names[symbol] = s.Name
		m.symbols = append(m.symbols, symbol)
	}
	return m
}

// Symbols returns the tracked symbols in configuration order.
func (m *MarketDataService) Symbols() []string {
	return append([]string(nil), m.symbols...)
}

// Quote advances the random walk for symbol and returns the new quote.
// Unknown symbols are registered at a default base price.
func (m *MarketDataService) Quote(symbol string) models.Stock {
	symbol = strings.ToUpper(symbol)

	m.mu.Lock()
	basePrice, ok := m.prices[symbol]
	if !ok {
		basePrice = defaultBasePrice
	}

	// Realistic price movement, -2% to +2%.
	changePercent := rand.Float64()*4 - 2
	change := basePrice * changePercent / 100
	newPrice := basePrice + change
	m.prices[symbol] = newPrice
	m.mu.Unlock()

	return models.Stock{
		Symbol:        symbol,
		Name:          m.stockName(symbol),
		Price:         newPrice,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        rand.Int63n(5000000) + 1000000,
		Timestamp:     time.Now(),
	}
}

// Quotes advances and returns quotes for every tracked symbol.
func (m *MarketDataService) Quotes() []models.Stock {
	stocks := make([]models.Stock, 0, len(m.symbols))
	for _, symbol := range m.symbols {
		stocks = append(stocks, m.Quote(symbol))
	}
	return stocks
}

// Price returns the current price for symbol without advancing the walk,
// as a decimal suitable for order execution.
func (m *MarketDataService) Price(symbol string) decimal.Decimal {
	symbol = strings.ToUpper(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()
	price, ok := m.prices[symbol]
	if !ok {
		price = defaultBasePrice
		m.prices[symbol] = price
	}
	return decimal.NewFromFloat(price)
}

func (m *MarketDataService) stockName(symbol string) string {
	if name, ok := m.names[symbol]; ok {
		return name
	}
	return fmt.Sprintf("%s Corporation", symbol)
}
