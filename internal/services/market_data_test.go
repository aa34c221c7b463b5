package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradepulse/config"
	"tradepulse/internal/services"
)

func testSymbols() []config.SymbolConfig {
	return []config.SymbolConfig{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 173.50},
		{Symbol: "TSLA", Name: "Tesla, Inc.", Price: 205.60},
	}
}

func TestQuoteStaysWithinStepBounds(t *testing.T) {
	market := services.NewMarketDataService(testSymbols(), zap.NewNop())

	base := 173.50
	for i := 0; i < 100; i++ {
		quote := market.Quote("AAPL")
		assert.Equal(t, "AAPL", quote.Symbol)
		assert.Equal(t, "Apple Inc.", quote.Name)
		assert.InDelta(t, base, quote.Price, base*0.02+1e-9, "step must stay within 2 percent")
		assert.GreaterOrEqual(t, quote.Volume, int64(1000000))
		base = quote.Price
	}
}

func TestQuoteAdvancesTheWalk(t *testing.T) {
	market := services.NewMarketDataService(testSymbols(), zap.NewNop())

	first := market.Quote("TSLA")
	price := market.Price("TSLA")
	// Price reflects the last quote without stepping again.
	f, _ := price.Float64()
	assert.InDelta(t, first.Price, f, 1e-9)
}

func TestUnknownSymbolGetsDefaultBase(t *testing.T) {
	market := services.NewMarketDataService(testSymbols(), zap.NewNop())

	price := market.Price("ZZZZ")
	assert.Equal(t, "100", price.String())

	quote := market.Quote("zzzz")
	assert.Equal(t, "ZZZZ", quote.Symbol)
	assert.Equal(t, "ZZZZ Corporation", quote.Name)
}

func TestQuotesCoversAllTrackedSymbols(t *testing.T) {
	market := services.NewMarketDataService(testSymbols(), zap.NewNop())

	quotes := market.Quotes()
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "TSLA", quotes[1].Symbol)
}
