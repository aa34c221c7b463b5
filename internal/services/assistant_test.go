package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradepulse/internal/services"
)

func TestAssistantWithoutKeyServesMockData(t *testing.T) {
	ctx := context.Background()
	assistant := services.NewAssistant(ctx, "", "gemini-2.5-flash", zap.NewNop())
	require.True(t, assistant.MockMode())

	news := assistant.MarketNews(ctx, "")
	require.Len(t, news, 3)
	for _, item := range news {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Source)
		assert.NotEmpty(t, item.Summary)
	}

	analysis := assistant.Analyze(ctx, "aapl")
	assert.Contains(t, analysis, "AAPL")
	assert.Contains(t, analysis, "Recommendation")

	reply := assistant.Chat(ctx, "should I buy TSLA?")
	assert.NotEmpty(t, reply)
}
