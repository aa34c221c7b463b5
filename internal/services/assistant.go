package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"tradepulse/internal/models"
)

var mockNews = []models.NewsItem{
	{
		Title:   "Fed Signals Potential Rate Cuts Amidst Cooling Inflation",
		Source:  "MarketWatch",
		Summary: "Federal Reserve officials have indicated that recent data showing inflation moving towards the 2% target could open the door for interest rate reductions later this year.",
	},
	{
		Title:   "Tech Sector Rallies as AI Earnings Crush Expectations",
		Source:  "Bloomberg",
		Summary: "Major technology companies exceeded quarterly earnings expectations, driven by surging demand for artificial intelligence infrastructure and software, pushing the NASDAQ to new highs.",
	},
	{
		Title:   "Oil Prices Stabilize as Geopolitical Tensions Balance Supply Concerns",
		Source:  "Reuters",
		Summary: "Crude oil futures held steady around $78 a barrel as traders weighed ongoing geopolitical risks in the Middle East against forecasts of robust global supply growth.",
	},
}

const mockChatReply = "I'm running in offline demo mode right now, so I can't reach the market models. " +
	"Generally speaking: diversify, size positions carefully, and never trade money you can't afford to lose."

// Assistant serves the AI panels: market news, per-symbol deep analysis and
// a chat box. When no API key is configured, or a call fails, it falls back
// to canned demo payloads so the panels always render something.
type Assistant struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewAssistant builds the assistant. An empty apiKey or a client
// initialization failure leaves it in mock mode.
func NewAssistant(ctx context.Context, apiKey, model string, log *zap.Logger) *Assistant {
	if apiKey == "" {
		log.Info("no gemini api key configured, assistant serving mock data")
		return &Assistant{model: model, log: log}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Warn("failed to initialize gemini client, assistant serving mock data", zap.Error(err))
		return &Assistant{model: model, log: log}
	}
	return &Assistant{client: client, model: model, log: log}
}

// MockMode reports whether the assistant serves canned payloads.
func (a *Assistant) MockMode() bool {
	return a.client == nil
}

// MarketNews returns the top market news items for the query.
func (a *Assistant) MarketNews(ctx context.Context, query string) []models.NewsItem {
	if query == "" {
		query = "latest stock market news and trends"
	}
	if a.client == nil {
		return mockNews
	}

	prompt := fmt.Sprintf(`Provide a concise summary of the 3 most important market news items right now for: %s.
Return a RAW JSON array of objects with keys: title, source, summary.
Do NOT wrap the output in markdown code blocks. Just return the raw JSON string.`, query)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn("news fetch failed, serving mock news", zap.Error(err))
		return mockNews
	}

	var items []models.NewsItem
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &items); err != nil || len(items) == 0 {
		a.log.Warn("news response was not valid JSON, serving mock news", zap.Error(err))
		return mockNews
	}
	return items
}

// Analyze returns a markdown deep-analysis report for the symbol.
func (a *Assistant) Analyze(ctx context.Context, symbol string) string {
	symbol = strings.ToUpper(symbol)
	if a.client == nil {
		return mockAnalysis(symbol)
	}

	prompt := fmt.Sprintf(`Analyze the stock %s for a potential long-term investor.
Structure the response with bold headers.
Include:
1. Recommendation (Buy/Sell/Hold)
2. Executive Summary
3. Key Technical Indicators
4. Fundamental Drivers
5. Risk Assessment.`, symbol)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn("analysis failed, serving mock analysis",
			zap.String("symbol", symbol), zap.Error(err))
		return mockAnalysis(symbol)
	}
	return text
}

// Chat answers a free-form trading question.
func (a *Assistant) Chat(ctx context.Context, message string) string {
	if a.client == nil {
		return mockChatReply
	}

	prompt := fmt.Sprintf(`You are a helpful trading assistant inside a simulated trading dashboard.
Answer concisely. This is a paper-trading environment; never give real financial advice disclaimers, just be practical.

User: %s`, message)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		a.log.Warn("chat failed, serving mock reply", zap.Error(err))
		return mockChatReply
	}
	return text
}

func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	chat, err := a.client.Chats.Create(ctx, a.model, nil, nil)
	if err != nil {
		return "", err
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func mockAnalysis(symbol string) string {
	return fmt.Sprintf(`**Deep Analysis: %[1]s**

**Recommendation: STRONG BUY**

**Executive Summary:**
%[1]s is currently trading at an attractive valuation relative to its historical average and peer group. Our models detect a significant accumulation pattern by institutional investors over the past 5 trading sessions.

**Key Technical Indicators:**
*   **RSI (14):** 42.5 (Neutral/Bullish) - Not overbought yet.
*   **MACD:** Bullish crossover detected on the 4H timeframe.
*   **Support Level:** Strong support established at the 50-day moving average.

**Fundamental Drivers:**
1.  **Revenue Growth:** Projected to beat quarterly estimates by 5-8%%.
2.  **Sector Tailwind:** The broader sector is receiving capital inflows due to recent macroeconomic shifts.

**Risk Assessment:**
Short-term volatility may remain high due to upcoming options expiry, but the long-term thesis remains intact. Ideally, entry points should be staggered.`, symbol)
}
