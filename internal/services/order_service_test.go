package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradepulse/internal/ledger"
	"tradepulse/internal/services"
)

func newTestOrderService() (*services.OrderService, *services.SessionService) {
	log := zap.NewNop()
	market := services.NewMarketDataService(testSymbols(), log)
	hub := services.NewWebSocketHub(log)
	notifier := services.NewNotifier(hub, log)
	engine := ledger.NewEngine(ledger.DefaultFeeRate)
	sessions := newTestSessions()
	return services.NewOrderService(engine, market, notifier, log), sessions
}

func TestPlaceLimitBuy(t *testing.T) {
	orders, sessions := newTestOrderService()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	receipt, err := orders.Place(session, services.OrderRequest{
		Side:      ledger.Buy,
		Symbol:    "TSLA",
		OrderType: "limit",
		Quantity:  decimal.NewFromInt(10),
		Price:     decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	// 50000 - 10*200*1.001
	assert.Equal(t, "47998", receipt.CashBalance.String())
	require.NotNil(t, receipt.Position)
	assert.Equal(t, "200", receipt.Position.AverageCost.String())

	acct := session.AccountSnapshot()
	assert.Equal(t, "47998", acct.CashBalance.String())
	assert.Len(t, acct.Transactions, 3)
}

func TestPlaceMarketOrderResolvesPriceFromSource(t *testing.T) {
	orders, sessions := newTestOrderService()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	receipt, err := orders.Place(session, services.OrderRequest{
		Side:      ledger.Buy,
		Symbol:    "AAPL",
		OrderType: "market",
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	// Seeded AAPL base price, untouched because nothing advanced the walk.
	assert.Equal(t, "173.5", receipt.Transaction.Price.String())
}

func TestPlaceRejectsOversizedSell(t *testing.T) {
	orders, sessions := newTestOrderService()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	before := session.AccountSnapshot()
	_, err = orders.Place(session, services.OrderRequest{
		Side:      ledger.Sell,
		Symbol:    "AAPL",
		OrderType: "limit",
		Quantity:  decimal.NewFromInt(999),
		Price:     decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, ledger.ErrInsufficientShares)
	assert.Equal(t, before, session.AccountSnapshot())
}

func TestMoveCash(t *testing.T) {
	orders, sessions := newTestOrderService()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	receipt, err := orders.MoveCash(session, "deposit", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "51000", receipt.CashBalance.String())
	assert.Equal(t, ledger.KindDeposit, receipt.Transaction.Kind)

	receipt, err = orders.MoveCash(session, "withdraw", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "50500", receipt.CashBalance.String())

	_, err = orders.MoveCash(session, "transfer", decimal.NewFromInt(1))
	require.Error(t, err)

	_, err = orders.MoveCash(session, "withdraw", decimal.NewFromInt(9999999))
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestPortfolioValuePricesHoldings(t *testing.T) {
	orders, sessions := newTestOrderService()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	// Demo seeds: 10 AAPL @ base 173.50 plus 5 NVDA (untracked, $100 default).
	value := orders.PortfolioValue(session)
	assert.Equal(t, "2235", value.String())
}
