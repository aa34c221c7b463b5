package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/internal/ledger"
)

func TestNewAccountStartsAtLevelOne(t *testing.T) {
	acct := ledger.NewAccount(dec("50000"))
	assert.Equal(t, int64(1), acct.Level)
	assert.Equal(t, int64(0), acct.XP)
	assert.Empty(t, acct.Holdings)
	assert.Empty(t, acct.Transactions)
}

func TestNewDemoAccountSeedsStarterPortfolio(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	acct := ledger.NewDemoAccount(dec("50000"), now)

	assert.Equal(t, "50000", acct.CashBalance.String())

	aapl, ok := acct.Position("AAPL")
	require.True(t, ok)
	assert.Equal(t, "10", aapl.Quantity.String())
	assert.Equal(t, "150", aapl.AverageCost.String())

	nvda, ok := acct.Position("NVDA")
	require.True(t, ok)
	assert.Equal(t, "5", nvda.Quantity.String())
	assert.Equal(t, "800", nvda.AverageCost.String())

	require.Len(t, acct.Transactions, 2)
	for _, tx := range acct.Transactions {
		assert.Equal(t, ledger.StatusCompleted, tx.Status)
		assert.Equal(t, ledger.KindTrade, tx.Kind)
		assert.Equal(t, ledger.Buy, tx.Side)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	engine := newTestEngine()
	acct := ledger.NewAccount(dec("10000"))
	_, err := engine.ExecuteOrder(acct, ledger.Buy, "AAPL", dec("10"), dec("100"))
	require.NoError(t, err)

	clone := acct.Clone()
	require.Equal(t, acct, clone)

	_, err = engine.ExecuteOrder(acct, ledger.Buy, "AAPL", dec("10"), dec("200"))
	require.NoError(t, err)

	assert.Equal(t, "100", clone.Holdings["AAPL"].AverageCost.String())
	assert.Len(t, clone.Transactions, 1)
	assert.Equal(t, "150", acct.Holdings["AAPL"].AverageCost.String())
	assert.Len(t, acct.Transactions, 2)
}
