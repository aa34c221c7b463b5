package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradepulse/internal/services"
)

func newTestSessions() *services.SessionService {
	return services.NewSessionService("test-secret", decimal.NewFromInt(50000), zap.NewNop())
}

func TestLoginSeedsDemoAccount(t *testing.T) {
	sessions := newTestSessions()

	session, token, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	acct := session.AccountSnapshot()
	assert.Equal(t, "50000", acct.CashBalance.String())
	assert.Len(t, acct.Holdings, 2)
	assert.Len(t, acct.Transactions, 2)
	assert.Equal(t, int64(1), acct.Level)
}

func TestVerifyRoundTrip(t *testing.T) {
	sessions := newTestSessions()

	session, token, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	resolved, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, resolved.ID)
	assert.Equal(t, "Alex", resolved.Name)
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	sessions := newTestSessions()
	_, err := sessions.Verify("not-a-token")
	require.Error(t, err)
}

func TestLogoutDiscardsSession(t *testing.T) {
	sessions := newTestSessions()

	session, token, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	sessions.Logout(session.ID)

	_, ok := sessions.Get(session.ID)
	assert.False(t, ok)

	// The token still parses but no longer resolves to anything.
	_, err = sessions.Verify(token)
	require.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestWatchlist(t *testing.T) {
	sessions := newTestSessions()
	session, _, err := sessions.Login("Alex", "alex@example.com")
	require.NoError(t, err)

	assert.Empty(t, session.Watchlist())

	session.AddToWatchlist("NVDA")
	session.AddToWatchlist("AAPL")
	session.AddToWatchlist("NVDA")
	assert.Equal(t, []string{"AAPL", "NVDA"}, session.Watchlist())

	session.RemoveFromWatchlist("AAPL")
	assert.Equal(t, []string{"NVDA"}, session.Watchlist())
}
