package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepulse/internal/ledger"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one logged-in demo identity. The account lives only as long as
// the session; logout discards both. The mutex is the single-writer boundary
// for the account: every ledger mutation happens under it because HTTP
// requests for the same session can arrive concurrently.
type Session struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time

	mu        sync.Mutex
	account   *ledger.Account
	watchlist map[string]struct{}
}

// WithAccount runs fn with exclusive access to the session's account.
func (s *Session) WithAccount(fn func(*ledger.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.account)
}

// AccountSnapshot returns a deep copy safe to serialize without holding
// the lock.
func (s *Session) AccountSnapshot() *ledger.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Clone()
}

func (s *Session) AddToWatchlist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchlist[symbol] = struct{}{}
}

func (s *Session) RemoveFromWatchlist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchlist, symbol)
}

func (s *Session) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	symbols := make([]string, 0, len(s.watchlist))
	for symbol := range s.watchlist {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// SessionService holds every live demo session in memory and mints the JWT
// tokens that route requests back to them. There is no password backend;
// logging in with a name and email is all it takes, as in any demo account.
type SessionService struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	secret       []byte
	startingCash decimal.Decimal
	log          *zap.Logger
}

func NewSessionService(secret string, startingCash decimal.Decimal, log *zap.Logger) *SessionService {
	return &SessionService{
		sessions:     make(map[string]*Session),
		secret:       []byte(secret),
		startingCash: startingCash,
		log:          log,
	}
}

// Login creates a session with a freshly seeded demo account and returns it
// together with a signed token.
func (s *SessionService) Login(name, email string) (*Session, string, error) {
	session := &Session{
		ID:        newSessionID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
		account:   ledger.NewDemoAccount(s.startingCash, time.Now()),
		watchlist: make(map[string]struct{}),
	}

	token, err := s.mintToken(session)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("name", name))
	return session, token, nil
}

// Get returns the live session for id.
func (s *SessionService) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Logout discards the session and its account.
func (s *SessionService) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Info("session ended", zap.String("session_id", id))
}

// Verify parses a token and resolves it to a live session.
func (s *SessionService) Verify(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	id, ok := claims["sessionID"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	session, ok := s.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) mintToken(session *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sessionID": session.ID,
		"name":      session.Name,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.secret)
}

func newSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
