package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// TransactionKind separates trades from plain cash movements so cash
// deposits and withdrawals never masquerade as buy/sell orders.
type TransactionKind string

const (
	KindTrade      TransactionKind = "trade"
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

type Status string

const StatusCompleted Status = "completed"

// Position is an aggregated holding of one symbol. Quantity is always
// positive; a fully sold position is removed from the account instead of
// being kept at zero.
type Position struct {
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"avgCost"`
}

// Transaction is an immutable execution record. For cash movements Side and
// Symbol are empty and Price/Quantity/Fee are zero.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	Side        Side            `json:"side,omitempty"`
	Symbol      string          `json:"symbol,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	Fee         decimal.Decimal `json:"fee"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      Status          `json:"status"`
}

// Account is the aggregate owning a user's cash, holdings, execution history
// and gamification counters. Transactions are kept newest first and are only
// ever prepended, never edited or removed.
type Account struct {
	CashBalance  decimal.Decimal     `json:"cashBalance"`
	Holdings     map[string]Position `json:"holdings"`
	Transactions []Transaction       `json:"transactions"`
	XP           int64               `json:"xp"`
	Level        int64               `json:"level"`
}

func NewAccount(startingCash decimal.Decimal) *Account {
	return &Account{
		CashBalance: startingCash,
		Holdings:    make(map[string]Position),
		XP:          0,
		Level:       1,
	}
}

// NewDemoAccount builds the bootstrap account the dashboard expects at login:
// the seeded cash balance plus two starter positions and their purchase
// records.
func NewDemoAccount(startingCash decimal.Decimal, now time.Time) *Account {
	acct := NewAccount(startingCash)

	aaplQty, aaplPrice := decimal.NewFromInt(10), decimal.NewFromInt(150)
	nvdaQty, nvdaPrice := decimal.NewFromInt(5), decimal.NewFromInt(800)

	acct.Holdings["AAPL"] = Position{Symbol: "AAPL", Quantity: aaplQty, AverageCost: aaplPrice}
	acct.Holdings["NVDA"] = Position{Symbol: "NVDA", Quantity: nvdaQty, AverageCost: nvdaPrice}

	acct.Transactions = []Transaction{
		{
			ID: "TX-2", Kind: KindTrade, Side: Buy, Symbol: "NVDA",
			Price: nvdaPrice, Quantity: nvdaQty,
			GrossAmount: nvdaPrice.Mul(nvdaQty), NetAmount: nvdaPrice.Mul(nvdaQty),
			Timestamp: now, Status: StatusCompleted,
		},
		{
			ID: "TX-1", Kind: KindTrade, Side: Buy, Symbol: "AAPL",
			Price: aaplPrice, Quantity: aaplQty,
			GrossAmount: aaplPrice.Mul(aaplQty), NetAmount: aaplPrice.Mul(aaplQty),
			Timestamp: now, Status: StatusCompleted,
		},
	}
	return acct
}

// Position returns the holding for symbol, if any.
func (a *Account) Position(symbol string) (Position, bool) {
	p, ok := a.Holdings[symbol]
	return p, ok
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	c := &Account{
		CashBalance:  a.CashBalance,
		Holdings:     make(map[string]Position, len(a.Holdings)),
		Transactions: append([]Transaction(nil), a.Transactions...),
		XP:           a.XP,
		Level:        a.Level,
	}
	for symbol, pos := range a.Holdings {
		c.Holdings[symbol] = pos
	}
	return c
}
