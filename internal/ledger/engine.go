package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds is returned when a buy or a withdrawal would
	// drive the cash balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares is returned when a sell asks for more shares
	// than are held; a symbol that is not held at all counts as zero.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// DefaultFeeRate is the fraction of gross trade value charged per execution.
var DefaultFeeRate = decimal.RequireFromString("0.001")

const (
	DefaultXPPerTrade = 50

	// A level is cleared once XP reaches level*xpPerLevelFactor.
	xpPerLevelFactor = 100
)

// Engine applies trade requests and cash movements to an Account. Every call
// either fully commits or fully fails: all validation happens before the
// first write, so a failed call leaves the account untouched.
//
// The engine itself is a plain synchronous state transition; callers that
// share an account across goroutines must serialize access themselves.
type Engine struct {
	feeRate    decimal.Decimal
	xpPerTrade int64
	now        func() time.Time
	nextID     func() string
}

type Option func(*Engine)

// WithClock overrides the transaction timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the transaction ID source.
func WithIDGenerator(nextID func() string) Option {
	return func(e *Engine) { e.nextID = nextID }
}

// WithXPPerTrade overrides the flat XP award per executed trade.
func WithXPPerTrade(xp int64) Option {
	return func(e *Engine) { e.xpPerTrade = xp }
}

func NewEngine(feeRate decimal.Decimal, opts ...Option) *Engine {
	e := &Engine{
		feeRate:    feeRate,
		xpPerTrade: DefaultXPPerTrade,
		now:        time.Now,
		nextID:     func() string { return fmt.Sprintf("TX-%d", time.Now().UnixNano()) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Receipt describes the delta a successful call produced, with enough
// structure for the caller to build any human-readable message.
type Receipt struct {
	Transaction Transaction     `json:"transaction"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	// Position is the holding after the call; nil when the trade closed
	// the position or the call was a cash movement.
	Position *Position `json:"position,omitempty"`
	XP       int64     `json:"xp"`
	Level    int64     `json:"level"`
	// LevelUps lists every level reached during this call, one entry per
	// level even when a single award clears several thresholds.
	LevelUps []int64 `json:"levelUps,omitempty"`
}

// ExecuteOrder applies a single buy or sell at the given per-unit price.
// Order-type resolution (market vs limit) is the caller's job; the engine
// only executes at the price it is handed.
func (e *Engine) ExecuteOrder(acct *Account, side Side, symbol string, quantity, price decimal.Decimal) (*Receipt, error) {
	gross := price.Mul(quantity)
	fee := gross.Mul(e.feeRate)

	switch side {
	case Buy:
		return e.executeBuy(acct, symbol, quantity, price, gross, fee)
	case Sell:
		return e.executeSell(acct, symbol, quantity, price, gross, fee)
	default:
		return nil, fmt.Errorf("invalid order side: %s", side)
	}
}

func (e *Engine) executeBuy(acct *Account, symbol string, quantity, price, gross, fee decimal.Decimal) (*Receipt, error) {
	netDebit := gross.Add(fee)
	if netDebit.GreaterThan(acct.CashBalance) {
		return nil, fmt.Errorf("%w: have $%s, need $%s", ErrInsufficientFunds, acct.CashBalance, netDebit)
	}

	pos, held := acct.Holdings[symbol]
	if held {
		// Weighted average over the gross amounts; fees reduce cash but
		// never inflate the cost basis.
		newQuantity := pos.Quantity.Add(quantity)
		totalCost := pos.Quantity.Mul(pos.AverageCost).Add(gross)
		pos.Quantity = newQuantity
		pos.AverageCost = totalCost.Div(newQuantity)
	} else {
		pos = Position{Symbol: symbol, Quantity: quantity, AverageCost: price}
	}
	acct.Holdings[symbol] = pos
	acct.CashBalance = acct.CashBalance.Sub(netDebit)

	tx := e.record(acct, Transaction{
		Kind: KindTrade, Side: Buy, Symbol: symbol,
		Price: price, Quantity: quantity,
		GrossAmount: gross, Fee: fee, NetAmount: netDebit,
	})

	receipt := &Receipt{Transaction: tx, CashBalance: acct.CashBalance, Position: &pos}
	e.awardXP(acct, receipt)
	return receipt, nil
}

func (e *Engine) executeSell(acct *Account, symbol string, quantity, price, gross, fee decimal.Decimal) (*Receipt, error) {
	pos, held := acct.Holdings[symbol]
	if !held || pos.Quantity.LessThan(quantity) {
		have := decimal.Zero
		if held {
			have = pos.Quantity
		}
		return nil, fmt.Errorf("%w: have %s %s, want %s", ErrInsufficientShares, have, symbol, quantity)
	}

	netCredit := gross.Sub(fee)

	var remaining *Position
	if pos.Quantity.Equal(quantity) {
		// Full close discards the cost basis; a later buy starts fresh.
		delete(acct.Holdings, symbol)
	} else {
		pos.Quantity = pos.Quantity.Sub(quantity)
		acct.Holdings[symbol] = pos
		remaining = &pos
	}
	acct.CashBalance = acct.CashBalance.Add(netCredit)

	tx := e.record(acct, Transaction{
		Kind: KindTrade, Side: Sell, Symbol: symbol,
		Price: price, Quantity: quantity,
		GrossAmount: gross, Fee: fee, NetAmount: netCredit,
	})

	receipt := &Receipt{Transaction: tx, CashBalance: acct.CashBalance, Position: remaining}
	e.awardXP(acct, receipt)
	return receipt, nil
}

// Deposit credits the cash balance. Cash movements carry no fee and award
// no XP.
func (e *Engine) Deposit(acct *Account, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive, got %s", amount)
	}
	acct.CashBalance = acct.CashBalance.Add(amount)
	tx := e.record(acct, Transaction{Kind: KindDeposit, GrossAmount: amount, NetAmount: amount})
	return &Receipt{Transaction: tx, CashBalance: acct.CashBalance, XP: acct.XP, Level: acct.Level}, nil
}

// Withdraw debits the cash balance, failing with ErrInsufficientFunds when
// the balance does not cover the amount.
func (e *Engine) Withdraw(acct *Account, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive, got %s", amount)
	}
	if amount.GreaterThan(acct.CashBalance) {
		return nil, fmt.Errorf("%w: have $%s, need $%s", ErrInsufficientFunds, acct.CashBalance, amount)
	}
	acct.CashBalance = acct.CashBalance.Sub(amount)
	tx := e.record(acct, Transaction{Kind: KindWithdrawal, GrossAmount: amount, NetAmount: amount})
	return &Receipt{Transaction: tx, CashBalance: acct.CashBalance, XP: acct.XP, Level: acct.Level}, nil
}

func (e *Engine) record(acct *Account, tx Transaction) Transaction {
	tx.ID = e.nextID()
	tx.Timestamp = e.now()
	tx.Status = StatusCompleted
	acct.Transactions = append([]Transaction{tx}, acct.Transactions...)
	return tx
}

func (e *Engine) awardXP(acct *Account, receipt *Receipt) {
	acct.XP += e.xpPerTrade
	// A single award can clear several thresholds in a row.
	for acct.XP >= acct.Level*xpPerLevelFactor {
		acct.XP -= acct.Level * xpPerLevelFactor
		acct.Level++
		receipt.LevelUps = append(receipt.LevelUps, acct.Level)
	}
	receipt.XP = acct.XP
	receipt.Level = acct.Level
}
