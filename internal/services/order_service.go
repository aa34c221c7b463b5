package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradepulse/internal/ledger"
)

// OrderRequest is a fully resolved trade request: for market orders the
// price is looked up from the price source at execution time, for limit
// orders the client's price is used as-is.
type OrderRequest struct {
	Side      ledger.Side
	Symbol    string
	OrderType string // "market" or "limit"
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// OrderService runs trade requests and cash movements against a session's
// account under the session lock and fans out the resulting notifications.
type OrderService struct {
	engine   *ledger.Engine
	market   *MarketDataService
	notifier *Notifier
	log      *zap.Logger
}

func NewOrderService(engine *ledger.Engine, market *MarketDataService, notifier *Notifier, log *zap.Logger) *OrderService {
	return &OrderService{engine: engine, market: market, notifier: notifier, log: log}
}

// Place executes one order for the session. On failure the account is left
// untouched and the failure is surfaced both as the returned error and as a
// toast.
func (s *OrderService) Place(session *Session, req OrderRequest) (*ledger.Receipt, error) {
	price := req.Price
	if req.OrderType == "market" {
		price = s.market.Price(req.Symbol)
	}

	var receipt *ledger.Receipt
	err := session.WithAccount(func(acct *ledger.Account) error {
		r, err := s.engine.ExecuteOrder(acct, req.Side, req.Symbol, req.Quantity, price)
		receipt = r
		return err
	})
	if err != nil {
		s.log.Info("order rejected",
			zap.String("session_id", session.ID),
			zap.String("symbol", req.Symbol),
			zap.Error(err))
		s.notifier.TradeFailed(err)
		return nil, err
	}

	s.log.Info("order executed",
		zap.String("session_id", session.ID),
		zap.String("symbol", req.Symbol),
		zap.String("side", string(req.Side)),
		zap.String("quantity", req.Quantity.String()),
		zap.String("price", price.String()))

	s.notifier.TradeExecuted(req.Side, req.Symbol, req.Quantity)
	for _, level := range receipt.LevelUps {
		s.notifier.LevelUp(level)
	}
	return receipt, nil
}

// MoveCash applies a deposit or withdrawal to the session's account.
func (s *OrderService) MoveCash(session *Session, action string, amount decimal.Decimal) (*ledger.Receipt, error) {
	var receipt *ledger.Receipt
	err := session.WithAccount(func(acct *ledger.Account) error {
		var err error
		switch action {
		case "deposit":
			receipt, err = s.engine.Deposit(acct, amount)
		case "withdraw":
			receipt, err = s.engine.Withdraw(acct, amount)
		default:
			err = fmt.Errorf("invalid cash action: %s", action)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// PortfolioValue prices the session's holdings at current market prices.
func (s *OrderService) PortfolioValue(session *Session) decimal.Decimal {
	acct := session.AccountSnapshot()
	value := decimal.Zero
	for symbol, pos := range acct.Holdings {
		value = value.Add(pos.Quantity.Mul(s.market.Price(symbol)))
	}
	return value
}
