package vnfolio

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// UnknownBrokerage is the sentinel cash bucket used when an operation does
// not name a brokerage.
const UnknownBrokerage = "unknown"

// Validation errors reported by ledger operations. They are wrapped with
// context, match with errors.Is.
var (
	ErrInsufficientCash   = errors.New("insufficient cash")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrUnknownHolding     = errors.New("unknown holding")
	ErrInvalidOrder       = errors.New("invalid order")
)

// State is the complete ledger: open holdings, the append-only transaction
// history (newest first), and the cash balance of each brokerage bucket.
//
// State is a value. Every operation returns a new State and leaves its
// receiver untouched; on error the receiver is returned unchanged, so a
// rejected operation never partially applies.
type State struct {
	holdings     []Holding
	transactions []Transaction
	cash         map[string]Money
}

// NewState creates an empty ledger state.
func NewState() State {
	return State{cash: make(map[string]Money)}
}

// clone returns a state whose holdings and cash are safe to mutate.
// Transactions are immutable records, prepending builds a fresh slice anyway.
// The zero State has a nil cash map, clone allocates one so the zero value
// is usable.
func (s State) clone() State {
	c := State{
		holdings:     slices.Clone(s.holdings),
		transactions: s.transactions,
		cash:         maps.Clone(s.cash),
	}
	if c.cash == nil {
		c.cash = make(map[string]Money)
	}
	return c
}

func (s *State) prepend(tx Transaction) {
	s.transactions = append([]Transaction{tx}, s.transactions...)
}

// Holdings iterates over open positions in their creation order.
func (s State) Holdings() iter.Seq[Holding] {
	return slices.Values(s.holdings)
}

// Transactions iterates over the history, newest first.
func (s State) Transactions() iter.Seq[Transaction] {
	return slices.Values(s.transactions)
}

// CashBalances iterates over brokerage cash buckets in sorted name order.
func (s State) CashBalances() iter.Seq2[string, Money] {
	return func(yield func(string, Money) bool) {
		names := slices.Collect(maps.Keys(s.cash))
		slices.Sort(names)
		for _, name := range names {
			if !yield(name, s.cash[name]) {
				return
			}
		}
	}
}

// Cash returns the cash balance of one brokerage bucket.
func (s State) Cash(brokerage string) Money {
	return s.cash[normalizeBrokerage(brokerage)]
}

// Holding returns the open position for (symbol, brokerage), if any.
func (s State) Holding(symbol, brokerage string) (Holding, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	brokerage = normalizeBrokerage(brokerage)
	for _, h := range s.holdings {
		if h.Symbol == symbol && h.Brokerage == brokerage {
			return h, true
		}
	}
	return Holding{}, false
}

// HoldingByID returns the open position with the given opaque identifier.
func (s State) HoldingByID(id string) (Holding, bool) {
	for _, h := range s.holdings {
		if h.ID == id {
			return h, true
		}
	}
	return Holding{}, false
}

// Brokerages returns the sorted union of brokerage names appearing in cash
// buckets and holdings.
func (s State) Brokerages() []string {
	seen := make(map[string]struct{})
	for name := range s.cash {
		seen[name] = struct{}{}
	}
	for _, h := range s.holdings {
		seen[h.Brokerage] = struct{}{}
	}
	names := slices.Collect(maps.Keys(seen))
	slices.Sort(names)
	return names
}

func normalizeBrokerage(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownBrokerage
	}
	return name
}

// holdingIndex returns the index of the holding with the given id, or -1.
func (s State) holdingIndex(id string) int {
	return slices.IndexFunc(s.holdings, func(h Holding) bool { return h.ID == id })
}

// BuyOrder is the parameter set of a purchase.
type BuyOrder struct {
	Date       Date
	Brokerage  string
	Symbol     string
	Quantity   Quantity
	Price      Money           // price per share
	FeePercent decimal.Decimal // e.g. 0.15 for a 0.15% fee
	Sector     string
	Note       string
}

// Validate checks the order and applies quick fixes (uppercased symbol,
// sentinel brokerage, today's date).
func (o *BuyOrder) Validate() error {
	o.Symbol = strings.ToUpper(strings.TrimSpace(o.Symbol))
	o.Brokerage = normalizeBrokerage(o.Brokerage)
	if o.Date.IsZero() {
		o.Date = Today()
	}
	if o.Symbol == "" {
		return fmt.Errorf("%w: symbol is missing", ErrInvalidOrder)
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("%w: buy quantity must be positive, got %s", ErrInvalidOrder, o.Quantity)
	}
	if !o.Price.IsPositive() {
		return fmt.Errorf("%w: buy price must be positive, got %s", ErrInvalidOrder, o.Price)
	}
	if o.FeePercent.IsNegative() {
		return fmt.Errorf("%w: fee percent cannot be negative, got %s", ErrInvalidOrder, o.FeePercent)
	}
	return nil
}

// Buy purchases shares from the brokerage's cash bucket.
//
// The fee is capitalized into the cost basis: an existing (symbol, brokerage)
// position is averaged cost-weighted, a new position starts at
// totalCost/quantity. The sector is overwritten with the supplied value.
func (s State) Buy(o BuyOrder) (State, error) {
	if err := o.Validate(); err != nil {
		return s, err
	}

	gross := o.Price.Mul(o.Quantity)
	fee := gross.MulPercent(o.FeePercent)
	totalCost := gross.Add(fee)

	if cash := s.cash[o.Brokerage]; totalCost.GreaterThan(cash) {
		return s, fmt.Errorf("cannot buy %s %s for %s: %w in %q (balance %s)",
			o.Quantity, o.Symbol, totalCost, ErrInsufficientCash, o.Brokerage, cash)
	}

	n := s.clone()
	if h, ok := n.Holding(o.Symbol, o.Brokerage); ok {
		i := n.holdingIndex(h.ID)
		newQty := h.Quantity.Add(o.Quantity)
		// cost-weighted average, fees included in cost basis
		newAvg := h.AvgPrice.Mul(h.Quantity).Add(totalCost).Div(newQty)
		h.Quantity = newQty
		h.AvgPrice = newAvg
		h.CurrentPrice = o.Price
		h.Sector = o.Sector
		n.holdings[i] = h
	} else {
		n.holdings = append(n.holdings, Holding{
			ID:           newID(),
			Symbol:       o.Symbol,
			Quantity:     o.Quantity,
			AvgPrice:     totalCost.Div(o.Quantity),
			CurrentPrice: o.Price,
			Sector:       o.Sector,
			Brokerage:    o.Brokerage,
		})
	}
	n.cash[o.Brokerage] = n.cash[o.Brokerage].Sub(totalCost)
	n.prepend(NewBuy(o.Date, o.Brokerage, o.Note, o.Symbol, o.Quantity, o.Price, fee, totalCost))
	return n, nil
}

// SellOrder is the parameter set of a disposal. HoldingID names the position.
type SellOrder struct {
	Date       Date
	HoldingID  string
	Quantity   Quantity
	Price      Money
	FeePercent decimal.Decimal
	Note       string
}

// Validate checks the order fields that do not depend on state.
func (o *SellOrder) Validate() error {
	if o.Date.IsZero() {
		o.Date = Today()
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("%w: sell quantity must be positive, got %s", ErrInvalidOrder, o.Quantity)
	}
	if !o.Price.IsPositive() {
		return fmt.Errorf("%w: sell price must be positive, got %s", ErrInvalidOrder, o.Price)
	}
	if o.FeePercent.IsNegative() {
		return fmt.Errorf("%w: fee percent cannot be negative, got %s", ErrInvalidOrder, o.FeePercent)
	}
	return nil
}

// Sell disposes of shares. The average cost basis is not recomputed on a
// disposal; realized gains stay implicit in the cash inflow. The position is
// removed entirely when its quantity reaches zero.
func (s State) Sell(o SellOrder) (State, error) {
	if err := o.Validate(); err != nil {
		return s, err
	}
	h, ok := s.HoldingByID(o.HoldingID)
	if !ok {
		return s, fmt.Errorf("sell: %w: %q", ErrUnknownHolding, o.HoldingID)
	}
	if o.Quantity.GreaterThan(h.Quantity) {
		return s, fmt.Errorf("cannot sell %s of %s: %w (position %s)",
			o.Quantity, h.Symbol, ErrInsufficientShares, h.Quantity)
	}

	gross := o.Price.Mul(o.Quantity)
	fee := gross.MulPercent(o.FeePercent)
	proceeds := gross.Sub(fee)

	n := s.clone()
	i := n.holdingIndex(h.ID)
	h.Quantity = h.Quantity.Sub(o.Quantity)
	h.CurrentPrice = o.Price
	if h.Quantity.IsZero() {
		n.holdings = slices.Delete(n.holdings, i, i+1)
	} else {
		n.holdings[i] = h
	}
	n.cash[h.Brokerage] = n.cash[h.Brokerage].Add(proceeds)
	n.prepend(NewSell(o.Date, h.Brokerage, o.Note, h.Symbol, o.Quantity, o.Price, fee, proceeds))
	return n, nil
}

// Deposit adds cash to a brokerage bucket.
func (s State) Deposit(day Date, brokerage string, amount Money, note string) (State, error) {
	brokerage = normalizeBrokerage(brokerage)
	if !amount.IsPositive() {
		return s, fmt.Errorf("%w: deposit amount must be positive, got %s", ErrInvalidOrder, amount)
	}
	n := s.clone()
	n.cash[brokerage] = n.cash[brokerage].Add(amount)
	n.prepend(NewDeposit(day, brokerage, note, amount))
	return n, nil
}

// Withdraw removes cash from a brokerage bucket. Unlike the web original it
// validates the bucket balance, keeping cash non-negative through validated
// operations.
func (s State) Withdraw(day Date, brokerage string, amount Money, note string) (State, error) {
	brokerage = normalizeBrokerage(brokerage)
	if !amount.IsPositive() {
		return s, fmt.Errorf("%w: withdraw amount must be positive, got %s", ErrInvalidOrder, amount)
	}
	if cash := s.cash[brokerage]; amount.GreaterThan(cash) {
		return s, fmt.Errorf("cannot withdraw %s: %w in %q (balance %s)",
			amount, ErrInsufficientCash, brokerage, cash)
	}
	n := s.clone()
	n.cash[brokerage] = n.cash[brokerage].Sub(amount)
	n.prepend(NewWithdraw(day, brokerage, note, amount))
	return n, nil
}

// AdjustCostBasis overwrites a holding's average price. This is a metadata
// correction, not a cash event: no transaction is recorded.
func (s State) AdjustCostBasis(holdingID string, newAvgPrice Money) (State, error) {
	if newAvgPrice.IsNegative() {
		return s, fmt.Errorf("%w: average price cannot be negative, got %s", ErrInvalidOrder, newAvgPrice)
	}
	i := s.holdingIndex(holdingID)
	if i < 0 {
		return s, fmt.Errorf("adjust: %w: %q", ErrUnknownHolding, holdingID)
	}
	n := s.clone()
	n.holdings[i].AvgPrice = newAvgPrice
	return n, nil
}

// dividendWithholding is the fixed personal income tax withheld from cash
// dividends on the Vietnamese market.
var dividendWithholding = decimal.NewFromFloat(0.05)

// CashDividend credits a cash dividend of perShare for every held share, net
// of the fixed 5% withholding.
func (s State) CashDividend(day Date, holdingID string, perShare Money, note string) (State, error) {
	if !perShare.IsPositive() {
		return s, fmt.Errorf("%w: dividend per share must be positive, got %s", ErrInvalidOrder, perShare)
	}
	h, ok := s.HoldingByID(holdingID)
	if !ok {
		return s, fmt.Errorf("dividend: %w: %q", ErrUnknownHolding, holdingID)
	}

	gross := perShare.Mul(h.Quantity)
	net := Money{value: gross.Decimal().Mul(decimal.NewFromInt(1).Sub(dividendWithholding))}
	withheld := gross.Sub(net)

	n := s.clone()
	n.cash[h.Brokerage] = n.cash[h.Brokerage].Add(net)
	n.prepend(NewDividendCash(day, h.Brokerage, note, h.Symbol, perShare, withheld, net))
	return n, nil
}

// StockDividend credits bonus shares at ratioPercent (10 means 10 bonus
// shares per 100 held) and dilutes the average price so the total cost basis
// is conserved.
func (s State) StockDividend(day Date, holdingID string, ratioPercent decimal.Decimal, note string) (State, error) {
	if !ratioPercent.IsPositive() {
		return s, fmt.Errorf("%w: dividend ratio must be positive, got %s", ErrInvalidOrder, ratioPercent)
	}
	h, ok := s.HoldingByID(holdingID)
	if !ok {
		return s, fmt.Errorf("dividend: %w: %q", ErrUnknownHolding, holdingID)
	}

	ratio := Q(ratioPercent.Div(decimal.NewFromInt(100)))
	bonus := h.Quantity.Mul(ratio)
	newQty := h.Quantity.Add(bonus)
	newAvg := h.AvgPrice.Mul(h.Quantity).Div(newQty)

	n := s.clone()
	i := n.holdingIndex(h.ID)
	n.holdings[i].Quantity = newQty
	n.holdings[i].AvgPrice = newAvg
	n.prepend(NewDividendStock(day, h.Brokerage, note, h.Symbol, bonus))
	return n, nil
}

// SetPrices updates the last known market price of every holding whose
// symbol appears in prices. No transaction is recorded.
func (s State) SetPrices(prices map[string]Money) State {
	n := s.clone()
	for i, h := range n.holdings {
		if p, ok := prices[h.Symbol]; ok && p.IsPositive() {
			n.holdings[i].CurrentPrice = p
		}
	}
	return n
}
