package vnfolio

// Kind is a typed string identifying a transaction variant.
type Kind string

// Transaction kinds recorded in the ledger.
const (
	KindBuy           Kind = "BUY"
	KindSell          Kind = "SELL"
	KindDeposit       Kind = "DEPOSIT"
	KindWithdraw      Kind = "WITHDRAW"
	KindDividendCash  Kind = "DIVIDEND_CASH"
	KindDividendStock Kind = "DIVIDEND_STOCK"
)

// Transaction is the common interface of the ledger's transaction variants.
// Transactions are immutable once created: the ledger only ever prepends
// them, never edits or deletes.
type Transaction interface {
	What() Kind    // What returns the transaction kind (e.g. "BUY").
	When() Date    // When returns the date the transaction was recorded.
	Ref() string   // Ref returns the opaque identifier of the transaction.
	Venue() string // Venue returns the brokerage the transaction applies to.
	Equal(Transaction) bool
}

// txBase carries the fields common to every transaction variant.
type txBase struct {
	Kind      Kind   `json:"type"`
	ID        string `json:"id"`
	Date      Date   `json:"date"`
	Brokerage string `json:"brokerage,omitempty"`
	Note      string `json:"note,omitempty"`
}

func (t txBase) What() Kind    { return t.Kind }
func (t txBase) When() Date    { return t.Date }
func (t txBase) Ref() string   { return t.ID }
func (t txBase) Venue() string { return t.Brokerage }

func (t txBase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Kind)
	w.Optional("brokerage", t.Brokerage)
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}

func newTxBase(kind Kind, day Date, brokerage, note string) txBase {
	if day.IsZero() {
		day = Today()
	}
	return txBase{Kind: kind, ID: newID(), Date: day, Brokerage: brokerage, Note: note}
}

// Buy records the purchase of a quantity of a symbol. Total is the net cash
// outflow including the fee.
type Buy struct {
	txBase
	Symbol   string
	Quantity Quantity
	Price    Money // price per share
	Fee      Money // transaction cost/tax
	Total    Money // Quantity*Price + Fee
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, brokerage, note, symbol string, quantity Quantity, price, fee, total Money) Buy {
	return Buy{
		txBase:   newTxBase(KindBuy, day, brokerage, note),
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
		Total:    total,
	}
}

func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("taxFee", t.Fee)
	w.Append("totalAmount", t.Total)
	return w.MarshalJSON()
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.txBase == o.txBase && t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) &&
		t.Fee.Equal(o.Fee) && t.Total.Equal(o.Total)
}

// Sell records the disposal of a quantity of a symbol. Total is the net cash
// inflow after the fee.
type Sell struct {
	txBase
	Symbol   string
	Quantity Quantity
	Price    Money
	Fee      Money
	Total    Money // Quantity*Price - Fee
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, brokerage, note, symbol string, quantity Quantity, price, fee, total Money) Sell {
	return Sell{
		txBase:   newTxBase(KindSell, day, brokerage, note),
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
		Total:    total,
	}
}

func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("taxFee", t.Fee)
	w.Append("totalAmount", t.Total)
	return w.MarshalJSON()
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.txBase == o.txBase && t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) &&
		t.Fee.Equal(o.Fee) && t.Total.Equal(o.Total)
}

// Deposit records cash added to a brokerage account.
type Deposit struct {
	txBase
	Amount Money
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day Date, brokerage, note string, amount Money) Deposit {
	return Deposit{txBase: newTxBase(KindDeposit, day, brokerage, note), Amount: amount}
}

func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("taxFee", M(0))
	w.Append("totalAmount", t.Amount)
	return w.MarshalJSON()
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.txBase == o.txBase && t.Amount.Equal(o.Amount)
}

// Withdraw records cash removed from a brokerage account.
type Withdraw struct {
	txBase
	Amount Money
}

// NewWithdraw creates a new Withdraw transaction.
func NewWithdraw(day Date, brokerage, note string, amount Money) Withdraw {
	return Withdraw{txBase: newTxBase(KindWithdraw, day, brokerage, note), Amount: amount}
}

func (t Withdraw) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("taxFee", M(0))
	w.Append("totalAmount", t.Amount)
	return w.MarshalJSON()
}

func (t Withdraw) Equal(other Transaction) bool {
	o, ok := other.(Withdraw)
	return ok && t.txBase == o.txBase && t.Amount.Equal(o.Amount)
}

// DividendCash records a cash dividend, net of the fixed withholding tax.
type DividendCash struct {
	txBase
	Symbol   string
	PerShare Money // declared amount per share, before withholding
	Fee      Money // withheld tax (gross - net)
	Net      Money // cash actually credited
}

// NewDividendCash creates a new DividendCash transaction.
func NewDividendCash(day Date, brokerage, note, symbol string, perShare, fee, net Money) DividendCash {
	return DividendCash{
		txBase:   newTxBase(KindDividendCash, day, brokerage, note),
		Symbol:   symbol,
		PerShare: perShare,
		Fee:      fee,
		Net:      net,
	}
}

func (t DividendCash) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("symbol", t.Symbol)
	w.Append("price", t.PerShare)
	w.Append("taxFee", t.Fee)
	w.Append("totalAmount", t.Net)
	return w.MarshalJSON()
}

func (t DividendCash) Equal(other Transaction) bool {
	o, ok := other.(DividendCash)
	return ok && t.txBase == o.txBase && t.Symbol == o.Symbol &&
		t.PerShare.Equal(o.PerShare) && t.Fee.Equal(o.Fee) && t.Net.Equal(o.Net)
}

// DividendStock records bonus shares credited by a stock dividend. It has no
// cash effect; Bonus is the number of extra shares.
type DividendStock struct {
	txBase
	Symbol string
	Bonus  Quantity
}

// NewDividendStock creates a new DividendStock transaction.
func NewDividendStock(day Date, brokerage, note, symbol string, bonus Quantity) DividendStock {
	return DividendStock{
		txBase: newTxBase(KindDividendStock, day, brokerage, note),
		Symbol: symbol,
		Bonus:  bonus,
	}
}

func (t DividendStock) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.txBase)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Bonus)
	w.Append("taxFee", M(0))
	w.Append("totalAmount", M(0))
	return w.MarshalJSON()
}

func (t DividendStock) Equal(other Transaction) bool {
	o, ok := other.(DividendStock)
	return ok && t.txBase == o.txBase && t.Symbol == o.Symbol && t.Bonus.Equal(o.Bonus)
}
