package vnfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are stored as bare numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// stateDoc is the persisted shape of a State. Absent fields decode to empty
// collections so a partial document read back from a remote sheet still
// yields a usable state.
type stateDoc struct {
	Holdings     []Holding         `json:"holdings"`
	Transactions []json.RawMessage `json:"transactions"`
	CashBalances map[string]Money  `json:"cashBalances"`
}

// MarshalJSON encodes the state as a flat document of holdings, transactions
// (newest first) and cash balances.
func (s State) MarshalJSON() ([]byte, error) {
	doc := stateDoc{
		Holdings:     s.holdings,
		Transactions: make([]json.RawMessage, 0, len(s.transactions)),
		CashBalances: s.cash,
	}
	if doc.Holdings == nil {
		doc.Holdings = []Holding{}
	}
	if doc.CashBalances == nil {
		doc.CashBalances = map[string]Money{}
	}
	for _, tx := range s.transactions {
		raw, err := json.Marshal(tx)
		if err != nil {
			return nil, fmt.Errorf("cannot encode %s transaction: %w", tx.What(), err)
		}
		doc.Transactions = append(doc.Transactions, raw)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a state document.
func (s *State) UnmarshalJSON(data []byte) error {
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	n := NewState()
	n.holdings = doc.Holdings
	if doc.CashBalances != nil {
		n.cash = doc.CashBalances
	}
	for _, raw := range doc.Transactions {
		tx, err := decodeTransaction(raw)
		if err != nil {
			return err
		}
		n.transactions = append(n.transactions, tx)
	}
	*s = n
	return nil
}

// txDoc is the flat persisted shape shared by every transaction kind.
type txDoc struct {
	ID          string   `json:"id"`
	Date        Date     `json:"date"`
	Kind        Kind     `json:"type"`
	Brokerage   string   `json:"brokerage"`
	Note        string   `json:"note"`
	Symbol      string   `json:"symbol"`
	Quantity    Quantity `json:"quantity"`
	Price       Money    `json:"price"`
	TaxFee      Money    `json:"taxFee"`
	TotalAmount Money    `json:"totalAmount"`
}

func (d txDoc) base() txBase {
	return txBase{Kind: d.Kind, ID: d.ID, Date: d.Date, Brokerage: d.Brokerage, Note: d.Note}
}

func decodeTransaction(raw json.RawMessage) (Transaction, error) {
	var doc txDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode transaction: %w", err)
	}
	switch doc.Kind {
	case KindBuy:
		return Buy{txBase: doc.base(), Symbol: doc.Symbol, Quantity: doc.Quantity, Price: doc.Price, Fee: doc.TaxFee, Total: doc.TotalAmount}, nil
	case KindSell:
		return Sell{txBase: doc.base(), Symbol: doc.Symbol, Quantity: doc.Quantity, Price: doc.Price, Fee: doc.TaxFee, Total: doc.TotalAmount}, nil
	case KindDeposit:
		return Deposit{txBase: doc.base(), Amount: doc.TotalAmount}, nil
	case KindWithdraw:
		return Withdraw{txBase: doc.base(), Amount: doc.TotalAmount}, nil
	case KindDividendCash:
		return DividendCash{txBase: doc.base(), Symbol: doc.Symbol, PerShare: doc.Price, Fee: doc.TaxFee, Net: doc.TotalAmount}, nil
	case KindDividendStock:
		return DividendStock{txBase: doc.base(), Symbol: doc.Symbol, Bonus: doc.Quantity}, nil
	default:
		return nil, fmt.Errorf("cannot decode transaction: unknown type %q", doc.Kind)
	}
}

// EncodeState writes the state document, indented for readable diffs.
func EncodeState(w io.Writer, s State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// DecodeState reads a state document.
func DecodeState(r io.Reader) (State, error) {
	var s State
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return State{}, err
	}
	return s, nil
}

// ReadStateFile loads the state from path. A missing file yields an empty
// state, so a fresh setup needs no init step.
func ReadStateFile(path string) (State, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, err
	}
	defer f.Close()
	s, err := DecodeState(f)
	if err != nil {
		return State{}, fmt.Errorf("cannot read state file %q: %w", path, err)
	}
	return s, nil
}

// WriteStateFile saves the state to path, creating parent directories, via a
// temp file renamed into place.
func WriteStateFile(path string, s State) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vnfolio-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := EncodeState(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write state file %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
