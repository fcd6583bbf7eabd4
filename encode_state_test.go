package vnfolio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestState_RoundTrip(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000), Sector: "Steel"})
	var err error
	s, err = s.Withdraw(Today(), "SSI", mustMoney(t, "500.000"), "rent")
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeState(&buf, s); err != nil {
		t.Fatalf("EncodeState failed: %v", err)
	}
	got, err := DecodeState(&buf)
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}

	if !got.Cash("SSI").Equal(s.Cash("SSI")) {
		t.Errorf("cash = %s, want %s", got.Cash("SSI").Decimal(), s.Cash("SSI").Decimal())
	}
	h, ok := got.Holding("HPG", "SSI")
	if !ok {
		t.Fatal("holding lost in round trip")
	}
	if h.Sector != "Steel" {
		t.Errorf("sector = %q, want Steel", h.Sector)
	}

	want := justTransactions(s)
	txs := justTransactions(got)
	if len(txs) != len(want) {
		t.Fatalf("transactions = %d, want %d", len(txs), len(want))
	}
	for i := range txs {
		if !txs[i].Equal(want[i]) {
			t.Errorf("transaction %d differs:\n got %+v\nwant %+v", i, txs[i], want[i])
		}
	}
}

func TestState_DecodePartialDocument(t *testing.T) {
	// a document missing whole sections still yields a usable state
	doc := `{"cashBalances": {"SSI": 1000000}}`
	s, err := DecodeState(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeState failed: %v", err)
	}
	if want := M(1000000); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
	if n := len(justTransactions(s)); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}
	if _, err := s.Deposit(Today(), "VPS", M(1), ""); err != nil {
		t.Errorf("decoded state not operable: %v", err)
	}
}

func TestState_DecodeUnknownTransactionType(t *testing.T) {
	doc := `{"transactions": [{"id": "x", "date": "01/01/2025", "type": "SPLIT"}]}`
	if _, err := DecodeState(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an unknown transaction type")
	}
}

func TestState_MarshalShape(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "1.000.000")
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	// amounts must be bare numbers, not strings
	if strings.Contains(string(data), `"1000000"`) {
		t.Errorf("amount marshaled as a string: %s", data)
	}
	if !strings.Contains(string(data), `"cashBalances":{"SSI":1000000}`) {
		t.Errorf("unexpected cashBalances shape: %s", data)
	}
	if !strings.Contains(string(data), `"type":"DEPOSIT"`) {
		t.Errorf("missing transaction type discriminator: %s", data)
	}
}

func TestReadStateFile_Missing(t *testing.T) {
	s, err := ReadStateFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should yield an empty state, got: %v", err)
	}
	if n := len(justTransactions(s)); n != 0 {
		t.Errorf("transactions = %d, want 0", n)
	}
}

func TestWriteStateFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "portfolio.json")
	s := mustDeposit(t, NewState(), "SSI", "1.000.000")

	if err := WriteStateFile(path, s); err != nil {
		t.Fatalf("WriteStateFile failed: %v", err)
	}
	got, err := ReadStateFile(path)
	if err != nil {
		t.Fatalf("ReadStateFile failed: %v", err)
	}
	if !got.Cash("SSI").Equal(s.Cash("SSI")) {
		t.Errorf("cash = %s, want %s", got.Cash("SSI").Decimal(), s.Cash("SSI").Decimal())
	}
}
