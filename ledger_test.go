package vnfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// mustBuy is a test helper that fails the test on a rejected buy.
func mustBuy(t *testing.T, s State, o BuyOrder) State {
	t.Helper()
	n, err := s.Buy(o)
	if err != nil {
		t.Fatalf("Buy(%+v) failed: %v", o, err)
	}
	return n
}

func mustDeposit(t *testing.T, s State, brokerage, amount string) State {
	t.Helper()
	n, err := s.Deposit(Today(), brokerage, mustMoney(t, amount), "")
	if err != nil {
		t.Fatalf("Deposit(%s, %s) failed: %v", brokerage, amount, err)
	}
	return n
}

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseMoney(s)
	if err != nil {
		t.Fatalf("ParseMoney(%q) failed: %v", s, err)
	}
	return m
}

func TestBuy_CapitalizesFee(t *testing.T) {
	// 100 HPG at 25.000 with a 0.15% fee costs 2.503.750 and the position
	// opens at an average price of 25.037,5.
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")

	s = mustBuy(t, s, BuyOrder{
		Symbol:     "hpg",
		Brokerage:  "SSI",
		Quantity:   Q(100),
		Price:      M(25000),
		FeePercent: decimal.NewFromFloat(0.15),
	})

	h, ok := s.Holding("HPG", "SSI")
	if !ok {
		t.Fatal("expected a HPG holding at SSI")
	}
	if want := Q(100); !h.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", h.Quantity, want)
	}
	if want := mustMoney(t, "25.037,5"); !h.AvgPrice.Equal(want) {
		t.Errorf("avgPrice = %s, want %s", h.AvgPrice.Decimal(), want.Decimal())
	}
	if want := mustMoney(t, "7.496.250"); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}

	txs := justTransactions(s)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	buy, ok := txs[0].(Buy)
	if !ok {
		t.Fatalf("newest transaction is %T, want Buy", txs[0])
	}
	if want := mustMoney(t, "3.750"); !buy.Fee.Equal(want) {
		t.Errorf("fee = %s, want %s", buy.Fee.Decimal(), want.Decimal())
	}
	if want := mustMoney(t, "2.503.750"); !buy.Total.Equal(want) {
		t.Errorf("total = %s, want %s", buy.Total.Decimal(), want.Decimal())
	}
}

func justTransactions(s State) []Transaction {
	var txs []Transaction
	for tx := range s.Transactions() {
		txs = append(txs, tx)
	}
	return txs
}

func TestBuy_WeightedAverage(t *testing.T) {
	// two consecutive buys average cost-weighted, fees included
	s := mustDeposit(t, NewState(), "SSI", "100.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "FPT", Brokerage: "SSI", Quantity: Q(100), Price: M(100000)})
	s = mustBuy(t, s, BuyOrder{Symbol: "FPT", Brokerage: "SSI", Quantity: Q(100), Price: M(120000)})

	h, _ := s.Holding("FPT", "SSI")
	if want := Q(200); !h.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", h.Quantity, want)
	}
	if want := M(110000); !h.AvgPrice.Equal(want) {
		t.Errorf("avgPrice = %s, want %s", h.AvgPrice.Decimal(), want.Decimal())
	}
	// last traded price becomes the current price
	if want := M(120000); !h.CurrentPrice.Equal(want) {
		t.Errorf("currentPrice = %s, want %s", h.CurrentPrice.Decimal(), want.Decimal())
	}

	// buying in the opposite order lands on the same average
	r := mustDeposit(t, NewState(), "SSI", "100.000.000")
	r = mustBuy(t, r, BuyOrder{Symbol: "FPT", Brokerage: "SSI", Quantity: Q(100), Price: M(120000)})
	r = mustBuy(t, r, BuyOrder{Symbol: "FPT", Brokerage: "SSI", Quantity: Q(100), Price: M(100000)})
	g, _ := r.Holding("FPT", "SSI")
	if !g.AvgPrice.Equal(h.AvgPrice) {
		t.Errorf("reversed order avgPrice = %s, want %s", g.AvgPrice.Decimal(), h.AvgPrice.Decimal())
	}
}

func TestZeroValueState_Usable(t *testing.T) {
	// a zero State, not built by NewState, must accept operations
	var zero State
	s, err := zero.Deposit(Today(), "SSI", mustMoney(t, "1.000.000"), "")
	if err != nil {
		t.Fatal(err)
	}
	if want := mustMoney(t, "1.000.000"); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
}

func TestBuy_InsufficientCash(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "1.000.000")

	before := s.Summarize()
	_, err := s.Buy(BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("err = %v, want ErrInsufficientCash", err)
	}

	// the rejected buy must not have touched the state
	after := s.Summarize()
	if !before.TotalCash.Equal(after.TotalCash) {
		t.Errorf("cash changed on rejected buy: %s != %s", before.TotalCash, after.TotalCash)
	}
	if len(justTransactions(s)) != 1 {
		t.Errorf("rejected buy recorded a transaction")
	}
}

func TestBuy_SeparatePerBrokerage(t *testing.T) {
	// the same symbol at two brokerages is two positions
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustDeposit(t, s, "VPS", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "VPS", Quantity: Q(50), Price: M(26000)})

	if _, ok := s.Holding("HPG", "SSI"); !ok {
		t.Error("missing HPG at SSI")
	}
	if _, ok := s.Holding("HPG", "VPS"); !ok {
		t.Error("missing HPG at VPS")
	}
	var count int
	for range s.Holdings() {
		count++
	}
	if count != 2 {
		t.Errorf("holdings = %d, want 2", count)
	}
}

func TestSell_KeepsAveragePrice(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{
		Symbol: "HPG", Brokerage: "SSI",
		Quantity: Q(100), Price: M(25000),
		FeePercent: decimal.NewFromFloat(0.15),
	})
	cashBefore := s.Cash("SSI")

	h, _ := s.Holding("HPG", "SSI")
	avgBefore := h.AvgPrice

	s, err := s.Sell(SellOrder{
		HoldingID:  h.ID,
		Quantity:   Q(50),
		Price:      M(30000),
		FeePercent: decimal.NewFromFloat(0.15),
	})
	if err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	h, ok := s.Holding("HPG", "SSI")
	if !ok {
		t.Fatal("position disappeared after a partial sell")
	}
	if want := Q(50); !h.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", h.Quantity, want)
	}
	if !h.AvgPrice.Equal(avgBefore) {
		t.Errorf("avgPrice changed on sell: %s != %s", h.AvgPrice.Decimal(), avgBefore.Decimal())
	}
	// proceeds: 50*30.000 minus 0.15% fee = 1.497.750
	if want := cashBefore.Add(mustMoney(t, "1.497.750")); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
}

func TestSell_ClosesPositionAtZero(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	h, _ := s.Holding("HPG", "SSI")

	s, err := s.Sell(SellOrder{HoldingID: h.ID, Quantity: Q(100), Price: M(30000)})
	if err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if _, ok := s.Holding("HPG", "SSI"); ok {
		t.Error("position should be removed at zero quantity")
	}
}

func TestSell_InsufficientShares(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	h, _ := s.Holding("HPG", "SSI")

	_, err := s.Sell(SellOrder{HoldingID: h.ID, Quantity: Q(101), Price: M(30000)})
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("err = %v, want ErrInsufficientShares", err)
	}
}

func TestWithdraw_Validated(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "1.000.000")

	if _, err := s.Withdraw(Today(), "SSI", mustMoney(t, "2.000.000"), ""); !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("err = %v, want ErrInsufficientCash", err)
	}
	s, err := s.Withdraw(Today(), "SSI", mustMoney(t, "400.000"), "")
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if want := mustMoney(t, "600.000"); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
}

func TestDeposit_DefaultsToUnknownBucket(t *testing.T) {
	s, err := NewState().Deposit(Today(), "  ", M(1000), "")
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if want := M(1000); !s.Cash(UnknownBrokerage).Equal(want) {
		t.Errorf("unknown bucket = %s, want %s", s.Cash(UnknownBrokerage).Decimal(), want.Decimal())
	}
}

func TestCashDividend_WithholdsTax(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	cashBefore := s.Cash("SSI")
	h, _ := s.Holding("HPG", "SSI")

	s, err := s.CashDividend(Today(), h.ID, M(1000), "")
	if err != nil {
		t.Fatalf("CashDividend failed: %v", err)
	}
	// gross 100.000, net of the 5% withholding: 95.000
	if want := cashBefore.Add(mustMoney(t, "95.000")); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
	div, ok := justTransactions(s)[0].(DividendCash)
	if !ok {
		t.Fatalf("newest transaction is %T, want DividendCash", justTransactions(s)[0])
	}
	if want := mustMoney(t, "5.000"); !div.Fee.Equal(want) {
		t.Errorf("withheld = %s, want %s", div.Fee.Decimal(), want.Decimal())
	}
}

func TestStockDividend_ConservesCostBasis(t *testing.T) {
	// 100 shares at 20.000 plus a 10% stock dividend become 110 shares and
	// the average price dilutes to 18.181,81...
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "MBB", Brokerage: "SSI", Quantity: Q(100), Price: M(20000)})
	h, _ := s.Holding("MBB", "SSI")
	costBefore := h.CostValue()

	s, err := s.StockDividend(Today(), h.ID, decimal.NewFromInt(10), "")
	if err != nil {
		t.Fatalf("StockDividend failed: %v", err)
	}

	h, _ = s.Holding("MBB", "SSI")
	if want := Q(110); !h.Quantity.Equal(want) {
		t.Errorf("quantity = %s, want %s", h.Quantity, want)
	}
	// the diluted average is a repeating decimal, allow a sub-dong residue
	if diff := h.CostValue().Sub(costBefore).Decimal().Abs(); diff.GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("cost basis changed: %s != %s", h.CostValue().Decimal(), costBefore.Decimal())
	}
	// no cash moved
	if want := mustMoney(t, "8.000.000"); !s.Cash("SSI").Equal(want) {
		t.Errorf("cash = %s, want %s", s.Cash("SSI").Decimal(), want.Decimal())
	}
}

func TestAdjustCostBasis(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	h, _ := s.Holding("HPG", "SSI")
	txCount := len(justTransactions(s))

	s, err := s.AdjustCostBasis(h.ID, M(24000))
	if err != nil {
		t.Fatalf("AdjustCostBasis failed: %v", err)
	}
	h, _ = s.Holding("HPG", "SSI")
	if want := M(24000); !h.AvgPrice.Equal(want) {
		t.Errorf("avgPrice = %s, want %s", h.AvgPrice.Decimal(), want.Decimal())
	}
	if len(justTransactions(s)) != txCount {
		t.Error("adjust recorded a transaction")
	}

	if _, err := s.AdjustCostBasis("nope", M(1)); !errors.Is(err, ErrUnknownHolding) {
		t.Errorf("err = %v, want ErrUnknownHolding", err)
	}
}

func TestSummarize(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})
	s = s.SetPrices(map[string]Money{"HPG": M(27000)})

	var err error
	s, err = s.Withdraw(Today(), "SSI", mustMoney(t, "1.000.000"), "")
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	sum := s.Summarize()
	if want := mustMoney(t, "2.700.000"); !sum.StockValue.Equal(want) {
		t.Errorf("stockValue = %s, want %s", sum.StockValue.Decimal(), want.Decimal())
	}
	if want := mustMoney(t, "6.500.000"); !sum.TotalCash.Equal(want) {
		t.Errorf("totalCash = %s, want %s", sum.TotalCash.Decimal(), want.Decimal())
	}
	if want := mustMoney(t, "9.000.000"); !sum.NetCapital.Equal(want) {
		t.Errorf("netCapital = %s, want %s", sum.NetCapital.Decimal(), want.Decimal())
	}
	if want := mustMoney(t, "200.000"); !sum.Profit.Equal(want) {
		t.Errorf("profit = %s, want %s", sum.Profit.Decimal(), want.Decimal())
	}
}

func TestSummarize_ZeroNetCapital(t *testing.T) {
	// profit percent is 0 while net capital is not positive
	sum := NewState().Summarize()
	if sum.ProfitPercent != 0 {
		t.Errorf("profitPercent = %v, want 0", sum.ProfitPercent)
	}
}

func TestTransactions_NewestFirst(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	s = mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})

	txs := justTransactions(s)
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].What() != KindBuy || txs[1].What() != KindDeposit {
		t.Errorf("order = %s, %s; want BUY, DEPOSIT", txs[0].What(), txs[1].What())
	}
}

func TestOperations_DoNotMutateReceiver(t *testing.T) {
	s := mustDeposit(t, NewState(), "SSI", "10.000.000")
	kept := s

	mustBuy(t, s, BuyOrder{Symbol: "HPG", Brokerage: "SSI", Quantity: Q(100), Price: M(25000)})

	if !kept.Cash("SSI").Equal(mustMoney(t, "10.000.000")) {
		t.Error("Buy mutated its receiver")
	}
	if _, ok := kept.Holding("HPG", "SSI"); ok {
		t.Error("Buy added a holding to its receiver")
	}
}
