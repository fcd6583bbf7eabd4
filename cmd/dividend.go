package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/tdvinh/vnfolio"
)

// dividendCmd is a container for dividend subcommands
type dividendCmd struct {
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a cash or stock dividend" }
func (*dividendCmd) Usage() string {
	return `dividend <subcommand> [args]

Commands:
  cash  - Credit a cash dividend net of the 5% withholding tax.
  stock - Credit bonus shares and dilute the average price.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {}
func (c *dividendCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "dividend")
	commander.Register(&dividendCashCmd{}, "")
	commander.Register(&dividendStockCmd{}, "")
	return commander.Execute(ctx, args...)
}

// resolveHolding finds the position named by a symbol/brokerage flag pair.
func resolveHolding(s vnfolio.State, symbol, brokerage string) (vnfolio.Holding, error) {
	h, ok := s.Holding(symbol, brokerage)
	if !ok {
		return vnfolio.Holding{}, fmt.Errorf("no position in %s at %q", symbol, brokerage)
	}
	return h, nil
}

// --- Cash Dividend Command ---

type dividendCashCmd struct {
	date      string
	symbol    string
	brokerage string
	perShare  string
	note      string
}

func (*dividendCashCmd) Name() string     { return "cash" }
func (*dividendCashCmd) Synopsis() string { return "credit a cash dividend" }
func (*dividendCashCmd) Usage() string {
	return `vnf dividend cash -s <symbol> -p <per-share> [-b <brokerage>] [-d <date>] [-m <note>]

  Credits per-share x quantity to the brokerage cash bucket, minus the fixed
  5% personal income tax withholding.
`
}

func (c *dividendCashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.brokerage, "b", "", "Brokerage holding the position")
	f.StringVar(&c.perShare, "p", "", "Dividend per share in dong")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *dividendCashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.perShare == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	perShare, err := vnfolio.ParseMoney(c.perShare)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		h, err := resolveHolding(s, c.symbol, c.brokerage)
		if err != nil {
			return s, err
		}
		return s.CashDividend(day, h.ID, perShare, c.note)
	})
}

// --- Stock Dividend Command ---

type dividendStockCmd struct {
	date      string
	symbol    string
	brokerage string
	ratio     float64
	note      string
}

func (*dividendStockCmd) Name() string     { return "stock" }
func (*dividendStockCmd) Synopsis() string { return "credit bonus shares" }
func (*dividendStockCmd) Usage() string {
	return `vnf dividend stock -s <symbol> -ratio <pct> [-b <brokerage>] [-d <date>] [-m <note>]

  Credits ratio% bonus shares (10 means 10 per 100 held) and dilutes the
  average price so the total cost basis is conserved.
`
}

func (c *dividendStockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.brokerage, "b", "", "Brokerage holding the position")
	f.Float64Var(&c.ratio, "ratio", 0, "Bonus share ratio in percent")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *dividendStockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.ratio <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		h, err := resolveHolding(s, c.symbol, c.brokerage)
		if err != nil {
			return s, err
		}
		return s.StockDividend(day, h.ID, decimal.NewFromFloat(c.ratio), c.note)
	})
}

// --- Adjust Command ---

type adjustCmd struct {
	symbol    string
	brokerage string
	avgPrice  string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "overwrite the average price of a position" }
func (*adjustCmd) Usage() string {
	return `vnf adjust -s <symbol> -p <avg-price> [-b <brokerage>]

  Overwrites the average cost of a position. This is a metadata correction,
  no transaction is recorded and no cash moves.
`
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.brokerage, "b", "", "Brokerage holding the position")
	f.StringVar(&c.avgPrice, "p", "", "New average price in dong")
}

func (c *adjustCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.avgPrice == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	avgPrice, err := vnfolio.ParseMoney(c.avgPrice)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		h, err := resolveHolding(s, c.symbol, c.brokerage)
		if err != nil {
			return s, err
		}
		return s.AdjustCostBasis(h.ID, avgPrice)
	})
}
