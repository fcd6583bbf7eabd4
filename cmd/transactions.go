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

// parseDay validates a date flag, empty means today.
func parseDay(s string) (vnfolio.Date, error) {
	if s == "" {
		return vnfolio.Today(), nil
	}
	return vnfolio.ParseDate(s)
}

// --- Buy Command ---

type buyCmd struct {
	date      string
	symbol    string
	quantity  string
	price     string
	fee       float64
	brokerage string
	sector    string
	note      string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `vnf buy -s <symbol> -q <quantity> -p <price> [-fee <pct>] [-b <brokerage>] [-d <date>] [-m <note>]

  Purchases shares. The cost plus fee is debited from the brokerage cash
  bucket; the fee is capitalized into the average price.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share in dong")
	f.Float64Var(&c.fee, "fee", 0, "Fee percent, e.g. 0.15")
	f.StringVar(&c.brokerage, "b", "", "Brokerage name")
	f.StringVar(&c.sector, "sector", "", "Sector of the stock")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := vnfolio.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	price, err := vnfolio.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		return s.Buy(vnfolio.BuyOrder{
			Date:       day,
			Brokerage:  c.brokerage,
			Symbol:     c.symbol,
			Quantity:   quantity,
			Price:      price,
			FeePercent: decimal.NewFromFloat(c.fee),
			Sector:     c.sector,
			Note:       c.note,
		})
	})
}

// --- Sell Command ---

type sellCmd struct {
	date      string
	symbol    string
	quantity  string
	price     string
	fee       float64
	brokerage string
	note      string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `vnf sell -s <symbol> -q <quantity> -p <price> [-fee <pct>] [-b <brokerage>] [-d <date>] [-m <note>]

  Sells shares of a position. The proceeds net of fee are credited to the
  brokerage cash bucket. The average price is left unchanged.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share in dong")
	f.Float64Var(&c.fee, "fee", 0, "Fee percent, e.g. 0.15")
	f.StringVar(&c.brokerage, "b", "", "Brokerage holding the position")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity == "" || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := vnfolio.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	price, err := vnfolio.ParseMoney(c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		h, ok := s.Holding(c.symbol, c.brokerage)
		if !ok {
			return s, fmt.Errorf("no position in %s at %q", c.symbol, c.brokerage)
		}
		return s.Sell(vnfolio.SellOrder{
			Date:       day,
			HoldingID:  h.ID,
			Quantity:   quantity,
			Price:      price,
			FeePercent: decimal.NewFromFloat(c.fee),
			Note:       c.note,
		})
	})
}

// --- Deposit Command ---

type depositCmd struct {
	date      string
	amount    string
	brokerage string
	note      string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add cash to a brokerage account" }
func (*depositCmd) Usage() string {
	return `vnf deposit -amount <amount> [-b <brokerage>] [-d <date>] [-m <note>]

  Adds cash to a brokerage bucket and counts it as invested capital.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.amount, "amount", "", "Amount in dong, e.g. 10.000.000")
	f.StringVar(&c.brokerage, "b", "", "Brokerage name")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := vnfolio.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		return s.Deposit(day, c.brokerage, amount, c.note)
	})
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date      string
	amount    string
	brokerage string
	note      string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "take cash out of a brokerage account" }
func (*withdrawCmd) Usage() string {
	return `vnf withdraw -amount <amount> [-b <brokerage>] [-d <date>] [-m <note>]

  Removes cash from a brokerage bucket. Fails when the bucket cannot cover
  the amount.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (dd/mm/yyyy), today by default")
	f.StringVar(&c.amount, "amount", "", "Amount in dong, e.g. 5.000.000")
	f.StringVar(&c.brokerage, "b", "", "Brokerage name")
	f.StringVar(&c.note, "m", "", "An optional note for the transaction")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := vnfolio.ParseMoney(c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return applyAndSave(func(s vnfolio.State) (vnfolio.State, error) {
		return s.Withdraw(day, c.brokerage, amount, c.note)
	})
}
