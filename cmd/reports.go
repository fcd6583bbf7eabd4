package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tdvinh/vnfolio/renderer"
)

// --- Holdings Command ---

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list open positions with their valuation" }
func (*holdingsCmd) Usage() string {
	return `vnf holdings

  Lists every open position with quantity, average price, last price, market
  value, unrealized gain and portfolio weight.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(state))
	return subcommands.ExitSuccess
}

// --- Tx Command ---

type txCmd struct {
	head int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions, newest first" }
func (*txCmd) Usage() string {
	return `vnf tx [-head <n>]

  Lists the transaction history, newest first.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(state, p.head))
	return subcommands.ExitSuccess
}

// --- Summary Command ---

type summaryCmd struct {
	brokerage string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the portfolio valuation" }
func (*summaryCmd) Usage() string {
	return `vnf summary [-b <brokerage>]

  Shows stock value, cash, total assets, net capital and profit, for the
  whole portfolio or one brokerage.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.brokerage, "b", "", "Restrict the summary to one brokerage")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.brokerage != "" {
		printMarkdown(renderer.BrokerageSummaryMarkdown(state, c.brokerage))
	} else {
		printMarkdown(renderer.SummaryMarkdown(state))
	}
	return subcommands.ExitSuccess
}
