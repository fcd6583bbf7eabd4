package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tdvinh/vnfolio"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh market prices of all holdings" }
func (*updateCmd) Usage() string {
	return `vnf update

  Fetches the latest close price of every held symbol from VNDirect and
  stores it on the holdings. Quotes are cached on disk until the day
  changes.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var symbols []string
	seen := map[string]bool{}
	for h := range state.Holdings() {
		if !seen[h.Symbol] {
			seen[h.Symbol] = true
			symbols = append(symbols, h.Symbol)
		}
	}
	if len(symbols) == 0 {
		fmt.Println("No holdings to update.")
		return subcommands.ExitSuccess
	}

	prices, err := vnfolio.FetchQuotes(symbols)
	if err != nil {
		// partial results are still worth keeping
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if len(prices) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no quote could be fetched")
		return subcommands.ExitFailure
	}

	if err := SaveState(state.SetPrices(prices)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %d of %d symbols.\n", len(prices), len(symbols))
	return subcommands.ExitSuccess
}
