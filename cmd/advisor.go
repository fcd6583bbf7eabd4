package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/tdvinh/vnfolio"
	"github.com/tdvinh/vnfolio/advisor"
	"github.com/tdvinh/vnfolio/renderer"
)

// --- Review Command ---

type reviewCmd struct{}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "deep AI review of the whole portfolio" }
func (*reviewCmd) Usage() string {
	return `vnf review

  Asks the advisory model for a review of allocation, trading behaviour,
  a 1-10 risk score and concrete recommendations.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	client, err := newAdvisor(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	review, err := client.ReviewPortfolio(ctx, reviewInput(state))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ReviewMarkdown(review))
	return subcommands.ExitSuccess
}

// reviewInput flattens the ledger into the advisor's input shape.
func reviewInput(s vnfolio.State) advisor.ReviewInput {
	sum := s.Summarize()

	in := advisor.ReviewInput{
		TotalAssets:   sum.TotalAssets.String(),
		TotalCash:     sum.TotalCash.String(),
		Profit:        sum.Profit.String(),
		ProfitPercent: float64(sum.ProfitPercent),
	}
	if sum.TotalAssets.IsPositive() {
		in.CashPercent = sum.TotalCash.Decimal().Div(sum.TotalAssets.Decimal()).InexactFloat64() * 100
	}
	for _, p := range s.Positions() {
		in.Holdings = append(in.Holdings, advisor.ReviewHolding{
			Symbol:        p.Symbol,
			Brokerage:     p.Brokerage,
			Sector:        p.Sector,
			WeightPercent: float64(p.WeightPercent),
			GainPercent:   float64(p.GainPercent),
		})
	}
	for tx := range s.Transactions() {
		line := advisor.ReviewTransaction{
			Date: tx.When().String(),
			Type: string(tx.What()),
		}
		switch v := tx.(type) {
		case vnfolio.Buy:
			line.Symbol, line.Quantity, line.Price = v.Symbol, v.Quantity.String(), v.Price.String()
			line.Note = v.Note
		case vnfolio.Sell:
			line.Symbol, line.Quantity, line.Price = v.Symbol, v.Quantity.String(), v.Price.String()
			line.Note = v.Note
		case vnfolio.Deposit:
			line.Quantity, line.Price = "0", v.Amount.String()
			line.Note = v.Note
		case vnfolio.Withdraw:
			line.Quantity, line.Price = "0", v.Amount.String()
			line.Note = v.Note
		case vnfolio.DividendCash:
			line.Symbol, line.Price = v.Symbol, v.PerShare.String()
			line.Note = v.Note
		case vnfolio.DividendStock:
			line.Symbol, line.Quantity = v.Symbol, v.Bonus.String()
			line.Note = v.Note
		}
		in.Transactions = append(in.Transactions, line)
	}
	return in
}

// --- Analyze Command ---

type analyzeCmd struct{}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "AI analysis of one stock, grounded on web search" }
func (*analyzeCmd) Usage() string {
	return `vnf analyze <symbol>...

  Asks the advisory model for trend, bottom signal, outlooks and key price
  levels of each symbol. The verdict is stored in the watchlist.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	client, err := newAdvisor(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	watchlist, err := vnfolio.ReadWatchlistFile(*watchlistFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		analysis, err := client.AnalyzeStock(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", symbol, err)
			status = subcommands.ExitFailure
			continue
		}
		watchlist.Record(analysis.Symbol, advisor.TrackedAnalysis{
			StockAnalysis: analysis,
			LastUpdated:   time.Now(),
		})
		printMarkdown(renderer.AnalysisMarkdown(analysis))
	}

	if err := vnfolio.WriteWatchlistFile(*watchlistFile, watchlist); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return status
}

// --- Market Command ---

type marketCmd struct{}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "AI overview of today's market" }
func (*marketCmd) Usage() string {
	return `vnf market

  Asks the advisory model for a grounded snapshot of today's Vietnamese
  market: indices, sentiment, sectors, foreign flow and a general read.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {}

func (c *marketCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newAdvisor(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	overview, err := client.MarketOverview(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.OverviewMarkdown(overview))
	return subcommands.ExitSuccess
}

// --- Screen Command ---

type screenCmd struct {
	trend      string
	bottom     bool
	priceRange string
}

func (*screenCmd) Name() string     { return "screen" }
func (*screenCmd) Synopsis() string { return "AI stock screener" }
func (*screenCmd) Usage() string {
	return `vnf screen [-trend <trend>] [-bottom] [-range <text>]

  Asks the advisory model for the top five symbols matching the criteria,
  grounded on current market data.
`
}

func (c *screenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trend, "trend", "Uptrend", "Trend filter (Uptrend, Downtrend, Sideways)")
	f.BoolVar(&c.bottom, "bottom", false, "Only stocks forming a base")
	f.StringVar(&c.priceRange, "range", "Bất kỳ", "Price range, free text")
}

func (c *screenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newAdvisor(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	hits, err := client.ScreenStocks(ctx, advisor.ScreenCriteria{
		Trend:      c.trend,
		Bottoming:  c.bottom,
		PriceRange: c.priceRange,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ScreenMarkdown(hits))
	return subcommands.ExitSuccess
}

// --- Watch Command ---

type watchCmd struct {
	add    string
	remove string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "manage the watchlist" }
func (*watchCmd) Usage() string {
	return `vnf watch [-add <symbol>] [-rm <symbol>]

  Without flags, lists the tracked symbols with the age of their latest
  analysis.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Track a symbol")
	f.StringVar(&c.remove, "rm", "", "Untrack a symbol")
}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	watchlist, err := vnfolio.ReadWatchlistFile(*watchlistFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.add != "" || c.remove != "" {
		if c.add != "" {
			watchlist.Add(c.add)
		}
		if c.remove != "" {
			watchlist.Remove(c.remove)
		}
		if err := vnfolio.WriteWatchlistFile(*watchlistFile, watchlist); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	b.WriteString("# Watchlist\n\n")
	if len(watchlist.Symbols) == 0 {
		b.WriteString("No tracked symbols.\n")
	}
	for _, symbol := range watchlist.Symbols {
		if a, ok := watchlist.Analyses[symbol]; ok {
			age := time.Since(a.LastUpdated).Round(time.Minute)
			fmt.Fprintf(&b, "* %s: %s, analyzed %s ago\n", symbol, a.Trend, age)
		} else {
			fmt.Fprintf(&b, "* %s: not analyzed yet\n", symbol)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
