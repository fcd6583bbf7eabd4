// Command vnf manages a personal Vietnamese stock portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/tdvinh/vnfolio/cmd"
)

func main() {
	// shell completion, a no-op outside of a completion request
	completion().Complete("vnf")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	files := predict.Files("*")
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":      {Flags: map[string]complete.Predictor{"s": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing, "fee": predict.Nothing, "b": predict.Nothing, "sector": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing}},
			"sell":     {Flags: map[string]complete.Predictor{"s": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing, "fee": predict.Nothing, "b": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing}},
			"deposit":  {Flags: map[string]complete.Predictor{"amount": predict.Nothing, "b": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing}},
			"withdraw": {Flags: map[string]complete.Predictor{"amount": predict.Nothing, "b": predict.Nothing, "d": predict.Nothing, "m": predict.Nothing}},
			"dividend": {Sub: map[string]*complete.Command{
				"cash":  {Flags: map[string]complete.Predictor{"s": predict.Nothing, "p": predict.Nothing, "b": predict.Nothing}},
				"stock": {Flags: map[string]complete.Predictor{"s": predict.Nothing, "ratio": predict.Nothing, "b": predict.Nothing}},
			}},
			"adjust":   {Flags: map[string]complete.Predictor{"s": predict.Nothing, "p": predict.Nothing, "b": predict.Nothing}},
			"holdings": {},
			"tx":       {Flags: map[string]complete.Predictor{"head": predict.Nothing}},
			"summary":  {Flags: map[string]complete.Predictor{"b": predict.Nothing}},
			"update":   {},
			"push":     {Flags: map[string]complete.Predictor{"url": predict.Nothing}},
			"pull":     {Flags: map[string]complete.Predictor{"url": predict.Nothing}},
			"review":   {},
			"analyze":  {},
			"market":   {},
			"screen":   {Flags: map[string]complete.Predictor{"trend": predict.Set{"Uptrend", "Downtrend", "Sideways"}, "bottom": predict.Nothing, "range": predict.Nothing}},
			"watch":    {Flags: map[string]complete.Predictor{"add": predict.Nothing, "rm": predict.Nothing}},
			"set":      {Flags: map[string]complete.Predictor{"model": predict.Set{"flash-lite", "flash", "pro", "custom"}, "custom-model": predict.Nothing, "sync-url": predict.Nothing}},
			"topic":    {Args: predict.Set{"readme", "ledger", "sync", "advisor"}},
		},
		Flags: map[string]complete.Predictor{
			"state-file":     files,
			"watchlist-file": files,
			"settings-file":  files,
		},
	}
}
