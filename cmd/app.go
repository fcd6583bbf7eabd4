// Package cmd implements the CLI application to manage a Vietnamese stock
// portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/tdvinh/vnfolio"
	"github.com/tdvinh/vnfolio/advisor"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&dividendCmd{}, "transactions")
	c.Register(&adjustCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&updateCmd{}, "market data")

	c.Register(&pushCmd{}, "sync")
	c.Register(&pullCmd{}, "sync")

	c.Register(&reviewCmd{}, "advisor")
	c.Register(&analyzeCmd{}, "advisor")
	c.Register(&marketCmd{}, "advisor")
	c.Register(&screenCmd{}, "advisor")
	c.Register(&watchCmd{}, "advisor")

	c.Register(&setCmd{}, "settings")
	c.Register(&topicCmd{}, "settings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var stateFile = flag.String("state-file", "portfolio.json", "Path to the portfolio state file")
var watchlistFile = flag.String("watchlist-file", "watchlist.json", "Path to the watchlist file")
var settingsFile = flag.String("settings-file", "settings.json", "Path to the settings file")

// LoadState reads the app state file. A missing file yields an empty state.
func LoadState() (vnfolio.State, error) {
	return vnfolio.ReadStateFile(*stateFile)
}

// SaveState writes the app state file.
func SaveState(s vnfolio.State) error {
	return vnfolio.WriteStateFile(*stateFile, s)
}

// applyAndSave runs op against the current state and persists the result.
// A rejected operation leaves the state file untouched. The saved state is
// mirrored to the sync webhook when one is configured.
func applyAndSave(op func(vnfolio.State) (vnfolio.State, error)) subcommands.ExitStatus {
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	next, err := op(state)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveState(next); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	mirrorState(next)
	return subcommands.ExitSuccess
}

// mirrorState pushes the state to the configured webhook, best effort. The
// local file is the source of truth, a failed mirror only warns.
func mirrorState(s vnfolio.State) {
	settings, err := LoadSettings()
	if err != nil || settings.SyncURL == "" {
		return
	}
	if err := vnfolio.NewStore(settings.SyncURL).Push(context.Background(), s); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}

// LoadSettings reads the settings file. Missing file yields zero settings.
func LoadSettings() (vnfolio.Settings, error) {
	return vnfolio.ReadSettingsFile(*settingsFile)
}

// newAdvisor creates the Gemini client configured by the settings file and
// the GEMINI_API_KEY environment variable.
func newAdvisor(ctx context.Context) (*advisor.Client, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	model := settings.Model
	if model == "custom" {
		model = settings.CustomModel
	}
	return advisor.New(ctx, key, model)
}

// printMarkdown renders a markdown report to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
