package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/tdvinh/vnfolio"
)

// reconcileDelay gives the sheet time to settle between push and pull.
const reconcileDelay = 2 * time.Second

// syncStore creates the webhook store from the settings file or a -url
// override.
func syncStore(override string) (*vnfolio.Store, error) {
	if override != "" {
		return vnfolio.NewStore(override), nil
	}
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	if settings.SyncURL == "" {
		return nil, fmt.Errorf("no sync URL configured, run: vnf set -sync-url <url>")
	}
	return vnfolio.NewStore(settings.SyncURL), nil
}

// --- Push Command ---

type pushCmd struct {
	url string
}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "upload the portfolio to the remote sheet" }
func (*pushCmd) Usage() string {
	return `vnf push [-url <webhook>]

  Uploads the local state to the sheet webhook, then pulls the remote copy
  back so the local file reflects what the remote actually kept.
`
}

func (c *pushCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Webhook URL, overrides the configured one")
}

func (c *pushCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := syncStore(c.url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	state, err := LoadState()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var remote vnfolio.State
	if err := store.PushAndReconcile(ctx, state, &remote, reconcileDelay); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveState(remote); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Pushed and reconciled with the remote sheet.")
	return subcommands.ExitSuccess
}

// --- Pull Command ---

type pullCmd struct {
	url string
}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "replace the local portfolio with the remote copy" }
func (*pullCmd) Usage() string {
	return `vnf pull [-url <webhook>]

  Downloads the remote state and overwrites the local file. The remote wins.
`
}

func (c *pullCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Webhook URL, overrides the configured one")
}

func (c *pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := syncStore(c.url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var remote vnfolio.State
	if err := store.Pull(ctx, &remote); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveState(remote); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Pulled the remote state.")
	return subcommands.ExitSuccess
}

// --- Set Command ---

type setCmd struct {
	model       string
	customModel string
	syncURL     string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "change persisted settings" }
func (*setCmd) Usage() string {
	return `vnf set [-model <alias>] [-custom-model <id>] [-sync-url <url>]

  Persists settings. Model aliases are flash-lite, flash, pro; use
  -model custom together with -custom-model for a verbatim model id.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Advisory model alias")
	f.StringVar(&c.customModel, "custom-model", "", "Full model id used with -model custom")
	f.StringVar(&c.syncURL, "sync-url", "", "Sheet webhook endpoint")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.model == "" && c.customModel == "" && c.syncURL == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.model != "" {
		settings.Model = c.model
	}
	if c.customModel != "" {
		settings.CustomModel = c.customModel
	}
	if c.syncURL != "" {
		settings.SyncURL = c.syncURL
	}
	if err := vnfolio.WriteSettingsFile(*settingsFile, settings); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Settings saved.")
	return subcommands.ExitSuccess
}
