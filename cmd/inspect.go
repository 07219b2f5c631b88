package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/etnz/banker"
	"github.com/google/subcommands"
)

type inspectCmd struct{}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "query the records with a JSONPath expression" }
func (*inspectCmd) Usage() string {
	return `banker inspect [<jsonpath>]

  Evaluates a JSONPath expression on the loaded accounts, schedule and
  frequencies, and prints the result as json. The default expression is "$".

Usage Examples:
# Statement period of every account.
$ banker inspect '$.accounts.*.statement_period'

`
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {}

func (c *inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	expr := "$"
	switch f.NArg() {
	case 0:
	case 1:
		expr = f.Arg(0)
	default:
		fmt.Fprintln(stderr, "Error: inspect takes at most one expression")
		return subcommands.ExitUsageError
	}
	cfg, log, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	accounts, failures, err := banker.LoadAccounts(cfg.AccountsDir())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, fl := range failures {
		log.Warn().Str("account", fl.Account).Errs("errors", fl.Errs).Msg("account not loaded")
	}
	schedule, err := banker.LoadSchedule(cfg.ScheduleFile(), cfg.Frequencies, cfg.DefaultCurrency)
	if errors.Is(err, fs.ErrNotExist) {
		schedule, err = nil, nil
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error loading schedule: %v\n", err)
		return subcommands.ExitFailure
	}

	doc, err := banker.Snapshot(accounts, schedule, cfg.Frequencies)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	v, err := banker.Query(doc, expr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
