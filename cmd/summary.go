package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/banker"
	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the statements summary of an account" }
func (*summaryCmd) Usage() string {
	return `banker summary [-d <date>] <account>

  Displays an account and, for each of its statement directories, the
  number of statements by provenance and the missing ones.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", banker.Today().String(), "Date for the summary.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: summary takes exactly one account name")
		return subcommands.ExitUsageError
	}
	on, err := banker.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, log, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	a, err := banker.FindAccount(cfg.AccountsDir(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var m *banker.StatementsManager
	var errs []error
	if a.HasStatements() {
		m, errs = banker.NewStatementsManager(a, cfg.DataDir, cfg.Frequencies, log)
	}
	printMarkdown(renderer.RenderAccount(renderer.NewAccountSummary(a, m, errs, on)))
	return subcommands.ExitSuccess
}
