package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/banker"
	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

type statementsCmd struct {
	all bool
}

func (*statementsCmd) Name() string     { return "statements" }
func (*statementsCmd) Synopsis() string { return "list the statements of an account" }
func (*statementsCmd) Usage() string {
	return `banker statements [-a] <account>

  Lists the statement files of every statement directory of the account, by date.
  With -a, the declared null and known missing statements are listed too.
`
}

func (c *statementsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "a", false, "Also list the declared statements.")
}

func (c *statementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: statements takes exactly one account name")
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
	if reason := a.SkipReason(); reason != "" {
		fmt.Fprintf(stderr, "No statements for %s: %s\n", a.ShortName, reason)
		return subcommands.ExitSuccess
	}

	m, errs := banker.NewStatementsManager(a, cfg.DataDir, cfg.Frequencies, log)
	var b strings.Builder
	b.WriteString(renderer.RenderStatements(renderer.NewStatementListing(m, c.all)))
	renderer.Problems(&b, "Errors", errs)
	printMarkdown(b.String())
	if len(errs) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
