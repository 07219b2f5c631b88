package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/banker"
	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct {
	all bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts" }
func (*accountsCmd) Usage() string {
	return `banker accounts [-a]

  Lists the active accounts and their statement period.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "a", false, "Also list the inactive accounts.")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	accounts, failures, err := banker.LoadAccounts(cfg.AccountsDir())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderAccounts(renderer.NewAccountList(accounts, failures, c.all)))
	return subcommands.ExitSuccess
}
