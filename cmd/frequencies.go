package cmd

import (
	"context"
	"flag"

	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

type frequenciesCmd struct{}

func (*frequenciesCmd) Name() string     { return "frequencies" }
func (*frequenciesCmd) Synopsis() string { return "list the statement frequencies" }
func (*frequenciesCmd) Usage() string {
	return `banker frequencies

  Lists the frequencies statement_period can refer to, with their period and
  tolerance in days. The configuration can add or override frequencies.
`
}

func (c *frequenciesCmd) SetFlags(f *flag.FlagSet) {}

func (c *frequenciesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderFrequencies(cfg.Frequencies))
	return subcommands.ExitSuccess
}
