package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type configCmd struct{}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print the effective configuration" }
func (*configCmd) Usage() string {
	return `banker config

  Prints the configuration in use, in yaml, after the command line flags
  and the environment have been applied.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	if err := cfg.Encode(stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
