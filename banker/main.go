package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/banker/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	// handles the shell completion requests, and exits, if this is one.
	cmd.Completion().Complete("banker")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(commander, name) {
		if ok, code := cmd.RunExtension(name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
