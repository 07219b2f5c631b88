package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/banker"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// commands taking an account name as argument.
var accountArgs = map[string]bool{"summary": true, "statements": true}

// Completion returns the shell completion of the application, derived from the
// flags of the global flag set and of every command.
func Completion() *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	c.Flags["config"] = predict.Files("*.yaml")
	c.Flags["data-dir"] = predict.Dirs("*")
	c.Flags["log-level"] = predict.Set{"debug", "info", "warn", "error"}

	for _, cmd := range Commands {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch {
		case accountArgs[cmd.Name()]:
			sub.Args = complete.PredictFunc(predictAccounts)
		case cmd.Name() == "topic":
			sub.Args = complete.PredictFunc(predictTopics)
		}
		c.Sub[cmd.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		c.Sub[name] = &complete.Command{}
	}
	return c
}

// flagPredictors predicts nothing after boolean flags, something after the others.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// predictAccounts lists the account short names. Loading errors are ignored.
func predictAccounts(prefix string) []string {
	cfg, err := loadConfig()
	if err != nil {
		return nil
	}
	accounts, _, err := banker.LoadAccounts(cfg.AccountsDir())
	if err != nil {
		return nil
	}
	var names []string
	for _, a := range accounts {
		if strings.HasPrefix(a.ShortName, prefix) {
			names = append(names, a.ShortName)
		}
	}
	return names
}

// IsCommand reports whether name is a registered subcommand of the commander.
func IsCommand(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
