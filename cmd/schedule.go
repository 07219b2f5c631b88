package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/banker"
	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

type scheduleCmd struct {
	date string
	all  bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "list the scheduled payments and when they are due" }
func (*scheduleCmd) Usage() string {
	return `banker schedule [-d <date>] [-a]

  Lists the active items of schedule.yaml, sorted by their next due date.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", banker.Today().String(), "Compute the due dates on or after this date.")
	f.BoolVar(&c.all, "a", false, "Also list the inactive items.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := banker.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, _, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}
	s, err := banker.LoadSchedule(cfg.ScheduleFile(), cfg.Frequencies, cfg.DefaultCurrency)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSchedule(renderer.NewScheduleView(s, on, c.all)))
	return subcommands.ExitSuccess
}
