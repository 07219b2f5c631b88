package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/etnz/banker"
	"github.com/etnz/banker/renderer"
	"github.com/google/subcommands"
)

type verifyCmd struct {
	date         string
	transactions bool
	quiet        bool
}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check that every account has all its statements" }
func (*verifyCmd) Usage() string {
	return `banker verify [-d <date>] [-transactions] [-q]

  Reconciles the statement directories of every account against their
  expected cadence and reports the missing statements.

  Accounts are all checked, a failing account does not stop the others.
  The command exits with a non zero status if any account failed.

  -transactions also checks the transaction files and their receipts.
`
}

func (c *verifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", banker.Today().String(), "Verify as of this date.")
	f.BoolVar(&c.transactions, "transactions", false, "Also verify the transactions and the receipts.")
	f.BoolVar(&c.quiet, "q", false, "Only print the account status lines, not the report.")
}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := banker.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, log, ok := setup()
	if !ok {
		return subcommands.ExitFailure
	}

	v := banker.NewVerifier(cfg, log)
	v.Today = func() banker.Date { return on }
	report, err := v.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, a := range report.Accounts {
		printStatus(a)
	}

	view := renderer.NewVerification(report)
	failed := report.Err() != nil
	if c.transactions {
		check, err := verifyTransactions(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		view.Transactions = check
		failed = failed || len(check.Errors) > 0
	}
	if !c.quiet {
		printMarkdown(renderer.RenderVerification(view))
	}

	if err := report.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// verifyTransactions loads the transactions and receipts and checks them.
// A data directory without receipts is fine.
func verifyTransactions(cfg *banker.Config) (*renderer.TransactionCheck, error) {
	txs, err := banker.LoadTransactions(cfg.TransactionsDir(), cfg.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	var errs []error
	if err := txs.Verify(); err != nil {
		errs = append(errs, unjoin(err)...)
	}

	receipts, err := banker.LoadReceipts(cfg.DataDir, cfg.ReceiptsDir())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		receipts = nil
	case err != nil:
		return nil, err
	default:
		if err := txs.LinkReceipts(receipts); err != nil {
			errs = append(errs, unjoin(err)...)
		}
	}
	return renderer.NewTransactionCheck(txs, receipts, errs), nil
}

// unjoin flattens nested errors.Join results.
func unjoin(err error) []error {
	j, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var errs []error
	for _, e := range j.Unwrap() {
		errs = append(errs, unjoin(e)...)
	}
	return errs
}
