package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/etnz/banker"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates path, and its parent directories, with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newDataDir creates a data directory with a checking account, filed
// monthly from 2021-01-01, and a cash account.
func newDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "accounts", "chk", "index.yaml"), `
name: Checking
type: checking
active: true
start_date: 2021-01-01
statement_period: monthly
`)
	writeFile(t, filepath.Join(dir, "accounts", "chk", "statements", "2021-01-31.pdf"), "")
	writeFile(t, filepath.Join(dir, "accounts", "chk", "statements", "2021-03-01.pdf"), "")
	writeFile(t, filepath.Join(dir, "accounts", "wallet", "index.yaml"), `
name: Wallet
type: cash
active: true
`)
	return dir
}

// useDataDir points the global flags to dir and captures the outputs.
func useDataDir(t *testing.T, dir string) (out, errOut *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // no user configuration

	oldConfig, oldData, oldLevel := *configFile, *dataDir, *logLevel
	oldOut, oldErr := stdout, stderr
	t.Cleanup(func() {
		*configFile, *dataDir, *logLevel = oldConfig, oldData, oldLevel
		stdout, stderr = oldOut, oldErr
	})

	*configFile, *dataDir, *logLevel = "", dir, "error"
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	stdout, stderr = out, errOut
	return out, errOut
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	useDataDir(t, dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	useDataDir(t, "")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "data_dir: "+dir+"\ndefault_currency: EUR\nlog_level: info\n")
	*configFile = path
	*logLevel = ""

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	useDataDir(t, "")

	_, err := loadConfig()
	assert.ErrorContains(t, err, "config file does not exist")

	*configFile = filepath.Join(t.TempDir(), "missing.yaml")
	*dataDir = t.TempDir()
	_, err = loadConfig()
	assert.ErrorContains(t, err, "config file does not exist", "an explicit config file must exist")
}

func TestVerify(t *testing.T) {
	out, errOut := useDataDir(t, newDataDir(t))

	status := run(t, &verifyCmd{}, "-d", "2021-03-15")

	assert.Equal(t, subcommands.ExitSuccess, status, "stderr: %s", errOut)
	assert.Contains(t, out.String(), "# Statement Verification")
	assert.Contains(t, out.String(), "| chk | Checking | ok |")
	assert.Contains(t, out.String(), "| wallet | Wallet | skipped: cash account |")
}

func TestVerifyMissing(t *testing.T) {
	out, errOut := useDataDir(t, newDataDir(t))

	status := run(t, &verifyCmd{}, "-d", "2021-05-15")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut.String(), "missing statements chk/statements: 2021-03-31, 2021-04-30")
	assert.Contains(t, errOut.String(), "verification failed for 1 account(s): chk")
	assert.Contains(t, out.String(), "| chk | Checking | failed |")
}

func TestVerifyQuiet(t *testing.T) {
	out, _ := useDataDir(t, newDataDir(t))

	status := run(t, &verifyCmd{}, "-q", "-d", "2021-03-15")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Empty(t, out.String())
}

func TestVerifyBrokenAccount(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, filepath.Join(dir, "accounts", "broken", "index.yaml"), "name: Broken\n")
	_, errOut := useDataDir(t, dir)

	status := run(t, &verifyCmd{}, "-q", "-d", "2021-03-15")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut.String(), "missing required key (broken): type")
}

func TestVerifyTransactions(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, filepath.Join(dir, "transactions", "2021-07.yaml"), `
`+banker.TransactionID(0)+`:
  date: 2021-07-13
  payee: Grocery
  amount: -42.10
  entered_nano: 0
  splits:
    - amount: -40.00
      category: food
    - amount: -2.10
      category: tax
  receipts:
    - file_name: receipts/grocery.pdf
`)
	writeFile(t, filepath.Join(dir, "receipts", "grocery.pdf"), "")
	writeFile(t, filepath.Join(dir, "receipts", "lost.pdf"), "")
	out, errOut := useDataDir(t, dir)

	status := run(t, &verifyCmd{}, "-transactions", "-d", "2021-03-15")

	assert.Equal(t, subcommands.ExitSuccess, status, "stderr: %s", errOut)
	assert.Contains(t, out.String(), "1 transactions checked, 0 errors.")
	assert.Contains(t, out.String(), "* receipts/lost.pdf")
	assert.NotContains(t, out.String(), "* receipts/grocery.pdf")
}

func TestVerifyBadTransaction(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, filepath.Join(dir, "transactions", "2021-07.yaml"), `
deadbeef:
  date: 2021-07-13
  payee: Grocery
  amount: -42.10
  entered_nano: 1
  splits:
    - amount: -40.00
      category: food
`)
	out, _ := useDataDir(t, dir)

	status := run(t, &verifyCmd{}, "-transactions", "-d", "2021-03-15")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out.String(), "transaction deadbeef: bad id")
	assert.Contains(t, out.String(), "transaction deadbeef: split total")
}

func TestAccounts(t *testing.T) {
	out, _ := useDataDir(t, newDataDir(t))

	status := run(t, &accountsCmd{})

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "| chk | Checking | checking | X | monthly |")
	assert.Contains(t, out.String(), "| wallet | Wallet | cash | X | cash account |")
}

func TestSummary(t *testing.T) {
	out, _ := useDataDir(t, newDataDir(t))

	status := run(t, &summaryCmd{}, "-d", "2021-05-15", "chk")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "# Checking (chk)")
	assert.Contains(t, out.String(), "Missing statements: 2021-03-31, 2021-04-30")
}

func TestSummaryUsage(t *testing.T) {
	useDataDir(t, newDataDir(t))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &summaryCmd{}))
	assert.Equal(t, subcommands.ExitFailure, run(t, &summaryCmd{}, "nope"))
}

func TestStatements(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, filepath.Join(dir, "accounts", "chk", "statements", "index.yaml"), "null_statements: [20210401]\n")
	out, _ := useDataDir(t, dir)

	status := run(t, &statementsCmd{}, "chk")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "| 2021-01-31 | observed | 2021-01-31.pdf |")
	assert.NotContains(t, out.String(), "2021-04-01")

	out.Reset()
	status = run(t, &statementsCmd{}, "-a", "chk")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "| 2021-04-01 | null |  |")
}

func TestSchedule(t *testing.T) {
	dir := newDataDir(t)
	writeFile(t, filepath.Join(dir, "schedule.yaml"), `
items:
  rent:
    payee: Landlord
    start-date: 2021-01-01
    frequency: monthly
    day: 5
    amount: 1200
    category: housing
    active: true
`)
	out, _ := useDataDir(t, dir)

	status := run(t, &scheduleCmd{}, "-d", "2021-03-10")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "| rent | Landlord | monthly | $1,200.00 | housing | 2021-04-05 |")
}

func TestFrequencies(t *testing.T) {
	out, _ := useDataDir(t, t.TempDir())

	status := run(t, &frequenciesCmd{})

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "| monthly | 30 | 5 |")
}

func TestInspect(t *testing.T) {
	out, _ := useDataDir(t, newDataDir(t))

	status := run(t, &inspectCmd{}, "$.accounts.chk.statement_period")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "\"monthly\"\n", out.String())
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	out, _ := useDataDir(t, dir)

	status := run(t, &configCmd{})

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out.String(), "data_dir: "+dir)
	assert.Contains(t, out.String(), "period_days: 30")
}

func TestTopic(t *testing.T) {
	out, _ := useDataDir(t, t.TempDir())

	assert.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}))
	assert.Contains(t, out.String(), "# banker")
	assert.Equal(t, subcommands.ExitFailure, run(t, &topicCmd{}, "nope"))
}

func TestCompletion(t *testing.T) {
	useDataDir(t, newDataDir(t))

	c := Completion()

	for _, cmd := range Commands {
		assert.Contains(t, c.Sub, cmd.Name())
	}
	assert.Contains(t, c.Flags, "data-dir")
	assert.Contains(t, c.Sub["verify"].Flags, "transactions")
	require.NotNil(t, c.Sub["summary"].Args)
	assert.Equal(t, []string{"chk"}, c.Sub["summary"].Args.Predict("c"))
	assert.Contains(t, c.Sub["topic"].Args.Predict(""), "statements")
}

func TestIsCommand(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("banker", flag.ContinueOnError), "banker")
	for _, c := range Commands {
		commander.Register(c, "")
	}
	assert.True(t, IsCommand(commander, "verify"))
	assert.False(t, IsCommand(commander, "hello"))
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	useDataDir(t, "/records")
	script := "#!/bin/sh\necho \"$BANKER_DATA_DIR\" > \"$1\"\nexit 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banker-hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	outFile := filepath.Join(dir, "out.txt")
	found, code := RunExtension("hello", []string{outFile})

	assert.True(t, found)
	assert.Equal(t, 3, code)
	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "/records", strings.TrimSpace(string(got)))

	found, _ = RunExtension("does-not-exist", nil)
	assert.False(t, found)
}
