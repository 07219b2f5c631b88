package banker

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// newVerifyDataDir creates a data directory with a monthly checking account,
// a quarterly savings account with an index, and accounts that are never checked.
func newVerifyDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	accounts := filepath.Join(dir, "accounts")

	writeFile(t, filepath.Join(accounts, "chk", IndexFile), "name: Checking\ntype: checking\nstart_date: 2021-01-01\nstatement_period: monthly\n")
	touch(t, filepath.Join(accounts, "chk", "statements"), "2021-01-31.pdf", "2021-03-01.pdf")

	writeFile(t, filepath.Join(accounts, "sav", IndexFile), "name: Savings\ntype: savings\nstart_date: 2020-01-01\nstatement_period: monthly\n")
	writeFile(t, filepath.Join(accounts, "sav", "statements", IndexFile), "start_date: 2021-01-01\nstatement_period: quarterly\nnull_statements: [20210401]\n")
	touch(t, filepath.Join(accounts, "sav", "statements"), "2021-03-31.pdf")

	writeFile(t, filepath.Join(accounts, "wallet", IndexFile), "name: Wallet\ntype: cash\n")
	writeFile(t, filepath.Join(accounts, "joint", IndexFile), "name: Joint\ntype: checking\nshared_statement_account: chk\n")
	writeFile(t, filepath.Join(accounts, "loan", IndexFile), "name: Loan\ntype: loan\nno_statements: true\n")
	return dir
}

func newTestVerifier(dataDir string, on Date) *Verifier {
	return &Verifier{
		DataDir:     dataDir,
		Frequencies: DefaultFrequencies(),
		Today:       func() Date { return on },
		Log:         zerolog.Nop(),
	}
}

func TestVerifierRun(t *testing.T) {
	v := newTestVerifier(newVerifyDataDir(t), d("2021-03-15"))

	report, err := v.Run()
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Errorf("Run() report error = %v, want nil", err)
	}

	skipped := make(map[string]string)
	for _, a := range report.Accounts {
		skipped[a.Account] = a.Skipped
	}
	want := map[string]string{
		"chk":    "",
		"joint":  "statements shared with chk",
		"loan":   "no statements",
		"sav":    "",
		"wallet": "cash account",
	}
	if diff := cmp.Diff(want, skipped); diff != "" {
		t.Errorf("Run() skipped accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifierRunMissing(t *testing.T) {
	v := newTestVerifier(newVerifyDataDir(t), d("2021-05-15"))

	report, err := v.Run()
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if got := report.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}

	var verr *VerificationError
	if !errors.As(report.Err(), &verr) {
		t.Fatalf("Err() = %v, want a *VerificationError", report.Err())
	}
	missing := verr.Missing()
	if len(missing) != 1 {
		t.Fatalf("Missing() = %v, want one directory", missing)
	}
	want := &MissingStatementsError{Account: "chk", Directory: "statements", Missing: dates("2021-03-31", "2021-04-30")}
	if diff := cmp.Diff(want, missing[0]); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}

	var mse *MissingStatementsError
	if !errors.As(report.Err(), &mse) {
		t.Error("errors.As(*MissingStatementsError) = false, want true")
	}
}

func TestVerifierDirectoryReport(t *testing.T) {
	v := newTestVerifier(newVerifyDataDir(t), d("2021-06-30"))
	a, err := FindAccount(filepath.Join(v.DataDir, "accounts"), "sav")
	if err != nil {
		t.Fatalf("FindAccount() unexpected error: %v", err)
	}

	got := v.VerifyAccount(a, d("2021-06-30"))

	// 2021-03-31 then the null statement 2021-04-01, the next quarter is still in progress.
	want := AccountReport{
		Account: "sav",
		Name:    "Savings",
		Directories: []DirectoryReport{{
			ID:         "statements",
			Frequency:  Quarterly,
			Start:      d("2021-01-01"),
			End:        d("2021-06-30"),
			Statements: 2,
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("VerifyAccount() mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifierRunFailures(t *testing.T) {
	dir := newVerifyDataDir(t)
	writeFile(t, filepath.Join(dir, "accounts", "broken", IndexFile), "name: Broken\ntype: checking\n")
	writeFile(t, filepath.Join(dir, "accounts", "nodir", IndexFile), "name: No dir\ntype: checking\nstart_date: 2021-01-01\nstatement_period: monthly\n")
	v := newTestVerifier(dir, d("2021-03-15"))

	report, err := v.Run()
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	var verr *VerificationError
	if !errors.As(report.Err(), &verr) {
		t.Fatalf("Err() = %v, want a *VerificationError", report.Err())
	}
	var failed []string
	for _, f := range verr.Failures {
		failed = append(failed, f.Account)
	}
	// loaded accounts first, then the ones that could not be loaded.
	if diff := cmp.Diff([]string{"nodir", "broken"}, failed); diff != "" {
		t.Errorf("Failures mismatch (-want +got):\n%s", diff)
	}
	var cerr *ConfigError
	if !errors.As(report.Err(), &cerr) {
		t.Error("errors.As(*ConfigError) = false, want true")
	}
}

func TestVerifierRunNoAccounts(t *testing.T) {
	v := newTestVerifier(t.TempDir(), d("2021-03-15"))
	if _, err := v.Run(); err == nil {
		t.Error("Run() without accounts directory: want an error")
	}
}

func TestStatementDirectoryEnd(t *testing.T) {
	today := d("2021-06-01")
	tests := []struct {
		name       string
		endDate    Date
		accountEnd Date
		want       Date
	}{
		{name: "today", want: today},
		{name: "end_date", endDate: d("2021-03-31"), accountEnd: d("2021-02-28"), want: d("2021-03-31")},
		{name: "account closed", accountEnd: d("2021-02-28"), want: d("2021-02-28")},
		{name: "account closes later", accountEnd: d("2021-12-31"), want: today},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd := &StatementDirectory{Index: &StatementIndex{EndDate: tt.endDate}, accountEnd: tt.accountEnd}
			if got := sd.End(today); !got.Equal(tt.want) {
				t.Errorf("End() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewStatementsManager(t *testing.T) {
	dir := t.TempDir()
	accounts := filepath.Join(dir, "accounts")
	writeFile(t, filepath.Join(accounts, "chk", IndexFile), `
name: Checking
type: checking
start_date: 2021-01-01
statement_period: monthly
statements_directories: [bank, card, gone]
`)
	touch(t, filepath.Join(accounts, "chk", "bank"), "2021-01-31.pdf")
	writeFile(t, filepath.Join(accounts, "chk", "card", IndexFile), "statement_period: fortnightly\n")
	a, err := FindAccount(accounts, "chk")
	if err != nil {
		t.Fatalf("FindAccount() unexpected error: %v", err)
	}

	m, errs := NewStatementsManager(a, dir, DefaultFrequencies(), zerolog.Nop())

	if len(m.Dirs) != 1 || m.Dirs[0].ID != "bank" {
		t.Errorf("NewStatementsManager() dirs = %v, want [bank]", m.Dirs)
	}
	if len(errs) != 2 {
		t.Fatalf("NewStatementsManager() errs = %v, want 2 errors", errs)
	}
	var uerr *UnknownFrequencyError
	if !errors.As(errs[1], &uerr) || uerr.Name != "fortnightly" {
		t.Errorf("NewStatementsManager() errs[1] = %v, want unknown frequency fortnightly", errs[1])
	}
}
