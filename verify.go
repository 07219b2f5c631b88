package banker

import (
	"github.com/rs/zerolog"
)

// DirectoryReport is the verification result of one statement directory.
type DirectoryReport struct {
	ID         string
	Frequency  string
	Start      Date
	End        Date
	Statements int
	Missing    []Date
}

// AccountReport is the verification result of one account.
type AccountReport struct {
	Account     string // short name
	Name        string
	Skipped     string // reason the statements were not checked, if any
	Directories []DirectoryReport
	Errs        []error // configuration and missing statements errors
}

// OK reports whether the account passed verification.
func (r AccountReport) OK() bool { return len(r.Errs) == 0 }

// Report is the result of a verification pass.
type Report struct {
	On       Date
	Accounts []AccountReport
}

// Err returns a *VerificationError naming every failed account, or nil.
func (r *Report) Err() error {
	var failures []AccountFailure
	for _, a := range r.Accounts {
		if !a.OK() {
			failures = append(failures, AccountFailure{Account: a.Account, Errs: a.Errs})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &VerificationError{Failures: failures}
}

// Failed returns the number of failed accounts.
func (r *Report) Failed() int {
	n := 0
	for _, a := range r.Accounts {
		if !a.OK() {
			n++
		}
	}
	return n
}

// Verifier checks that every account has all its statements.
type Verifier struct {
	DataDir     string
	Frequencies Frequencies
	Today       func() Date // clock, defaults to Today
	Log         zerolog.Logger
}

// NewVerifier returns a verifier for the configuration.
func NewVerifier(cfg *Config, log zerolog.Logger) *Verifier {
	return &Verifier{
		DataDir:     cfg.DataDir,
		Frequencies: cfg.Frequencies,
		Today:       Today,
		Log:         log,
	}
}

func (v *Verifier) today() Date {
	if v.Today == nil {
		return Today()
	}
	return v.Today()
}

// Run loads every account of the data directory and verifies them.
// Accounts that cannot be loaded are reported as failures too.
func (v *Verifier) Run() (*Report, error) {
	accounts, failures, err := LoadAccounts(accountsDir(v.DataDir))
	if err != nil {
		return nil, err
	}
	report := v.Verify(accounts)
	for _, f := range failures {
		report.Accounts = append(report.Accounts, AccountReport{Account: f.Account, Errs: f.Errs})
	}
	return report, nil
}

// Verify checks every account in order. It never stops at the first failure.
func (v *Verifier) Verify(accounts []*Account) *Report {
	report := &Report{On: v.today()}
	for _, a := range accounts {
		report.Accounts = append(report.Accounts, v.VerifyAccount(a, report.On))
	}
	return report
}

// VerifyAccount checks all the statement directories of one account.
func (v *Verifier) VerifyAccount(a *Account, today Date) AccountReport {
	r := AccountReport{Account: a.ShortName, Name: a.Name}
	if reason := a.SkipReason(); reason != "" {
		v.Log.Debug().Str("account", a.ShortName).Str("reason", reason).Msg("not verifying statements")
		r.Skipped = reason
		return r
	}

	m, errs := NewStatementsManager(a, v.DataDir, v.Frequencies, v.Log)
	r.Errs = append(r.Errs, errs...)
	for _, d := range m.Dirs {
		dr := DirectoryReport{
			ID:         d.ID,
			Frequency:  d.Policy.Name,
			Start:      d.Index.StartDate,
			End:        d.End(today),
			Statements: d.Catalog.Len(),
		}
		if err := d.Verify(today); err != nil {
			if me, ok := err.(*MissingStatementsError); ok {
				dr.Missing = me.Missing
			}
			r.Errs = append(r.Errs, err)
		}
		r.Directories = append(r.Directories, dr)
	}
	return r
}

func accountsDir(dataDir string) string { return (&Config{DataDir: dataDir}).AccountsDir() }
