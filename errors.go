package banker

import (
	"fmt"
	"strings"
)

// ConfigError reports an invalid or inconsistent configuration.
// These errors are deterministic and never worth retrying.
type ConfigError struct {
	Path string // file or directory at fault, if known
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UnknownFrequencyError is returned when a frequency name is not in the table.
type UnknownFrequencyError struct {
	Name string
}

func (e *UnknownFrequencyError) Error() string { return "unknown frequency: " + e.Name }

// DuplicateStatementError is returned when two sources of a catalog claim the same date.
type DuplicateStatementError struct {
	Catalog string // account/directory identifier
	Date    Date
	First   Statement
	Second  Statement
}

func (e *DuplicateStatementError) Error() string {
	return fmt.Sprintf("%s: duplicate statement date %s (%s and %s)",
		e.Catalog, e.Date, e.First.describe(), e.Second.describe())
}

// MissingStatementsError lists the expected statements that could not be found
// for one statement directory of an account.
type MissingStatementsError struct {
	Account   string
	Directory string
	Missing   []Date
}

func (e *MissingStatementsError) Error() string {
	dates := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		dates[i] = d.String()
	}
	return fmt.Sprintf("missing statements %s/%s: %s", e.Account, e.Directory, strings.Join(dates, ", "))
}

// AccountFailure groups every error found while verifying one account.
type AccountFailure struct {
	Account string
	Errs    []error
}

// VerificationError is the aggregate result of a verification pass that found problems.
type VerificationError struct {
	Failures []AccountFailure
}

func (e *VerificationError) Error() string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Account
	}
	return fmt.Sprintf("verification failed for %d account(s): %s", len(e.Failures), strings.Join(names, ", "))
}

// Unwrap exposes every underlying error to errors.Is and errors.As.
func (e *VerificationError) Unwrap() []error {
	var errs []error
	for _, f := range e.Failures {
		errs = append(errs, f.Errs...)
	}
	return errs
}

// Missing returns every MissingStatementsError of the pass, in account order.
func (e *VerificationError) Missing() []*MissingStatementsError {
	var missing []*MissingStatementsError
	for _, f := range e.Failures {
		for _, err := range f.Errs {
			if m, ok := err.(*MissingStatementsError); ok {
				missing = append(missing, m)
			}
		}
	}
	return missing
}
