package renderer

import (
	"github.com/etnz/banker"
)

// AccountList is the data of the accounts listing.
type AccountList struct {
	Accounts []AccountRow `json:"accounts"`
	Failures []string     `json:"failures,omitempty"`
}

// AccountRow is a line of the accounts listing.
type AccountRow struct {
	ShortName  string `json:"shortName"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Active     bool   `json:"active"`
	Statements string `json:"statements"` // period, or the reason there are none
}

// NewAccountList builds the listing. Inactive accounts are only listed if all is true.
func NewAccountList(accounts []*banker.Account, failures []banker.AccountFailure, all bool) *AccountList {
	l := &AccountList{Accounts: make([]AccountRow, 0, len(accounts))}
	for _, a := range accounts {
		if !a.Active && !all {
			continue
		}
		row := AccountRow{
			ShortName:  a.ShortName,
			Name:       a.Name,
			Type:       a.Type,
			Active:     a.Active,
			Statements: a.StatementPeriod,
		}
		if reason := a.SkipReason(); reason != "" {
			row.Statements = reason
		}
		l.Accounts = append(l.Accounts, row)
	}
	for _, f := range failures {
		for _, err := range f.Errs {
			l.Failures = append(l.Failures, f.Account+": "+err.Error())
		}
	}
	return l
}

// AccountSummary is the data of the account summary.
type AccountSummary struct {
	ShortName   string             `json:"shortName"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Active      bool               `json:"active"`
	Start       banker.Date        `json:"start"`
	End         banker.Date        `json:"end"`
	Period      string             `json:"period"`
	Skipped     string             `json:"skipped,omitempty"`
	Directories []DirectorySummary `json:"directories"`
	Errors      []string           `json:"errors,omitempty"`
}

// DirectorySummary summarizes the catalog of a statement directory.
type DirectorySummary struct {
	ID           string        `json:"id"`
	Frequency    string        `json:"frequency"`
	Start        banker.Date   `json:"start"`
	End          banker.Date   `json:"end"`
	Observed     int           `json:"observed"`
	Null         int           `json:"null"`
	KnownMissing int           `json:"knownMissing"`
	Missing      []banker.Date `json:"missing,omitempty"`
}

// MissingDates returns the missing dates as a comma separated list.
func (d DirectorySummary) MissingDates() string { return joinDates(d.Missing) }

// NewAccountSummary summarizes an account as of 'today'. m is nil for accounts without statements.
func NewAccountSummary(a *banker.Account, m *banker.StatementsManager, errs []error, today banker.Date) *AccountSummary {
	s := &AccountSummary{
		ShortName: a.ShortName,
		Name:      a.Name,
		Type:      a.Type,
		Active:    a.Active,
		Start:     a.StartDate,
		End:       a.AccountEnd,
		Period:    a.StatementPeriod,
		Skipped:   a.SkipReason(),
	}
	for _, err := range errs {
		s.Errors = append(s.Errors, err.Error())
	}
	if m == nil {
		return s
	}
	for _, d := range m.Dirs {
		s.Directories = append(s.Directories, DirectorySummary{
			ID:           d.ID,
			Frequency:    d.Policy.Name,
			Start:        d.Index.StartDate,
			End:          d.End(today),
			Observed:     d.Catalog.Count(banker.Observed),
			Null:         d.Catalog.Count(banker.DeclaredNull),
			KnownMissing: d.Catalog.Count(banker.DeclaredKnownMissing),
			Missing:      d.Missing(today),
		})
	}
	return s
}
