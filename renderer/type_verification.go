package renderer

import (
	"github.com/etnz/banker"
)

// Verification is the data of the verification report.
type Verification struct {
	On       banker.Date           `json:"on"`
	Checked  int                   `json:"checked"`
	Failed   int                   `json:"failed"`
	Accounts []VerificationAccount `json:"accounts"`
	// Transactions is only set when transactions were verified too.
	Transactions *TransactionCheck `json:"transactions,omitempty"`
}

// VerificationAccount is the verification result of one account.
type VerificationAccount struct {
	Account     string                  `json:"account"`
	Name        string                  `json:"name"`
	OK          bool                    `json:"ok"`
	Status      string                  `json:"status"`
	Directories []VerificationDirectory `json:"directories"`
	Errors      []string                `json:"errors,omitempty"` // everything but missing statements
}

// VerificationDirectory is the verification result of one statement directory.
type VerificationDirectory struct {
	ID         string        `json:"id"`
	Frequency  string        `json:"frequency"`
	Start      banker.Date   `json:"start"`
	End        banker.Date   `json:"end"`
	Statements int           `json:"statements"`
	Missing    []banker.Date `json:"missing,omitempty"`
}

// MissingDates returns the missing dates as a comma separated list.
func (d VerificationDirectory) MissingDates() string { return joinDates(d.Missing) }

// TransactionCheck is the result of the transactions verification.
type TransactionCheck struct {
	Count    int      `json:"count"`
	Errors   []string `json:"errors"`
	Unlinked []string `json:"unlinked,omitempty"` // receipt ids
}

// NewVerification converts a verification report for rendering.
func NewVerification(r *banker.Report) *Verification {
	v := &Verification{
		On:       r.On,
		Checked:  len(r.Accounts),
		Failed:   r.Failed(),
		Accounts: make([]VerificationAccount, 0, len(r.Accounts)),
	}
	for _, a := range r.Accounts {
		va := VerificationAccount{
			Account: a.Account,
			Name:    a.Name,
			OK:      a.OK(),
			Errors:  errorStrings(a.Errs),
		}
		switch {
		case !a.OK():
			va.Status = "failed"
		case a.Skipped != "":
			va.Status = "skipped: " + a.Skipped
		default:
			va.Status = "ok"
		}
		for _, d := range a.Directories {
			va.Directories = append(va.Directories, VerificationDirectory{
				ID:         d.ID,
				Frequency:  d.Frequency,
				Start:      d.Start,
				End:        d.End,
				Statements: d.Statements,
				Missing:    d.Missing,
			})
		}
		v.Accounts = append(v.Accounts, va)
	}
	return v
}

// NewTransactionCheck converts the transactions verification for rendering.
func NewTransactionCheck(txs *banker.Transactions, receipts *banker.Receipts, errs []error) *TransactionCheck {
	c := &TransactionCheck{Count: txs.Len()}
	for _, err := range errs {
		c.Errors = append(c.Errors, err.Error())
	}
	if receipts != nil {
		for _, r := range receipts.Unlinked() {
			c.Unlinked = append(c.Unlinked, r.ID)
		}
	}
	return c
}
