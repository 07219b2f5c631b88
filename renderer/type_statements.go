package renderer

import (
	"github.com/etnz/banker"
)

// StatementListing is the data of the statements listing of an account.
type StatementListing struct {
	Account     string                `json:"account"`
	Directories []StatementsDirectory `json:"directories"`
}

// StatementsDirectory lists the catalog of one statement directory.
type StatementsDirectory struct {
	ID         string             `json:"id"`
	Frequency  string             `json:"frequency"`
	Statements []banker.Statement `json:"statements"`
}

// NewStatementListing lists the catalogs of m. Declared records are only
// listed if all is true.
func NewStatementListing(m *banker.StatementsManager, all bool) *StatementListing {
	l := &StatementListing{Account: m.Account.ShortName}
	for _, d := range m.Dirs {
		sd := StatementsDirectory{ID: d.ID, Frequency: d.Policy.Name}
		for _, s := range d.Catalog.Statements() {
			if !all && s.Provenance != banker.Observed {
				continue
			}
			sd.Statements = append(sd.Statements, s)
		}
		l.Directories = append(l.Directories, sd)
	}
	return l
}
