package banker

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// StatementDirectory is a reconciled statement directory of an account.
type StatementDirectory struct {
	Account string // short name of the owning account
	ID      string // directory name
	Path    string
	Index   *StatementIndex
	Policy  FrequencyPolicy
	Catalog *Catalog

	accountEnd Date
	log        zerolog.Logger
}

// OpenStatementDirectory loads the index of the directory, resolves its frequency and builds its catalog.
func OpenStatementDirectory(account *Account, path string, freqs Frequencies, log zerolog.Logger) (*StatementDirectory, error) {
	log = log.With().Str("account", account.ShortName).Str("dir", filepath.Base(path)).Logger()

	idx, err := LoadStatementIndex(path, account, log)
	if err != nil {
		return nil, err
	}
	policy, err := freqs.Resolve(idx.Period)
	if err != nil {
		return nil, &ConfigError{Path: idx.Path, Msg: "invalid statement_period", Err: err}
	}
	d := &StatementDirectory{
		Account:    account.ShortName,
		ID:         filepath.Base(path),
		Path:       path,
		Index:      idx,
		Policy:     policy,
		accountEnd: account.AccountEnd,
		log:        log,
	}
	d.Catalog, err = BuildCatalog(d.Account+"/"+d.ID, path, idx.CatalogIndex(), log)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// End returns the date through which statements are required: the index
// end_date, or the account closing date, or today.
func (d *StatementDirectory) End(today Date) Date {
	switch {
	case !d.Index.EndDate.IsZero():
		return d.Index.EndDate
	case !d.accountEnd.IsZero() && d.accountEnd.Before(today):
		return d.accountEnd
	default:
		return today
	}
}

// Missing returns the expected statement dates that have no statement.
func (d *StatementDirectory) Missing(today Date) []Date {
	end := d.End(today)
	d.log.Debug().
		Stringer("start", d.Index.StartDate).
		Stringer("end", end).
		Str("frequency", d.Policy.Name).
		Int("statements", d.Catalog.Len()).
		Msg("searching for missing statements")
	missing := FindMissing(d.Policy, d.Catalog.Dates(), d.Index.StartDate, end)
	for _, m := range missing {
		d.log.Info().Stringer("date", m).Msg("missing statement")
	}
	return missing
}

// Verify returns a *MissingStatementsError if statements are missing.
func (d *StatementDirectory) Verify(today Date) error {
	missing := d.Missing(today)
	if len(missing) == 0 {
		return nil
	}
	return &MissingStatementsError{Account: d.Account, Directory: d.ID, Missing: missing}
}

// StatementsManager gathers the statement directories of one account.
type StatementsManager struct {
	Account *Account
	Dirs    []*StatementDirectory
}

// NewStatementsManager opens every statement directory of the account.
//
// Directories that fail to open are reported in errs, the others are still usable.
func NewStatementsManager(account *Account, dataDir string, freqs Frequencies, log zerolog.Logger) (m *StatementsManager, errs []error) {
	m = &StatementsManager{Account: account}
	paths, err := account.StatementDirs(dataDir, log)
	if err != nil {
		errs = append(errs, unjoin(err)...)
	}
	for _, p := range paths {
		d, err := OpenStatementDirectory(account, p, freqs, log)
		if err != nil {
			errs = append(errs, unjoin(err)...)
			continue
		}
		m.Dirs = append(m.Dirs, d)
	}
	return m, errs
}

// Verify checks every directory and returns one error per directory with missing statements.
func (m *StatementsManager) Verify(today Date) []error {
	var errs []error
	for _, d := range m.Dirs {
		if err := d.Verify(today); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
