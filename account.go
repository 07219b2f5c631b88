package banker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CashAccount is the account type that never receives statements.
const CashAccount = "cash"

// Account is the content of an account's index.yaml.
type Account struct {
	ShortName string `yaml:"-" json:"short_name"` // name of the account directory
	Dir       string `yaml:"-" json:"-"`

	Name       string `yaml:"name" json:"name"`
	Type       string `yaml:"type" json:"type"`
	Active     bool   `yaml:"active" json:"active"`
	Visible    bool   `yaml:"visible" json:"visible"`
	AccountEnd Date   `yaml:"account_end" json:"account_end,omitzero"`

	StartDate              Date     `yaml:"start_date" json:"start_date,omitzero"`
	StatementPeriod        string   `yaml:"statement_period" json:"statement_period,omitempty"`
	StatementsDirectories  []string `yaml:"statements_directories" json:"statements_directories,omitempty"`
	StatementsDirectory    string   `yaml:"statements_directory" json:"statements_directory,omitempty"` // legacy, relative to the data dir
	SharedStatementAccount string   `yaml:"shared_statement_account" json:"shared_statement_account,omitempty"`
	NoStatements           bool     `yaml:"no_statements" json:"no_statements,omitempty"`
}

// DecodeAccount decodes an account index.
func DecodeAccount(r io.Reader) (*Account, error) {
	var a Account
	if err := yaml.NewDecoder(r).Decode(&a); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty account index")
		}
		return nil, err
	}
	return &a, nil
}

// LoadAccount reads dir/index.yaml. The account short name is the directory name.
func LoadAccount(dir string) (*Account, error) {
	path := filepath.Join(dir, IndexFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "account missing index file", Err: err}
	}
	defer f.Close()

	a, err := DecodeAccount(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "cannot parse account index", Err: err}
	}
	a.ShortName = filepath.Base(dir)
	a.Dir = dir
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Account) String() string { return a.Name }

// IsCash reports whether this is a cash account.
func (a *Account) IsCash() bool { return a.Type == CashAccount }

// HasSharedStatements reports whether the statements of this account are filed under another account.
func (a *Account) HasSharedStatements() bool { return a.SharedStatementAccount != "" }

// HasStatements reports whether statements are expected for this account.
func (a *Account) HasStatements() bool {
	return !a.IsCash() && !a.HasSharedStatements() && !a.NoStatements
}

// SkipReason explains why the account statements are not verified, or "" if they are.
func (a *Account) SkipReason() string {
	switch {
	case a.IsCash():
		return "cash account"
	case a.HasSharedStatements():
		return "statements shared with " + a.SharedStatementAccount
	case a.NoStatements:
		return "no statements"
	default:
		return ""
	}
}

// RequiredFields returns the fields that must be present in the index.
func (a *Account) RequiredFields() []string {
	reqs := []string{"name", "type"}
	if a.HasStatements() {
		reqs = append(reqs, "start_date", "statement_period")
	}
	return reqs
}

// Validate reports every missing required field.
func (a *Account) Validate() error {
	var errs []error
	for _, req := range a.RequiredFields() {
		missing := false
		switch req {
		case "name":
			missing = a.Name == ""
		case "type":
			missing = a.Type == ""
		case "start_date":
			missing = a.StartDate.IsZero()
		case "statement_period":
			missing = a.StatementPeriod == ""
		}
		if missing {
			errs = append(errs, &ConfigError{Path: a.Dir, Msg: fmt.Sprintf("missing required key (%s): %s", a.ShortName, req)})
		}
	}
	return errors.Join(errs...)
}

// StatementDirs returns the statement directories of the account, in declaration order.
//
// Directories come from statements_directories (relative to the account
// directory), or the legacy statements_directory (relative to the data directory),
// or the "statements" sub-directory of the account.
func (a *Account) StatementDirs(dataDir string, log zerolog.Logger) ([]string, error) {
	if len(a.StatementsDirectories) > 0 {
		dirs := make([]string, 0, len(a.StatementsDirectories))
		var errs []error
		for _, d := range a.StatementsDirectories {
			if !filepath.IsAbs(d) {
				d = filepath.Join(a.Dir, d)
			}
			if !isDir(d) {
				errs = append(errs, &ConfigError{Path: d, Msg: "statements directory does not exist"})
				continue
			}
			dirs = append(dirs, d)
		}
		return dirs, errors.Join(errs...)
	}

	if a.StatementsDirectory != "" {
		d := a.StatementsDirectory
		if !filepath.IsAbs(d) {
			d = filepath.Join(dataDir, d)
		}
		if isDir(d) {
			return []string{d}, nil
		}
		log.Warn().Str("account", a.ShortName).Str("dir", d).Msg("configured statements directory does not exist")
	}

	if d := filepath.Join(a.Dir, "statements"); isDir(d) {
		log.Debug().Str("account", a.ShortName).Str("dir", d).Msg("using statements sub-directory")
		return []string{d}, nil
	}
	return nil, &ConfigError{Path: a.Dir, Msg: "no statements directory: " + a.Name}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
