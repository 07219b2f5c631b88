package banker

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// IndexFile is the name of the index file of accounts and statement directories.
const IndexFile = "index.yaml"

// StatementIndex is the content of the index.yaml file of a statement directory.
type StatementIndex struct {
	Path                   string          `yaml:"-" json:"-"`
	StartDate              Date            `yaml:"start_date" json:"start_date"`
	EndDate                Date            `yaml:"end_date" json:"end_date,omitzero"`
	Period                 string          `yaml:"statement_period" json:"statement_period"`
	LegacyPeriod           string          `yaml:"period" json:"-"`
	NameFormats            []string        `yaml:"name_formats" json:"name_formats"`
	NullStatements         []Date          `yaml:"null_statements" json:"null_statements,omitempty"`
	KnownMissingStatements []Date          `yaml:"known_missing_statements" json:"known_missing_statements,omitempty"`
	FilenameDateMap        map[string]Date `yaml:"filename_date_map" json:"filename_date_map,omitempty"`
}

// DecodeStatementIndex decodes a statement index.
func DecodeStatementIndex(r io.Reader) (*StatementIndex, error) {
	var idx StatementIndex
	if err := yaml.NewDecoder(r).Decode(&idx); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if idx.Period == "" {
		idx.Period = idx.LegacyPeriod
	}
	idx.LegacyPeriod = ""
	return &idx, nil
}

// ReadStatementIndex reads dir/index.yaml. It returns fs.ErrNotExist (wrapped) when there is none.
func ReadStatementIndex(dir string) (*StatementIndex, error) {
	path := filepath.Join(dir, IndexFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	idx, err := DecodeStatementIndex(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Msg: "cannot parse statement index", Err: err}
	}
	idx.Path = path
	return idx, nil
}

// LoadStatementIndex reads the index of a statement directory and completes it
// with the account defaults.
//
// Directories without index, or indexes missing some fields, inherit the
// account's start_date and statement_period, and the DefaultNameFormat.
func LoadStatementIndex(dir string, account *Account, log zerolog.Logger) (*StatementIndex, error) {
	idx, err := ReadStatementIndex(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("dir", dir).Msg("no statement index, using the account defaults")
		idx = &StatementIndex{Path: filepath.Join(dir, IndexFile)}
	case err != nil:
		return nil, err
	}

	if len(idx.NameFormats) == 0 {
		log.Debug().Str("dir", dir).Msg("adding default name_formats")
		idx.NameFormats = []string{DefaultNameFormat}
	}
	if idx.StartDate.IsZero() && account != nil {
		log.Debug().Str("dir", dir).Msg("adding default start_date")
		idx.StartDate = account.StartDate
	}
	if idx.Period == "" && account != nil {
		log.Debug().Str("dir", dir).Msg("adding default statement_period")
		idx.Period = account.StatementPeriod
	}

	var errs []error
	if idx.StartDate.IsZero() {
		errs = append(errs, &ConfigError{Path: idx.Path, Msg: "missing required field: start_date"})
	}
	if idx.Period == "" {
		errs = append(errs, &ConfigError{Path: idx.Path, Msg: "missing required field: statement_period"})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return idx, nil
}

// CatalogIndex returns the artifact declarations of the index.
func (s *StatementIndex) CatalogIndex() CatalogIndex {
	return CatalogIndex{
		NameFormats:            s.NameFormats,
		FilenameDateMap:        s.FilenameDateMap,
		NullStatements:         s.NullStatements,
		KnownMissingStatements: s.KnownMissingStatements,
	}
}
