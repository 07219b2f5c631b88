package banker

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Provenance tells where a statement record comes from.
//
// All provenances satisfy an expected period the same way, the distinction
// is kept for listings and logs.
type Provenance int

const (
	Observed             Provenance = iota // a file found in the statement directory
	DeclaredNull                           // a period declared in null_statements
	DeclaredKnownMissing                   // a period declared in known_missing_statements
)

func (p Provenance) String() string {
	switch p {
	case Observed:
		return "observed"
	case DeclaredNull:
		return "null"
	case DeclaredKnownMissing:
		return "known-missing"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// MarshalText makes Provenance readable in json snapshots.
func (p Provenance) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Statement is one expected-period observation of a catalog.
type Statement struct {
	Date       Date       `json:"date"`
	Path       string     `json:"path,omitempty"` // backing file, empty for declared records
	Provenance Provenance `json:"provenance"`
}

// HasFile reports whether the statement is backed by a file.
func (s Statement) HasFile() bool { return s.Path != "" }

// Name returns the base name of the backing file, or the provenance for declared records.
func (s Statement) Name() string {
	if s.Path == "" {
		return s.Provenance.String()
	}
	return filepath.Base(s.Path)
}

func (s Statement) describe() string {
	if s.Path == "" {
		return s.Provenance.String()
	}
	return s.Provenance.String() + " " + filepath.Base(s.Path)
}

// statementFromFile parses the date of a statement file from its stem.
func statementFromFile(path string, formats []*nameFormat) (Statement, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	d, err := parseDateString(stem, formats)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Date: d, Path: path, Provenance: Observed}, nil
}
