package banker

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// indexStem is the stem of the index file living next to the statements.
const indexStem = "index"

// DefaultNameFormat matches statement files named after their ISO date (2021-07-13.pdf).
const DefaultNameFormat = `^(\d{4})-(\d{2})-(\d{2})`

// CatalogIndex is the part of a statement index that describes the artifacts of a directory.
type CatalogIndex struct {
	NameFormats            []string        // ordered, first match wins
	FilenameDateMap        map[string]Date // explicit dates for files the formats cannot parse
	NullStatements         []Date          // periods intentionally without statement
	KnownMissingStatements []Date          // periods known to be lost
}

// Catalog is the deduplicated, date sorted set of statements of one statement directory.
// It is immutable once built.
type Catalog struct {
	ID         string // account/directory, used in messages
	Dir        string
	statements []Statement
}

// Statements returns a copy of the statements, sorted by date.
func (c *Catalog) Statements() []Statement { return slices.Clone(c.statements) }

// Dates returns the sorted dates of the catalog.
func (c *Catalog) Dates() []Date {
	dates := make([]Date, len(c.statements))
	for i, s := range c.statements {
		dates[i] = s.Date
	}
	return dates
}

// Len returns the number of statements.
func (c *Catalog) Len() int { return len(c.statements) }

// Count returns the number of statements with the given provenance.
func (c *Catalog) Count(p Provenance) int {
	n := 0
	for _, s := range c.statements {
		if s.Provenance == p {
			n++
		}
	}
	return n
}

// BuildCatalog lists dir and merges its files with the declarations of index.
//
// Files are dated through index.FilenameDateMap first, then through the first
// matching name format. Dotfiles, sub-directories and the index file are ignored.
// Any two sources yielding the same date is an error.
func BuildCatalog(id, dir string, index CatalogIndex, log zerolog.Logger) (*Catalog, error) {
	formats, err := compileNameFormats(index.NameFormats)
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "invalid name_formats", Err: err}
	}

	files, err := listStatementFiles(dir, log)
	if err != nil {
		return nil, err
	}

	c := &Catalog{ID: id, Dir: dir}
	seen := make(map[Date]Statement)
	add := func(s Statement) error {
		if first, exists := seen[s.Date]; exists {
			return &DuplicateStatementError{Catalog: id, Date: s.Date, First: first, Second: s}
		}
		seen[s.Date] = s
		c.statements = append(c.statements, s)
		return nil
	}

	// Mapped files, in a stable order for reproducible errors.
	for _, name := range slices.Sorted(maps.Keys(index.FilenameDateMap)) {
		i := slices.Index(files, name)
		if i < 0 {
			return nil, &ConfigError{Path: dir, Msg: fmt.Sprintf("file in filename_date_map does not exist: %s", name)}
		}
		files = slices.Delete(files, i, i+1)
		if err := add(Statement{Date: index.FilenameDateMap[name], Path: filepath.Join(dir, name), Provenance: Observed}); err != nil {
			return nil, err
		}
	}
	for _, d := range index.NullStatements {
		if err := add(Statement{Date: d, Provenance: DeclaredNull}); err != nil {
			return nil, err
		}
	}
	for _, d := range index.KnownMissingStatements {
		if err := add(Statement{Date: d, Provenance: DeclaredKnownMissing}); err != nil {
			return nil, err
		}
	}
	for _, name := range files {
		s, err := statementFromFile(filepath.Join(dir, name), formats)
		if err != nil {
			return nil, &ConfigError{Path: dir, Msg: err.Error()}
		}
		if err := add(s); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(c.statements, func(a, b Statement) int { return a.Date.Compare(b.Date) })
	log.Debug().Str("catalog", id).Int("statements", len(c.statements)).Msg("catalog built")
	return c, nil
}

// listStatementFiles returns the sorted names of the candidate statement files of dir.
func listStatementFiles(dir string, log zerolog.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "cannot list statements directory", Err: err}
	}
	var files []string
	for _, e := range entries { // ReadDir is sorted by filename
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "."):
			log.Debug().Str("file", name).Msg("skipping dot file")
		case strings.TrimSuffix(name, filepath.Ext(name)) == indexStem:
			log.Debug().Str("file", name).Msg("skipping index file")
		case e.IsDir():
			log.Debug().Str("dir", name).Msg("skipping sub-directory")
		default:
			files = append(files, name)
		}
	}
	return files, nil
}

// nameFormat is a compiled entry of name_formats.
type nameFormat struct {
	source string
	re     *regexp.Regexp
}

// compileNameFormats compiles the patterns, anchored at the start of the name.
func compileNameFormats(patterns []string) ([]*nameFormat, error) {
	formats := make([]*nameFormat, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		if re.NumSubexp() < 3 {
			return nil, fmt.Errorf("pattern %q: needs year, month and day groups, has %d", p, re.NumSubexp())
		}
		formats = append(formats, &nameFormat{source: p, re: re})
	}
	return formats, nil
}

// parseDateString dates a file stem with the first matching format.
func parseDateString(s string, formats []*nameFormat) (Date, error) {
	for _, f := range formats {
		m := f.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		y, errY := strconv.Atoi(m[1])
		mo, errM := strconv.Atoi(m[2])
		d, errD := strconv.Atoi(m[3])
		if errY != nil || errM != nil || errD != nil {
			return Date{}, fmt.Errorf("cannot parse date string: %s: pattern %q groups are not numbers", s, f.source)
		}
		on, err := newStrictDate(y, time.Month(mo), d)
		if err != nil {
			return Date{}, fmt.Errorf("cannot parse date string: %s: %w", s, err)
		}
		return on, nil
	}
	return Date{}, fmt.Errorf("cannot parse date string: %s", s)
}
