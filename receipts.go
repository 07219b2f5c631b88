package banker

import (
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Receipt is a receipt file of the receipts directory.
type Receipt struct {
	ID                string `json:"id"` // slash separated path relative to the data directory
	Path              string `json:"path"`
	LinkedTransaction string `json:"linked_transaction,omitempty"`
}

// Receipts is the set of receipts, by id.
type Receipts struct {
	byID map[string]*Receipt
}

// LoadReceipts walks dir and registers every file, dotfiles excepted.
// Receipt ids are relative to dataDir, as transactions reference them.
func LoadReceipts(dataDir, dir string) (*Receipts, error) {
	r := &Receipts{byID: make(map[string]*Receipt)}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(dataDir, p)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(rel)
		if _, exists := r.byID[id]; exists {
			return fmt.Errorf("duplicate receipt: %s", id)
		}
		r.byID[id] = &Receipt{ID: id, Path: p}
		return nil
	})
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "cannot load receipts", Err: err}
	}
	return r, nil
}

// Get returns the receipt with the given id.
func (r *Receipts) Get(id string) (*Receipt, bool) {
	rec, ok := r.byID[filepath.ToSlash(strings.TrimPrefix(id, "/"))]
	return rec, ok
}

// Len returns the number of receipts.
func (r *Receipts) Len() int { return len(r.byID) }

// Unlinked returns the receipts no transaction references, sorted by id.
func (r *Receipts) Unlinked() []*Receipt {
	var unlinked []*Receipt
	for _, id := range slices.Sorted(maps.Keys(r.byID)) {
		if rec := r.byID[id]; rec.LinkedTransaction == "" {
			unlinked = append(unlinked, rec)
		}
	}
	return unlinked
}
