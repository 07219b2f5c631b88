package banker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadAccounts loads every account of the accounts directory, sorted by short name.
//
// An account that cannot be loaded does not prevent the others from loading:
// its error is returned as a failure. The error is only set when the
// accounts directory itself cannot be read.
func LoadAccounts(dir string) (accounts []*Account, failures []AccountFailure, err error) {
	paths, err := findAccountDirs(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		a, err := LoadAccount(p)
		if err != nil {
			failures = append(failures, AccountFailure{Account: filepath.Base(p), Errs: unjoin(err)})
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, failures, nil
}

// FindAccount loads the account named 'short' in dir.
func FindAccount(dir, short string) (*Account, error) {
	if short == "" || strings.ContainsAny(short, `/\`) {
		return nil, fmt.Errorf("invalid account name %q", short)
	}
	p := filepath.Join(dir, short)
	if !isDir(p) {
		return nil, fmt.Errorf("could not find account %q in %s", short, dir)
	}
	return LoadAccount(p)
}

// findAccountDirs returns the sorted account directories, ignoring dot directories and plain files.
func findAccountDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Path: dir, Msg: "account directory not found"}
	}
	if err != nil {
		return nil, &ConfigError{Path: dir, Msg: "cannot read account directory", Err: err}
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, e.Name()))
	}
	return dirs, nil
}

// unjoin flattens an errors.Join result.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
