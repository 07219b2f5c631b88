package banker

import (
	"os"
	"path/filepath"
	"testing"
)

// d is a helper for tests to create a Date from an ISO string.
func d(s string) Date { return MustParse(s) }

// dates is a helper for tests to create a slice of Date.
func dates(s ...string) []Date {
	ds := make([]Date, len(s))
	for i, v := range s {
		ds[i] = d(v)
	}
	return ds
}

// writeFile creates path, and its parent directories, with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// touch creates empty files in dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		writeFile(t, filepath.Join(dir, n), "")
	}
}
