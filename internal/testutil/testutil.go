// Package testutil provides shared test helpers for fixture directories and
// search indexes.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/techhub/internal/index"
)

// TestDB opens an in-memory search index that is closed on cleanup.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(index.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// FixtureDir creates a temporary fixture directory holding files.
func FixtureDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		WriteFixture(t, dir, name, body)
	}
	return dir
}

// WriteFixture writes one fixture file into dir.
func WriteFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
