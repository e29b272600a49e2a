// Package testutil provides shared test helpers for setting up data roots and databases.
package testutil

import (
	"os"
	"testing"

	"github.com/jfenske89/stride/internal/index"
	"github.com/jfenske89/stride/internal/storage"
)

// TestDB creates a temporary SQLite search index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "stride-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDataRoot creates a temporary data directory with a storage.Provider.
func TestDataRoot(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dataRoot := t.TempDir()
	store, err := storage.NewFS(dataRoot)
	if err != nil {
		t.Fatal(err)
	}
	return dataRoot, store
}
