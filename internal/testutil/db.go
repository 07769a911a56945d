package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/themevars/internal/db"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// NewSeededTestDB is NewTestDB with the embedded system themes loaded.
func NewSeededTestDB(t *testing.T) *db.DB {
	t.Helper()

	database := NewTestDB(t)
	if err := db.SeedSystemThemes(context.Background(), database); err != nil {
		t.Fatalf("seed system themes: %v", err)
	}
	return database
}
