package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/dealflow/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database scoped to the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps the test database in a real unit of work, for tests that
// exercise the lead-to-deal handoff transaction.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
