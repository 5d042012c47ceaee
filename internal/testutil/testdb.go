package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database on a single connection.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening in-memory test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestFileDB opens a migrated WAL database under t.TempDir. Its pool has
// several connections, so tests that need real concurrent readers and
// writers use it instead of NewTestDB.
func NewTestFileDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "crewplan.db"))
	require.NoError(t, err, "opening file test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
