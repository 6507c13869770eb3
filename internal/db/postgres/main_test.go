package postgres

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"Posts/internal/db/migrations"
)

// setupTestDB connects to TEST_DATABASE_URL, runs migrations and empties the
// tables. Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(db.DB), "Failed to run migrations")
	cleanupTables(t, db)

	return db
}

// cleanupTables removes all rows; likes go with their posts via cascade
func cleanupTables(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE posts RESTART IDENTITY CASCADE")
	require.NoError(t, err, "Failed to cleanup tables")
}
