package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running migrations a second time must succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"client_projects", "onboarding_sessions", "reminder_logs"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_ReminderLedgerUnique(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO client_projects (id, name, created_at, updated_at)
		VALUES ('p1', 'Atlas', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO onboarding_sessions (id, project_id, client_email, access_token, created_at, updated_at)
		VALUES ('s1', 'p1', 'a@b.c', 'tok1', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO reminder_logs (id, session_id, kind, sent_at) VALUES (?, 's1', 'gentle', '2025-01-03T00:00:00Z')`
	_, err = db.Exec(insert, "r1")
	require.NoError(t, err)

	_, err = db.Exec(insert, "r2")
	assert.Error(t, err, "second gentle for the same session must violate the unique ledger")
}

func TestMigrate_CascadeDeletesLedger(t *testing.T) {
	db := openTestDB(t)

	mustExec := func(q string, args ...any) {
		t.Helper()
		_, err := db.Exec(q, args...)
		require.NoError(t, err)
	}

	mustExec(`INSERT INTO client_projects (id, name, created_at, updated_at)
		VALUES ('p1', 'Atlas', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO onboarding_sessions (id, project_id, client_email, access_token, created_at, updated_at)
		VALUES ('s1', 'p1', 'a@b.c', 'tok1', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO reminder_logs (id, session_id, kind, sent_at)
		VALUES ('r1', 's1', 'gentle', '2025-01-03T00:00:00Z')`)

	mustExec(`DELETE FROM onboarding_sessions WHERE id = 's1'`)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reminder_logs`).Scan(&count))
	assert.Equal(t, 0, count)
}
