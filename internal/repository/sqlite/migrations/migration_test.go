package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_documents", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE IF NOT EXISTS documents")
	assert.Contains(t, migrations[0].Down, "DROP TABLE")

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestRunMigrations(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "documents"))

	version, err := CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	require.NoError(t, RunMigrations(ctx, db), "running twice is a no-op")
}

func TestRunMigrations_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "todo.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, db))
	_, err = db.Exec("INSERT INTO documents (key, value, updated_at) VALUES ('todos', '[]', '2024-05-01T12:00:00Z')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(ctx, db))

	var value string
	require.NoError(t, db.QueryRow("SELECT value FROM documents WHERE key = 'todos'").Scan(&value))
	assert.Equal(t, "[]", value)
}

func TestRunMigrations_DirtyDatabase(t *testing.T) {
	db := openMemory(t)

	_, err := db.Exec(`
		CREATE TABLE migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			dirty BOOLEAN DEFAULT FALSE
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(context.Background(), db)
	require.Error(t, err)

	if !strings.Contains(err.Error(), "database is in a dirty state") {
		t.Errorf("expected error to mention dirty state, got: %v", err)
	}
	if !strings.Contains(err.Error(), "failed migration(s): [1]") {
		t.Errorf("expected error to mention failed migration version 1, got: %v", err)
	}
}

func TestExtractVersionAndName(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
	}{
		{"000001_create_documents.up.sql", 1, "create_documents"},
		{"000012_add_index.up.sql", 12, "add_index"},
		{"readme.up.sql", 0, "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.version, extractVersion(tt.filename))
			assert.Equal(t, tt.name, extractName(tt.filename))
		})
	}
}
