package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"todo-manager/internal/errors"
	"todo-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Document is a JSON value stored under a string key.
type Document struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Repository defines the key-value operations the application persists through
type Repository interface {
	Get(ctx context.Context, key string) (*Document, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)

	// SchemaVersion reports the highest applied migration.
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database at dbPath and applies pending migrations.
// ":memory:" gives a private in-memory database.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// One connection keeps a :memory: database alive and serialises writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// sqliteDSN turns a file path into a file: URI that creates the file on
// first open and waits on a locked database instead of failing.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves the document stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Document, error) {
	query := `
	SELECT key, value, updated_at
	FROM documents
	WHERE key = ?`

	return QuerySingle(ctx, r.db, query, ScanDocument, "document", key, key)
}

// Put stores value under key, replacing any previous value.
func (r *SQLiteRepository) Put(ctx context.Context, key string, value string) error {
	query := `
	INSERT INTO documents (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value, FormatTimeForDB(r.now())); err != nil {
		return HandleDatabaseError("put "+key, err)
	}
	return nil
}

// Delete removes the document stored under key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "document", key, key)
}

// Keys lists every stored key in ascending order
func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	query := `SELECT key FROM documents ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanKeys, "documents")
}

// SchemaVersion returns the highest migration version applied to the database
func (r *SQLiteRepository) SchemaVersion(ctx context.Context) (int, error) {
	version, err := migrations.CurrentVersion(ctx, r.db)
	if err != nil {
		return 0, HandleDatabaseError("read schema version", err)
	}
	return version, nil
}
