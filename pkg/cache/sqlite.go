package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var _ Cache = (*SQLite)(nil)

// SQLite keeps cached responses in a single-table database file.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens or creates the cache database at path.
func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	c := &SQLite{db: db, ttl: ttl, now: time.Now}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLite) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		status_code INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		body BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_responses_expires_at ON responses(expires_at);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return nil
}

// Get returns a live entry. Expired rows are treated as misses.
func (c *SQLite) Get(key string) (*Entry, bool) {
	var e Entry
	err := c.db.QueryRow(
		`SELECT status_code, content_type, body FROM responses WHERE key = ? AND expires_at > ?`,
		key, c.now().UnixNano(),
	).Scan(&e.StatusCode, &e.ContentType, &e.Body)
	if err != nil {
		return nil, false
	}
	return &e, true
}

func (c *SQLite) Set(key string, e *Entry) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO responses (key, status_code, content_type, body, expires_at) VALUES (?, ?, ?, ?, ?)`,
		key, e.StatusCode, e.ContentType, e.Body, c.now().Add(c.ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

func (c *SQLite) DeletePrefix(prefix string) error {
	_, err := c.db.Exec(`DELETE FROM responses WHERE instr(key, ?) = 1`, prefix)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// Prune deletes expired rows and returns how many were removed.
func (c *SQLite) Prune() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM responses WHERE expires_at <= ?`, c.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return res.RowsAffected()
}

func (c *SQLite) Close() error {
	if c.db == nil {
		return errors.New("cache already closed")
	}
	err := c.db.Close()
	c.db = nil
	return err
}
