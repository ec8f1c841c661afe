package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	// Path is the database file, or ":memory:"
	Path string
}

// sqliteStore implements Store as a key/value table
type sqliteStore struct {
	db *sql.DB
}

// NewSQLite opens (and creates if needed) the key/value database
func NewSQLite(cfg *SQLiteConfig) (*sqliteStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	dbPath := strings.TrimSpace(cfg.Path)
	if dbPath == "" {
		return nil, errors.New("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, errors.Wrap(err, "failed to create database directory")
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS documents (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create documents table")
	}

	return &sqliteStore{db: db}, nil
}

// Load reads and decodes the document stored under key
func (s *sqliteStore) Load(ctx context.Context, key string, dest any) error {
	if err := validKey(key); err != nil {
		return err
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "failed to query %s", key)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return errors.Wrapf(ErrCorrupt, "%s: %v", key, err)
	}
	return nil
}

// Save upserts the whole document
func (s *sqliteStore) Save(ctx context.Context, key string, value any) error {
	if err := validKey(key); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().Unix())
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", key)
	}
	return nil
}

// Close closes the database
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
