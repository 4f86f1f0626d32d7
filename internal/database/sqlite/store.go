// Package sqlite provides a SQLite-backed document store for local runs and
// hermetic tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"portfolio-api/internal/database"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolio (
	id TEXT PRIMARY KEY,
	singleton INTEGER UNIQUE,
	doc TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	singleton INTEGER UNIQUE,
	doc TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS contact_messages_created_at_idx ON contact_messages (created_at DESC, id DESC);
`

// Store persists documents in SQLite. Timestamps are stored as Unix
// nanoseconds so ordering is exact.
type Store struct {
	sqlDB *sql.DB
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

// Open opens (creating if needed) the SQLite file at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single writer keeps InsertOneIfEmpty's check-and-insert atomic.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Collection(name string) database.Collection {
	if err := database.ValidateCollection(name); err != nil {
		return database.NilCollection{Err: err}
	}
	if s == nil || s.sqlDB == nil {
		return database.NilCollection{}
	}
	return &collection{db: s.sqlDB, table: name}
}

type collection struct {
	db    *sql.DB
	table string
}

func (c *collection) FindOne(ctx context.Context) (json.RawMessage, error) {
	var doc string
	err := c.db.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT doc FROM %s ORDER BY created_at ASC, id ASC LIMIT 1`, c.table),
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNoDocuments
		}
		return nil, err
	}
	return json.RawMessage(doc), nil
}

func (c *collection) InsertOne(ctx context.Context, doc database.Document) error {
	_, err := c.db.ExecContext(
		ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`, c.table),
		doc.ID, string(doc.Body), toNanos(doc.CreatedAt), toNanos(doc.UpdatedAt),
	)
	return err
}

func (c *collection) InsertOneIfEmpty(ctx context.Context, doc database.Document) (bool, error) {
	res, err := c.db.ExecContext(
		ctx,
		fmt.Sprintf(`
INSERT OR IGNORE INTO %[1]s (id, singleton, doc, created_at, updated_at)
SELECT ?, 1, ?, ?, ?
WHERE NOT EXISTS (SELECT 1 FROM %[1]s)`, c.table),
		doc.ID, string(doc.Body), toNanos(doc.CreatedAt), toNanos(doc.UpdatedAt),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *collection) ReplaceOne(ctx context.Context, id string, doc database.Document) error {
	_, err := c.db.ExecContext(
		ctx,
		fmt.Sprintf(`
INSERT INTO %s (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`, c.table),
		id, string(doc.Body), toNanos(doc.CreatedAt), toNanos(doc.UpdatedAt),
	)
	return err
}

func (c *collection) FindSorted(ctx context.Context, key database.SortKey, dir database.SortDirection, limit int) ([]json.RawMessage, error) {
	column, err := database.SortColumn(key)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT doc FROM %s ORDER BY %s %s, id %s`, c.table, column, dir.SQL(), dir.SQL())
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, c.table)).Scan(&n)
	return n, err
}
