package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-api/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type collection struct {
	pool  *pgxpool.Pool
	table string
}

func (c *collection) ident() string {
	return pgx.Identifier{c.table}.Sanitize()
}

func (c *collection) FindOne(ctx context.Context) (json.RawMessage, error) {
	var doc []byte
	err := c.pool.QueryRow(
		ctx,
		fmt.Sprintf(`SELECT doc FROM %s ORDER BY created_at ASC, id ASC LIMIT 1`, c.ident()),
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, database.ErrNoDocuments
		}
		return nil, err
	}
	return json.RawMessage(doc), nil
}

func (c *collection) InsertOne(ctx context.Context, doc database.Document) error {
	_, err := c.pool.Exec(
		ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)`, c.ident()),
		doc.ID, []byte(doc.Body), doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (c *collection) InsertOneIfEmpty(ctx context.Context, doc database.Document) (bool, error) {
	tag, err := c.pool.Exec(
		ctx,
		fmt.Sprintf(`
INSERT INTO %[1]s (id, singleton, doc, created_at, updated_at)
SELECT $1::text, TRUE, $2::jsonb, $3::timestamptz, $4::timestamptz
WHERE NOT EXISTS (SELECT 1 FROM %[1]s)
ON CONFLICT (singleton) DO NOTHING`, c.ident()),
		doc.ID, []byte(doc.Body), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (c *collection) ReplaceOne(ctx context.Context, id string, doc database.Document) error {
	_, err := c.pool.Exec(
		ctx,
		fmt.Sprintf(`
INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`, c.ident()),
		id, []byte(doc.Body), doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (c *collection) FindSorted(ctx context.Context, key database.SortKey, dir database.SortDirection, limit int) ([]json.RawMessage, error) {
	column, err := database.SortColumn(key)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT doc FROM %s ORDER BY %s %s, id %s`, c.ident(), column, dir.SQL(), dir.SQL())
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := c.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var doc []byte
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
	err := c.pool.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, c.ident())).Scan(&n)
	return n, err
}
