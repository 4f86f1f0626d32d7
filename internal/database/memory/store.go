package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"portfolio-api/internal/database"
)

// Store is an in-memory implementation of database.DocumentStore.
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

func NewStore() *Store {
	return &Store{
		collections: map[string]*collection{
			database.CollectionPortfolio:       newCollection(),
			database.CollectionContactMessages: newCollection(),
		},
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Collection(name string) database.Collection {
	if err := database.ValidateCollection(name); err != nil {
		return database.NilCollection{Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections[name]
}

type collection struct {
	mu   sync.RWMutex
	docs []database.Document
}

func newCollection() *collection {
	return &collection{docs: make([]database.Document, 0)}
}

func (c *collection) FindOne(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.docs) == 0 {
		return nil, database.ErrNoDocuments
	}
	sorted := c.sortedLocked("created_at", database.Ascending)
	return cloneBody(sorted[0].Body), nil
}

func (c *collection) InsertOne(ctx context.Context, doc database.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexLocked(doc.ID) >= 0 {
		return fmt.Errorf("duplicate document id %q", doc.ID)
	}
	c.docs = append(c.docs, cloneDoc(doc))
	return nil
}

func (c *collection) InsertOneIfEmpty(ctx context.Context, doc database.Document) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.docs) > 0 {
		return false, nil
	}
	c.docs = append(c.docs, cloneDoc(doc))
	return true, nil
}

func (c *collection) ReplaceOne(ctx context.Context, id string, doc database.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	doc.ID = id
	if i := c.indexLocked(id); i >= 0 {
		doc.CreatedAt = c.docs[i].CreatedAt
		c.docs[i] = cloneDoc(doc)
		return nil
	}
	c.docs = append(c.docs, cloneDoc(doc))
	return nil
}

func (c *collection) FindSorted(ctx context.Context, key database.SortKey, dir database.SortDirection, limit int) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	column, err := database.SortColumn(key)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	sorted := c.sortedLocked(column, dir)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]json.RawMessage, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, cloneBody(d.Body))
	}
	return out, nil
}

func (c *collection) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}

func (c *collection) indexLocked(id string) int {
	for i := range c.docs {
		if c.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// sortedLocked orders by column then id, matching the SQL backends.
func (c *collection) sortedLocked(column string, dir database.SortDirection) []database.Document {
	out := make([]database.Document, len(c.docs))
	copy(out, c.docs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ta, tb := a.CreatedAt, b.CreatedAt
		if column == "updated_at" {
			ta, tb = a.UpdatedAt, b.UpdatedAt
		}
		if !ta.Equal(tb) {
			if dir == database.Descending {
				return ta.After(tb)
			}
			return ta.Before(tb)
		}
		if dir == database.Descending {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
	return out
}

func cloneDoc(d database.Document) database.Document {
	d.Body = cloneBody(d.Body)
	return d
}

func cloneBody(b json.RawMessage) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
