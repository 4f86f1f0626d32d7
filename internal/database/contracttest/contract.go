// Package contracttest holds the behaviour every database.DocumentStore must
// share. Backend packages call Run from their own tests.
package contracttest

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-api/internal/database"
)

// Factory returns a fresh, empty store plus an optional cleanup.
type Factory func(t *testing.T) (database.DocumentStore, func())

type body struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var base = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func doc(t *testing.T, id string, offset time.Duration) database.Document {
	t.Helper()
	d, err := database.NewDocument(id, base.Add(offset), base.Add(offset), body{ID: id, Name: "name-" + id})
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return d
}

func decodeIDs(t *testing.T, raws []json.RawMessage) []string {
	t.Helper()
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		var b body
		if err := json.Unmarshal(r, &b); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		out = append(out, b.ID)
	}
	return out
}

func open(t *testing.T, f Factory) database.DocumentStore {
	t.Helper()
	s, cleanup := f(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}
	return s
}

func Run(t *testing.T, f Factory) {
	t.Run("FindOneEmpty", func(t *testing.T) {
		s := open(t, f)
		_, err := s.Collection(database.CollectionPortfolio).FindOne(context.Background())
		if !errors.Is(err, database.ErrNoDocuments) {
			t.Fatalf("expected ErrNoDocuments, got %v", err)
		}
	})

	t.Run("InsertThenFindOneReturnsOldest", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionContactMessages)
		if err := c.InsertOne(ctx, doc(t, "b", time.Minute)); err != nil {
			t.Fatalf("insert b: %v", err)
		}
		if err := c.InsertOne(ctx, doc(t, "a", 0)); err != nil {
			t.Fatalf("insert a: %v", err)
		}

		raw, err := c.FindOne(ctx)
		if err != nil {
			t.Fatalf("find one: %v", err)
		}
		if ids := decodeIDs(t, []json.RawMessage{raw}); ids[0] != "a" {
			t.Fatalf("expected oldest document a, got %s", ids[0])
		}
	})

	t.Run("InsertDuplicateIDFails", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionContactMessages)
		if err := c.InsertOne(ctx, doc(t, "a", 0)); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := c.InsertOne(ctx, doc(t, "a", time.Second)); err == nil {
			t.Fatalf("expected duplicate id error")
		}
	})

	t.Run("InsertOneIfEmpty", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionPortfolio)

		ok, err := c.InsertOneIfEmpty(ctx, doc(t, "first", 0))
		if err != nil || !ok {
			t.Fatalf("expected first insert to win, ok=%v err=%v", ok, err)
		}
		ok, err = c.InsertOneIfEmpty(ctx, doc(t, "second", time.Second))
		if err != nil || ok {
			t.Fatalf("expected second insert to be skipped, ok=%v err=%v", ok, err)
		}
		n, err := c.Count(ctx)
		if err != nil || n != 1 {
			t.Fatalf("expected 1 document, got %d err=%v", n, err)
		}
	})

	t.Run("InsertOneIfEmptySkipsNonEmpty", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionPortfolio)
		if err := c.InsertOne(ctx, doc(t, "existing", 0)); err != nil {
			t.Fatalf("insert: %v", err)
		}
		ok, err := c.InsertOneIfEmpty(ctx, doc(t, "seed", time.Second))
		if err != nil || ok {
			t.Fatalf("expected skip on non-empty collection, ok=%v err=%v", ok, err)
		}
	})

	t.Run("InsertOneIfEmptyConcurrent", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionPortfolio)

		docs := make([]database.Document, 8)
		for i := range docs {
			docs[i] = doc(t, string(rune('a'+i)), time.Duration(i)*time.Millisecond)
		}

		var wins atomic.Int32
		var wg sync.WaitGroup
		errs := make(chan error, len(docs))
		for _, d := range docs {
			wg.Add(1)
			go func(d database.Document) {
				defer wg.Done()
				ok, err := c.InsertOneIfEmpty(ctx, d)
				if err != nil {
					errs <- err
					return
				}
				if ok {
					wins.Add(1)
				}
			}(d)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent insert: %v", err)
		}
		if wins.Load() != 1 {
			t.Fatalf("expected exactly one winner, got %d", wins.Load())
		}
		n, err := c.Count(ctx)
		if err != nil || n != 1 {
			t.Fatalf("expected 1 document, got %d err=%v", n, err)
		}
	})

	t.Run("ReplaceOneUpserts", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionPortfolio)

		d := doc(t, "p", 0)
		if err := c.ReplaceOne(ctx, "p", d); err != nil {
			t.Fatalf("upsert insert: %v", err)
		}

		updated, err := database.NewDocument("p", base, base.Add(time.Hour), body{ID: "p", Name: "renamed"})
		if err != nil {
			t.Fatalf("new document: %v", err)
		}
		if err := c.ReplaceOne(ctx, "p", updated); err != nil {
			t.Fatalf("upsert replace: %v", err)
		}

		n, err := c.Count(ctx)
		if err != nil || n != 1 {
			t.Fatalf("expected 1 document, got %d err=%v", n, err)
		}
		raw, err := c.FindOne(ctx)
		if err != nil {
			t.Fatalf("find one: %v", err)
		}
		var b body
		if err := json.Unmarshal(raw, &b); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b.Name != "renamed" {
			t.Fatalf("expected replaced body, got %+v", b)
		}
	})

	t.Run("FindSortedDescendingWithLimit", func(t *testing.T) {
		s := open(t, f)
		ctx := context.Background()
		c := s.Collection(database.CollectionContactMessages)
		for i, id := range []string{"m1", "m2", "m3"} {
			if err := c.InsertOne(ctx, doc(t, id, time.Duration(i)*time.Second)); err != nil {
				t.Fatalf("insert %s: %v", id, err)
			}
		}

		raws, err := c.FindSorted(ctx, database.SortCreatedAt, database.Descending, 2)
		if err != nil {
			t.Fatalf("find sorted: %v", err)
		}
		ids := decodeIDs(t, raws)
		if len(ids) != 2 || ids[0] != "m3" || ids[1] != "m2" {
			t.Fatalf("expected [m3 m2], got %v", ids)
		}

		raws, err = c.FindSorted(ctx, database.SortCreatedAt, database.Ascending, 0)
		if err != nil {
			t.Fatalf("find sorted: %v", err)
		}
		ids = decodeIDs(t, raws)
		if len(ids) != 3 || ids[0] != "m1" || ids[2] != "m3" {
			t.Fatalf("expected [m1 m2 m3], got %v", ids)
		}
	})

	t.Run("FindSortedEmpty", func(t *testing.T) {
		s := open(t, f)
		raws, err := s.Collection(database.CollectionContactMessages).FindSorted(context.Background(), database.SortCreatedAt, database.Descending, 10)
		if err != nil {
			t.Fatalf("find sorted: %v", err)
		}
		if raws == nil || len(raws) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", raws)
		}
	})

	t.Run("FindSortedUnsupportedKey", func(t *testing.T) {
		s := open(t, f)
		_, err := s.Collection(database.CollectionContactMessages).FindSorted(context.Background(), database.SortKey("email"), database.Descending, 10)
		if !errors.Is(err, database.ErrUnsupportedSort) {
			t.Fatalf("expected ErrUnsupportedSort, got %v", err)
		}
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		s := open(t, f)
		_, err := s.Collection("users").Count(context.Background())
		if !errors.Is(err, database.ErrUnknownCollection) {
			t.Fatalf("expected ErrUnknownCollection, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		s := open(t, f)
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
