package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	CollectionPortfolio       = "portfolio"
	CollectionContactMessages = "contact_messages"
)

var (
	ErrNoDocuments       = errors.New("no documents in collection")
	ErrUnsupportedSort   = errors.New("unsupported sort key")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidDocument   = errors.New("invalid document")
	errNilStore          = errors.New("nil db")
)

type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortUpdatedAt SortKey = "updated_at"
)

type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// DocumentStore is the persistence gateway. It holds no business rules and
// returns backend errors unchanged.
type DocumentStore interface {
	Ping(ctx context.Context) error
	Close() error

	Collection(name string) Collection
}

type Collection interface {
	// FindOne returns the oldest document, or ErrNoDocuments.
	FindOne(ctx context.Context) (json.RawMessage, error)
	InsertOne(ctx context.Context, doc Document) error
	// InsertOneIfEmpty inserts doc only when the collection holds no
	// documents. At most one caller wins even when racing.
	InsertOneIfEmpty(ctx context.Context, doc Document) (bool, error)
	// ReplaceOne replaces the document with the given id, inserting it when
	// absent.
	ReplaceOne(ctx context.Context, id string, doc Document) error
	// FindSorted returns up to limit documents ordered by key. A limit <= 0
	// returns every document.
	FindSorted(ctx context.Context, key SortKey, dir SortDirection, limit int) ([]json.RawMessage, error)
	Count(ctx context.Context) (int64, error)
}

// Document is the stored envelope: the JSON body plus the fields the
// backends index on.
type Document struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Body      json.RawMessage
}

func NewDocument(id string, createdAt, updatedAt time.Time, v any) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: empty id", ErrInvalidDocument)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if createdAt.IsZero() {
		createdAt = updatedAt
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return Document{ID: id, CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC(), Body: b}, nil
}

func ValidateCollection(name string) error {
	switch name {
	case CollectionPortfolio, CollectionContactMessages:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
}

// SortColumn maps a sort key to the indexed column that backs it.
func SortColumn(key SortKey) (string, error) {
	switch key {
	case SortCreatedAt:
		return "created_at", nil
	case SortUpdatedAt:
		return "updated_at", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSort, string(key))
	}
}

func (d SortDirection) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// NilCollection is returned for unknown collection names; every call fails.
type NilCollection struct {
	Err error
}

func (c NilCollection) err() error {
	if c.Err != nil {
		return c.Err
	}
	return errNilStore
}

func (c NilCollection) FindOne(context.Context) (json.RawMessage, error) { return nil, c.err() }
func (c NilCollection) InsertOne(context.Context, Document) error       { return c.err() }
func (c NilCollection) InsertOneIfEmpty(context.Context, Document) (bool, error) {
	return false, c.err()
}
func (c NilCollection) ReplaceOne(context.Context, string, Document) error { return c.err() }
func (c NilCollection) FindSorted(context.Context, SortKey, SortDirection, int) ([]json.RawMessage, error) {
	return nil, c.err()
}
func (c NilCollection) Count(context.Context) (int64, error) { return 0, c.err() }
