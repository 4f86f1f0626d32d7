package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/database/memory"
	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/pkg/clock"
)

var testStart = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type recordingNotifier struct {
	msgs []portfolio.ContactMessage
}

func (r *recordingNotifier) NotifyContactMessage(_ context.Context, msg portfolio.ContactMessage) {
	r.msgs = append(r.msgs, msg)
}

func newTestUsecase(t *testing.T, store database.DocumentStore) (*Portfolio, *clock.Manual, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	clk := clock.NewManual(testStart)
	uc := NewPortfolioUsecase(
		store,
		log.New(&buf, "", 0),
		WithClock(clk),
		WithIDGenerator(sequentialIDs()),
	)
	return uc, clk, &buf
}

// failingStore fails every collection call with err.
type failingStore struct {
	err error
}

func (s failingStore) Ping(context.Context) error { return s.err }
func (s failingStore) Close() error               { return nil }
func (s failingStore) Collection(string) database.Collection {
	return database.NilCollection{Err: s.err}
}

// raceLosingStore wraps a store so that InsertOneIfEmpty reports a lost race
// after another writer stored winner.
type raceLosingStore struct {
	database.DocumentStore
	winner database.Document
}

func (s raceLosingStore) Collection(name string) database.Collection {
	c := s.DocumentStore.Collection(name)
	if name != database.CollectionPortfolio {
		return c
	}
	return raceLosingCollection{Collection: c, winner: s.winner}
}

type raceLosingCollection struct {
	database.Collection
	winner database.Document
}

func (c raceLosingCollection) InsertOneIfEmpty(ctx context.Context, _ database.Document) (bool, error) {
	if err := c.Collection.InsertOne(ctx, c.winner); err != nil {
		return false, err
	}
	return false, nil
}

func TestInitializePortfolio_SeedsEmptyStore(t *testing.T) {
	store := memory.NewStore()
	uc, _, logs := newTestUsecase(t, store)

	p, err := uc.InitializePortfolio(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID != "id-1" {
		t.Fatalf("expected generated id id-1, got %q", p.ID)
	}
	if p.Personal.Name != "Surabhi Santosh Pilane" || len(p.Projects) != 5 || len(p.Experience) != 2 {
		t.Fatalf("unexpected seed: name=%q projects=%d experience=%d", p.Personal.Name, len(p.Projects), len(p.Experience))
	}
	if !p.UpdatedAt.Equal(testStart) || !p.Projects[0].CreatedAt.Equal(testStart) {
		t.Fatalf("expected timestamps stamped from clock")
	}
	if !strings.Contains(logs.String(), "seeded=true") {
		t.Fatalf("expected seed log line, got %q", logs.String())
	}

	n, err := store.Collection(database.CollectionPortfolio).Count(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("expected 1 stored portfolio, got %d err=%v", n, err)
	}
}

func TestInitializePortfolio_IdempotentSequentially(t *testing.T) {
	store := memory.NewStore()
	uc, clk, _ := newTestUsecase(t, store)
	ctx := context.Background()

	first, err := uc.InitializePortfolio(ctx)
	if err != nil {
		t.Fatalf("first init: %v", err)
	}
	clk.Add(time.Hour)
	second, err := uc.InitializePortfolio(ctx)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same portfolio, got %q and %q", first.ID, second.ID)
	}
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("expected stored portfolio to be returned unchanged")
	}
	n, _ := store.Collection(database.CollectionPortfolio).Count(ctx)
	if n != 1 {
		t.Fatalf("expected 1 stored portfolio, got %d", n)
	}
}

func TestInitializePortfolio_LostRaceReturnsWinner(t *testing.T) {
	winner := portfolio.Portfolio{
		ID:         "winner",
		Personal:   portfolio.PersonalInfo{Name: "Winner"},
		Projects:   []portfolio.Project{},
		Experience: []portfolio.Experience{},
		UpdatedAt:  testStart,
	}
	doc, err := database.NewDocument(winner.ID, testStart, testStart, winner)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	uc, _, logs := newTestUsecase(t, raceLosingStore{DocumentStore: memory.NewStore(), winner: doc})

	got, err := uc.InitializePortfolio(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != "winner" {
		t.Fatalf("expected winner portfolio, got %q", got.ID)
	}
	if !strings.Contains(logs.String(), "already_seeded") {
		t.Fatalf("expected lost-race log line, got %q", logs.String())
	}
}

func TestGetPortfolio_EmptyStore(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())

	_, err := uc.GetPortfolio(context.Background())
	if !errors.Is(err, portfolio.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPortfolio_DoesNotSeed(t *testing.T) {
	store := memory.NewStore()
	uc, _, _ := newTestUsecase(t, store)

	_, _ = uc.GetPortfolio(context.Background())
	n, _ := store.Collection(database.CollectionPortfolio).Count(context.Background())
	if n != 0 {
		t.Fatalf("expected no stored portfolio, got %d", n)
	}
}

func TestGetPortfolio_MalformedDocument(t *testing.T) {
	store := memory.NewStore()
	uc, _, _ := newTestUsecase(t, store)
	ctx := context.Background()

	bad := database.Document{ID: "x", CreatedAt: testStart, UpdatedAt: testStart, Body: json.RawMessage(`{"id":"x"}`)}
	if err := store.Collection(database.CollectionPortfolio).InsertOne(ctx, bad); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := uc.GetPortfolio(ctx)
	if !errors.Is(err, ErrStorageUnavailable) || !errors.Is(err, portfolio.ErrMalformedDocument) {
		t.Fatalf("expected storage+malformed error, got %v", err)
	}
}

func TestGetPersonalInfo(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())
	ctx := context.Background()

	if _, err := uc.GetPersonalInfo(ctx); !errors.Is(err, portfolio.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if _, err := uc.InitializePortfolio(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	info, err := uc.GetPersonalInfo(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.Email != "pilanesurabhi14@gmail.com" {
		t.Fatalf("unexpected personal info %+v", info)
	}
}

func TestGetProjects_CategoryFilter(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())
	ctx := context.Background()
	seeded, err := uc.InitializePortfolio(ctx)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	cases := []struct {
		category string
		wantIDs  []int
	}{
		{"", []int{1, 2, 3, 4, 5}},
		{"all", []int{1, 2, 3, 4, 5}},
		{"ALL", []int{1, 2, 3, 4, 5}},
		{"Data Analytics", []int{1, 2, 4}},
		{"data analytics", []int{1, 2, 4}},
		{"MACHINE LEARNING", []int{3, 5}},
		{"Nonexistent", []int{}},
	}

	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			got, err := uc.GetProjects(ctx, tc.category)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got == nil {
				t.Fatalf("expected non-nil slice")
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %d projects, got %d", len(tc.wantIDs), len(got))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
				}
				if tc.category != "" && !strings.EqualFold(tc.category, "all") &&
					strings.ToLower(got[i].Category) != strings.ToLower(tc.category) {
					t.Fatalf("unexpected category %q", got[i].Category)
				}
			}
		})
	}

	all, _ := uc.GetProjects(ctx, "")
	if len(all) != len(seeded.Projects) {
		t.Fatalf("expected all seeded projects")
	}
}

func TestGetProjectsAndExperience_EmptyStore(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())
	ctx := context.Background()

	projects, err := uc.GetProjects(ctx, "Data Analytics")
	if err != nil || projects == nil || len(projects) != 0 {
		t.Fatalf("expected empty projects, got %v err=%v", projects, err)
	}
	exp, err := uc.GetExperience(ctx)
	if err != nil || exp == nil || len(exp) != 0 {
		t.Fatalf("expected empty experience, got %v err=%v", exp, err)
	}
}

func TestGetExperience(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())
	ctx := context.Background()
	if _, err := uc.InitializePortfolio(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	exp, err := uc.GetExperience(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(exp) != 2 || exp[0].Company != "Infosys Springboard" || exp[1].Company != "ONGC" {
		t.Fatalf("unexpected experience %+v", exp)
	}
}

func TestCreateContactMessage(t *testing.T) {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	uc := NewPortfolioUsecase(
		store,
		log.New(&bytes.Buffer{}, "", 0),
		WithClock(clock.NewManual(testStart)),
		WithIDGenerator(sequentialIDs()),
		WithContactNotifier(notifier),
	)

	in := portfolio.ContactMessageInput{
		Name:    "Sarah Johnson",
		Email:   "sarah.johnson@example.com",
		Message: "Hi...",
	}
	msg, err := uc.CreateContactMessage(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.ID == "" || msg.Read {
		t.Fatalf("expected fresh unread message, got %+v", msg)
	}
	if msg.Name != in.Name || msg.Email != in.Email || msg.Message != in.Message {
		t.Fatalf("expected fields echoed, got %+v", msg)
	}
	if !msg.CreatedAt.Equal(testStart) {
		t.Fatalf("unexpected created_at %s", msg.CreatedAt)
	}
	if len(notifier.msgs) != 1 || notifier.msgs[0].ID != msg.ID {
		t.Fatalf("expected notifier to see message, got %+v", notifier.msgs)
	}

	n, _ := store.Collection(database.CollectionContactMessages).Count(context.Background())
	if n != 1 {
		t.Fatalf("expected 1 stored message, got %d", n)
	}
}

func TestCreateContactMessage_StoresEmptyStrings(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())

	msg, err := uc.CreateContactMessage(context.Background(), portfolio.ContactMessageInput{Name: "", Email: "", Message: "   "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.ID == "" || msg.Message != "   " || msg.Read {
		t.Fatalf("unexpected message %+v", msg)
	}

	msgs, err := uc.GetContactMessages(context.Background(), DefaultContactLimit)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != msg.ID {
		t.Fatalf("expected the stored message back, got %+v", msgs)
	}
}

func TestGetContactMessages_NewestFirstWithLimit(t *testing.T) {
	uc, clk, _ := newTestUsecase(t, memory.NewStore())
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := uc.CreateContactMessage(ctx, portfolio.ContactMessageInput{Name: name, Email: name + "@example.com", Message: "hello"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		clk.Add(time.Minute)
	}

	got, err := uc.GetContactMessages(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Name != "third" || got[1].Name != "second" {
		t.Fatalf("expected [third second], got [%s %s]", got[0].Name, got[1].Name)
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
}

func TestGetContactMessages_LimitBounds(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())

	for _, limit := range []int{0, -1, MaxContactLimit + 1} {
		if _, err := uc.GetContactMessages(context.Background(), limit); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("limit %d: expected ErrInvalidInput, got %v", limit, err)
		}
	}
	for _, limit := range []int{1, DefaultContactLimit, MaxContactLimit} {
		got, err := uc.GetContactMessages(context.Background(), limit)
		if err != nil || got == nil {
			t.Fatalf("limit %d: unexpected result %v err=%v", limit, got, err)
		}
	}
}

func TestUpdatePortfolio(t *testing.T) {
	store := memory.NewStore()
	uc, clk, _ := newTestUsecase(t, store)
	ctx := context.Background()

	p, err := uc.InitializePortfolio(ctx)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	clk.Add(time.Hour)
	p.Personal.Title = "Data Scientist"
	p.Projects = append(p.Projects, portfolio.Project{ID: 6, Title: "New", Category: "Machine Learning"})

	updated, err := uc.UpdatePortfolio(ctx, p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UpdatedAt.Equal(testStart.Add(time.Hour)) {
		t.Fatalf("expected updated_at bumped, got %s", updated.UpdatedAt)
	}
	if !updated.Projects[5].CreatedAt.Equal(testStart.Add(time.Hour)) || !updated.Projects[0].CreatedAt.Equal(testStart) {
		t.Fatalf("expected only new project stamped")
	}

	got, err := uc.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != p.ID || got.Personal.Title != "Data Scientist" || len(got.Projects) != 6 {
		t.Fatalf("unexpected stored portfolio %+v", got.Personal)
	}
	n, _ := store.Collection(database.CollectionPortfolio).Count(ctx)
	if n != 1 {
		t.Fatalf("expected replace, not insert; got %d documents", n)
	}
}

func TestUpdatePortfolio_RequiresID(t *testing.T) {
	uc, _, _ := newTestUsecase(t, memory.NewStore())
	if _, err := uc.UpdatePortfolio(context.Background(), portfolio.Portfolio{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStorageFailuresAreWrappedAndLogged(t *testing.T) {
	boom := errors.New("connection refused")
	uc, _, logs := newTestUsecase(t, failingStore{err: boom})
	ctx := context.Background()

	calls := map[string]func() error{
		"initialize": func() error { _, err := uc.InitializePortfolio(ctx); return err },
		"portfolio":  func() error { _, err := uc.GetPortfolio(ctx); return err },
		"personal":   func() error { _, err := uc.GetPersonalInfo(ctx); return err },
		"projects":   func() error { _, err := uc.GetProjects(ctx, "all"); return err },
		"experience": func() error { _, err := uc.GetExperience(ctx); return err },
		"contact": func() error {
			_, err := uc.CreateContactMessage(ctx, portfolio.ContactMessageInput{Name: "a", Email: "b", Message: "c"})
			return err
		},
		"contacts": func() error { _, err := uc.GetContactMessages(ctx, 10); return err },
		"update":   func() error { _, err := uc.UpdatePortfolio(ctx, portfolio.Portfolio{ID: "x"}); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			if !errors.Is(err, ErrStorageUnavailable) {
				t.Fatalf("expected ErrStorageUnavailable, got %v", err)
			}
			if !errors.Is(err, boom) {
				t.Fatalf("expected backend cause preserved, got %v", err)
			}
		})
	}

	if !strings.Contains(logs.String(), "error=connection refused") {
		t.Fatalf("expected failures to be logged, got %q", logs.String())
	}
}

func TestFilterProjects_DoesNotAliasInput(t *testing.T) {
	in := []portfolio.Project{{ID: 1, Category: "A"}}
	out := FilterProjects(in, "all")
	out[0].ID = 99
	if in[0].ID != 1 {
		t.Fatalf("expected filtered slice to be a copy")
	}
}
