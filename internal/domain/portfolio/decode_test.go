package portfolio

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validPortfolio() Portfolio {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	return Portfolio{
		ID:       "p-1",
		Personal: PersonalInfo{Name: "Jane"},
		Projects: []Project{{ID: 1, Title: "Dashboard", Category: "Data Analytics", CreatedAt: now}},
		Experience: []Experience{
			{ID: 1, Title: "Intern", Company: "Acme", CreatedAt: now},
		},
		UpdatedAt: now,
	}
}

func TestDecodePortfolio_Valid(t *testing.T) {
	b, err := json.Marshal(validPortfolio())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := DecodePortfolio(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != "p-1" || got.Personal.Name != "Jane" {
		t.Fatalf("unexpected portfolio: %+v", got)
	}
	if len(got.Projects) != 1 || len(got.Experience) != 1 {
		t.Fatalf("unexpected lists: projects=%d experience=%d", len(got.Projects), len(got.Experience))
	}
}

func TestDecodePortfolio_EmptyListsAreValid(t *testing.T) {
	p := validPortfolio()
	p.Projects = []Project{}
	p.Experience = []Experience{}
	b, _ := json.Marshal(p)

	if _, err := DecodePortfolio(b); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDecodePortfolio_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(p *Portfolio)
		wantKey string
	}{
		{"id", func(p *Portfolio) { p.ID = "" }, "id"},
		{"personal name", func(p *Portfolio) { p.Personal.Name = " " }, "personal.name"},
		{"projects", func(p *Portfolio) { p.Projects = nil }, "projects"},
		{"experience", func(p *Portfolio) { p.Experience = nil }, "experience"},
		{"updated_at", func(p *Portfolio) { p.UpdatedAt = time.Time{} }, "updated_at"},
		{"project created_at", func(p *Portfolio) { p.Projects[0].CreatedAt = time.Time{} }, "projects[0].created_at"},
		{"experience title", func(p *Portfolio) { p.Experience[0].Title = "" }, "experience[0].title"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPortfolio()
			tc.mutate(&p)
			b, _ := json.Marshal(p)

			_, err := DecodePortfolio(b)
			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantKey) {
				t.Fatalf("expected error to name %q, got %v", tc.wantKey, err)
			}
		})
	}
}

func TestDecodePortfolio_InvalidJSON(t *testing.T) {
	_, err := DecodePortfolio([]byte(`{"id":`))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestDecodeContactMessage(t *testing.T) {
	raw := []byte(`{"id":"m-1","name":"Sarah","email":"s@example.com","message":"Hi","created_at":"2024-07-01T10:00:00Z","read":false}`)
	m, err := DecodeContactMessage(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.ID != "m-1" || m.Read {
		t.Fatalf("unexpected message: %+v", m)
	}

	_, err = DecodeContactMessage([]byte(`{"id":"m-1","name":"Sarah","message":"Hi","created_at":"2024-07-01T10:00:00Z"}`))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected missing email, got %v", err)
	}
}

func TestDecodeContactMessage_EmptyStringsArePresent(t *testing.T) {
	raw := []byte(`{"id":"m-2","name":"","email":"","message":"","created_at":"2024-07-01T10:00:00Z","read":false}`)
	m, err := DecodeContactMessage(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.ID != "m-2" || m.Name != "" {
		t.Fatalf("unexpected message: %+v", m)
	}

	_, err = DecodeContactMessage([]byte(`{"id":"m-3","name":null,"email":"","message":"","created_at":"2024-07-01T10:00:00Z"}`))
	if !errors.Is(err, ErrMalformedDocument) || !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected missing name, got %v", err)
	}
}

func TestPortfolioStamp(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	kept := now.Add(-time.Hour)
	p := Portfolio{
		Projects:   []Project{{ID: 1}, {ID: 2, CreatedAt: kept}},
		Experience: []Experience{{ID: 1}},
	}

	p.Stamp("abc", now)

	if p.ID != "abc" {
		t.Fatalf("expected id abc, got %q", p.ID)
	}
	if !p.Projects[0].CreatedAt.Equal(now) || !p.Projects[1].CreatedAt.Equal(kept) {
		t.Fatalf("unexpected project timestamps: %+v", p.Projects)
	}
	if !p.Experience[0].CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %+v", p)
	}
}
