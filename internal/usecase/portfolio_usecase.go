package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"portfolio-api/internal/database"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	DefaultContactLimit = 50
	MaxContactLimit     = 100

	categoryAll = "all"
)

type PortfolioUsecase interface {
	InitializePortfolio(ctx context.Context) (portfolio.Portfolio, error)
	GetPortfolio(ctx context.Context) (portfolio.Portfolio, error)
	GetPersonalInfo(ctx context.Context) (portfolio.PersonalInfo, error)
	GetProjects(ctx context.Context, category string) ([]portfolio.Project, error)
	GetExperience(ctx context.Context) ([]portfolio.Experience, error)
	CreateContactMessage(ctx context.Context, in portfolio.ContactMessageInput) (portfolio.ContactMessage, error)
	GetContactMessages(ctx context.Context, limit int) ([]portfolio.ContactMessage, error)
	UpdatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error)
}

// ContactNotifier is told about every stored contact message. Delivery is
// best effort.
type ContactNotifier interface {
	NotifyContactMessage(ctx context.Context, msg portfolio.ContactMessage)
}

type PortfolioOption func(*Portfolio)

func WithClock(c clock.Clock) PortfolioOption {
	return func(u *Portfolio) {
		if c != nil {
			u.clock = c
		}
	}
}

func WithIDGenerator(fn func() string) PortfolioOption {
	return func(u *Portfolio) {
		if fn != nil {
			u.newID = fn
		}
	}
}

func WithContactNotifier(n ContactNotifier) PortfolioOption {
	return func(u *Portfolio) {
		u.notifier = n
	}
}

type Portfolio struct {
	store    database.DocumentStore
	logger   *log.Logger
	clock    clock.Clock
	newID    func() string
	notifier ContactNotifier
}

func NewPortfolioUsecase(store database.DocumentStore, logger *log.Logger, opts ...PortfolioOption) *Portfolio {
	if logger == nil {
		logger = log.Default()
	}
	u := &Portfolio{
		store:  store,
		logger: logger,
		clock:  clock.System{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Portfolio) portfolios() database.Collection {
	return u.store.Collection(database.CollectionPortfolio)
}

func (u *Portfolio) contacts() database.Collection {
	return u.store.Collection(database.CollectionContactMessages)
}

func (u *Portfolio) storageError(op string, err error) error {
	u.logger.Printf("Portfolio | op=%s error=%v", op, err)
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func (u *Portfolio) InitializePortfolio(ctx context.Context) (portfolio.Portfolio, error) {
	existing, err := u.GetPortfolio(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, portfolio.ErrNotFound) {
		return portfolio.Portfolio{}, err
	}

	seed := seeder.DefaultPortfolio()
	seed.Stamp(u.newID(), u.clock.Now())

	doc, err := database.NewDocument(seed.ID, seed.UpdatedAt, seed.UpdatedAt, seed)
	if err != nil {
		return portfolio.Portfolio{}, u.storageError("initialize", err)
	}

	inserted, err := u.portfolios().InsertOneIfEmpty(ctx, doc)
	if err != nil {
		return portfolio.Portfolio{}, u.storageError("initialize", err)
	}
	if !inserted {
		// Another request seeded first; serve what it stored.
		u.logger.Printf("Portfolio | op=initialize seeded=false reason=already_seeded")
		return u.GetPortfolio(ctx)
	}

	u.logger.Printf("Portfolio | op=initialize seeded=true id=%s", seed.ID)
	return seed, nil
}

func (u *Portfolio) GetPortfolio(ctx context.Context) (portfolio.Portfolio, error) {
	raw, err := u.portfolios().FindOne(ctx)
	if err != nil {
		if errors.Is(err, database.ErrNoDocuments) {
			return portfolio.Portfolio{}, portfolio.ErrNotFound
		}
		return portfolio.Portfolio{}, u.storageError("get_portfolio", err)
	}

	p, err := portfolio.DecodePortfolio(raw)
	if err != nil {
		return portfolio.Portfolio{}, u.storageError("get_portfolio", err)
	}
	return p, nil
}

func (u *Portfolio) GetPersonalInfo(ctx context.Context) (portfolio.PersonalInfo, error) {
	p, err := u.GetPortfolio(ctx)
	if err != nil {
		return portfolio.PersonalInfo{}, err
	}
	return p.Personal, nil
}

func (u *Portfolio) GetProjects(ctx context.Context, category string) ([]portfolio.Project, error) {
	p, err := u.GetPortfolio(ctx)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return []portfolio.Project{}, nil
		}
		return nil, err
	}
	return FilterProjects(p.Projects, category), nil
}

// FilterProjects keeps projects whose category matches case-insensitively.
// An empty filter or "all" keeps everything. Order is preserved.
func FilterProjects(projects []portfolio.Project, category string) []portfolio.Project {
	category = strings.TrimSpace(category)
	out := make([]portfolio.Project, 0, len(projects))
	if category == "" || strings.EqualFold(category, categoryAll) {
		return append(out, projects...)
	}
	for _, pr := range projects {
		if strings.EqualFold(pr.Category, category) {
			out = append(out, pr)
		}
	}
	return out
}

func (u *Portfolio) GetExperience(ctx context.Context) ([]portfolio.Experience, error) {
	p, err := u.GetPortfolio(ctx)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return []portfolio.Experience{}, nil
		}
		return nil, err
	}
	return append(make([]portfolio.Experience, 0, len(p.Experience)), p.Experience...), nil
}

func (u *Portfolio) CreateContactMessage(ctx context.Context, in portfolio.ContactMessageInput) (portfolio.ContactMessage, error) {
	// Field presence is enforced at the HTTP boundary; empty strings are
	// stored as given.
	msg := portfolio.ContactMessage{
		ID:        u.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: u.clock.Now().UTC(),
		Read:      false,
	}

	doc, err := database.NewDocument(msg.ID, msg.CreatedAt, msg.CreatedAt, msg)
	if err != nil {
		return portfolio.ContactMessage{}, u.storageError("create_contact_message", err)
	}
	if err := u.contacts().InsertOne(ctx, doc); err != nil {
		return portfolio.ContactMessage{}, u.storageError("create_contact_message", err)
	}

	u.logger.Printf("Portfolio | op=create_contact_message id=%s email=%s", msg.ID, msg.Email)
	if u.notifier != nil {
		u.notifier.NotifyContactMessage(ctx, msg)
	}
	return msg, nil
}

func (u *Portfolio) GetContactMessages(ctx context.Context, limit int) ([]portfolio.ContactMessage, error) {
	if limit < 1 || limit > MaxContactLimit {
		return nil, ErrInvalidInput
	}

	raws, err := u.contacts().FindSorted(ctx, database.SortCreatedAt, database.Descending, limit)
	if err != nil {
		return nil, u.storageError("get_contact_messages", err)
	}

	out := make([]portfolio.ContactMessage, 0, len(raws))
	for _, raw := range raws {
		m, err := portfolio.DecodeContactMessage(raw)
		if err != nil {
			return nil, u.storageError("get_contact_messages", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (u *Portfolio) UpdatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error) {
	if strings.TrimSpace(p.ID) == "" {
		return portfolio.Portfolio{}, ErrInvalidInput
	}
	if p.Projects == nil {
		p.Projects = []portfolio.Project{}
	}
	if p.Experience == nil {
		p.Experience = []portfolio.Experience{}
	}
	p.Stamp(p.ID, u.clock.Now())

	doc, err := database.NewDocument(p.ID, p.UpdatedAt, p.UpdatedAt, p)
	if err != nil {
		return portfolio.Portfolio{}, u.storageError("update_portfolio", err)
	}
	if err := u.portfolios().ReplaceOne(ctx, p.ID, doc); err != nil {
		return portfolio.Portfolio{}, u.storageError("update_portfolio", err)
	}

	u.logger.Printf("Portfolio | op=update_portfolio id=%s", p.ID)
	return p, nil
}
