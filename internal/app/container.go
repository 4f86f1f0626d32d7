package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/memory"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/database/sqlite"
	"portfolio-api/internal/infrastructure/events"
	"portfolio-api/internal/usecase"
	"portfolio-api/internal/ws"
)

type Container struct {
	Config    config.Config
	Logger    *log.Logger
	Store     database.DocumentStore
	Hub       *ws.Hub
	Events    *events.Redis
	Portfolio *usecase.Portfolio
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	store, err := OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return newContainer(cfg, logger, store), nil
}

func newContainer(cfg config.Config, logger *log.Logger, store database.DocumentStore) *Container {
	hub := ws.NewHub(logger)
	go hub.Run()

	publisher := events.NewRedis(cfg.Redis, ws.LocalPublisher{Hub: hub}, logger)
	notifier := ws.NewContactNotifier(publisher, logger)

	uc := usecase.NewPortfolioUsecase(store, logger, usecase.WithContactNotifier(notifier))

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Hub:       hub,
		Events:    publisher,
		Portfolio: uc,
	}
}

// OpenStore connects the document store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (database.DocumentStore, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return dbpostgres.Connect(ctx, cfg)
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.DriverMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Events != nil {
		errs = append(errs, c.Events.Close())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}
