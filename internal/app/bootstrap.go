package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Config, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, optionally seeds, starts the contact event
// subscriber and returns the app together with its cleanup func.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.App.SeedOnStart {
		runner := seeder.Runner{Seeders: []seeder.Seeder{seeder.PortfolioSeeder{Service: c.Portfolio}}}
		if err := runner.Run(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	logStoreCounts(ctx, c)

	subCtx, stopSub := context.WithCancel(context.Background())
	if c.Events.Available() {
		go func() {
			if err := c.Events.Subscribe(subCtx, c.Hub.Broadcast); err != nil {
				c.Logger.Printf("[Events] subscriber stopped: %v", err)
			}
		}()
	}

	cleanup := func() error {
		stopSub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func logStoreCounts(ctx context.Context, c *Container) {
	for _, name := range []string{database.CollectionPortfolio, database.CollectionContactMessages} {
		n, err := c.Store.Collection(name).Count(ctx)
		if err != nil {
			c.Logger.Printf("Store | driver=%s collection=%s error=%v", c.Config.Database.Driver, name, err)
			continue
		}
		c.Logger.Printf("Store | driver=%s collection=%s documents=%d", c.Config.Database.Driver, name, n)
	}
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
	}))

	accessMw := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.Store),
		handler.NewPortfolioHandler(c.Portfolio),
		ws.NewHandler(c.Hub, c.Logger, c.Config.HTTP.CORSOrigins),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
