package routes

import (
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	portfolio *handler.PortfolioHandler
	contactWS *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, portfolio *handler.PortfolioHandler, contactWS *ws.Handler) *Registry {
	return &Registry{health: health, portfolio: portfolio, contactWS: contactWS}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	api := app.Group("/api")
	if r.health != nil {
		r.health.RegisterRoutes(api)
	}
	r.registerPortfolio(api.Group("/portfolio"))
}

func (r *Registry) registerPortfolio(g fiber.Router) {
	if r.contactWS != nil {
		g.Get("/contact/ws", r.contactWS.HandleContactWS)
	}
	if r.portfolio != nil {
		r.portfolio.RegisterRoutes(g)
	}
}
