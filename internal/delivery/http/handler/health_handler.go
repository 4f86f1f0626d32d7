package handler

import (
	"context"
	"time"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	ServiceName    = "portfolio-api"
	ServiceVersion = "1.0.0"

	healthPingTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(c fiber.Ctx) error {
	return response.Entity(c, fiber.StatusOK, fiber.Map{"message": "Portfolio API", "version": ServiceVersion})
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			return middleware.NewAppError(
				fiber.StatusServiceUnavailable,
				response.MessageServiceUnavailable,
				fiber.Map{"status": "unhealthy", "service": ServiceName},
				err,
			)
		}
	}
	return response.Entity(c, fiber.StatusOK, fiber.Map{"status": "healthy", "service": ServiceName})
}
