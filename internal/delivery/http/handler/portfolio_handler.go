package handler

import (
	"errors"
	"strconv"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/domain/portfolio"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PortfolioHandler struct {
	uc usecase.PortfolioUsecase
}

type contactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

func (r contactRequest) missing() []string {
	var out []string
	if r.Name == nil {
		out = append(out, "name")
	}
	if r.Email == nil {
		out = append(out, "email")
	}
	if r.Message == nil {
		out = append(out, "message")
	}
	return out
}

func NewPortfolioHandler(uc usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.GetPortfolio)
	r.Get("/personal", h.GetPersonalInfo)
	r.Get("/projects", h.GetProjects)
	r.Get("/experience", h.GetExperience)
	r.Post("/contact", h.CreateContactMessage)
	r.Get("/contact", h.GetContactMessages)
}

// GetPortfolio seeds the default portfolio on first access.
func (h *PortfolioHandler) GetPortfolio(c fiber.Ctx) error {
	p, err := h.uc.InitializePortfolio(c.Context())
	if err != nil {
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, p)
}

func (h *PortfolioHandler) GetPersonalInfo(c fiber.Ctx) error {
	info, err := h.uc.GetPersonalInfo(c.Context())
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Personal info not found", nil, err)
		}
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, info)
}

func (h *PortfolioHandler) GetProjects(c fiber.Ctx) error {
	projects, err := h.uc.GetProjects(c.Context(), c.Query("category"))
	if err != nil {
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, projects)
}

func (h *PortfolioHandler) GetExperience(c fiber.Ctx) error {
	exp, err := h.uc.GetExperience(c.Context())
	if err != nil {
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, exp)
}

func (h *PortfolioHandler) CreateContactMessage(c fiber.Ctx) error {
	var req contactRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if missing := req.missing(); len(missing) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", map[string]any{"missing": missing}, nil)
	}

	msg, err := h.uc.CreateContactMessage(c.Context(), portfolio.ContactMessageInput{
		Name:    *req.Name,
		Email:   *req.Email,
		Message: *req.Message,
	})
	if err != nil {
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, msg)
}

func (h *PortfolioHandler) GetContactMessages(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultContactLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msgs, err := h.uc.GetContactMessages(c.Context(), limit)
	if err != nil {
		return mapPortfolioUsecaseError(err)
	}
	return response.Entity(c, fiber.StatusOK, msgs)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapPortfolioUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, portfolio.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
