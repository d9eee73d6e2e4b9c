package recommendationapi

import (
	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/guidance/recommendation/recommendationsrv"
	"github.com/compasshq/compass/pkg/auth"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for recommendation operations
type Handlers struct {
	service *recommendationsrv.Service
}

// NewHandlers creates a new recommendation handlers instance
func NewHandlers(service *recommendationsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Generate runs the recommendation pipeline for the authenticated user
// POST /api/recommendations
func (h *Handlers) Generate(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return recommendation.ErrMissingUserID()
	}

	var req recommendation.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return recommendation.ErrMissingUserID().WithDetail("parse_error", err.Error())
		}
	}
	req.UserID = userID

	resp, err := h.service.Generate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Cached returns the most recent persisted batch without generating
// GET /api/recommendations
func (h *Handlers) Cached(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return recommendation.ErrMissingUserID()
	}

	resp, err := h.service.Cached(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// SelectRole records which recommended role the user picked
// POST /api/recommendations/select
func (h *Handlers) SelectRole(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return recommendation.ErrMissingUserID()
	}

	var req recommendation.SelectRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return recommendation.ErrMissingRoleTitle().WithDetail("parse_error", err.Error())
	}

	if err := h.service.SelectRole(c.Context(), userID, req.RoleTitle); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"selected": req.RoleTitle})
}

// RegisterRoutes wires recommendation routes behind the auth middleware
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	group := app.Group("/api/recommendations", authMiddleware.Handle)
	group.Post("/", handlers.Generate)
	group.Get("/", handlers.Cached)
	group.Post("/select", handlers.SelectRole)
}
