package handler

import (
	"context"

	"internmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type modelReadiness interface {
	Ready() bool
}

type HealthHandler struct {
	db    pinger
	cache pinger
	model modelReadiness
}

func NewHealthHandler(db pinger, cache pinger, model modelReadiness) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, model: model}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

// Health reports per-dependency status. Redis being down is not fatal;
// the database being down is.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	detail := fiber.Map{
		"database":    "ok",
		"cache":       "ok",
		"model_ready": h.model != nil && h.model.Ready(),
	}

	dbOK := true
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			detail["database"] = "unavailable"
			dbOK = false
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			detail["cache"] = "unavailable"
		}
	}

	if !dbOK {
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", detail)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, detail)
}
