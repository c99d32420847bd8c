package handler

import (
	"career-hub/internal/database"
	"career-hub/internal/infrastructure/cache"
	"career-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, rc *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: rc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if h.db == nil {
		checks["database"] = "unconfigured"
		healthy = false
	} else if err := h.db.Ping(c.Context()); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}

	// Redis is best-effort; a down cache degrades latency, not correctness.
	if h.cache == nil {
		checks["redis"] = "disabled"
	} else if err := h.cache.Ping(c.Context()); err != nil {
		checks["redis"] = err.Error()
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, response.DefaultMessageForStatus(status), checks)
}
