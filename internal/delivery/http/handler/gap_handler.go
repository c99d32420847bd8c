package handler

import (
	"errors"

	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/pkg/response"
	"career-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type GapHandler struct {
	uc usecase.GapUsecase
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills/:id/gap-analysis", h.Analyze)
}

func (h *GapHandler) Analyze(c fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		departmentID = &id
	}

	analysis, err := h.uc.GetSkillGapAnalysis(c.Context(), skillID, departmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrSkillNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, analysis)
}
