package handler

import (
	"errors"

	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/domain/employee"
	"career-hub/internal/pkg/response"
	"career-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequirementHandler struct {
	uc   usecase.RequirementUsecase
	auth *middleware.AuthMiddleware
}

type setRequirementRequest struct {
	SkillID       uuid.UUID `json:"skill_id"`
	RequiredLevel int       `json:"required_level"`
	Mandatory     bool      `json:"mandatory"`
	Weight        int       `json:"weight"`
}

func NewRequirementHandler(uc usecase.RequirementUsecase, auth *middleware.AuthMiddleware) *RequirementHandler {
	return &RequirementHandler{uc: uc, auth: auth}
}

func (h *RequirementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/positions/:id/requirements")
	grp.Get("/", h.List)
	grp.Post("/", h.Set, h.auth.RequireRoles(employee.RoleHR, employee.RoleAdmin))
	grp.Delete("/:skillID", h.Remove, h.auth.RequireRoles(employee.RoleHR, employee.RoleAdmin))
}

func (h *RequirementHandler) List(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListPositionRequirements(c.Context(), positionID)
	if err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *RequirementHandler) Set(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req setRequirementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.SetPositionRequirement(c.Context(), positionID, usecase.SetRequirementInput{
		SkillID:       req.SkillID,
		RequiredLevel: req.RequiredLevel,
		Mandatory:     req.Mandatory,
		Weight:        req.Weight,
	})
	if err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *RequirementHandler) Remove(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	skillID, err := uuid.Parse(c.Params("skillID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemovePositionRequirement(c.Context(), positionID, skillID); err != nil {
		return mapRequirementUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapRequirementUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSkillLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill level", nil, err)
	case errors.Is(err, usecase.ErrPositionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Position not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
