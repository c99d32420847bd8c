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

type SkillHandler struct {
	uc   usecase.SkillUsecase
	auth *middleware.AuthMiddleware
}

type createSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewSkillHandler(uc usecase.SkillUsecase, auth *middleware.AuthMiddleware) *SkillHandler {
	return &SkillHandler{uc: uc, auth: auth}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create, h.auth.RequireRoles(employee.RoleHR, employee.RoleAdmin))
	grp.Delete("/:id", h.Deactivate, h.auth.RequireRoles(employee.RoleHR, employee.RoleAdmin))
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	includeInactive := c.Query("include_inactive") == "true"

	items, err := h.uc.ListSkills(c.Context(), includeInactive)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddSkill(c.Context(), req.Name, req.Category)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, created)
}

func (h *SkillHandler) Deactivate(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeactivateSkill(c.Context(), id); err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
