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

type ProficiencyHandler struct {
	uc usecase.ProficiencyUsecase
}

type setProficiencyRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Level   int       `json:"level"`
	Notes   string    `json:"notes"`
}

func NewProficiencyHandler(uc usecase.ProficiencyUsecase) *ProficiencyHandler {
	return &ProficiencyHandler{uc: uc}
}

func (h *ProficiencyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	me := r.Group("/me/skills")
	me.Get("/", h.ListMine)
	me.Post("/", h.SetMine)
	me.Delete("/:skillID", h.RemoveMine)

	grp := r.Group("/employees/:id/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Set)
	grp.Delete("/:skillID", h.Remove)
}

func (h *ProficiencyHandler) ListMine(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.list(c, actorID)
}

func (h *ProficiencyHandler) SetMine(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.set(c, actorID)
}

func (h *ProficiencyHandler) RemoveMine(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.remove(c, actorID)
}

func (h *ProficiencyHandler) List(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.list(c, targetID)
}

func (h *ProficiencyHandler) Set(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := requireSelfOrHR(c, targetID); err != nil {
		return err
	}
	return h.set(c, targetID)
}

func (h *ProficiencyHandler) Remove(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := requireSelfOrHR(c, targetID); err != nil {
		return err
	}
	return h.remove(c, targetID)
}

func (h *ProficiencyHandler) list(c fiber.Ctx, employeeID uuid.UUID) error {
	items, err := h.uc.ListEmployeeSkills(c.Context(), employeeID)
	if err != nil {
		return mapProficiencyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ProficiencyHandler) set(c fiber.Ctx, employeeID uuid.UUID) error {
	var req setProficiencyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.SetEmployeeSkill(c.Context(), employeeID, usecase.SetProficiencyInput{
		SkillID: req.SkillID,
		Level:   req.Level,
		Notes:   req.Notes,
	})
	if err != nil {
		return mapProficiencyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *ProficiencyHandler) remove(c fiber.Ctx, employeeID uuid.UUID) error {
	skillID, err := uuid.Parse(c.Params("skillID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveEmployeeSkill(c.Context(), employeeID, skillID); err != nil {
		return mapProficiencyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// requireSelfOrHR lets an employee manage their own records while HR and
// admins can manage anyone's.
func requireSelfOrHR(c fiber.Ctx, targetID uuid.UUID) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	if actorID == targetID {
		return nil
	}

	roleStr, _ := c.Locals(middleware.CtxRoleKey).(string)
	role, ok := employee.ParseRole(roleStr)
	if !ok || !role.CanActForHR() {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
	return nil
}

func mapProficiencyUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSkillLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill level", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
