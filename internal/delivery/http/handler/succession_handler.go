package handler

import (
	"errors"

	"career-hub/internal/delivery/http/dto"
	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/domain/employee"
	"career-hub/internal/pkg/response"
	"career-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SuccessionHandler struct {
	uc   usecase.SuccessionUsecase
	auth *middleware.AuthMiddleware
}

type buildShortlistRequest struct {
	TopN int `json:"top_n"`
}

type updateCandidateStatusRequest struct {
	Status string `json:"status"`
}

func NewSuccessionHandler(uc usecase.SuccessionUsecase, auth *middleware.AuthMiddleware) *SuccessionHandler {
	return &SuccessionHandler{uc: uc, auth: auth}
}

func (h *SuccessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	hrOnly := h.auth.RequireRoles(employee.RoleHR, employee.RoleAdmin)
	r.Post("/positions/:id/succession", h.Build, hrOnly)
	r.Get("/positions/:id/succession", h.List, hrOnly)
	r.Patch("/succession/:id/status", h.UpdateStatus, hrOnly)
}

func (h *SuccessionHandler) Build(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req buildShortlistRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.BuildShortlist(c.Context(), positionID, req.TopN)
	if err != nil {
		return mapSuccessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewSuccessionCandidateResponses(items))
}

func (h *SuccessionHandler) List(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListCandidates(c.Context(), positionID)
	if err != nil {
		return mapSuccessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSuccessionCandidateResponses(items))
}

func (h *SuccessionHandler) UpdateStatus(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateCandidateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateStatus(c.Context(), candidateID, req.Status); err != nil {
		return mapSuccessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapSuccessionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPositionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Position not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
