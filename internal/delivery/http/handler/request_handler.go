package handler

import (
	"errors"

	"career-hub/internal/delivery/http/dto"
	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/domain/request"
	"career-hub/internal/pkg/response"
	"career-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequestHandler struct {
	uc usecase.RequestUsecase
}

type submitRequestBody struct {
	Type             string     `json:"type"`
	TargetEmployeeID uuid.UUID  `json:"target_employee_id"`
	NewPositionID    *uuid.UUID `json:"new_position_id"`
	CareerPath       string     `json:"career_path"`
	ProposedSalary   *float64   `json:"proposed_salary"`
	NewDepartmentID  *uuid.UUID `json:"new_department_id"`
	NewManagerID     *uuid.UUID `json:"new_manager_id"`
	Notes            string     `json:"notes"`
}

type rejectRequestBody struct {
	Reason string `json:"reason"`
}

func NewRequestHandler(uc usecase.RequestUsecase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

func (h *RequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/requests")
	grp.Post("/", h.Submit)
	grp.Get("/pending", h.Pending)
	grp.Post("/:id/approve", h.Approve)
	grp.Post("/:id/reject", h.Reject)
	grp.Post("/:id/cancel", h.Cancel)
}

func (h *RequestHandler) Submit(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var body submitRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	r, err := h.uc.Submit(c.Context(), actorID, usecase.SubmitRequestInput{
		Type:             body.Type,
		TargetEmployeeID: body.TargetEmployeeID,
		NewPositionID:    body.NewPositionID,
		CareerPath:       body.CareerPath,
		ProposedSalary:   body.ProposedSalary,
		NewDepartmentID:  body.NewDepartmentID,
		NewManagerID:     body.NewManagerID,
		Notes:            body.Notes,
	})
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewRequestResponse(r))
}

func (h *RequestHandler) Pending(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListPendingForActor(c.Context(), actorID)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestResponses(items))
}

func (h *RequestHandler) Approve(c fiber.Ctx) error {
	return h.transition(c, func(actorID, requestID uuid.UUID) (request.Request, error) {
		return h.uc.Approve(c.Context(), actorID, requestID)
	})
}

func (h *RequestHandler) Reject(c fiber.Ctx) error {
	var body rejectRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.transition(c, func(actorID, requestID uuid.UUID) (request.Request, error) {
		return h.uc.Reject(c.Context(), actorID, requestID, body.Reason)
	})
}

func (h *RequestHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, func(actorID, requestID uuid.UUID) (request.Request, error) {
		return h.uc.Cancel(c.Context(), actorID, requestID)
	})
}

func (h *RequestHandler) transition(c fiber.Ctx, apply func(actorID, requestID uuid.UUID) (request.Request, error)) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	r, err := apply(actorID, requestID)
	if err != nil {
		return mapRequestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestResponse(r))
}

func mapRequestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, request.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", nil, err)
	case errors.Is(err, request.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, request.ErrInvalidState):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid request state", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Request was modified concurrently", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
