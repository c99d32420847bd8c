package handler

import (
	"errors"

	"career-hub/internal/delivery/http/dto"
	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/pkg/response"
	"career-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RankingHandler struct {
	ranking usecase.RankingUsecase
	scoring usecase.ScoringUsecase
}

func NewRankingHandler(ranking usecase.RankingUsecase, scoring usecase.ScoringUsecase) *RankingHandler {
	return &RankingHandler{ranking: ranking, scoring: scoring}
}

func (h *RankingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/positions/:id/candidates", h.CandidatesForPosition)
	r.Get("/positions/:id/score/:employeeID", h.ScoreCandidate)
	r.Get("/me/recommendations", h.MyRecommendations)
	r.Get("/employees/:id/recommendations", h.RecommendationsForEmployee)
}

func (h *RankingHandler) CandidatesForPosition(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	ranked, err := h.ranking.RankCandidatesForPosition(c.Context(), positionID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}

func (h *RankingHandler) ScoreCandidate(c fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	employeeID, err := uuid.Parse(c.Params("employeeID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.scoring.ScoreCandidate(c.Context(), employeeID, positionID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScoreResponse(res))
}

func (h *RankingHandler) MyRecommendations(c fiber.Ctx) error {
	actorID, ok := middleware.EmployeeIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.recommendations(c, actorID)
}

func (h *RankingHandler) RecommendationsForEmployee(c fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.recommendations(c, employeeID)
}

func (h *RankingHandler) recommendations(c fiber.Ctx, employeeID uuid.UUID) error {
	ranked, err := h.ranking.RankPositionsForEmployee(c.Context(), employeeID)
	if err != nil {
		return mapRankingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}

func mapRankingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPositionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Position not found", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
