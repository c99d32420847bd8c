package dto

import (
	"career-hub/internal/domain/succession"

	"github.com/google/uuid"
)

type SuccessionCandidateResponse struct {
	ID           uuid.UUID `json:"id"`
	PositionID   uuid.UUID `json:"position_id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	PriorityRank int       `json:"priority_rank"`
	MatchScore   float64   `json:"match_score"`
	Status       string    `json:"status"`
}

func NewSuccessionCandidateResponses(items []succession.Candidate) []SuccessionCandidateResponse {
	out := make([]SuccessionCandidateResponse, 0, len(items))
	for _, c := range items {
		out = append(out, SuccessionCandidateResponse{
			ID:           c.ID,
			PositionID:   c.PositionID,
			EmployeeID:   c.EmployeeID,
			EmployeeName: c.EmployeeName,
			PriorityRank: c.PriorityRank,
			MatchScore:   c.MatchScore,
			Status:       string(c.Status),
		})
	}
	return out
}
