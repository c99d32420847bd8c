package dto

import (
	"time"

	"career-hub/internal/domain/request"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	Type             string     `json:"type"`
	RequesterID      uuid.UUID  `json:"requester_id"`
	TargetEmployeeID uuid.UUID  `json:"target_employee_id"`
	Status           string     `json:"status"`
	NewPositionID    *uuid.UUID `json:"new_position_id,omitempty"`
	CareerPath       string     `json:"career_path,omitempty"`
	ProposedSalary   *float64   `json:"proposed_salary,omitempty"`
	NewDepartmentID  *uuid.UUID `json:"new_department_id,omitempty"`
	NewManagerID     *uuid.UUID `json:"new_manager_id,omitempty"`

	ManagerStageRequired bool       `json:"manager_stage_required"`
	SubmittedAt          time.Time  `json:"submitted_at"`
	ManagerApprovedAt    *time.Time `json:"manager_approved_at,omitempty"`
	ManagerApprovedBy    *uuid.UUID `json:"manager_approved_by,omitempty"`
	HRApprovedAt         *time.Time `json:"hr_approved_at,omitempty"`
	HRApprovedBy         *uuid.UUID `json:"hr_approved_by,omitempty"`
	ProcessedAt          *time.Time `json:"processed_at,omitempty"`
	RejectionReason      string     `json:"rejection_reason,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	Version              int64      `json:"version"`
}

func NewRequestResponse(r request.Request) RequestResponse {
	return RequestResponse{
		ID:               r.ID,
		Type:             string(r.Type),
		RequesterID:      r.RequesterID,
		TargetEmployeeID: r.TargetEmployeeID,
		Status:           string(r.Status),
		NewPositionID:    r.Payload.NewPositionID,
		CareerPath:       r.Payload.CareerPath,
		ProposedSalary:   r.Payload.ProposedSalary,
		NewDepartmentID:  r.Payload.NewDepartmentID,
		NewManagerID:     r.Payload.NewManagerID,

		ManagerStageRequired: r.ManagerStageRequired,
		SubmittedAt:          r.SubmittedAt,
		ManagerApprovedAt:    r.ManagerApprovedAt,
		ManagerApprovedBy:    r.ManagerApprovedBy,
		HRApprovedAt:         r.HRApprovedAt,
		HRApprovedBy:         r.HRApprovedBy,
		ProcessedAt:          r.ProcessedAt,
		RejectionReason:      r.RejectionReason,
		Notes:                r.Notes,
		Version:              r.Version,
	}
}

func NewRequestResponses(items []request.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRequestResponse(r))
	}
	return out
}
