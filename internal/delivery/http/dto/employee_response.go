package dto

import (
	"time"

	"career-hub/internal/domain/employee"

	"github.com/google/uuid"
)

type EmployeeResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id"`
	PositionID   *uuid.UUID `json:"position_id"`
	ManagerID    *uuid.UUID `json:"manager_id"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewEmployeeResponse(e employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Role:         string(e.Role),
		DepartmentID: e.DepartmentID,
		PositionID:   e.PositionID,
		ManagerID:    e.ManagerID,
		Active:       e.Active,
		CreatedAt:    e.CreatedAt,
	}
}
