package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
)

type Type string

const (
	TypePositionChange   Type = "position_change"
	TypeDepartmentChange Type = "department_change"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypePositionChange, TypeDepartmentChange:
		return Type(s), true
	}
	return "", false
}

type Status string

const (
	StatusPending         Status = "pending"
	StatusManagerApproved Status = "manager_approved"
	StatusHRApproved      Status = "hr_approved"
	StatusAutoApproved    Status = "auto_approved"
	StatusRejected        Status = "rejected"
	StatusCanceled        Status = "canceled"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusHRApproved, StatusAutoApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Payload carries the type-specific fields of a request. It is immutable
// once submitted.
type Payload struct {
	NewPositionID   *uuid.UUID
	CareerPath      string
	ProposedSalary  *float64
	NewDepartmentID *uuid.UUID
	NewManagerID    *uuid.UUID
}

func (p Payload) SalaryChange() bool {
	return p.ProposedSalary != nil && *p.ProposedSalary > 0
}

func (p Payload) DepartmentChange() bool {
	return p.NewDepartmentID != nil && *p.NewDepartmentID != uuid.Nil
}

// Request is the only entity whose status the workflow engine owns. Version
// backs the optimistic concurrency check at the persistence boundary.
type Request struct {
	ID               uuid.UUID
	Type             Type
	RequesterID      uuid.UUID
	TargetEmployeeID uuid.UUID
	Payload          Payload
	Status           Status

	// Stamped at submission from the approval policy so stage resolution
	// never depends on the org chart changing after the fact.
	ManagerStageRequired bool

	SubmittedAt       time.Time
	ManagerApprovedAt *time.Time
	ManagerApprovedBy *uuid.UUID
	HRApprovedAt      *time.Time
	HRApprovedBy      *uuid.UUID
	ProcessedAt       *time.Time
	RejectionReason   string
	Notes             string

	Version int64
}

func (r Request) SelfRequest() bool {
	return r.RequesterID == r.TargetEmployeeID
}
