package employee

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanActForHR reports whether the role carries HR-stage approval authority.
func (r Role) CanActForHR() bool {
	return r == RoleHR || r == RoleAdmin
}

type Employee struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID *uuid.UUID
	PositionID   *uuid.UUID
	ManagerID    *uuid.UUID
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) HasManager() bool {
	return e.ManagerID != nil && *e.ManagerID != uuid.Nil
}

func (e Employee) Manages(target Employee) bool {
	return target.ManagerID != nil && *target.ManagerID == e.ID
}
