package request

import (
	"career-hub/internal/domain/employee"
)

type Stage string

const (
	StageManager Stage = "manager"
	StageHR      Stage = "hr"
)

// Facts is everything the approval policy is allowed to look at. It is
// assembled once at submission time.
type Facts struct {
	Type          Type
	RequesterRole employee.Role
	SelfRequest   bool
	HasManager    bool

	SalaryChange     bool
	DepartmentChange bool
}

// RequiredStages returns the approval checkpoints a request must clear, in
// order. Every request ends at the HR stage. The manager stage is skipped,
// not blocked, when the requester already carries HR authority or the target
// has no assigned manager.
func RequiredStages(f Facts) []Stage {
	stages := make([]Stage, 0, 2)
	if !f.RequesterRole.CanActForHR() && f.HasManager {
		stages = append(stages, StageManager)
	}
	stages = append(stages, StageHR)
	return stages
}

// AutoApprovalEligible is consulted exactly once, at submission. Admins
// bypass review; everyone else only when the request moves neither salary
// nor department.
func AutoApprovalEligible(f Facts) bool {
	if f.RequesterRole == employee.RoleAdmin {
		return true
	}
	return !f.SalaryChange && !f.DepartmentChange
}
