package request

import (
	"fmt"
	"strings"
	"time"

	"career-hub/internal/domain/employee"

	"github.com/google/uuid"
)

// Actor is the identity attempting a transition. ManagesTarget is resolved
// against the target employee's current manager, not the token.
type Actor struct {
	ID            uuid.UUID
	Role          employee.Role
	ManagesTarget bool
}

func (a Actor) managerStageAuthority() bool {
	return a.ManagesTarget || a.Role.CanActForHR()
}

func (a Actor) hrStageAuthority() bool {
	return a.Role.CanActForHR()
}

// Submit validates a new request and applies the approval policy. Eligible
// requests go straight to AutoApproved with the processed timestamp set;
// everything else starts Pending.
func Submit(r Request, f Facts, now time.Time) (Request, error) {
	if r.ID == uuid.Nil || r.RequesterID == uuid.Nil || r.TargetEmployeeID == uuid.Nil {
		return r, fmt.Errorf("%w: missing id", ErrValidation)
	}
	if _, ok := ParseType(string(r.Type)); !ok {
		return r, fmt.Errorf("%w: unknown request type %q", ErrValidation, r.Type)
	}
	switch r.Type {
	case TypePositionChange:
		if r.Payload.NewPositionID == nil || *r.Payload.NewPositionID == uuid.Nil {
			return r, fmt.Errorf("%w: position change requires a new position", ErrValidation)
		}
	case TypeDepartmentChange:
		if !r.Payload.DepartmentChange() {
			return r, fmt.Errorf("%w: department change requires a new department", ErrValidation)
		}
	}

	stages := RequiredStages(f)
	r.ManagerStageRequired = false
	for _, s := range stages {
		if s == StageManager {
			r.ManagerStageRequired = true
		}
	}

	r.SubmittedAt = now
	if AutoApprovalEligible(f) {
		r.Status = StatusAutoApproved
		r.ProcessedAt = &now
		return r, nil
	}

	r.Status = StatusPending
	return r, nil
}

// PendingStage reports the stage the request is currently waiting on.
func PendingStage(r Request) (Stage, bool) {
	switch r.Status {
	case StatusPending:
		if r.ManagerStageRequired {
			return StageManager, true
		}
		return StageHR, true
	case StatusManagerApproved:
		return StageHR, true
	}
	return "", false
}

// Approve advances the request one stage. An actor with no approval
// authority at all fails Unauthorized regardless of state; an authorized
// actor whose stage the current state does not accept fails InvalidState.
func Approve(r Request, a Actor, now time.Time) (Request, error) {
	if !a.managerStageAuthority() && !a.hrStageAuthority() {
		return r, ErrUnauthorized
	}

	stage, ok := PendingStage(r)
	if !ok {
		return r, ErrInvalidState
	}

	switch stage {
	case StageManager:
		if !a.managerStageAuthority() {
			return r, ErrInvalidState
		}
		r.Status = StatusManagerApproved
		r.ManagerApprovedAt = &now
		actorID := a.ID
		r.ManagerApprovedBy = &actorID
	case StageHR:
		if !a.hrStageAuthority() {
			return r, ErrInvalidState
		}
		r.Status = StatusHRApproved
		r.HRApprovedAt = &now
		actorID := a.ID
		r.HRApprovedBy = &actorID
		r.ProcessedAt = &now
	}

	return r, nil
}

// Reject moves the request to the terminal Rejected state. The reason is
// mandatory and the actor must be authorized for the pending stage.
func Reject(r Request, a Actor, reason string, now time.Time) (Request, error) {
	if strings.TrimSpace(reason) == "" {
		return r, fmt.Errorf("%w: empty rejection reason", ErrValidation)
	}
	if !a.managerStageAuthority() && !a.hrStageAuthority() {
		return r, ErrUnauthorized
	}

	stage, ok := PendingStage(r)
	if !ok {
		return r, ErrInvalidState
	}
	if stage == StageManager && !a.managerStageAuthority() {
		return r, ErrInvalidState
	}
	if stage == StageHR && !a.hrStageAuthority() {
		return r, ErrInvalidState
	}

	r.Status = StatusRejected
	r.RejectionReason = strings.TrimSpace(reason)
	r.ProcessedAt = &now
	return r, nil
}

// Cancel is reserved for the original requester and only while the request
// is still in flight.
func Cancel(r Request, actorID uuid.UUID, now time.Time) (Request, error) {
	if actorID != r.RequesterID {
		return r, ErrUnauthorized
	}

	if _, ok := PendingStage(r); !ok {
		return r, ErrInvalidState
	}

	r.Status = StatusCanceled
	r.ProcessedAt = &now
	return r, nil
}
