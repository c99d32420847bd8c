package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-hub/internal/domain/employee"
	"career-hub/internal/domain/request"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

// Notifier is the fire-and-forget notification collaborator. Implementations
// must never block or fail the transition that triggered them.
type Notifier interface {
	RequestUpdated(requestID uuid.UUID, status string)
}

type NotifierFunc func(requestID uuid.UUID, status string)

func (f NotifierFunc) RequestUpdated(requestID uuid.UUID, status string) {
	if f != nil {
		f(requestID, status)
	}
}

type SubmitRequestInput struct {
	Type             string
	TargetEmployeeID uuid.UUID
	NewPositionID    *uuid.UUID
	CareerPath       string
	ProposedSalary   *float64
	NewDepartmentID  *uuid.UUID
	NewManagerID     *uuid.UUID
	Notes            string
}

type RequestUsecase interface {
	Submit(ctx context.Context, actorID uuid.UUID, in SubmitRequestInput) (request.Request, error)
	Approve(ctx context.Context, actorID, requestID uuid.UUID) (request.Request, error)
	Reject(ctx context.Context, actorID, requestID uuid.UUID, reason string) (request.Request, error)
	Cancel(ctx context.Context, actorID, requestID uuid.UUID) (request.Request, error)
	ListPendingForActor(ctx context.Context, actorID uuid.UUID) ([]request.Request, error)
}

// Workflow owns the request lifecycle. Every transition is computed by the
// pure functions in the request package and committed with an optimistic
// version check, so a race between two actors resolves to exactly one
// winner.
type Workflow struct {
	requests  repository.RequestRepository
	employees employee.Repository
	audit     repository.AuditRepository
	notifier  Notifier
	logger    *log.Logger
	now       func() time.Time
}

func NewRequestUsecase(
	requests repository.RequestRepository,
	employees employee.Repository,
	audit repository.AuditRepository,
	notifier Notifier,
	logger *log.Logger,
) *Workflow {
	return &Workflow{
		requests:  requests,
		employees: employees,
		audit:     audit,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Workflow) Submit(ctx context.Context, actorID uuid.UUID, in SubmitRequestInput) (request.Request, error) {
	if actorID == uuid.Nil {
		return request.Request{}, ErrUnauthorized
	}

	typ, ok := request.ParseType(in.Type)
	if !ok {
		return request.Request{}, ErrInvalidInput
	}

	requester, err := u.loadEmployee(ctx, actorID)
	if err != nil {
		return request.Request{}, err
	}

	targetID := in.TargetEmployeeID
	if targetID == uuid.Nil {
		targetID = actorID
	}
	target, err := u.loadEmployee(ctx, targetID)
	if err != nil {
		return request.Request{}, err
	}

	r := request.Request{
		ID:               uuid.New(),
		Type:             typ,
		RequesterID:      requester.ID,
		TargetEmployeeID: target.ID,
		Payload: request.Payload{
			NewPositionID:   in.NewPositionID,
			CareerPath:      in.CareerPath,
			ProposedSalary:  in.ProposedSalary,
			NewDepartmentID: in.NewDepartmentID,
			NewManagerID:    in.NewManagerID,
		},
		Notes: in.Notes,
	}

	facts := request.Facts{
		Type:             typ,
		RequesterRole:    requester.Role,
		SelfRequest:      requester.ID == target.ID,
		HasManager:       target.HasManager(),
		SalaryChange:     r.Payload.SalaryChange(),
		DepartmentChange: typ == request.TypeDepartmentChange || r.Payload.DepartmentChange(),
	}

	submitted, err := request.Submit(r, facts, u.now().UTC())
	if err != nil {
		return request.Request{}, err
	}
	submitted.Version = 1

	if err := u.requests.Create(ctx, submitted); err != nil {
		return request.Request{}, ErrInternal
	}

	u.recordAudit(ctx, submitted.ID, actorID, "submit", string(submitted.Status))
	u.notify(submitted)
	return submitted, nil
}

func (u *Workflow) Approve(ctx context.Context, actorID, requestID uuid.UUID) (request.Request, error) {
	return u.transition(ctx, actorID, requestID, "approve", func(r request.Request, a request.Actor) (request.Request, error) {
		return request.Approve(r, a, u.now().UTC())
	})
}

func (u *Workflow) Reject(ctx context.Context, actorID, requestID uuid.UUID, reason string) (request.Request, error) {
	return u.transition(ctx, actorID, requestID, "reject", func(r request.Request, a request.Actor) (request.Request, error) {
		return request.Reject(r, a, reason, u.now().UTC())
	})
}

func (u *Workflow) Cancel(ctx context.Context, actorID, requestID uuid.UUID) (request.Request, error) {
	return u.transition(ctx, actorID, requestID, "cancel", func(r request.Request, a request.Actor) (request.Request, error) {
		return request.Cancel(r, a.ID, u.now().UTC())
	})
}

func (u *Workflow) ListPendingForActor(ctx context.Context, actorID uuid.UUID) ([]request.Request, error) {
	actor, err := u.loadEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var out []request.Request
	switch {
	case actor.Role.CanActForHR():
		out, err = u.requests.ListAwaitingHR(ctx)
	case actor.Role == employee.RoleManager:
		out, err = u.requests.ListPendingForManager(ctx, actor.ID)
	default:
		out, err = u.requests.ListByRequester(ctx, actor.ID)
	}
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Workflow) transition(
	ctx context.Context,
	actorID, requestID uuid.UUID,
	action string,
	apply func(request.Request, request.Actor) (request.Request, error),
) (request.Request, error) {
	if actorID == uuid.Nil {
		return request.Request{}, ErrUnauthorized
	}
	if requestID == uuid.Nil {
		return request.Request{}, ErrRequestNotFound
	}

	r, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, ErrInternal
	}

	actorEmp, err := u.loadEmployee(ctx, actorID)
	if err != nil {
		return request.Request{}, err
	}
	target, err := u.loadEmployee(ctx, r.TargetEmployeeID)
	if err != nil {
		return request.Request{}, err
	}

	actor := request.Actor{
		ID:            actorEmp.ID,
		Role:          actorEmp.Role,
		ManagesTarget: actorEmp.Manages(target),
	}

	next, err := apply(r, actor)
	if err != nil {
		return request.Request{}, err
	}

	// The in-memory transition only counts once the versioned update
	// lands; a conflict means another actor won the race.
	if err := u.requests.Update(ctx, next, r.Version); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return request.Request{}, ErrConflict
		case errors.Is(err, repository.ErrRequestNotFound):
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, ErrInternal
	}
	next.Version = r.Version + 1

	u.recordAudit(ctx, next.ID, actorID, action, string(next.Status))
	u.notify(next)
	return next, nil
}

func (u *Workflow) loadEmployee(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	e, err := u.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, ErrEmployeeNotFound
		}
		return employee.Employee{}, ErrInternal
	}
	return e, nil
}

func (u *Workflow) recordAudit(ctx context.Context, requestID, actorID uuid.UUID, action, detail string) {
	if u.audit == nil {
		return
	}
	err := u.audit.Append(ctx, repository.AuditEntry{
		RequestID: requestID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
	})
	if err != nil && u.logger != nil {
		u.logger.Printf("Workflow audit append failed | request_id=%s action=%s err=%v", requestID, action, err)
	}
}

func (u *Workflow) notify(r request.Request) {
	if u.notifier == nil {
		return
	}
	u.notifier.RequestUpdated(r.ID, string(r.Status))
}
