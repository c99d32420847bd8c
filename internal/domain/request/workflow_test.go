package request

import (
	"errors"
	"testing"
	"time"

	"career-hub/internal/domain/employee"

	"github.com/google/uuid"
)

func newSubmitted(t *testing.T, f Facts) Request {
	t.Helper()

	salary := 95000.0
	posID := uuid.New()
	r := Request{
		ID:               uuid.New(),
		Type:             TypePositionChange,
		RequesterID:      uuid.New(),
		TargetEmployeeID: uuid.New(),
		Payload:          Payload{NewPositionID: &posID, ProposedSalary: &salary},
	}
	if f.Type == "" {
		f.Type = TypePositionChange
	}
	f.SalaryChange = r.Payload.SalaryChange()

	out, err := Submit(r, f, time.Now().UTC())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return out
}

func TestSubmit_EmployeeSelfRequest(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, SelfRequest: true, HasManager: true})

	if r.Status != StatusPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}
	if !r.ManagerStageRequired {
		t.Fatalf("expected manager stage required")
	}

	mgr := Actor{ID: uuid.New(), Role: employee.RoleManager, ManagesTarget: true}
	now := time.Now().UTC()
	r2, err := Approve(r, mgr, now)
	if err != nil {
		t.Fatalf("manager approve: %v", err)
	}
	if r2.Status != StatusManagerApproved {
		t.Fatalf("expected manager_approved, got %s", r2.Status)
	}
	if r2.ManagerApprovedAt == nil || r2.ManagerApprovedBy == nil || *r2.ManagerApprovedBy != mgr.ID {
		t.Fatalf("manager approval not stamped")
	}

	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}
	r3, err := Approve(r2, hr, now)
	if err != nil {
		t.Fatalf("hr approve: %v", err)
	}
	if r3.Status != StatusHRApproved {
		t.Fatalf("expected hr_approved, got %s", r3.Status)
	}
	if r3.ProcessedAt == nil {
		t.Fatalf("expected processed timestamp")
	}
}

func TestSubmit_AutoApproval(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleAdmin, HasManager: true})

	if r.Status != StatusAutoApproved {
		t.Fatalf("expected auto_approved, got %s", r.Status)
	}
	if r.ProcessedAt == nil {
		t.Fatalf("expected immediate processed timestamp")
	}

	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}
	if _, err := Approve(r, hr, time.Now().UTC()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after auto approval, got %v", err)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	now := time.Now().UTC()

	_, err := Submit(Request{}, Facts{}, now)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing ids, got %v", err)
	}

	r := Request{
		ID:               uuid.New(),
		Type:             TypePositionChange,
		RequesterID:      uuid.New(),
		TargetEmployeeID: uuid.New(),
	}
	if _, err := Submit(r, Facts{Type: TypePositionChange}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing position, got %v", err)
	}

	r.Type = Type("promotion")
	if _, err := Submit(r, Facts{}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown type, got %v", err)
	}
}

func TestApprove_Unauthorized(t *testing.T) {
	nobody := Actor{ID: uuid.New(), Role: employee.RoleEmployee}
	now := time.Now().UTC()

	for _, status := range []Status{StatusPending, StatusManagerApproved, StatusHRApproved, StatusRejected, StatusCanceled} {
		r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})
		r.Status = status
		if _, err := Approve(r, nobody, now); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("status %s: expected ErrUnauthorized, got %v", status, err)
		}
	}
}

func TestApprove_HRBeforeManagerStage(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})

	// HR also carries manager-stage authority, so approving from Pending
	// clears the manager stage rather than skipping it.
	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}
	r2, err := Approve(r, hr, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r2.Status != StatusManagerApproved {
		t.Fatalf("expected manager_approved, got %s", r2.Status)
	}
}

func TestApprove_ManagerStageSkipped(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: false})
	if r.ManagerStageRequired {
		t.Fatalf("expected manager stage skipped")
	}

	// Target's manager no longer carries the pending stage; only HR does.
	mgr := Actor{ID: uuid.New(), Role: employee.RoleManager, ManagesTarget: true}
	if _, err := Approve(r, mgr, time.Now().UTC()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}
	r2, err := Approve(r, hr, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r2.Status != StatusHRApproved {
		t.Fatalf("expected hr_approved directly from pending, got %s", r2.Status)
	}
}

func TestApprove_ManagerCannotClearHRStage(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})
	r.Status = StatusManagerApproved

	mgr := Actor{ID: uuid.New(), Role: employee.RoleManager, ManagesTarget: true}
	if _, err := Approve(r, mgr, time.Now().UTC()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}
	now := time.Now().UTC()

	for _, status := range []Status{StatusHRApproved, StatusAutoApproved, StatusRejected, StatusCanceled} {
		r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})
		r.Status = status

		if _, err := Approve(r, hr, now); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("approve from %s: expected ErrInvalidState, got %v", status, err)
		}
		if _, err := Reject(r, hr, "no longer applicable", now); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("reject from %s: expected ErrInvalidState, got %v", status, err)
		}
		if _, err := Cancel(r, r.RequesterID, now); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("cancel from %s: expected ErrInvalidState, got %v", status, err)
		}
	}
}

func TestReject_EmptyReason(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})
	hr := Actor{ID: uuid.New(), Role: employee.RoleHR}

	out, err := Reject(r, hr, "  ", time.Now().UTC())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if out.Status != r.Status {
		t.Fatalf("status must be unchanged, got %s", out.Status)
	}
}

func TestReject_Success(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})
	mgr := Actor{ID: uuid.New(), Role: employee.RoleManager, ManagesTarget: true}

	out, err := Reject(r, mgr, "headcount frozen", time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", out.Status)
	}
	if out.RejectionReason != "headcount frozen" {
		t.Fatalf("expected reason stamped, got %q", out.RejectionReason)
	}
	if out.ProcessedAt == nil {
		t.Fatalf("expected processed timestamp")
	}
}

func TestCancel_OnlyRequester(t *testing.T) {
	r := newSubmitted(t, Facts{RequesterRole: employee.RoleEmployee, HasManager: true})

	if _, err := Cancel(r, uuid.New(), time.Now().UTC()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	out, err := Cancel(r, r.RequesterID, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Status != StatusCanceled {
		t.Fatalf("expected canceled, got %s", out.Status)
	}

	r.Status = StatusManagerApproved
	out, err = Cancel(r, r.RequesterID, time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected err from manager_approved: %v", err)
	}
	if out.Status != StatusCanceled {
		t.Fatalf("expected canceled, got %s", out.Status)
	}
}
