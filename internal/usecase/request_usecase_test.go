package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"career-hub/internal/domain/employee"
	"career-hub/internal/domain/request"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type mockRequestRepo struct {
	byID      map[uuid.UUID]request.Request
	createErr error
	updateErr error

	created *request.Request
	updated *request.Request

	forManager  []request.Request
	awaitingHR  []request.Request
	byRequester []request.Request
}

func (m *mockRequestRepo) Create(_ context.Context, r request.Request) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = &r
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id uuid.UUID) (request.Request, error) {
	r, ok := m.byID[id]
	if !ok {
		return request.Request{}, repository.ErrRequestNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) Update(_ context.Context, r request.Request, expectedVersion int64) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.byID[r.ID]
	if !ok {
		return repository.ErrRequestNotFound
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	r.Version = expectedVersion + 1
	m.byID[r.ID] = r
	m.updated = &r
	return nil
}

func (m *mockRequestRepo) ListPendingForManager(context.Context, uuid.UUID) ([]request.Request, error) {
	return m.forManager, nil
}

func (m *mockRequestRepo) ListAwaitingHR(context.Context) ([]request.Request, error) {
	return m.awaitingHR, nil
}

func (m *mockRequestRepo) ListByRequester(context.Context, uuid.UUID) ([]request.Request, error) {
	return m.byRequester, nil
}

type mockEmployeeRepo struct {
	byID map[uuid.UUID]employee.Employee
}

func (m *mockEmployeeRepo) Create(context.Context, employee.Employee) error { return nil }

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (employee.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepo) GetByEmail(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrNotFound
}

func (m *mockEmployeeRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (m *mockEmployeeRepo) ListActive(context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

type mockAuditRepo struct {
	entries []repository.AuditEntry
}

func (m *mockAuditRepo) Append(_ context.Context, e repository.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

type workflowFixture struct {
	uc       *Workflow
	requests *mockRequestRepo
	audit    *mockAuditRepo
	notified []string

	manager  employee.Employee
	hr       employee.Employee
	admin    employee.Employee
	employee employee.Employee
	outsider employee.Employee
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	f := &workflowFixture{
		requests: &mockRequestRepo{byID: make(map[uuid.UUID]request.Request)},
		audit:    &mockAuditRepo{},
	}

	f.manager = employee.Employee{ID: uuid.New(), Name: "Mira", Role: employee.RoleManager, Active: true}
	f.hr = employee.Employee{ID: uuid.New(), Name: "Hana", Role: employee.RoleHR, Active: true}
	f.admin = employee.Employee{ID: uuid.New(), Name: "Ade", Role: employee.RoleAdmin, Active: true}
	f.employee = employee.Employee{ID: uuid.New(), Name: "Eko", Role: employee.RoleEmployee, ManagerID: &f.manager.ID, Active: true}
	f.outsider = employee.Employee{ID: uuid.New(), Name: "Omar", Role: employee.RoleEmployee, Active: true}

	employees := &mockEmployeeRepo{byID: map[uuid.UUID]employee.Employee{
		f.manager.ID:  f.manager,
		f.hr.ID:       f.hr,
		f.admin.ID:    f.admin,
		f.employee.ID: f.employee,
		f.outsider.ID: f.outsider,
	}}

	notifier := NotifierFunc(func(_ uuid.UUID, status string) {
		f.notified = append(f.notified, status)
	})

	f.uc = NewRequestUsecase(f.requests, employees, f.audit, notifier, log.New(io.Discard, "", 0))
	return f
}

func (f *workflowFixture) seed(r request.Request) request.Request {
	if r.Version == 0 {
		r.Version = 1
	}
	f.requests.byID[r.ID] = r
	return r
}

func salaryInput() SubmitRequestInput {
	salary := 95000.0
	newPos := uuid.New()
	return SubmitRequestInput{
		Type:           string(request.TypePositionChange),
		NewPositionID:  &newPos,
		ProposedSalary: &salary,
		CareerPath:     "technical",
	}
}

func TestRequestUsecase_Submit_SelfRequestPending(t *testing.T) {
	f := newWorkflowFixture(t)

	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Status != request.StatusPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}
	if !r.ManagerStageRequired {
		t.Fatalf("expected manager stage to be required")
	}
	if r.Version != 1 {
		t.Fatalf("expected version 1, got %d", r.Version)
	}
	if f.requests.created == nil {
		t.Fatalf("expected request to be persisted")
	}
	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != "submit" {
		t.Fatalf("expected one submit audit entry, got %+v", f.audit.entries)
	}
	if len(f.notified) != 1 || f.notified[0] != string(request.StatusPending) {
		t.Fatalf("expected pending notification, got %v", f.notified)
	}
}

func TestRequestUsecase_Submit_AdminAutoApproved(t *testing.T) {
	f := newWorkflowFixture(t)

	r, err := f.uc.Submit(context.Background(), f.admin.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Status != request.StatusAutoApproved {
		t.Fatalf("expected auto_approved, got %s", r.Status)
	}
	if r.ProcessedAt == nil {
		t.Fatalf("expected processed_at to be stamped")
	}
}

func TestRequestUsecase_Submit_InvalidType(t *testing.T) {
	f := newWorkflowFixture(t)

	in := salaryInput()
	in.Type = "demotion"
	if _, err := f.uc.Submit(context.Background(), f.employee.ID, in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRequestUsecase_Submit_UnknownTarget(t *testing.T) {
	f := newWorkflowFixture(t)

	in := salaryInput()
	in.TargetEmployeeID = uuid.New()
	if _, err := f.uc.Submit(context.Background(), f.employee.ID, in); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRequestUsecase_Approve_ManagerStage(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)
	f.notified = nil

	approved, err := f.uc.Approve(context.Background(), f.manager.ID, r.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if approved.Status != request.StatusManagerApproved {
		t.Fatalf("expected manager_approved, got %s", approved.Status)
	}
	if approved.Version != 2 {
		t.Fatalf("expected version 2 after transition, got %d", approved.Version)
	}
	if approved.ManagerApprovedBy == nil || *approved.ManagerApprovedBy != f.manager.ID {
		t.Fatalf("expected manager approver to be stamped")
	}
	if len(f.notified) != 1 || f.notified[0] != string(request.StatusManagerApproved) {
		t.Fatalf("expected manager_approved notification, got %v", f.notified)
	}
}

func TestRequestUsecase_Approve_FullLifecycle(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)

	if _, err := f.uc.Approve(context.Background(), f.manager.ID, r.ID); err != nil {
		t.Fatalf("manager stage failed: %v", err)
	}
	final, err := f.uc.Approve(context.Background(), f.hr.ID, r.ID)
	if err != nil {
		t.Fatalf("hr stage failed: %v", err)
	}
	if final.Status != request.StatusHRApproved {
		t.Fatalf("expected hr_approved, got %s", final.Status)
	}
	if final.ProcessedAt == nil {
		t.Fatalf("expected processed_at after final approval")
	}
	if final.Version != 3 {
		t.Fatalf("expected version 3 after two transitions, got %d", final.Version)
	}
}

func TestRequestUsecase_Approve_VersionConflict(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)
	f.requests.updateErr = repository.ErrVersionConflict

	if _, err := f.uc.Approve(context.Background(), f.manager.ID, r.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestRequestUsecase_Approve_Unauthorized(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)

	if _, err := f.uc.Approve(context.Background(), f.outsider.ID, r.ID); !errors.Is(err, request.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRequestUsecase_Approve_Terminal(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.admin.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)

	if _, err := f.uc.Approve(context.Background(), f.admin.ID, r.ID); !errors.Is(err, request.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestRequestUsecase_Approve_NotFound(t *testing.T) {
	f := newWorkflowFixture(t)
	if _, err := f.uc.Approve(context.Background(), f.manager.ID, uuid.New()); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestRequestUsecase_Reject_EmptyReason(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)

	if _, err := f.uc.Reject(context.Background(), f.manager.ID, r.ID, "  "); !errors.Is(err, request.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := f.requests.byID[r.ID].Status; got != request.StatusPending {
		t.Fatalf("expected request to stay pending, got %s", got)
	}
}

func TestRequestUsecase_Cancel_OnlyRequester(t *testing.T) {
	f := newWorkflowFixture(t)
	r, err := f.uc.Submit(context.Background(), f.employee.ID, salaryInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	f.seed(r)

	if _, err := f.uc.Cancel(context.Background(), f.hr.ID, r.ID); !errors.Is(err, request.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-requester, got %v", err)
	}

	canceled, err := f.uc.Cancel(context.Background(), f.employee.ID, r.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if canceled.Status != request.StatusCanceled {
		t.Fatalf("expected canceled, got %s", canceled.Status)
	}
}

func TestRequestUsecase_ListPendingForActor(t *testing.T) {
	f := newWorkflowFixture(t)
	f.requests.awaitingHR = []request.Request{{ID: uuid.New()}, {ID: uuid.New()}}
	f.requests.forManager = []request.Request{{ID: uuid.New()}}
	f.requests.byRequester = []request.Request{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

	got, err := f.uc.ListPendingForActor(context.Background(), f.hr.ID)
	if err != nil || len(got) != 2 {
		t.Fatalf("hr queue: expected 2, got %d err=%v", len(got), err)
	}
	got, err = f.uc.ListPendingForActor(context.Background(), f.manager.ID)
	if err != nil || len(got) != 1 {
		t.Fatalf("manager queue: expected 1, got %d err=%v", len(got), err)
	}
	got, err = f.uc.ListPendingForActor(context.Background(), f.employee.ID)
	if err != nil || len(got) != 3 {
		t.Fatalf("requester queue: expected 3, got %d err=%v", len(got), err)
	}
}
