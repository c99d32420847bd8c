package repository

import (
	"context"
	"errors"

	"career-hub/internal/database"
	"career-hub/internal/domain/request"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	// ErrVersionConflict means another transition committed first; the
	// caller's copy of the request is stale.
	ErrVersionConflict = errors.New("request version conflict")
)

type RequestRepository interface {
	Create(ctx context.Context, r request.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (request.Request, error)
	// Update persists a transitioned request iff the stored version still
	// matches expectedVersion, guaranteeing at most one successful
	// transition per stage under concurrent calls.
	Update(ctx context.Context, r request.Request, expectedVersion int64) error
	ListPendingForManager(ctx context.Context, managerID uuid.UUID) ([]request.Request, error)
	ListAwaitingHR(ctx context.Context) ([]request.Request, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]request.Request, error)
}

type PostgresRequestRepository struct {
	db database.DB
}

func NewPostgresRequestRepository(db database.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

const requestColumns = `id, type, requester_id, target_employee_id, new_position_id, career_path, proposed_salary,
	new_department_id, new_manager_id, status, manager_stage_required, submitted_at,
	manager_approved_at, manager_approved_by, hr_approved_at, hr_approved_by,
	processed_at, rejection_reason, notes, version`

func (r *PostgresRequestRepository) Create(ctx context.Context, req request.Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO requests (`+requestColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, 1)`,
		req.ID, string(req.Type), req.RequesterID, req.TargetEmployeeID,
		req.Payload.NewPositionID, req.Payload.CareerPath, req.Payload.ProposedSalary,
		req.Payload.NewDepartmentID, req.Payload.NewManagerID,
		string(req.Status), req.ManagerStageRequired, req.SubmittedAt,
		req.ManagerApprovedAt, req.ManagerApprovedBy, req.HRApprovedAt, req.HRApprovedBy,
		req.ProcessedAt, req.RejectionReason, req.Notes,
	)
	return err
}

func (r *PostgresRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) Update(ctx context.Context, req request.Request, expectedVersion int64) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE requests
		 SET status = $1, manager_approved_at = $2, manager_approved_by = $3,
		     hr_approved_at = $4, hr_approved_by = $5, processed_at = $6,
		     rejection_reason = $7, version = version + 1
		 WHERE id = $8 AND version = $9`,
		string(req.Status), req.ManagerApprovedAt, req.ManagerApprovedBy,
		req.HRApprovedAt, req.HRApprovedBy, req.ProcessedAt,
		req.RejectionReason, req.ID, expectedVersion,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		exists, exErr := r.existsByID(ctx, req.ID)
		if exErr != nil {
			return exErr
		}
		if !exists {
			return ErrRequestNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *PostgresRequestRepository) ListPendingForManager(ctx context.Context, managerID uuid.UUID) ([]request.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM requests
		 WHERE status = $1 AND manager_stage_required
		   AND target_employee_id IN (SELECT id FROM employees WHERE manager_id = $2)
		 ORDER BY submitted_at ASC`,
		string(request.StatusPending), managerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *PostgresRequestRepository) ListAwaitingHR(ctx context.Context) ([]request.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM requests
		 WHERE status = $1 OR (status = $2 AND NOT manager_stage_required)
		 ORDER BY submitted_at ASC`,
		string(request.StatusManagerApproved), string(request.StatusPending),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *PostgresRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]request.Request, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+`
		 FROM requests
		 WHERE requester_id = $1 AND status IN ($2, $3)
		 ORDER BY submitted_at ASC`,
		requesterID, string(request.StatusPending), string(request.StatusManagerApproved),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *PostgresRequestRepository) existsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM requests WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanRequest(row database.Row) (request.Request, error) {
	var req request.Request
	var typ, status string
	err := row.Scan(
		&req.ID, &typ, &req.RequesterID, &req.TargetEmployeeID,
		&req.Payload.NewPositionID, &req.Payload.CareerPath, &req.Payload.ProposedSalary,
		&req.Payload.NewDepartmentID, &req.Payload.NewManagerID,
		&status, &req.ManagerStageRequired, &req.SubmittedAt,
		&req.ManagerApprovedAt, &req.ManagerApprovedBy, &req.HRApprovedAt, &req.HRApprovedBy,
		&req.ProcessedAt, &req.RejectionReason, &req.Notes, &req.Version,
	)
	if err != nil {
		return request.Request{}, err
	}
	req.Type = request.Type(typ)
	req.Status = request.Status(status)
	return req, nil
}

func scanRequests(rows database.Rows) ([]request.Request, error) {
	out := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
