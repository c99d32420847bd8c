package postgres

import (
	"context"
	"errors"
	"strings"

	"career-hub/internal/database"
	"career-hub/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db database.DB
}

func NewEmployeeRepository(db database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, name, email, password_hash, role, department_id, position_id, manager_id, active, created_at, updated_at`

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (`+employeeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`,
		e.ID, e.Name, strings.ToLower(e.Email), e.PasswordHash, string(e.Role),
		e.DepartmentID, e.PositionID, e.ManagerID, e.Active,
	)
	return err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	return scanEmployee(row)
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE active ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEmployee(row database.Row) (employee.Employee, error) {
	var e employee.Employee
	var role string
	err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &role,
		&e.DepartmentID, &e.PositionID, &e.ManagerID, &e.Active,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, err
	}
	e.Role = employee.Role(role)
	return e, nil
}
