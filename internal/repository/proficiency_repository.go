package repository

import (
	"context"
	"errors"

	"career-hub/internal/database"
	"career-hub/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrProficiencyNotFound = errors.New("proficiency record not found")

// DepartmentSkillStats is one department's proficiency aggregate for a
// single skill.
type DepartmentSkillStats struct {
	DepartmentID   uuid.UUID
	DepartmentName string
	Holders        int
	AvgLevel       float64
	MinLevel       int
	MaxLevel       int
}

type ProficiencyRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.ProficiencyRecord, error)
	FindByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]skill.ProficiencyRecord, error)
	Upsert(ctx context.Context, rec skill.ProficiencyRecord) (skill.ProficiencyRecord, error)
	Delete(ctx context.Context, employeeID, skillID uuid.UUID) error
	AggregateBySkill(ctx context.Context, skillID uuid.UUID, departmentID *uuid.UUID) ([]DepartmentSkillStats, error)
}

type PostgresProficiencyRepository struct {
	db database.DB
}

func NewPostgresProficiencyRepository(db database.DB) *PostgresProficiencyRepository {
	return &PostgresProficiencyRepository{db: db}
}

const proficiencySelect = `SELECT es.id, es.employee_id, es.skill_id, s.name, es.proficiency_level, es.acquired_at, es.last_assessed_at, COALESCE(es.notes, '')
	 FROM employee_skills es
	 JOIN skills s ON s.id = es.skill_id`

func (r *PostgresProficiencyRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]skill.ProficiencyRecord, error) {
	rows, err := r.db.Query(ctx,
		proficiencySelect+` WHERE es.employee_id = $1 ORDER BY s.name ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProficiencies(rows)
}

func (r *PostgresProficiencyRepository) FindByEmployeeIDs(ctx context.Context, employeeIDs []uuid.UUID) (map[uuid.UUID][]skill.ProficiencyRecord, error) {
	out := make(map[uuid.UUID][]skill.ProficiencyRecord, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		proficiencySelect+` WHERE es.employee_id = ANY($1) ORDER BY s.name ASC`,
		employeeIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs, err := scanProficiencies(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		out[rec.EmployeeID] = append(out[rec.EmployeeID], rec)
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) Upsert(ctx context.Context, rec skill.ProficiencyRecord) (skill.ProficiencyRecord, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employee_skills (id, employee_id, skill_id, proficiency_level, acquired_at, last_assessed_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (employee_id, skill_id)
		 DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level,
		               last_assessed_at = EXCLUDED.last_assessed_at,
		               notes = EXCLUDED.notes`,
		rec.ID, rec.EmployeeID, rec.SkillID, rec.Level, rec.AcquiredAt, rec.LastAssessedAt, rec.Notes,
	)
	if err != nil {
		return skill.ProficiencyRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		proficiencySelect+` WHERE es.employee_id = $1 AND es.skill_id = $2`,
		rec.EmployeeID, rec.SkillID,
	)
	var out skill.ProficiencyRecord
	if err := scanProficiency(row, &out); err != nil {
		return skill.ProficiencyRecord{}, err
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) Delete(ctx context.Context, employeeID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM employee_skills WHERE employee_id = $1 AND skill_id = $2`,
		employeeID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProficiencyNotFound
	}
	return nil
}

func (r *PostgresProficiencyRepository) AggregateBySkill(ctx context.Context, skillID uuid.UUID, departmentID *uuid.UUID) ([]DepartmentSkillStats, error) {
	q := `SELECT d.id, d.name, COUNT(es.id), COALESCE(AVG(es.proficiency_level), 0), COALESCE(MIN(es.proficiency_level), 0), COALESCE(MAX(es.proficiency_level), 0)
	 FROM departments d
	 JOIN employees e ON e.department_id = d.id AND e.active
	 JOIN employee_skills es ON es.employee_id = e.id AND es.skill_id = $1
	 GROUP BY d.id, d.name
	 ORDER BY d.name ASC`
	args := []any{skillID}
	if departmentID != nil {
		q = `SELECT d.id, d.name, COUNT(es.id), COALESCE(AVG(es.proficiency_level), 0), COALESCE(MIN(es.proficiency_level), 0), COALESCE(MAX(es.proficiency_level), 0)
	 FROM departments d
	 JOIN employees e ON e.department_id = d.id AND e.active
	 JOIN employee_skills es ON es.employee_id = e.id AND es.skill_id = $1
	 WHERE d.id = $2
	 GROUP BY d.id, d.name
	 ORDER BY d.name ASC`
		args = append(args, *departmentID)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DepartmentSkillStats, 0)
	for rows.Next() {
		var st DepartmentSkillStats
		if err := rows.Scan(&st.DepartmentID, &st.DepartmentName, &st.Holders, &st.AvgLevel, &st.MinLevel, &st.MaxLevel); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanProficiencies(rows database.Rows) ([]skill.ProficiencyRecord, error) {
	out := make([]skill.ProficiencyRecord, 0)
	for rows.Next() {
		var rec skill.ProficiencyRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.SkillID, &rec.SkillName, &rec.Level, &rec.AcquiredAt, &rec.LastAssessedAt, &rec.Notes); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanProficiency(row database.Row, rec *skill.ProficiencyRecord) error {
	return row.Scan(&rec.ID, &rec.EmployeeID, &rec.SkillID, &rec.SkillName, &rec.Level, &rec.AcquiredAt, &rec.LastAssessedAt, &rec.Notes)
}
