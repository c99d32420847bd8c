package repository

import (
	"context"
	"errors"

	"career-hub/internal/database"
	"career-hub/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrRequirementNotFound = errors.New("requirement record not found")

// PositionRequirementRow joins a requirement with its position's department,
// as needed by the gap analyzer.
type PositionRequirementRow struct {
	PositionID    uuid.UUID
	PositionTitle string
	DepartmentID  *uuid.UUID
	RequiredLevel int
	Mandatory     bool
	Weight        int
}

type RequirementRepository interface {
	FindByPositionID(ctx context.Context, positionID uuid.UUID) ([]skill.RequirementRecord, error)
	FindByPositionIDs(ctx context.Context, positionIDs []uuid.UUID) (map[uuid.UUID][]skill.RequirementRecord, error)
	Upsert(ctx context.Context, rec skill.RequirementRecord) (skill.RequirementRecord, error)
	Delete(ctx context.Context, positionID, skillID uuid.UUID) error
	ListPositionsRequiring(ctx context.Context, skillID uuid.UUID) ([]PositionRequirementRow, error)
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

const requirementSelect = `SELECT ps.id, ps.position_id, ps.skill_id, s.name, ps.required_level, ps.mandatory, ps.weight
	 FROM position_skills ps
	 JOIN skills s ON s.id = ps.skill_id`

func (r *PostgresRequirementRepository) FindByPositionID(ctx context.Context, positionID uuid.UUID) ([]skill.RequirementRecord, error) {
	rows, err := r.db.Query(ctx,
		requirementSelect+` WHERE ps.position_id = $1 ORDER BY s.name ASC`,
		positionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequirements(rows)
}

func (r *PostgresRequirementRepository) FindByPositionIDs(ctx context.Context, positionIDs []uuid.UUID) (map[uuid.UUID][]skill.RequirementRecord, error) {
	out := make(map[uuid.UUID][]skill.RequirementRecord, len(positionIDs))
	if len(positionIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		requirementSelect+` WHERE ps.position_id = ANY($1) ORDER BY s.name ASC`,
		positionIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs, err := scanRequirements(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		out[rec.PositionID] = append(out[rec.PositionID], rec)
	}
	return out, nil
}

func (r *PostgresRequirementRepository) Upsert(ctx context.Context, rec skill.RequirementRecord) (skill.RequirementRecord, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO position_skills (id, position_id, skill_id, required_level, mandatory, weight)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (position_id, skill_id)
		 DO UPDATE SET required_level = EXCLUDED.required_level,
		               mandatory = EXCLUDED.mandatory,
		               weight = EXCLUDED.weight`,
		rec.ID, rec.PositionID, rec.SkillID, rec.RequiredLevel, rec.Mandatory, rec.Weight,
	)
	if err != nil {
		return skill.RequirementRecord{}, err
	}

	row := r.db.QueryRow(ctx,
		requirementSelect+` WHERE ps.position_id = $1 AND ps.skill_id = $2`,
		rec.PositionID, rec.SkillID,
	)
	var out skill.RequirementRecord
	if err := row.Scan(&out.ID, &out.PositionID, &out.SkillID, &out.SkillName, &out.RequiredLevel, &out.Mandatory, &out.Weight); err != nil {
		return skill.RequirementRecord{}, err
	}
	return out, nil
}

func (r *PostgresRequirementRepository) Delete(ctx context.Context, positionID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM position_skills WHERE position_id = $1 AND skill_id = $2`,
		positionID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequirementNotFound
	}
	return nil
}

func (r *PostgresRequirementRepository) ListPositionsRequiring(ctx context.Context, skillID uuid.UUID) ([]PositionRequirementRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.title, p.department_id, ps.required_level, ps.mandatory, ps.weight
		 FROM position_skills ps
		 JOIN positions p ON p.id = ps.position_id AND p.active
		 WHERE ps.skill_id = $1
		 ORDER BY p.title ASC`,
		skillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PositionRequirementRow, 0)
	for rows.Next() {
		var pr PositionRequirementRow
		if err := rows.Scan(&pr.PositionID, &pr.PositionTitle, &pr.DepartmentID, &pr.RequiredLevel, &pr.Mandatory, &pr.Weight); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func scanRequirements(rows database.Rows) ([]skill.RequirementRecord, error) {
	out := make([]skill.RequirementRecord, 0)
	for rows.Next() {
		var rec skill.RequirementRecord
		if err := rows.Scan(&rec.ID, &rec.PositionID, &rec.SkillID, &rec.SkillName, &rec.RequiredLevel, &rec.Mandatory, &rec.Weight); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
