package repository

import (
	"context"
	"errors"

	"career-hub/internal/database"
	"career-hub/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillAlreadyExists = errors.New("skill already exists")
)

type SkillRepository interface {
	List(ctx context.Context, activeOnly bool) ([]skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context, activeOnly bool) ([]skill.Skill, error) {
	q := `SELECT id, name, category, active, created_at FROM skills ORDER BY name ASC`
	if activeOnly {
		q = `SELECT id, name, category, active, created_at FROM skills WHERE active ORDER BY name ASC`
	}

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, active, created_at FROM skills WHERE id = $1`, id)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Active, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE lower(name) = lower($1))`, s.Name)
	if err := row.Scan(&exists); err != nil {
		return skill.Skill{}, err
	}
	if exists {
		return skill.Skill{}, ErrSkillAlreadyExists
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, active) VALUES ($1, $2, $3, TRUE)`,
		s.ID, s.Name, string(s.Category),
	)
	if err != nil {
		return skill.Skill{}, err
	}
	return r.GetByID(ctx, s.ID)
}

func (r *PostgresSkillRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	affected, err := r.db.Exec(ctx, `UPDATE skills SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}
