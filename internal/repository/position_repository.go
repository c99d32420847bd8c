package repository

import (
	"context"
	"errors"
	"time"

	"career-hub/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPositionNotFound = errors.New("position not found")

type Position struct {
	ID           uuid.UUID
	Title        string
	DepartmentID *uuid.UUID
	Active       bool
	CreatedAt    time.Time
}

type PositionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Position, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context) ([]Position, error)
}

type PostgresPositionRepository struct {
	db database.DB
}

func NewPostgresPositionRepository(db database.DB) *PostgresPositionRepository {
	return &PostgresPositionRepository{db: db}
}

func (r *PostgresPositionRepository) GetByID(ctx context.Context, id uuid.UUID) (Position, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, department_id, active, created_at FROM positions WHERE id = $1`, id)

	var p Position
	if err := row.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Position{}, ErrPositionNotFound
		}
		return Position{}, err
	}
	return p, nil
}

func (r *PostgresPositionRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM positions WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresPositionRepository) ListActive(ctx context.Context) ([]Position, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, department_id, active, created_at FROM positions WHERE active ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Position, 0)
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
