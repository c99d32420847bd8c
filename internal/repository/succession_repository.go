package repository

import (
	"context"
	"errors"

	"career-hub/internal/database"
	"career-hub/internal/domain/succession"

	"github.com/google/uuid"
)

var ErrSuccessionCandidateNotFound = errors.New("succession candidate not found")

type SuccessionRepository interface {
	// ReplaceForPosition swaps the position's shortlist atomically.
	ReplaceForPosition(ctx context.Context, positionID uuid.UUID, candidates []succession.Candidate) error
	ListByPosition(ctx context.Context, positionID uuid.UUID) ([]succession.Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status succession.Status) error
}

type PostgresSuccessionRepository struct {
	db database.DB
}

func NewPostgresSuccessionRepository(db database.DB) *PostgresSuccessionRepository {
	return &PostgresSuccessionRepository{db: db}
}

func (r *PostgresSuccessionRepository) ReplaceForPosition(ctx context.Context, positionID uuid.UUID, candidates []succession.Candidate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM succession_candidates WHERE position_id = $1`, positionID); err != nil {
		return err
	}

	for _, c := range candidates {
		if _, err := tx.Exec(ctx,
			`INSERT INTO succession_candidates (id, position_id, employee_id, priority_rank, match_score, status)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, positionID, c.EmployeeID, c.PriorityRank, c.MatchScore, string(c.Status),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresSuccessionRepository) ListByPosition(ctx context.Context, positionID uuid.UUID) ([]succession.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sc.id, sc.position_id, sc.employee_id, e.name, sc.priority_rank, sc.match_score, sc.status, sc.created_at
		 FROM succession_candidates sc
		 JOIN employees e ON e.id = sc.employee_id
		 WHERE sc.position_id = $1
		 ORDER BY sc.priority_rank ASC`,
		positionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]succession.Candidate, 0)
	for rows.Next() {
		var c succession.Candidate
		var status string
		if err := rows.Scan(&c.ID, &c.PositionID, &c.EmployeeID, &c.EmployeeName, &c.PriorityRank, &c.MatchScore, &status, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Status = succession.Status(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresSuccessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status succession.Status) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE succession_candidates SET status = $1 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSuccessionCandidateNotFound
	}
	return nil
}
