package repository

import (
	"context"
	"time"

	"career-hub/internal/database"

	"github.com/google/uuid"
)

type AuditEntry struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Action    string
	Detail    string
	CreatedAt time.Time
}

// AuditRepository is append-only; reading the trail is an external concern.
type AuditRepository interface {
	Append(ctx context.Context, e AuditEntry) error
}

type PostgresAuditRepository struct {
	db database.DB
}

func NewPostgresAuditRepository(db database.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) Append(ctx context.Context, e AuditEntry) error {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_entries (id, request_id, actor_id, action, detail) VALUES ($1, $2, $3, $4, $5)`,
		id, e.RequestID, e.ActorID, e.Action, e.Detail,
	)
	return err
}
