package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	Create(ctx context.Context, e Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
