package usecase

import (
	"context"
	"time"
)

// RankingCache is the optional cache in front of ranking computations.
// Implementations are best-effort; a miss or failure just costs a
// recomputation.
type RankingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
