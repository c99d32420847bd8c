package seeder

import (
	"context"

	"career-hub/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

func RunAll(ctx context.Context, db database.DB, seeders ...Seeder) error {
	for _, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
