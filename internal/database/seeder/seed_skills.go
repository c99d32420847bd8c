package seeder

import (
	"context"
	"fmt"

	"career-hub/internal/database"
	"career-hub/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category skill.Category
	}{
		{Name: "Go", Category: skill.CategoryTechnical},
		{Name: "PostgreSQL", Category: skill.CategoryTechnical},
		{Name: "System Design", Category: skill.CategoryTechnical},
		{Name: "People Management", Category: skill.CategoryLeadership},
		{Name: "Coaching", Category: skill.CategoryLeadership},
		{Name: "Stakeholder Communication", Category: skill.CategoryCommunication},
		{Name: "Technical Writing", Category: skill.CategoryCommunication},
		{Name: "Budget Planning", Category: skill.CategoryBusiness},
		{Name: "Vendor Negotiation", Category: skill.CategoryBusiness},
		{Name: "Data Analysis", Category: skill.CategoryAnalytical},
		{Name: "Process Improvement", Category: skill.CategoryAnalytical},
		{Name: "UX Design", Category: skill.CategoryCreative},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			string(it.Category),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
