package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"career-hub/internal/domain/skill"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Active   bool      `json:"active"`
}

type SkillUsecase interface {
	ListSkills(ctx context.Context, includeInactive bool) ([]SkillItem, error)
	AddSkill(ctx context.Context, name, category string) (SkillItem, error)
	DeactivateSkill(ctx context.Context, id uuid.UUID) error
}

type SkillCatalog struct {
	repo   repository.SkillRepository
	cache  RankingCache
	logger *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache RankingCache, logger *log.Logger) *SkillCatalog {
	return &SkillCatalog{repo: repo, cache: cache, logger: logger}
}

func (u *SkillCatalog) ListSkills(ctx context.Context, includeInactive bool) ([]SkillItem, error) {
	items, err := u.repo.List(ctx, !includeInactive)
	if err != nil {
		u.logger.Printf("skill_usecase | list failed | err=%v", err)
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, toSkillItem(it))
	}
	return out, nil
}

func (u *SkillCatalog) AddSkill(ctx context.Context, name, category string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}
	cat, ok := skill.ParseCategory(strings.TrimSpace(category))
	if !ok {
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, skill.Skill{
		ID:       uuid.New(),
		Name:     name,
		Category: cat,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillAlreadyExists) {
			return SkillItem{}, ErrConflict
		}
		u.logger.Printf("skill_usecase | create failed | name=%s err=%v", name, err)
		return SkillItem{}, ErrInternal
	}
	return toSkillItem(created), nil
}

// DeactivateSkill hides the skill from new proficiency and requirement
// assignments. Existing records keep referencing it.
func (u *SkillCatalog) DeactivateSkill(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		u.logger.Printf("skill_usecase | deactivate failed | skill_id=%s err=%v", id, err)
		return ErrInternal
	}
	u.invalidateRankings(ctx)
	return nil
}

func (u *SkillCatalog) invalidateRankings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "ranking:*"); err != nil {
		u.logger.Printf("skill_usecase | ranking cache invalidation failed | err=%v", err)
	}
}

func toSkillItem(s skill.Skill) SkillItem {
	return SkillItem{ID: s.ID, Name: s.Name, Category: string(s.Category), Active: s.Active}
}
