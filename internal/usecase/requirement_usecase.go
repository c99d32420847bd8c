package usecase

import (
	"context"
	"errors"
	"log"

	"career-hub/internal/domain/skill"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type SetRequirementInput struct {
	SkillID       uuid.UUID
	RequiredLevel int
	Mandatory     bool
	Weight        int
}

type RequirementItem struct {
	ID            uuid.UUID `json:"id"`
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	RequiredLevel int       `json:"required_level"`
	Mandatory     bool      `json:"mandatory"`
	Weight        int       `json:"weight"`
}

type RequirementUsecase interface {
	ListPositionRequirements(ctx context.Context, positionID uuid.UUID) ([]RequirementItem, error)
	SetPositionRequirement(ctx context.Context, positionID uuid.UUID, in SetRequirementInput) (RequirementItem, error)
	RemovePositionRequirement(ctx context.Context, positionID, skillID uuid.UUID) error
}

type Requirement struct {
	reqs      repository.RequirementRepository
	skills    repository.SkillRepository
	positions repository.PositionRepository
	cache     RankingCache
	logger    *log.Logger
}

func NewRequirementUsecase(
	reqs repository.RequirementRepository,
	skills repository.SkillRepository,
	positions repository.PositionRepository,
	cache RankingCache,
	logger *log.Logger,
) *Requirement {
	return &Requirement{
		reqs:      reqs,
		skills:    skills,
		positions: positions,
		cache:     cache,
		logger:    logger,
	}
}

func (u *Requirement) ListPositionRequirements(ctx context.Context, positionID uuid.UUID) ([]RequirementItem, error) {
	if positionID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	exists, err := u.positions.ExistsByID(ctx, positionID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrPositionNotFound
	}

	recs, err := u.reqs.FindByPositionID(ctx, positionID)
	if err != nil {
		u.logger.Printf("requirement_usecase | list failed | position_id=%s err=%v", positionID, err)
		return nil, ErrInternal
	}

	out := make([]RequirementItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRequirementItem(rec))
	}
	return out, nil
}

func (u *Requirement) SetPositionRequirement(ctx context.Context, positionID uuid.UUID, in SetRequirementInput) (RequirementItem, error) {
	if positionID == uuid.Nil || in.SkillID == uuid.Nil {
		return RequirementItem{}, ErrInvalidInput
	}
	if !skill.ValidLevel(in.RequiredLevel) {
		return RequirementItem{}, ErrInvalidSkillLevel
	}
	if in.Weight < 1 {
		in.Weight = 1
	}

	exists, err := u.positions.ExistsByID(ctx, positionID)
	if err != nil {
		return RequirementItem{}, ErrInternal
	}
	if !exists {
		return RequirementItem{}, ErrPositionNotFound
	}
	sk, err := u.skills.GetByID(ctx, in.SkillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return RequirementItem{}, ErrSkillNotFound
		}
		return RequirementItem{}, ErrInternal
	}
	if !sk.Active {
		return RequirementItem{}, ErrSkillNotFound
	}

	rec, err := u.reqs.Upsert(ctx, skill.RequirementRecord{
		ID:            uuid.New(),
		PositionID:    positionID,
		SkillID:       in.SkillID,
		RequiredLevel: in.RequiredLevel,
		Mandatory:     in.Mandatory,
		Weight:        in.Weight,
	})
	if err != nil {
		u.logger.Printf("requirement_usecase | upsert failed | position_id=%s skill_id=%s err=%v", positionID, in.SkillID, err)
		return RequirementItem{}, ErrInternal
	}

	u.invalidateRankings(ctx)
	return toRequirementItem(rec), nil
}

func (u *Requirement) RemovePositionRequirement(ctx context.Context, positionID, skillID uuid.UUID) error {
	if positionID == uuid.Nil || skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.reqs.Delete(ctx, positionID, skillID); err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return ErrSkillNotFound
		}
		u.logger.Printf("requirement_usecase | delete failed | position_id=%s skill_id=%s err=%v", positionID, skillID, err)
		return ErrInternal
	}
	u.invalidateRankings(ctx)
	return nil
}

func (u *Requirement) invalidateRankings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "ranking:*"); err != nil {
		u.logger.Printf("requirement_usecase | ranking cache invalidation failed | err=%v", err)
	}
}

func toRequirementItem(rec skill.RequirementRecord) RequirementItem {
	return RequirementItem{
		ID:            rec.ID,
		SkillID:       rec.SkillID,
		SkillName:     rec.SkillName,
		RequiredLevel: rec.RequiredLevel,
		Mandatory:     rec.Mandatory,
		Weight:        rec.Weight,
	}
}
