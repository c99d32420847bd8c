package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"career-hub/internal/domain/employee"
	"career-hub/internal/domain/skill"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidSkillLevel = errors.New("skill level out of range")

type SetProficiencyInput struct {
	SkillID uuid.UUID
	Level   int
	Notes   string
}

type ProficiencyItem struct {
	ID             uuid.UUID  `json:"id"`
	SkillID        uuid.UUID  `json:"skill_id"`
	SkillName      string     `json:"skill_name"`
	Level          int        `json:"level"`
	AcquiredAt     time.Time  `json:"acquired_at"`
	LastAssessedAt *time.Time `json:"last_assessed_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type ProficiencyUsecase interface {
	ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]ProficiencyItem, error)
	SetEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in SetProficiencyInput) (ProficiencyItem, error)
	RemoveEmployeeSkill(ctx context.Context, employeeID, skillID uuid.UUID) error
}

type Proficiency struct {
	profs     repository.ProficiencyRepository
	skills    repository.SkillRepository
	employees employee.Repository
	cache     RankingCache
	logger    *log.Logger
	now       func() time.Time
}

func NewProficiencyUsecase(
	profs repository.ProficiencyRepository,
	skills repository.SkillRepository,
	employees employee.Repository,
	cache RankingCache,
	logger *log.Logger,
) *Proficiency {
	return &Proficiency{
		profs:     profs,
		skills:    skills,
		employees: employees,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Proficiency) ListEmployeeSkills(ctx context.Context, employeeID uuid.UUID) ([]ProficiencyItem, error) {
	if employeeID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if _, err := u.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, ErrInternal
	}

	recs, err := u.profs.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		u.logger.Printf("proficiency_usecase | list failed | employee_id=%s err=%v", employeeID, err)
		return nil, ErrInternal
	}

	out := make([]ProficiencyItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toProficiencyItem(rec))
	}
	return out, nil
}

// SetEmployeeSkill records or updates the employee's level for one skill.
// Re-setting an existing pair updates in place rather than duplicating.
func (u *Proficiency) SetEmployeeSkill(ctx context.Context, employeeID uuid.UUID, in SetProficiencyInput) (ProficiencyItem, error) {
	if employeeID == uuid.Nil || in.SkillID == uuid.Nil {
		return ProficiencyItem{}, ErrInvalidInput
	}
	if !skill.ValidLevel(in.Level) {
		return ProficiencyItem{}, ErrInvalidSkillLevel
	}

	if _, err := u.employees.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return ProficiencyItem{}, ErrEmployeeNotFound
		}
		return ProficiencyItem{}, ErrInternal
	}
	sk, err := u.skills.GetByID(ctx, in.SkillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ProficiencyItem{}, ErrSkillNotFound
		}
		return ProficiencyItem{}, ErrInternal
	}
	if !sk.Active {
		return ProficiencyItem{}, ErrSkillNotFound
	}

	now := u.now()
	rec, err := u.profs.Upsert(ctx, skill.ProficiencyRecord{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		SkillID:        in.SkillID,
		Level:          in.Level,
		AcquiredAt:     now,
		LastAssessedAt: &now,
		Notes:          in.Notes,
	})
	if err != nil {
		u.logger.Printf("proficiency_usecase | upsert failed | employee_id=%s skill_id=%s err=%v", employeeID, in.SkillID, err)
		return ProficiencyItem{}, ErrInternal
	}

	u.invalidateRankings(ctx)
	return toProficiencyItem(rec), nil
}

func (u *Proficiency) RemoveEmployeeSkill(ctx context.Context, employeeID, skillID uuid.UUID) error {
	if employeeID == uuid.Nil || skillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.profs.Delete(ctx, employeeID, skillID); err != nil {
		if errors.Is(err, repository.ErrProficiencyNotFound) {
			return ErrSkillNotFound
		}
		u.logger.Printf("proficiency_usecase | delete failed | employee_id=%s skill_id=%s err=%v", employeeID, skillID, err)
		return ErrInternal
	}
	u.invalidateRankings(ctx)
	return nil
}

func (u *Proficiency) invalidateRankings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "ranking:*"); err != nil {
		u.logger.Printf("proficiency_usecase | ranking cache invalidation failed | err=%v", err)
	}
}

func toProficiencyItem(rec skill.ProficiencyRecord) ProficiencyItem {
	return ProficiencyItem{
		ID:             rec.ID,
		SkillID:        rec.SkillID,
		SkillName:      rec.SkillName,
		Level:          rec.Level,
		AcquiredAt:     rec.AcquiredAt,
		LastAssessedAt: rec.LastAssessedAt,
		Notes:          rec.Notes,
	}
}
