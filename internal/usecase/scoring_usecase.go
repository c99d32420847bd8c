package usecase

import (
	"context"
	"errors"

	"career-hub/internal/domain/scoring"
	"career-hub/internal/domain/skill"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type ScoringUsecase interface {
	ScoreCandidate(ctx context.Context, employeeID, positionID uuid.UUID) (scoring.Result, error)
}

type Scoring struct {
	positions     repository.PositionRepository
	requirements  repository.RequirementRepository
	proficiencies repository.ProficiencyRepository
	policy        scoring.Policy
}

func NewScoringUsecase(
	positions repository.PositionRepository,
	requirements repository.RequirementRepository,
	proficiencies repository.ProficiencyRepository,
	policy scoring.Policy,
) *Scoring {
	return &Scoring{
		positions:     positions,
		requirements:  requirements,
		proficiencies: proficiencies,
		policy:        policy,
	}
}

func (u *Scoring) ScoreCandidate(ctx context.Context, employeeID, positionID uuid.UUID) (scoring.Result, error) {
	if employeeID == uuid.Nil {
		return scoring.Result{}, ErrEmployeeNotFound
	}
	if positionID == uuid.Nil {
		return scoring.Result{}, ErrPositionNotFound
	}

	if _, err := u.positions.GetByID(ctx, positionID); err != nil {
		if errors.Is(err, repository.ErrPositionNotFound) {
			return scoring.Result{}, ErrPositionNotFound
		}
		return scoring.Result{}, ErrInternal
	}

	reqs, err := u.requirements.FindByPositionID(ctx, positionID)
	if err != nil {
		return scoring.Result{}, ErrInternal
	}

	profs, err := u.proficiencies.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return scoring.Result{}, ErrInternal
	}

	return scoring.Score(u.policy, toCandidateSkills(profs), toRequirements(reqs)), nil
}

func toCandidateSkills(profs []skill.ProficiencyRecord) []scoring.CandidateSkill {
	out := make([]scoring.CandidateSkill, 0, len(profs))
	for _, p := range profs {
		out = append(out, scoring.CandidateSkill{
			SkillID:   p.SkillID,
			SkillName: p.SkillName,
			Level:     p.Level,
		})
	}
	return out
}

func toRequirements(reqs []skill.RequirementRecord) []scoring.Requirement {
	out := make([]scoring.Requirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, scoring.Requirement{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			RequiredLevel: r.RequiredLevel,
			Mandatory:     r.Mandatory,
			Weight:        r.Weight,
		})
	}
	return out
}
