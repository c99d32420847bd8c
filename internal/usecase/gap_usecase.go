package usecase

import (
	"context"
	"errors"

	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type DepartmentProficiency struct {
	DepartmentID   uuid.UUID `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Holders        int       `json:"holders"`
	AvgLevel       float64   `json:"avg_level"`
	MinLevel       int       `json:"min_level"`
	MaxLevel       int       `json:"max_level"`
}

type SkillGapAnalysis struct {
	SkillID            uuid.UUID               `json:"skill_id"`
	SkillName          string                  `json:"skill_name"`
	Category           string                  `json:"category"`
	TotalHolders       int                     `json:"total_holders"`
	Departments        []DepartmentProficiency `json:"departments"`
	PositionsRequiring int                     `json:"positions_requiring"`
	AvgRequiredLevel   float64                 `json:"avg_required_level"`
	// CriticalGaps counts mandatory requirements whose department-wide
	// average proficiency sits below the required level.
	CriticalGaps int `json:"critical_gaps"`
}

type GapUsecase interface {
	GetSkillGapAnalysis(ctx context.Context, skillID uuid.UUID, departmentID *uuid.UUID) (SkillGapAnalysis, error)
}

type Gap struct {
	skills        repository.SkillRepository
	proficiencies repository.ProficiencyRepository
	requirements  repository.RequirementRepository
}

func NewGapUsecase(
	skills repository.SkillRepository,
	proficiencies repository.ProficiencyRepository,
	requirements repository.RequirementRepository,
) *Gap {
	return &Gap{skills: skills, proficiencies: proficiencies, requirements: requirements}
}

func (u *Gap) GetSkillGapAnalysis(ctx context.Context, skillID uuid.UUID, departmentID *uuid.UUID) (SkillGapAnalysis, error) {
	if skillID == uuid.Nil {
		return SkillGapAnalysis{}, ErrSkillNotFound
	}

	sk, err := u.skills.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return SkillGapAnalysis{}, ErrSkillNotFound
		}
		return SkillGapAnalysis{}, ErrInternal
	}

	stats, err := u.proficiencies.AggregateBySkill(ctx, skillID, departmentID)
	if err != nil {
		return SkillGapAnalysis{}, ErrInternal
	}

	out := SkillGapAnalysis{
		SkillID:     sk.ID,
		SkillName:   sk.Name,
		Category:    string(sk.Category),
		Departments: make([]DepartmentProficiency, 0, len(stats)),
	}

	avgByDepartment := make(map[uuid.UUID]float64, len(stats))
	for _, st := range stats {
		out.TotalHolders += st.Holders
		avgByDepartment[st.DepartmentID] = st.AvgLevel
		out.Departments = append(out.Departments, DepartmentProficiency{
			DepartmentID:   st.DepartmentID,
			DepartmentName: st.DepartmentName,
			Holders:        st.Holders,
			AvgLevel:       st.AvgLevel,
			MinLevel:       st.MinLevel,
			MaxLevel:       st.MaxLevel,
		})
	}

	reqRows, err := u.requirements.ListPositionsRequiring(ctx, skillID)
	if err != nil {
		return SkillGapAnalysis{}, ErrInternal
	}

	var requiredSum int
	for _, pr := range reqRows {
		if departmentID != nil && (pr.DepartmentID == nil || *pr.DepartmentID != *departmentID) {
			continue
		}
		out.PositionsRequiring++
		requiredSum += pr.RequiredLevel

		if !pr.Mandatory {
			continue
		}
		// A department with no holders has average 0, which always counts
		// as a critical gap for a mandatory requirement.
		avg := 0.0
		if pr.DepartmentID != nil {
			avg = avgByDepartment[*pr.DepartmentID]
		}
		if avg < float64(pr.RequiredLevel) {
			out.CriticalGaps++
		}
	}
	if out.PositionsRequiring > 0 {
		out.AvgRequiredLevel = float64(requiredSum) / float64(out.PositionsRequiring)
	}

	return out, nil
}
