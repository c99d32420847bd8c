package dto

import (
	"career-hub/internal/domain/scoring"

	"github.com/google/uuid"
)

type SkillGapResponse struct {
	SkillID        uuid.UUID `json:"skill_id"`
	SkillName      string    `json:"skill_name"`
	RequiredLevel  int       `json:"required_level"`
	CandidateLevel int       `json:"candidate_level"`
	Gap            int       `json:"gap"`
	Mandatory      bool      `json:"mandatory"`
}

type ScoreResponse struct {
	Score          float64            `json:"score"`
	FullyQualified bool               `json:"fully_qualified"`
	MandatoryGaps  int                `json:"mandatory_gaps"`
	Gaps           []SkillGapResponse `json:"gaps"`
}

func NewScoreResponse(res scoring.Result) ScoreResponse {
	gaps := make([]SkillGapResponse, 0, len(res.Gaps))
	for _, g := range res.Gaps {
		gaps = append(gaps, SkillGapResponse{
			SkillID:        g.SkillID,
			SkillName:      g.SkillName,
			RequiredLevel:  g.RequiredLevel,
			CandidateLevel: g.CandidateLevel,
			Gap:            g.Gap,
			Mandatory:      g.Mandatory,
		})
	}
	return ScoreResponse{
		Score:          res.Score,
		FullyQualified: res.FullyQualified,
		MandatoryGaps:  res.MandatoryGaps,
		Gaps:           gaps,
	}
}
