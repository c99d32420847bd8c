package scoring

import (
	"math"

	"github.com/google/uuid"
)

type CandidateSkill struct {
	SkillID   uuid.UUID
	SkillName string
	Level     int
}

type Requirement struct {
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel int
	Mandatory     bool
	Weight        int
}

type Gap struct {
	SkillID        uuid.UUID
	SkillName      string
	RequiredLevel  int
	CandidateLevel int
	Gap            int
	Mandatory      bool
}

type Result struct {
	Score          float64
	FullyQualified bool
	MandatoryGaps  int
	Gaps           []Gap
}

// Score computes how well a candidate's skill set matches a position's
// requirement set. The score is the weighted average of per-skill achieved
// fractions scaled to [0,100], minus a penalty per unmet mandatory skill of
// gap * weight * MandatoryPenaltyFactor, clamped to [0,100]. A position with
// no requirements scores 100 for any candidate.
func Score(p Policy, candidate []CandidateSkill, reqs []Requirement) Result {
	levelBySkillID := make(map[uuid.UUID]int, len(candidate))
	for _, cs := range candidate {
		if cs.SkillID == uuid.Nil {
			continue
		}
		levelBySkillID[cs.SkillID] = clampInt(cs.Level, 0, 5)
	}

	gaps := make([]Gap, 0, len(reqs))

	var weightedSum float64
	var weightTotal float64
	var penalty float64
	mandatoryGaps := 0

	for _, r := range reqs {
		if r.SkillID == uuid.Nil {
			continue
		}

		reqLvl := clampInt(r.RequiredLevel, 1, 5)
		w := r.Weight
		if w < 1 {
			w = 1
		}

		candLvl := levelBySkillID[r.SkillID]
		gap := reqLvl - candLvl
		if gap < 0 {
			gap = 0
		}

		achieved := 1.0
		if candLvl < reqLvl {
			achieved = float64(candLvl) / float64(reqLvl)
		}
		weightedSum += achieved * float64(w)
		weightTotal += float64(w)

		if r.Mandatory && gap > 0 {
			mandatoryGaps++
			penalty += float64(gap) * float64(w) * p.MandatoryPenaltyFactor
		}

		gaps = append(gaps, Gap{
			SkillID:        r.SkillID,
			SkillName:      r.SkillName,
			RequiredLevel:  reqLvl,
			CandidateLevel: candLvl,
			Gap:            gap,
			Mandatory:      r.Mandatory,
		})
	}

	if weightTotal == 0 {
		return Result{Score: 100, FullyQualified: true, Gaps: gaps}
	}

	score := 100*(weightedSum/weightTotal) - penalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	score = math.Round(score*100) / 100

	fully := mandatoryGaps == 0
	for _, g := range gaps {
		if g.Gap > 0 {
			fully = false
			break
		}
	}

	return Result{
		Score:          score,
		FullyQualified: fully,
		MandatoryGaps:  mandatoryGaps,
		Gaps:           gaps,
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
