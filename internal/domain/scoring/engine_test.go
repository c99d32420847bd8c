package scoring

import (
	"testing"

	"github.com/google/uuid"
)

func TestScore_NoRequirements(t *testing.T) {
	res := Score(DefaultPolicy(), []CandidateSkill{{SkillID: uuid.New(), Level: 3}}, nil)
	if res.Score != 100 {
		t.Fatalf("expected score 100, got %v", res.Score)
	}
	if !res.FullyQualified {
		t.Fatalf("expected fully qualified")
	}
	if len(res.Gaps) != 0 {
		t.Fatalf("expected empty gap report, got %d entries", len(res.Gaps))
	}
}

func TestScore_FullyQualifiedCandidate(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	reqs := []Requirement{
		{SkillID: a, SkillName: "Go", RequiredLevel: 4, Mandatory: true, Weight: 2},
		{SkillID: b, SkillName: "SQL", RequiredLevel: 2, Mandatory: false, Weight: 1},
	}
	cand := []CandidateSkill{
		{SkillID: a, Level: 4},
		{SkillID: b, Level: 3},
	}

	res := Score(DefaultPolicy(), cand, reqs)
	if res.Score != 100 {
		t.Fatalf("expected 100, got %v", res.Score)
	}
	if !res.FullyQualified {
		t.Fatalf("expected fully qualified")
	}
}

func TestScore_MandatoryGapScenario(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	reqs := []Requirement{
		{SkillID: a, SkillName: "Go", RequiredLevel: 4, Mandatory: true, Weight: 2},
		{SkillID: b, SkillName: "SQL", RequiredLevel: 2, Mandatory: false, Weight: 1},
	}
	cand := []CandidateSkill{
		{SkillID: a, Level: 2},
		{SkillID: b, Level: 3},
	}

	res := Score(DefaultPolicy(), cand, reqs)

	if len(res.Gaps) != 2 {
		t.Fatalf("expected 2 gap entries, got %d", len(res.Gaps))
	}
	if res.Gaps[0].Gap != 2 || !res.Gaps[0].Mandatory {
		t.Fatalf("expected mandatory gap=2 for first skill, got %+v", res.Gaps[0])
	}
	if res.Gaps[1].Gap != 0 {
		t.Fatalf("expected gap=0 for second skill, got %+v", res.Gaps[1])
	}
	if res.FullyQualified {
		t.Fatalf("candidate with mandatory gap must not be fully qualified")
	}
	if res.MandatoryGaps != 1 {
		t.Fatalf("expected 1 mandatory gap, got %d", res.MandatoryGaps)
	}
	if res.Score >= 100 {
		t.Fatalf("mandatory gap must reduce score below 100, got %v", res.Score)
	}

	full := Score(DefaultPolicy(), []CandidateSkill{{SkillID: a, Level: 4}, {SkillID: b, Level: 3}}, reqs)
	if res.Score >= full.Score {
		t.Fatalf("gapped candidate %v must score below qualified candidate %v", res.Score, full.Score)
	}
}

func TestScore_Monotonicity(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	reqs := []Requirement{
		{SkillID: a, RequiredLevel: 3, Mandatory: true, Weight: 1},
		{SkillID: b, RequiredLevel: 3, Mandatory: false, Weight: 2},
		{SkillID: c, RequiredLevel: 5, Mandatory: false, Weight: 1},
	}
	full := []CandidateSkill{
		{SkillID: a, Level: 3},
		{SkillID: b, Level: 4},
		{SkillID: c, Level: 5},
	}
	gapped := []CandidateSkill{
		{SkillID: a, Level: 3},
		{SkillID: b, Level: 2},
		{SkillID: c, Level: 5},
	}

	sf := Score(DefaultPolicy(), full, reqs)
	sg := Score(DefaultPolicy(), gapped, reqs)
	if sg.Score >= sf.Score {
		t.Fatalf("expected gapped score %v < full score %v", sg.Score, sf.Score)
	}
}

func TestScore_MissingSkillCountsAsZero(t *testing.T) {
	a := uuid.New()
	reqs := []Requirement{{SkillID: a, RequiredLevel: 3, Mandatory: true, Weight: 1}}

	res := Score(DefaultPolicy(), nil, reqs)
	if res.Gaps[0].CandidateLevel != 0 {
		t.Fatalf("expected candidate level 0, got %d", res.Gaps[0].CandidateLevel)
	}
	if res.Gaps[0].Gap != 3 {
		t.Fatalf("expected gap 3, got %d", res.Gaps[0].Gap)
	}
	if res.Score != 0 {
		// achieved fraction 0 plus a 3*1*5 penalty, clamped at 0
		t.Fatalf("expected score 0, got %v", res.Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	reqs := []Requirement{
		{SkillID: a, RequiredLevel: 4, Mandatory: true, Weight: 3},
		{SkillID: b, RequiredLevel: 2, Mandatory: false, Weight: 1},
	}
	cand := []CandidateSkill{
		{SkillID: a, Level: 3},
		{SkillID: b, Level: 1},
	}

	first := Score(DefaultPolicy(), cand, reqs)
	for i := 0; i < 10; i++ {
		again := Score(DefaultPolicy(), cand, reqs)
		if again.Score != first.Score {
			t.Fatalf("score not deterministic: %v vs %v", again.Score, first.Score)
		}
		if len(again.Gaps) != len(first.Gaps) {
			t.Fatalf("gap report not deterministic")
		}
		for j := range again.Gaps {
			if again.Gaps[j] != first.Gaps[j] {
				t.Fatalf("gap entry %d differs: %+v vs %+v", j, again.Gaps[j], first.Gaps[j])
			}
		}
	}
}

func TestScore_PenaltyFactorConfigurable(t *testing.T) {
	a := uuid.New()
	reqs := []Requirement{{SkillID: a, RequiredLevel: 4, Mandatory: true, Weight: 1}}
	cand := []CandidateSkill{{SkillID: a, Level: 3}}

	soft := Score(Policy{MandatoryPenaltyFactor: 1}, cand, reqs)
	hard := Score(Policy{MandatoryPenaltyFactor: 20}, cand, reqs)
	if hard.Score >= soft.Score {
		t.Fatalf("higher penalty factor must lower score: soft=%v hard=%v", soft.Score, hard.Score)
	}
}

func TestScore_WeightZeroTreatedAsOne(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	reqs := []Requirement{
		{SkillID: a, RequiredLevel: 4, Weight: 0},
		{SkillID: b, RequiredLevel: 4, Weight: 1},
	}
	cand := []CandidateSkill{{SkillID: a, Level: 4}, {SkillID: b, Level: 2}}

	res := Score(DefaultPolicy(), cand, reqs)
	if res.Score != 75 {
		t.Fatalf("expected 75 (average of 1.0 and 0.5), got %v", res.Score)
	}
}
