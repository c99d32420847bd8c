package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"career-hub/internal/domain/employee"
	"career-hub/internal/domain/scoring"
	"career-hub/internal/domain/skill"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type mockPositionRepo struct {
	byID map[uuid.UUID]repository.Position
}

func (m *mockPositionRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Position, error) {
	p, ok := m.byID[id]
	if !ok {
		return repository.Position{}, repository.ErrPositionNotFound
	}
	return p, nil
}

func (m *mockPositionRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *mockPositionRepo) ListActive(context.Context) ([]repository.Position, error) {
	out := make([]repository.Position, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

type mockRequirementRepo struct {
	byPosition         map[uuid.UUID][]skill.RequirementRecord
	positionsRequiring []repository.PositionRequirementRow
}

func (m *mockRequirementRepo) FindByPositionID(_ context.Context, positionID uuid.UUID) ([]skill.RequirementRecord, error) {
	return m.byPosition[positionID], nil
}

func (m *mockRequirementRepo) FindByPositionIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.RequirementRecord, error) {
	out := make(map[uuid.UUID][]skill.RequirementRecord, len(ids))
	for _, id := range ids {
		out[id] = m.byPosition[id]
	}
	return out, nil
}

func (m *mockRequirementRepo) Upsert(_ context.Context, rec skill.RequirementRecord) (skill.RequirementRecord, error) {
	return rec, nil
}

func (m *mockRequirementRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (m *mockRequirementRepo) ListPositionsRequiring(context.Context, uuid.UUID) ([]repository.PositionRequirementRow, error) {
	return m.positionsRequiring, nil
}

type mockProficiencyRepo struct {
	byEmployee map[uuid.UUID][]skill.ProficiencyRecord
	aggregates []repository.DepartmentSkillStats
}

func (m *mockProficiencyRepo) FindByEmployeeID(_ context.Context, employeeID uuid.UUID) ([]skill.ProficiencyRecord, error) {
	return m.byEmployee[employeeID], nil
}

func (m *mockProficiencyRepo) FindByEmployeeIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.ProficiencyRecord, error) {
	out := make(map[uuid.UUID][]skill.ProficiencyRecord, len(ids))
	for _, id := range ids {
		out[id] = m.byEmployee[id]
	}
	return out, nil
}

func (m *mockProficiencyRepo) Upsert(_ context.Context, rec skill.ProficiencyRecord) (skill.ProficiencyRecord, error) {
	return rec, nil
}

func (m *mockProficiencyRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (m *mockProficiencyRepo) AggregateBySkill(context.Context, uuid.UUID, *uuid.UUID) ([]repository.DepartmentSkillStats, error) {
	return m.aggregates, nil
}

type mockCache struct {
	store   map[string][]byte
	sets    int
	deletes []string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	m.sets++
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deletes = append(m.deletes, pattern)
	return nil
}

type rankingFixture struct {
	uc        *Ranking
	cache     *mockCache
	positions *mockPositionRepo
	employees *mockEmployeeRepo
	reqs      *mockRequirementRepo
	profs     *mockProficiencyRepo
}

func newRankingFixture() *rankingFixture {
	f := &rankingFixture{
		cache:     newMockCache(),
		positions: &mockPositionRepo{byID: make(map[uuid.UUID]repository.Position)},
		employees: &mockEmployeeRepo{byID: make(map[uuid.UUID]employee.Employee)},
		reqs:      &mockRequirementRepo{byPosition: make(map[uuid.UUID][]skill.RequirementRecord)},
		profs:     &mockProficiencyRepo{byEmployee: make(map[uuid.UUID][]skill.ProficiencyRecord)},
	}
	f.uc = NewRankingUsecase(
		f.positions, f.employees, f.reqs, f.profs,
		f.cache, scoring.DefaultPolicy(), 4, 5*time.Minute,
		log.New(io.Discard, "", 0),
	)
	return f
}

func (f *rankingFixture) addEmployee(name string, positionID *uuid.UUID, levels map[uuid.UUID]int) employee.Employee {
	e := employee.Employee{ID: uuid.New(), Name: name, Role: employee.RoleEmployee, PositionID: positionID, Active: true}
	f.employees.byID[e.ID] = e
	for skillID, level := range levels {
		f.profs.byEmployee[e.ID] = append(f.profs.byEmployee[e.ID], skill.ProficiencyRecord{
			ID:         uuid.New(),
			EmployeeID: e.ID,
			SkillID:    skillID,
			Level:      level,
		})
	}
	return e
}

func TestRankingUsecase_RankCandidatesForPosition(t *testing.T) {
	f := newRankingFixture()

	skillID := uuid.New()
	posID := uuid.New()
	f.positions.byID[posID] = repository.Position{ID: posID, Title: "Staff Engineer", Active: true}
	f.reqs.byPosition[posID] = []skill.RequirementRecord{
		{ID: uuid.New(), PositionID: posID, SkillID: skillID, RequiredLevel: 4, Weight: 1},
	}

	strong := f.addEmployee("strong", nil, map[uuid.UUID]int{skillID: 4})
	weak := f.addEmployee("weak", nil, map[uuid.UUID]int{skillID: 2})
	f.addEmployee("holder", &posID, map[uuid.UUID]int{skillID: 5})

	ranked, err := f.uc.RankCandidatesForPosition(context.Background(), posID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected current holder excluded, got %d candidates", len(ranked))
	}
	if ranked[0].EmployeeID != strong.ID {
		t.Fatalf("expected strongest candidate first")
	}
	if ranked[0].Score != 100 {
		t.Fatalf("expected fully met requirement to score 100, got %v", ranked[0].Score)
	}
	if ranked[1].EmployeeID != weak.ID || ranked[1].Score != 50 {
		t.Fatalf("expected weak candidate at 50, got %+v", ranked[1])
	}
	if !ranked[0].FullyQualified || ranked[1].FullyQualified {
		t.Fatalf("unexpected qualification flags: %+v", ranked)
	}
	if f.cache.sets != 1 {
		t.Fatalf("expected result to be cached once, got %d", f.cache.sets)
	}
}

func TestRankingUsecase_TieBreakIsDeterministic(t *testing.T) {
	f := newRankingFixture()

	skillID := uuid.New()
	posID := uuid.New()
	f.positions.byID[posID] = repository.Position{ID: posID, Title: "Analyst", Active: true}
	f.reqs.byPosition[posID] = []skill.RequirementRecord{
		{ID: uuid.New(), PositionID: posID, SkillID: skillID, RequiredLevel: 3, Mandatory: true, Weight: 1},
	}

	for i := 0; i < 6; i++ {
		f.addEmployee("peer", nil, nil)
	}

	first, err := f.uc.RankCandidatesForPosition(context.Background(), posID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Same pool, repeated runs: the tie on score must resolve identically
	// despite map iteration and goroutine scheduling.
	for run := 0; run < 10; run++ {
		f.cache.store = make(map[string][]byte)
		again, err := f.uc.RankCandidatesForPosition(context.Background(), posID)
		if err != nil {
			t.Fatalf("run %d: unexpected err: %v", run, err)
		}
		for i := range first {
			if again[i].EmployeeID != first[i].EmployeeID {
				t.Fatalf("run %d: order diverged at index %d", run, i)
			}
		}
	}

	for i := 1; i < len(first); i++ {
		if first[i-1].EmployeeID.String() > first[i].EmployeeID.String() {
			t.Fatalf("tie-break not ordered by employee id at index %d", i)
		}
	}
}

func TestRankingUsecase_ServesFromCache(t *testing.T) {
	f := newRankingFixture()

	posID := uuid.New()
	cached := []RankedCandidate{{EmployeeID: uuid.New(), EmployeeName: "cached", Score: 42}}
	b, _ := json.Marshal(cached)
	f.cache.store["ranking:position:"+posID.String()] = b

	// Position is unknown to the repo, so a hit proves the cache short-circuits.
	ranked, err := f.uc.RankCandidatesForPosition(context.Background(), posID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 1 || ranked[0].EmployeeName != "cached" {
		t.Fatalf("expected cached result, got %+v", ranked)
	}
}

func TestRankingUsecase_RankPositionsForEmployee(t *testing.T) {
	f := newRankingFixture()

	skillID := uuid.New()
	emp := f.addEmployee("eko", nil, map[uuid.UUID]int{skillID: 3})

	easyID, hardID := uuid.New(), uuid.New()
	f.positions.byID[easyID] = repository.Position{ID: easyID, Title: "Associate", Active: true}
	f.positions.byID[hardID] = repository.Position{ID: hardID, Title: "Principal", Active: true}
	f.reqs.byPosition[easyID] = []skill.RequirementRecord{
		{ID: uuid.New(), PositionID: easyID, SkillID: skillID, RequiredLevel: 3, Weight: 1},
	}
	f.reqs.byPosition[hardID] = []skill.RequirementRecord{
		{ID: uuid.New(), PositionID: hardID, SkillID: skillID, RequiredLevel: 5, Mandatory: true, Weight: 1},
	}

	ranked, err := f.uc.RankPositionsForEmployee(context.Background(), emp.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(ranked))
	}
	if ranked[0].PositionID != easyID {
		t.Fatalf("expected fully met position ranked first")
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Fatalf("expected strict ordering, got %v then %v", ranked[0].Score, ranked[1].Score)
	}
	if ranked[1].MandatoryGaps != 1 {
		t.Fatalf("expected one mandatory gap on the harder position, got %d", ranked[1].MandatoryGaps)
	}
}

func TestRankingUsecase_UnknownPosition(t *testing.T) {
	f := newRankingFixture()
	if _, err := f.uc.RankCandidatesForPosition(context.Background(), uuid.New()); err != ErrPositionNotFound {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}
