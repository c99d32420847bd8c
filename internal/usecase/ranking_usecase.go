package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"career-hub/internal/domain/employee"
	"career-hub/internal/domain/scoring"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type RankedCandidate struct {
	EmployeeID     uuid.UUID     `json:"employee_id"`
	EmployeeName   string        `json:"employee_name"`
	Score          float64       `json:"score"`
	FullyQualified bool          `json:"fully_qualified"`
	MandatoryGaps  int           `json:"mandatory_gaps"`
	Gaps           []scoring.Gap `json:"gaps"`
}

type RankedPosition struct {
	PositionID     uuid.UUID     `json:"position_id"`
	Title          string        `json:"title"`
	Score          float64       `json:"score"`
	FullyQualified bool          `json:"fully_qualified"`
	MandatoryGaps  int           `json:"mandatory_gaps"`
	Gaps           []scoring.Gap `json:"gaps"`
}

type RankingUsecase interface {
	RankCandidatesForPosition(ctx context.Context, positionID uuid.UUID) ([]RankedCandidate, error)
	RankPositionsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]RankedPosition, error)
}

// Ranking fans the scoring engine out over a candidate pool. Scoring is
// pure, so candidates are computed independently and only the final sort
// imposes an order: descending score, ascending employee id on ties.
type Ranking struct {
	positions     repository.PositionRepository
	employees     employee.Repository
	requirements  repository.RequirementRepository
	proficiencies repository.ProficiencyRepository
	cache         RankingCache
	policy        scoring.Policy
	workers       int
	cacheTTL      time.Duration
	logger        *log.Logger
}

func NewRankingUsecase(
	positions repository.PositionRepository,
	employees employee.Repository,
	requirements repository.RequirementRepository,
	proficiencies repository.ProficiencyRepository,
	cache RankingCache,
	policy scoring.Policy,
	workers int,
	ttl time.Duration,
	logger *log.Logger,
) *Ranking {
	if workers <= 0 {
		workers = 4
	}
	return &Ranking{
		positions:     positions,
		employees:     employees,
		requirements:  requirements,
		proficiencies: proficiencies,
		cache:         cache,
		policy:        policy,
		workers:       workers,
		cacheTTL:      ttl,
		logger:        logger,
	}
}

func (u *Ranking) RankCandidatesForPosition(ctx context.Context, positionID uuid.UUID) ([]RankedCandidate, error) {
	if positionID == uuid.Nil {
		return nil, ErrPositionNotFound
	}

	cacheKey := "ranking:position:" + positionID.String()
	if u.cache != nil {
		var cached []RankedCandidate
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if _, err := u.positions.GetByID(ctx, positionID); err != nil {
		if errors.Is(err, repository.ErrPositionNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, ErrInternal
	}

	reqRecords, err := u.requirements.FindByPositionID(ctx, positionID)
	if err != nil {
		return nil, ErrInternal
	}
	reqs := toRequirements(reqRecords)

	pool, err := u.employees.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	// Employees already holding the position are not candidates for it.
	candidates := make([]employee.Employee, 0, len(pool))
	ids := make([]uuid.UUID, 0, len(pool))
	for _, e := range pool {
		if e.PositionID != nil && *e.PositionID == positionID {
			continue
		}
		candidates = append(candidates, e)
		ids = append(ids, e.ID)
	}

	profsByEmployee, err := u.proficiencies.FindByEmployeeIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	ranked := make([]RankedCandidate, len(candidates))
	if err := u.fanOut(ctx, len(candidates), func(i int) {
		c := candidates[i]
		res := scoring.Score(u.policy, toCandidateSkills(profsByEmployee[c.ID]), reqs)
		ranked[i] = RankedCandidate{
			EmployeeID:     c.ID,
			EmployeeName:   c.Name,
			Score:          res.Score,
			FullyQualified: res.FullyQualified,
			MandatoryGaps:  res.MandatoryGaps,
			Gaps:           res.Gaps,
		}
	}); err != nil {
		return nil, err
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].EmployeeID.String() < ranked[j].EmployeeID.String()
	})

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, ranked, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("Ranking cache set failed | key=%s err=%v", cacheKey, err)
		}
	}
	return ranked, nil
}

func (u *Ranking) RankPositionsForEmployee(ctx context.Context, employeeID uuid.UUID) ([]RankedPosition, error) {
	if employeeID == uuid.Nil {
		return nil, ErrEmployeeNotFound
	}

	cacheKey := "ranking:employee:" + employeeID.String()
	if u.cache != nil {
		var cached []RankedPosition
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	emp, err := u.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, ErrInternal
	}

	profs, err := u.proficiencies.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, ErrInternal
	}
	candSkills := toCandidateSkills(profs)

	allPositions, err := u.positions.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	positions := make([]repository.Position, 0, len(allPositions))
	ids := make([]uuid.UUID, 0, len(allPositions))
	for _, p := range allPositions {
		if emp.PositionID != nil && *emp.PositionID == p.ID {
			continue
		}
		positions = append(positions, p)
		ids = append(ids, p.ID)
	}

	reqsByPosition, err := u.requirements.FindByPositionIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	ranked := make([]RankedPosition, len(positions))
	if err := u.fanOut(ctx, len(positions), func(i int) {
		p := positions[i]
		res := scoring.Score(u.policy, candSkills, toRequirements(reqsByPosition[p.ID]))
		ranked[i] = RankedPosition{
			PositionID:     p.ID,
			Title:          p.Title,
			Score:          res.Score,
			FullyQualified: res.FullyQualified,
			MandatoryGaps:  res.MandatoryGaps,
			Gaps:           res.Gaps,
		}
	}); err != nil {
		return nil, err
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PositionID.String() < ranked[j].PositionID.String()
	})

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, ranked, u.cacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("Ranking cache set failed | key=%s err=%v", cacheKey, err)
		}
	}
	return ranked, nil
}

// fanOut runs fn over [0,n) on a bounded worker group. Each index writes
// only its own slot, so no locking is needed; cancellation just stops
// feeding workers.
func (u *Ranking) fanOut(ctx context.Context, n int, fn func(i int)) error {
	if n == 0 {
		return nil
	}

	workers := u.workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
