package usecase

import (
	"context"
	"errors"

	"career-hub/internal/domain/succession"
	"career-hub/internal/repository"

	"github.com/google/uuid"
)

type SuccessionUsecase interface {
	BuildShortlist(ctx context.Context, positionID uuid.UUID, topN int) ([]succession.Candidate, error)
	ListCandidates(ctx context.Context, positionID uuid.UUID) ([]succession.Candidate, error)
	UpdateStatus(ctx context.Context, candidateID uuid.UUID, status string) error
}

const defaultShortlistSize = 5

// Succession persists ranking snapshots as shortlists. Scores are stored at
// build time and refreshed when the list is read, never continuously.
type Succession struct {
	ranking    RankingUsecase
	scoring    ScoringUsecase
	candidates repository.SuccessionRepository
}

func NewSuccessionUsecase(
	ranking RankingUsecase,
	scoring ScoringUsecase,
	candidates repository.SuccessionRepository,
) *Succession {
	return &Succession{ranking: ranking, scoring: scoring, candidates: candidates}
}

func (u *Succession) BuildShortlist(ctx context.Context, positionID uuid.UUID, topN int) ([]succession.Candidate, error) {
	if topN <= 0 {
		topN = defaultShortlistSize
	}

	ranked, err := u.ranking.RankCandidatesForPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]succession.Candidate, 0, len(ranked))
	for i, rc := range ranked {
		out = append(out, succession.Candidate{
			ID:           uuid.New(),
			PositionID:   positionID,
			EmployeeID:   rc.EmployeeID,
			EmployeeName: rc.EmployeeName,
			PriorityRank: i + 1,
			MatchScore:   rc.Score,
			Status:       succession.StatusUnderReview,
		})
	}

	if err := u.candidates.ReplaceForPosition(ctx, positionID, out); err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Succession) ListCandidates(ctx context.Context, positionID uuid.UUID) ([]succession.Candidate, error) {
	if positionID == uuid.Nil {
		return nil, ErrPositionNotFound
	}

	items, err := u.candidates.ListByPosition(ctx, positionID)
	if err != nil {
		return nil, ErrInternal
	}

	// Recompute on read; proficiencies may have moved since the shortlist
	// was built.
	for i := range items {
		res, err := u.scoring.ScoreCandidate(ctx, items[i].EmployeeID, positionID)
		if err != nil {
			continue
		}
		items[i].MatchScore = res.Score
	}
	return items, nil
}

func (u *Succession) UpdateStatus(ctx context.Context, candidateID uuid.UUID, status string) error {
	st, ok := succession.ParseStatus(status)
	if !ok {
		return ErrInvalidInput
	}

	err := u.candidates.UpdateStatus(ctx, candidateID, st)
	if err != nil {
		if errors.Is(err, repository.ErrSuccessionCandidateNotFound) {
			return ErrCandidateNotFound
		}
		return ErrInternal
	}
	return nil
}
