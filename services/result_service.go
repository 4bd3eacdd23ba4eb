package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
)

// ResultService — итоги завершённых турниров: создаёт админ, читают все.
type ResultService struct {
	repo           repositories.ResultRepository
	tournamentRepo repositories.TournamentRepository
}

func NewResultService(repo repositories.ResultRepository, tournamentRepo repositories.TournamentRepository) *ResultService {
	return &ResultService{repo: repo, tournamentRepo: tournamentRepo}
}

type CreateResultInput struct {
	TeamID   string `json:"team_id"`
	Position int    `json:"position"`
	Kills    int    `json:"kills"`
	Points   int    `json:"points"`
	PrizeWon *int64 `json:"prize_won"`
}

func (s *ResultService) CreateResult(ctx context.Context, tournamentID string, input CreateResultInput) (*models.Result, error) {
	if input.Position <= 0 {
		return nil, errors.New("result position must be positive")
	}

	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	result := &models.Result{
		TournamentID: tournamentID,
		TeamID:       input.TeamID,
		Position:     input.Position,
		Kills:        input.Kills,
		Points:       input.Points,
		PrizeWon:     input.PrizeWon,
	}
	if err := s.repo.Create(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return result, nil
}

func (s *ResultService) ListResultsByTournament(ctx context.Context, tournamentID string) ([]models.Result, error) {
	results, err := s.repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return results, nil
}
