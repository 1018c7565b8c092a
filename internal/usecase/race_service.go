package usecase

import (
	"context"
	"fmt"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
)

type RaceService struct {
	raceRepo race.Repository
}

func NewRaceService(raceRepo race.Repository) *RaceService {
	return &RaceService{raceRepo: raceRepo}
}

func (s *RaceService) ListRaces(ctx context.Context, year int, division game.Division) ([]race.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "RaceService.ListRaces")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return nil, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	races, err := s.raceRepo.ListBySeason(ctx, year, division)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	return races, nil
}

func (s *RaceService) RaceResults(ctx context.Context, raceID int64) (race.Race, []race.StageResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RaceService.RaceResults")
	defer span.End()

	if raceID <= 0 {
		return race.Race{}, nil, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	item, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Race{}, nil, fmt.Errorf("get race: %w", err)
	}
	if !found {
		return race.Race{}, nil, fmt.Errorf("%w: race=%d", ErrNotFound, raceID)
	}

	results, err := s.raceRepo.ListStageResults(ctx, raceID)
	if err != nil {
		return race.Race{}, nil, fmt.Errorf("list stage results: %w", err)
	}

	return item, results, nil
}
