package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/scoring"
	"github.com/vdsgame/vds-api/internal/platform/cache"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

type RiderService struct {
	riderRepo rider.Repository
	raceRepo  race.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

// NewRiderService builds the rider read side. cacheStore may be nil; rider
// data is static within a season so cached listings never need invalidation.
func NewRiderService(riderRepo rider.Repository, raceRepo race.Repository, cacheStore *cache.Store, logger *logging.Logger) *RiderService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RiderService{
		riderRepo: riderRepo,
		raceRepo:  raceRepo,
		cache:     cacheStore,
		logger:    logger,
	}
}

func (s *RiderService) ListRiders(ctx context.Context, year int, division game.Division, filter rider.Filter) ([]rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "RiderService.ListRiders")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return nil, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		riders, err := s.riderRepo.ListBySeason(ctx, year, division, filter)
		if err != nil {
			return nil, fmt.Errorf("list riders: %w", err)
		}
		return riders, nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]rider.Rider), nil
	}

	key := fmt.Sprintf("riders:%d:%s:%s:%s:%d:%d",
		year, division, filter.Nationality, filter.ProTeamName, filter.MinPrice, filter.MaxPrice)
	value, err := s.cache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}

	return value.([]rider.Rider), nil
}

// RiderScores projects season totals over the full rider pool. The three
// source listings are independent reads and fetched concurrently.
func (s *RiderService) RiderScores(ctx context.Context, year int, division game.Division) ([]scoring.RiderScore, error) {
	ctx, span := startUsecaseSpan(ctx, "RiderService.RiderScores")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return nil, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		var (
			riders    []rider.Rider
			finishers []race.Finisher
			jerseys   []race.JerseyHolder
		)

		p := pool.New().WithContext(ctx).WithCancelOnError()
		p.Go(func(ctx context.Context) error {
			var err error
			riders, err = s.riderRepo.ListBySeason(ctx, year, division, rider.Filter{})
			if err != nil {
				return fmt.Errorf("list riders: %w", err)
			}
			return nil
		})
		p.Go(func(ctx context.Context) error {
			var err error
			finishers, err = s.raceRepo.ListSeasonFinishers(ctx, year, division)
			if err != nil {
				return fmt.Errorf("list finishers: %w", err)
			}
			return nil
		})
		p.Go(func(ctx context.Context) error {
			var err error
			jerseys, err = s.raceRepo.ListSeasonJerseys(ctx, year, division)
			if err != nil {
				return fmt.Errorf("list jerseys: %w", err)
			}
			return nil
		})
		if err := p.Wait(); err != nil {
			return nil, err
		}

		return scoring.ScoreRiders(riders, finishers, jerseys), nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]scoring.RiderScore), nil
	}

	key := fmt.Sprintf("rider-scores:%d:%s", year, division)
	value, err := s.cache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}

	return value.([]scoring.RiderScore), nil
}
