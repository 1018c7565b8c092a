package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/domain/scoring"
)

type ScoringService struct {
	rosterRepo roster.Repository
	riderRepo  ScoringRiderSource
	raceRepo   race.Repository
	playerRepo player.Repository
}

// ScoringRiderSource is the slice of the rider repository rankings need.
type ScoringRiderSource interface {
	PricesByName(ctx context.Context, year int, division game.Division) (map[string]int, error)
}

func NewScoringService(rosterRepo roster.Repository, riderRepo ScoringRiderSource, raceRepo race.Repository, playerRepo player.Repository) *ScoringService {
	return &ScoringService{
		rosterRepo: rosterRepo,
		riderRepo:  riderRepo,
		raceRepo:   raceRepo,
		playerRepo: playerRepo,
	}
}

// TeamRankings projects season totals over every valid team of one season
// edition. Totals are recomputed from results on each call; nothing is
// persisted, so re-running after new results lands updated standings.
func (s *ScoringService) TeamRankings(ctx context.Context, year int, division game.Division) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.TeamRankings")
	defer span.End()

	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return nil, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	var (
		teams     []roster.PlayerTeam
		entries   map[int64][]roster.Entry
		finishers []race.Finisher
		jerseys   []race.JerseyHolder
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		teams, err = s.rosterRepo.ListBySeason(ctx, year, division)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		entries, err = s.rosterRepo.ListEntriesBySeason(ctx, year, division)
		if err != nil {
			return fmt.Errorf("list roster entries: %w", err)
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

	playerNames, err := s.loadPlayerNames(ctx, teams)
	if err != nil {
		return nil, err
	}

	totals := scoring.RiderTotals(finishers, jerseys)

	return scoring.ScoreTeams(teams, entries, playerNames, totals), nil
}

func (s *ScoringService) loadPlayerNames(ctx context.Context, teams []roster.PlayerTeam) (map[int64]string, error) {
	ids := make([]int64, 0, len(teams))
	seen := make(map[int64]struct{}, len(teams))
	for _, t := range teams {
		if _, ok := seen[t.PlayerID]; ok {
			continue
		}
		seen[t.PlayerID] = struct{}{}
		ids = append(ids, t.PlayerID)
	}
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	names := make(map[int64]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	return names, nil
}
