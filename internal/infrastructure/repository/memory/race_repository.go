package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
)

type RaceRepository struct {
	mu        sync.RWMutex
	races     []race.Race
	stages    []race.Stage
	finishers []race.Finisher
	jerseys   []race.JerseyHolder
}

func NewRaceRepository(races []race.Race, stages []race.Stage, finishers []race.Finisher, jerseys []race.JerseyHolder) *RaceRepository {
	return &RaceRepository{
		races:     append([]race.Race(nil), races...),
		stages:    append([]race.Stage(nil), stages...),
		finishers: append([]race.Finisher(nil), finishers...),
		jerseys:   append([]race.JerseyHolder(nil), jerseys...),
	}
}

func (r *RaceRepository) ListBySeason(_ context.Context, year int, division game.Division) ([]race.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Race, 0, len(r.races))
	for _, item := range r.races {
		if item.Year == year && item.Division == division {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *RaceRepository) GetByID(_ context.Context, raceID int64) (race.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.races {
		if item.ID == raceID {
			return item, true, nil
		}
	}

	return race.Race{}, false, nil
}

func (r *RaceRepository) ListStageResults(_ context.Context, raceID int64) ([]race.StageResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stages := make([]race.Stage, 0)
	for _, s := range r.stages {
		if s.RaceID == raceID {
			stages = append(stages, s)
		}
	}
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].StageNumber < stages[j].StageNumber })

	out := make([]race.StageResult, 0, len(stages))
	for _, s := range stages {
		result := race.StageResult{Stage: s}
		for _, f := range r.finishers {
			if f.StageID == s.ID {
				result.Finishers = append(result.Finishers, f)
			}
		}
		sort.SliceStable(result.Finishers, func(i, j int) bool {
			return result.Finishers[i].FinishPosition < result.Finishers[j].FinishPosition
		})
		for _, j := range r.jerseys {
			if j.StageID == s.ID {
				result.Jerseys = append(result.Jerseys, j)
			}
		}
		out = append(out, result)
	}

	return out, nil
}

func (r *RaceRepository) ListSeasonFinishers(_ context.Context, year int, division game.Division) ([]race.Finisher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.Finisher, 0, len(r.finishers))
	for _, f := range r.finishers {
		if f.Year == year && f.Division == division {
			out = append(out, f)
		}
	}

	return out, nil
}

func (r *RaceRepository) ListSeasonJerseys(_ context.Context, year int, division game.Division) ([]race.JerseyHolder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]race.JerseyHolder, 0, len(r.jerseys))
	for _, j := range r.jerseys {
		if j.Year == year && j.Division == division {
			out = append(out, j)
		}
	}

	return out, nil
}
