// Package cache wraps repositories with read-through caching. Season data
// changes rarely (riders and races are loaded once per edition), so cached
// reads serve the public endpoints without hitting storage on every request.
package cache

import (
	"context"
	"fmt"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
	basecache "github.com/vdsgame/vds-api/internal/platform/cache"
)

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, "game:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

type RaceRepository struct {
	next  race.Repository
	cache *basecache.Store
}

func NewRaceRepository(next race.Repository, cache *basecache.Store) *RaceRepository {
	return &RaceRepository{next: next, cache: cache}
}

func (r *RaceRepository) ListBySeason(ctx context.Context, year int, division game.Division) ([]race.Race, error) {
	key := fmt.Sprintf("race:season:%d:%s", year, division)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, year, division)
		if err != nil {
			return nil, err
		}
		return append([]race.Race(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.Race)
	return append([]race.Race(nil), items...), nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID int64) (race.Race, bool, error) {
	key := fmt.Sprintf("race:id:%d", raceID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, raceID)
		if err != nil {
			return nil, err
		}
		return cachedRaceByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return race.Race{}, false, err
	}

	cached, _ := v.(cachedRaceByID)
	return cached.value, cached.exists, nil
}

func (r *RaceRepository) ListStageResults(ctx context.Context, raceID int64) ([]race.StageResult, error) {
	key := fmt.Sprintf("race:results:%d", raceID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListStageResults(ctx, raceID)
		if err != nil {
			return nil, err
		}
		return cloneStageResults(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.StageResult)
	return cloneStageResults(items), nil
}

func (r *RaceRepository) ListSeasonFinishers(ctx context.Context, year int, division game.Division) ([]race.Finisher, error) {
	key := fmt.Sprintf("race:finishers:%d:%s", year, division)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasonFinishers(ctx, year, division)
		if err != nil {
			return nil, err
		}
		return append([]race.Finisher(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.Finisher)
	return append([]race.Finisher(nil), items...), nil
}

func (r *RaceRepository) ListSeasonJerseys(ctx context.Context, year int, division game.Division) ([]race.JerseyHolder, error) {
	key := fmt.Sprintf("race:jerseys:%d:%s", year, division)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListSeasonJerseys(ctx, year, division)
		if err != nil {
			return nil, err
		}
		return append([]race.JerseyHolder(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.JerseyHolder)
	return append([]race.JerseyHolder(nil), items...), nil
}

type cachedRaceByID struct {
	value  race.Race
	exists bool
}

func cloneStageResults(items []race.StageResult) []race.StageResult {
	out := make([]race.StageResult, 0, len(items))
	for _, item := range items {
		cp := item
		cp.Finishers = append([]race.Finisher(nil), item.Finishers...)
		cp.Jerseys = append([]race.JerseyHolder(nil), item.Jerseys...)
		out = append(out, cp)
	}
	return out
}
