package cache

import (
	"context"
	"testing"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	basecache "github.com/vdsgame/vds-api/internal/platform/cache"
)

type countingGameRepo struct {
	game.Repository
	calls int
}

func (r *countingGameRepo) List(ctx context.Context) ([]game.Game, error) {
	r.calls++
	return r.Repository.List(ctx)
}

type countingRaceRepo struct {
	race.Repository
	resultCalls int
}

func (r *countingRaceRepo) ListStageResults(ctx context.Context, raceID int64) ([]race.StageResult, error) {
	r.resultCalls++
	return r.Repository.ListStageResults(ctx, raceID)
}

func TestGameRepositoryServesRepeatsFromCache(t *testing.T) {
	inner := &countingGameRepo{Repository: memory.NewGameRepository(memory.SeedGames())}
	repo := NewGameRepository(inner, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one storage read, got %d", inner.calls)
	}
	if len(first) != len(second) || len(first) != 2 {
		t.Fatalf("unexpected listings %v vs %v", first, second)
	}

	// Mutating a returned slice must not poison the cached copy.
	first[0].Year = 1999
	third, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("third list: %v", err)
	}
	if third[0].Year != memory.SeedYear {
		t.Fatalf("cached game mutated: %+v", third[0])
	}
}

func TestRaceRepositoryCachesMissesByID(t *testing.T) {
	repo := NewRaceRepository(memory.NewRaceRepository(memory.SeedRaces(), nil, nil, nil), basecache.NewStore(time.Minute))
	ctx := context.Background()

	item, found, err := repo.GetByID(ctx, 1)
	if err != nil || !found {
		t.Fatalf("expected race 1, found=%v err=%v", found, err)
	}
	if item.Name != "Omloop van de Kempen" {
		t.Fatalf("unexpected race %+v", item)
	}

	// Negative lookups cache too; the zero race reports found=false.
	if _, found, err := repo.GetByID(ctx, 404); err != nil || found {
		t.Fatalf("expected miss, found=%v err=%v", found, err)
	}
	if _, found, err := repo.GetByID(ctx, 404); err != nil || found {
		t.Fatalf("expected cached miss, found=%v err=%v", found, err)
	}
}

func TestRaceRepositoryDeepCopiesStageResults(t *testing.T) {
	inner := &countingRaceRepo{
		Repository: memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys()),
	}
	repo := NewRaceRepository(inner, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.ListStageResults(ctx, 3)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if inner.resultCalls != 1 || len(first) != 2 {
		t.Fatalf("unexpected first read, calls=%d results=%d", inner.resultCalls, len(first))
	}

	first[0].Finishers[0].PointsAwarded = -1

	second, err := repo.ListStageResults(ctx, 3)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if inner.resultCalls != 1 {
		t.Fatalf("expected cached second read, got %d calls", inner.resultCalls)
	}
	if second[0].Finishers[0].PointsAwarded < 0 {
		t.Fatalf("cached stage result mutated: %+v", second[0].Finishers[0])
	}
}

func TestRaceRepositorySeasonListingsKeyedByDivision(t *testing.T) {
	repo := NewRaceRepository(memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys()), basecache.NewStore(time.Minute))
	ctx := context.Background()

	men, err := repo.ListBySeason(ctx, memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("men listing: %v", err)
	}
	women, err := repo.ListBySeason(ctx, memory.SeedYear, game.DivisionWomen)
	if err != nil {
		t.Fatalf("women listing: %v", err)
	}
	if len(men) != 2 || len(women) != 1 {
		t.Fatalf("unexpected split, men=%d women=%d", len(men), len(women))
	}

	menFinishers, err := repo.ListSeasonFinishers(ctx, memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("men finishers: %v", err)
	}
	womenFinishers, err := repo.ListSeasonFinishers(ctx, memory.SeedYear, game.DivisionWomen)
	if err != nil {
		t.Fatalf("women finishers: %v", err)
	}
	if len(menFinishers) != 7 || len(womenFinishers) != 2 {
		t.Fatalf("unexpected finisher split, men=%d women=%d", len(menFinishers), len(womenFinishers))
	}
}
