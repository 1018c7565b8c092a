package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	"github.com/vdsgame/vds-api/internal/platform/cache"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

type countingRiderRepo struct {
	rider.Repository
	listCalls int
}

func (r *countingRiderRepo) ListBySeason(ctx context.Context, year int, division game.Division, filter rider.Filter) ([]rider.Rider, error) {
	r.listCalls++
	return r.Repository.ListBySeason(ctx, year, division, filter)
}

func newRiderFixture(cacheStore *cache.Store) *RiderService {
	riders := memory.NewRiderRepository(memory.SeedRiders())
	races := memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys())

	return NewRiderService(riders, races, cacheStore, logging.NewNop())
}

func TestListRidersOrdersByPriceDesc(t *testing.T) {
	svc := newRiderFixture(nil)

	riders, err := svc.ListRiders(context.Background(), memory.SeedYear, game.DivisionMen, rider.Filter{})
	if err != nil {
		t.Fatalf("list riders: %v", err)
	}
	if len(riders) != 13 {
		t.Fatalf("expected 13 men's riders, got %d", len(riders))
	}
	if riders[0].Name != "Tadej Strmec" || riders[0].Price != 32 {
		t.Fatalf("expected most expensive rider first, got %+v", riders[0])
	}
	for i := 1; i < len(riders); i++ {
		if riders[i].Price > riders[i-1].Price {
			t.Fatalf("expected price-descending order at index %d", i)
		}
	}
}

func TestListRidersAppliesFilters(t *testing.T) {
	svc := newRiderFixture(nil)
	ctx := context.Background()

	byNationality, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionMen, rider.Filter{Nationality: "DK"})
	if err != nil {
		t.Fatalf("filter nationality: %v", err)
	}
	if len(byNationality) != 2 {
		t.Fatalf("expected 2 Danish riders, got %+v", byNationality)
	}

	byTeam, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionWomen, rider.Filter{ProTeamName: "Nordkap Women"})
	if err != nil {
		t.Fatalf("filter pro team: %v", err)
	}
	if len(byTeam) != 3 {
		t.Fatalf("expected 3 Nordkap Women riders, got %+v", byTeam)
	}

	byPrice, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionMen, rider.Filter{MinPrice: 20, MaxPrice: 26})
	if err != nil {
		t.Fatalf("filter price: %v", err)
	}
	for _, r := range byPrice {
		if r.Price < 20 || r.Price > 26 {
			t.Fatalf("rider outside price band: %+v", r)
		}
	}
	if len(byPrice) != 4 {
		t.Fatalf("expected 4 riders in band, got %d", len(byPrice))
	}
}

func TestListRidersValidatesSeason(t *testing.T) {
	svc := newRiderFixture(nil)
	ctx := context.Background()

	if _, err := svc.ListRiders(ctx, 0, game.DivisionMen, rider.Filter{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year, got %v", err)
	}
	if _, err := svc.ListRiders(ctx, memory.SeedYear, "u23", rider.Filter{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for division, got %v", err)
	}
}

func TestListRidersServesRepeatsFromCache(t *testing.T) {
	counting := &countingRiderRepo{Repository: memory.NewRiderRepository(memory.SeedRiders())}
	races := memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys())
	svc := NewRiderService(counting, races, cache.NewStore(time.Minute), logging.NewNop())
	ctx := context.Background()

	if _, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionMen, rider.Filter{}); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionMen, rider.Filter{}); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if counting.listCalls != 1 {
		t.Fatalf("expected one repository read, got %d", counting.listCalls)
	}

	// A different filter is a different cache key.
	if _, err := svc.ListRiders(ctx, memory.SeedYear, game.DivisionMen, rider.Filter{Nationality: "DK"}); err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if counting.listCalls != 2 {
		t.Fatalf("expected cache miss for new filter, got %d reads", counting.listCalls)
	}
}

func TestRiderScoresSumsSeasonResults(t *testing.T) {
	svc := newRiderFixture(nil)

	scores, err := svc.RiderScores(context.Background(), memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("rider scores: %v", err)
	}
	if len(scores) != 13 {
		t.Fatalf("expected every rider listed, got %d", len(scores))
	}

	// Jonas: 22+30 stage points plus the 25-point final jersey hold.
	if scores[0].RiderName != "Jonas Vester" || scores[0].Points != 77 {
		t.Fatalf("expected Jonas Vester on 77, got %+v", scores[0])
	}
	// Tadej: 30+22 stage points plus the 5-point interim hold.
	if scores[1].RiderName != "Tadej Strmec" || scores[1].Points != 57 {
		t.Fatalf("expected Tadej Strmec on 57, got %+v", scores[1])
	}

	for _, s := range scores[5:] {
		if s.Points != 0 {
			t.Fatalf("expected zero points for %s, got %d", s.RiderName, s.Points)
		}
	}
}

func TestRiderScoresKeepsDivisionsSeparate(t *testing.T) {
	svc := newRiderFixture(nil)

	scores, err := svc.RiderScores(context.Background(), memory.SeedYear, game.DivisionWomen)
	if err != nil {
		t.Fatalf("rider scores: %v", err)
	}
	if len(scores) != 8 {
		t.Fatalf("expected 8 women's riders, got %d", len(scores))
	}
	// Demi: 50 stage points plus the 15-point final points jersey.
	if scores[0].RiderName != "Demi Van Oost" || scores[0].Points != 65 {
		t.Fatalf("expected Demi Van Oost on 65, got %+v", scores[0])
	}
	for _, s := range scores {
		if s.RiderName == "Jonas Vester" {
			t.Fatalf("men's rider leaked into women's scores")
		}
	}
}
