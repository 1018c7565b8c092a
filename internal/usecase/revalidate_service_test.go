package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

func seedRevalidateTeam(t *testing.T, rosters *memory.RosterRepository, playerID int64, isValid bool, riderNames []string) roster.PlayerTeam {
	t.Helper()

	team, _, err := rosters.Replace(context.Background(), roster.PlayerTeam{
		PlayerID: playerID,
		Year:     2026,
		Division: game.DivisionWomen,
		Name:     "Sweep Target",
		IsValid:  isValid,
	}, riderNames)
	if err != nil {
		t.Fatalf("replace roster: %v", err)
	}

	return team
}

func TestRevalidateSeasonFlipsStaleFlags(t *testing.T) {
	pool := womensPool(2026)
	rosters := memory.NewRosterRepository(pool)
	riders := memory.NewRiderRepository(pool)
	svc := NewRevalidateService(rosters, riders, 4, logging.NewNop())
	ctx := context.Background()

	// Stored flags disagree with the rules for the first two teams.
	staleFalse := seedRevalidateTeam(t, rosters, 1, false, poolNames(pool))
	staleTrue := seedRevalidateTeam(t, rosters, 2, true, poolNames(pool)[:3])
	settled := seedRevalidateTeam(t, rosters, 3, false, poolNames(pool)[:3])

	result, err := svc.RevalidateSeason(ctx, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("revalidate season: %v", err)
	}
	if result.TeamCount != 3 || result.ChangedCount != 2 || result.ErrorCount != 0 {
		t.Fatalf("unexpected sweep result %+v", result)
	}

	teams, err := rosters.ListBySeason(ctx, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	validity := make(map[int64]bool, len(teams))
	for _, team := range teams {
		validity[team.ID] = team.IsValid
	}
	if !validity[staleFalse.ID] {
		t.Fatalf("expected full roster marked valid")
	}
	if validity[staleTrue.ID] {
		t.Fatalf("expected short roster marked invalid")
	}
	if validity[settled.ID] {
		t.Fatalf("expected settled roster untouched")
	}
}

func TestRevalidateSeasonIsIdempotent(t *testing.T) {
	pool := womensPool(2026)
	rosters := memory.NewRosterRepository(pool)
	riders := memory.NewRiderRepository(pool)
	svc := NewRevalidateService(rosters, riders, 4, logging.NewNop())
	ctx := context.Background()

	seedRevalidateTeam(t, rosters, 1, false, poolNames(pool))

	first, err := svc.RevalidateSeason(ctx, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if first.ChangedCount != 1 {
		t.Fatalf("expected one change, got %+v", first)
	}

	second, err := svc.RevalidateSeason(ctx, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if second.TeamCount != 1 || second.ChangedCount != 0 {
		t.Fatalf("expected settled second sweep, got %+v", second)
	}
}

func TestRevalidateSeasonCountsDuplicateEntries(t *testing.T) {
	pool := womensPool(2026)
	rosters := memory.NewRosterRepository(pool)
	riders := memory.NewRiderRepository(pool)
	svc := NewRevalidateService(rosters, riders, 2, logging.NewNop())
	ctx := context.Background()

	// A stored roster with a repeated rider still counts 15 list entries, so
	// the sweep must not flip its validity.
	names := append(poolNames(pool)[:14], pool[0].Name)
	seedRevalidateTeam(t, rosters, 1, true, names)

	result, err := svc.RevalidateSeason(ctx, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("revalidate season: %v", err)
	}
	if result.TeamCount != 1 || result.ChangedCount != 0 || result.ErrorCount != 0 {
		t.Fatalf("unexpected sweep result %+v", result)
	}
}

func TestRevalidateSeasonEmptySeason(t *testing.T) {
	pool := womensPool(2026)
	svc := NewRevalidateService(memory.NewRosterRepository(pool), memory.NewRiderRepository(pool), 2, logging.NewNop())

	result, err := svc.RevalidateSeason(context.Background(), 2026, game.DivisionMen)
	if err != nil {
		t.Fatalf("revalidate season: %v", err)
	}
	if result.TeamCount != 0 || result.ChangedCount != 0 || result.ErrorCount != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestRevalidateSeasonValidatesSeason(t *testing.T) {
	pool := womensPool(2026)
	svc := NewRevalidateService(memory.NewRosterRepository(pool), memory.NewRiderRepository(pool), 2, logging.NewNop())
	ctx := context.Background()

	if _, err := svc.RevalidateSeason(ctx, 0, game.DivisionWomen); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year, got %v", err)
	}
	if _, err := svc.RevalidateSeason(ctx, 2026, "open"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for division, got %v", err)
	}
}
