package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

// womensPool builds a 15-rider women's pool priced to fit the budget cap
// exactly, so a full selection is valid.
func womensPool(year int) []rider.Rider {
	pool := make([]rider.Rider, 0, 15)
	for i := 0; i < 15; i++ {
		pool = append(pool, rider.Rider{
			Name:        fmt.Sprintf("Rider %02d", i+1),
			Year:        year,
			Division:    game.DivisionWomen,
			Price:       10,
			ProTeamName: "Test Squad",
		})
	}
	return pool
}

func poolNames(pool []rider.Rider) []string {
	names := make([]string, 0, len(pool))
	for _, r := range pool {
		names = append(names, r.Name)
	}
	return names
}

func newTeamFixture(pool []rider.Rider) *TeamService {
	rosters := memory.NewRosterRepository(pool)
	riders := memory.NewRiderRepository(pool)

	return NewTeamService(rosters, riders, logging.NewNop())
}

func TestSaveTeamStoresValidRoster(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)
	ctx := context.Background()

	outcome, err := svc.SaveTeam(ctx, SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "Echelon Eight",
		RiderNames: poolNames(pool),
	})
	if err != nil {
		t.Fatalf("save team: %v", err)
	}
	if !outcome.Verdict.IsValid || !outcome.Team.IsValid {
		t.Fatalf("expected valid roster, verdict %+v", outcome.Verdict)
	}
	if outcome.Team.ID == 0 {
		t.Fatalf("expected assigned team id")
	}
	if len(outcome.Entries) != 15 {
		t.Fatalf("expected 15 entries, got %d", len(outcome.Entries))
	}
	// Entries come back enriched with the rider pool join.
	if outcome.Entries[0].Price != 10 || outcome.Entries[0].ProTeamName != "Test Squad" {
		t.Fatalf("expected enriched entry, got %+v", outcome.Entries[0])
	}
}

func TestSaveTeamStoresInvalidRosterWithVerdict(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)
	ctx := context.Background()

	outcome, err := svc.SaveTeam(ctx, SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "Work In Progress",
		RiderNames: poolNames(pool)[:3],
	})
	if err != nil {
		t.Fatalf("save team: %v", err)
	}
	if outcome.Verdict.IsValid || outcome.Team.IsValid {
		t.Fatalf("expected invalid verdict, got %+v", outcome.Verdict)
	}
	if len(outcome.Verdict.Errors) == 0 {
		t.Fatalf("expected verdict errors")
	}

	// Invalid rosters are stored, not rejected.
	team, entries, found, err := svc.GetTeam(ctx, 1, 2026, game.DivisionWomen)
	if err != nil || !found {
		t.Fatalf("expected stored team, found=%v err=%v", found, err)
	}
	if team.IsValid {
		t.Fatalf("expected stored validity false")
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestSaveTeamReplacesExistingRoster(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)
	ctx := context.Background()

	first, err := svc.SaveTeam(ctx, SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "Draft One",
		RiderNames: poolNames(pool)[:2],
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveTeam(ctx, SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "Draft Two",
		RiderNames: poolNames(pool),
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first.Team.ID != second.Team.ID {
		t.Fatalf("expected one team per (player, year, division), got ids %d and %d", first.Team.ID, second.Team.ID)
	}
	if second.Team.Name != "Draft Two" || !second.Team.IsValid {
		t.Fatalf("expected replaced team head, got %+v", second.Team)
	}
	if len(second.Entries) != 15 {
		t.Fatalf("expected full replacement, got %d entries", len(second.Entries))
	}
}

func TestSaveTeamStoresDuplicateRiders(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)
	ctx := context.Background()

	// 14 distinct riders plus one repeat: duplicates count toward the size
	// and every occurrence persists as its own roster row.
	names := append(poolNames(pool)[:14], pool[0].Name)
	outcome, err := svc.SaveTeam(ctx, SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "Double Booked",
		RiderNames: names,
	})
	if err != nil {
		t.Fatalf("save team: %v", err)
	}
	if !outcome.Verdict.IsValid {
		t.Fatalf("expected duplicate to stay warning-only, got %+v", outcome.Verdict)
	}
	if len(outcome.Verdict.Warnings) != 1 || outcome.Verdict.Warnings[0] != "Duplicate rider: "+pool[0].Name {
		t.Fatalf("unexpected warnings %v", outcome.Verdict.Warnings)
	}
	if len(outcome.Entries) != 15 {
		t.Fatalf("expected 15 stored entries including the repeat, got %d", len(outcome.Entries))
	}

	_, entries, found, err := svc.GetTeam(ctx, 1, 2026, game.DivisionWomen)
	if err != nil || !found {
		t.Fatalf("reload team: found=%v err=%v", found, err)
	}
	repeats := 0
	for _, e := range entries {
		if e.RiderName == pool[0].Name {
			repeats++
		}
	}
	if repeats != 2 {
		t.Fatalf("expected the duplicated rider twice, got %d occurrences in %d entries", repeats, len(entries))
	}
}

func TestSaveTeamCleansRiderNames(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)

	outcome, err := svc.SaveTeam(context.Background(), SaveTeamInput{
		PlayerID:   1,
		Year:       2026,
		Division:   game.DivisionWomen,
		TeamName:   "  Tidy Team  ",
		RiderNames: []string{"  Rider 01  ", "", "Rider 02", "   "},
	})
	if err != nil {
		t.Fatalf("save team: %v", err)
	}
	if outcome.Team.Name != "Tidy Team" {
		t.Fatalf("expected trimmed team name, got %q", outcome.Team.Name)
	}
	if len(outcome.Entries) != 2 {
		t.Fatalf("expected blank names dropped, got %d entries", len(outcome.Entries))
	}
}

func TestSaveTeamValidatesInput(t *testing.T) {
	svc := newTeamFixture(womensPool(2026))
	ctx := context.Background()

	cases := []SaveTeamInput{
		{PlayerID: 0, Year: 2026, Division: game.DivisionWomen, TeamName: "x"},
		{PlayerID: 1, Year: 0, Division: game.DivisionWomen, TeamName: "x"},
		{PlayerID: 1, Year: 2026, Division: "x", TeamName: "x"},
		{PlayerID: 1, Year: 2026, Division: game.DivisionWomen, TeamName: "   "},
	}
	for i, input := range cases {
		if _, err := svc.SaveTeam(ctx, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestGetTeamNotFound(t *testing.T) {
	svc := newTeamFixture(womensPool(2026))

	_, _, found, err := svc.GetTeam(context.Background(), 99, 2026, game.DivisionWomen)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if found {
		t.Fatalf("expected no team")
	}
}

func TestValidateTeamEmptySelection(t *testing.T) {
	svc := newTeamFixture(womensPool(2026))

	verdict, err := svc.ValidateTeam(context.Background(), 2026, game.DivisionWomen, nil)
	if err != nil {
		t.Fatalf("validate team: %v", err)
	}
	if verdict.IsValid {
		t.Fatalf("expected empty selection invalid")
	}
	if len(verdict.Errors) != 1 || verdict.Errors[0] != "No riders selected" {
		t.Fatalf("unexpected errors %v", verdict.Errors)
	}
}

func TestValidateTeamWarnsOnUnknownRider(t *testing.T) {
	pool := womensPool(2026)
	svc := newTeamFixture(pool)

	names := append(poolNames(pool)[:14], "Retired Rider")
	verdict, err := svc.ValidateTeam(context.Background(), 2026, game.DivisionWomen, names)
	if err != nil {
		t.Fatalf("validate team: %v", err)
	}
	// Unknown riders price at zero; the roster still validates with a warning.
	if !verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", verdict)
	}
	if len(verdict.Warnings) != 1 || verdict.Warnings[0] != "Unknown rider: Retired Rider" {
		t.Fatalf("unexpected warnings %v", verdict.Warnings)
	}
}

func TestValidateTeamRejectsBadSeason(t *testing.T) {
	svc := newTeamFixture(womensPool(2026))
	ctx := context.Background()

	if _, err := svc.ValidateTeam(ctx, 0, game.DivisionWomen, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year, got %v", err)
	}
	if _, err := svc.ValidateTeam(ctx, 2026, "mixed", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for division, got %v", err)
	}
}
