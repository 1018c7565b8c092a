package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/infrastructure/repository/memory"
)

type scoringFixture struct {
	svc     *ScoringService
	rosters *memory.RosterRepository
	players *memory.PlayerRepository
}

func newScoringFixture() scoringFixture {
	rosters := memory.NewRosterRepository(memory.SeedRiders())
	riders := memory.NewRiderRepository(memory.SeedRiders())
	races := memory.NewRaceRepository(memory.SeedRaces(), memory.SeedStages(), memory.SeedFinishers(), memory.SeedJerseys())
	players := memory.NewPlayerRepository()

	return scoringFixture{
		svc:     NewScoringService(rosters, riders, races, players),
		rosters: rosters,
		players: players,
	}
}

func (f scoringFixture) addTeam(t *testing.T, playerName, teamName string, isValid bool, riderNames ...string) {
	t.Helper()
	ctx := context.Background()

	p, _, err := f.players.Create(ctx, player.Player{
		Name:     playerName,
		Identity: player.Identity{Provider: "reddit", SubjectID: playerName},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	_, _, err = f.rosters.Replace(ctx, roster.PlayerTeam{
		PlayerID: p.ID,
		Year:     memory.SeedYear,
		Division: game.DivisionMen,
		Name:     teamName,
		IsValid:  isValid,
	}, riderNames)
	if err != nil {
		t.Fatalf("replace roster: %v", err)
	}
}

func TestTeamRankingsSumsRosterPoints(t *testing.T) {
	f := newScoringFixture()
	f.addTeam(t, "pat", "Breakaway Specialists", true, "Jonas Vester", "Tadej Strmec")
	f.addTeam(t, "sam", "Classics Crew", true, "Remco Vanheule", "Wout Termont")

	scores, err := f.svc.TeamRankings(context.Background(), memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("team rankings: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 ranked teams, got %d", len(scores))
	}

	// Jonas 77 + Tadej 57 beats Remco 50 + Wout 35.
	if scores[0].TeamName != "Breakaway Specialists" || scores[0].Points != 134 {
		t.Fatalf("unexpected leader %+v", scores[0])
	}
	if scores[0].PlayerName != "pat" {
		t.Fatalf("expected owner name resolved, got %+v", scores[0])
	}
	if scores[1].TeamName != "Classics Crew" || scores[1].Points != 85 {
		t.Fatalf("unexpected runner-up %+v", scores[1])
	}
}

func TestTeamRankingsSkipsInvalidTeams(t *testing.T) {
	f := newScoringFixture()
	f.addTeam(t, "pat", "Counted", true, "Jonas Vester")
	f.addTeam(t, "sam", "Skipped", false, "Tadej Strmec")

	scores, err := f.svc.TeamRankings(context.Background(), memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("team rankings: %v", err)
	}
	if len(scores) != 1 || scores[0].TeamName != "Counted" {
		t.Fatalf("expected only the valid team ranked, got %+v", scores)
	}
}

func TestTeamRankingsEmptySeason(t *testing.T) {
	f := newScoringFixture()

	scores, err := f.svc.TeamRankings(context.Background(), memory.SeedYear, game.DivisionWomen)
	if err != nil {
		t.Fatalf("team rankings: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no rankings, got %+v", scores)
	}
}

func TestTeamRankingsReflectsNewResults(t *testing.T) {
	f := newScoringFixture()
	f.addTeam(t, "pat", "Recomputed", true, "Mads Holgaard")

	scores, err := f.svc.TeamRankings(context.Background(), memory.SeedYear, game.DivisionMen)
	if err != nil {
		t.Fatalf("team rankings: %v", err)
	}
	// Mads has no seeded results yet; totals recompute from storage per call.
	if scores[0].Points != 0 {
		t.Fatalf("expected zero points before results, got %+v", scores[0])
	}
}

func TestTeamRankingsValidatesSeason(t *testing.T) {
	f := newScoringFixture()
	ctx := context.Background()

	if _, err := f.svc.TeamRankings(ctx, -1, game.DivisionMen); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year, got %v", err)
	}
	if _, err := f.svc.TeamRankings(ctx, memory.SeedYear, "junior"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for division, got %v", err)
	}
}
