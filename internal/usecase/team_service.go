package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

// SaveTeamInput is the incoming payload for a full roster replace.
type SaveTeamInput struct {
	PlayerID   int64
	Year       int
	Division   game.Division
	TeamName   string
	RiderNames []string
}

// TeamOutcome bundles the persisted team with its roster and the verdict
// that produced the stored validity flag.
type TeamOutcome struct {
	Team    roster.PlayerTeam
	Entries []roster.Entry
	Verdict roster.Verdict
}

type TeamService struct {
	rosterRepo roster.Repository
	riderRepo  rider.Repository
	logger     *logging.Logger
	now        func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTeamService(rosterRepo roster.Repository, riderRepo rider.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		rosterRepo: rosterRepo,
		riderRepo:  riderRepo,
		logger:     logger,
		now:        time.Now,
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *TeamService) GetTeam(ctx context.Context, playerID int64, year int, division game.Division) (roster.PlayerTeam, []roster.Entry, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	if err := validateSeason(playerID, year, division); err != nil {
		return roster.PlayerTeam{}, nil, false, err
	}

	team, entries, found, err := s.rosterRepo.GetByOwner(ctx, playerID, year, division)
	if err != nil {
		return roster.PlayerTeam{}, nil, false, fmt.Errorf("get team by owner: %w", err)
	}

	return team, entries, found, nil
}

// SaveTeam replaces the caller's roster for one season edition. The roster is
// stored even when the verdict fails; the validity flag records the outcome
// so players can build rosters incrementally before the deadline.
func (s *TeamService) SaveTeam(ctx context.Context, input SaveTeamInput) (TeamOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.SaveTeam")
	defer span.End()

	input.TeamName = strings.TrimSpace(input.TeamName)
	if err := validateSeason(input.PlayerID, input.Year, input.Division); err != nil {
		return TeamOutcome{}, err
	}
	if input.TeamName == "" {
		return TeamOutcome{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	names := cleanRiderNames(input.RiderNames)

	// One writer per (player, year, division); concurrent saves for the
	// same team serialize here, on top of the repository transaction.
	unlock := s.lockTeam(input.PlayerID, input.Year, input.Division)
	defer unlock()

	prices, err := s.riderRepo.PricesByName(ctx, input.Year, input.Division)
	if err != nil {
		return TeamOutcome{}, fmt.Errorf("load rider prices: %w", err)
	}

	verdict := roster.Validate(names, prices, roster.RulesFor(input.Division))

	team := roster.PlayerTeam{
		PlayerID:  input.PlayerID,
		Year:      input.Year,
		Division:  input.Division,
		Name:      input.TeamName,
		IsValid:   verdict.IsValid,
		UpdatedAt: s.now().UTC(),
	}
	if err := team.ValidateBasic(); err != nil {
		return TeamOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, result, err := s.rosterRepo.Replace(ctx, team, names)
	if err != nil {
		return TeamOutcome{}, fmt.Errorf("replace roster: %w", err)
	}

	_, entries, _, err := s.rosterRepo.GetByOwner(ctx, input.PlayerID, input.Year, input.Division)
	if err != nil {
		return TeamOutcome{}, fmt.Errorf("reload roster: %w", err)
	}

	s.logger.InfoContext(ctx, "team roster replaced",
		"player_id", input.PlayerID,
		"team_id", saved.ID,
		"year", input.Year,
		"division", input.Division,
		"rider_count", len(names),
		"is_valid", verdict.IsValid,
		"rows_affected", result.RowsAffected,
	)

	return TeamOutcome{Team: saved, Entries: entries, Verdict: verdict}, nil
}

// ValidateTeam runs the roster rules without persisting anything.
func (s *TeamService) ValidateTeam(ctx context.Context, year int, division game.Division, riderNames []string) (roster.Verdict, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ValidateTeam")
	defer span.End()

	if year <= 0 {
		return roster.Verdict{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return roster.Verdict{}, fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	names := cleanRiderNames(riderNames)
	if len(names) == 0 {
		return roster.Validate(nil, nil, roster.RulesFor(division)), nil
	}

	prices, err := s.riderRepo.PricesByName(ctx, year, division)
	if err != nil {
		return roster.Verdict{}, fmt.Errorf("load rider prices: %w", err)
	}

	return roster.Validate(names, prices, roster.RulesFor(division)), nil
}

func (s *TeamService) lockTeam(playerID int64, year int, division game.Division) func() {
	key := fmt.Sprintf("%d:%d:%s", playerID, year, division)

	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func validateSeason(playerID int64, year int, division game.Division) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if year <= 0 {
		return fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if _, ok := game.AllDivisions[division]; !ok {
		return fmt.Errorf("%w: invalid division", ErrInvalidInput)
	}

	return nil
}

func cleanRiderNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cleaned = append(cleaned, name)
	}

	return cleaned
}
