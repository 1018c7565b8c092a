package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/domain/storage"
)

// RosterRepository keeps teams and their entries in process. Entries are
// enriched with price and pro-team data from the rider pool on read, the
// same join the SQL repository does.
type RosterRepository struct {
	mu     sync.RWMutex
	teams  map[int64]roster.PlayerTeam
	riders map[string]rider.Rider
	names  map[int64][]string
	nextID int64
}

func NewRosterRepository(riders []rider.Rider) *RosterRepository {
	pool := make(map[string]rider.Rider, len(riders))
	for _, r := range riders {
		pool[riderKey(r.Name, r.Year, r.Division)] = r
	}

	return &RosterRepository{
		teams:  make(map[int64]roster.PlayerTeam),
		riders: pool,
		names:  make(map[int64][]string),
		nextID: 1,
	}
}

func (r *RosterRepository) GetByOwner(_ context.Context, playerID int64, year int, division game.Division) (roster.PlayerTeam, []roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.teams {
		if team.PlayerID == playerID && team.Year == year && team.Division == division {
			return team, r.entriesFor(team), true, nil
		}
	}

	return roster.PlayerTeam{}, nil, false, nil
}

func (r *RosterRepository) Replace(_ context.Context, team roster.PlayerTeam, riderNames []string) (roster.PlayerTeam, storage.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := int64(0)
	for id, t := range r.teams {
		if t.PlayerID == team.PlayerID && t.Year == team.Year && t.Division == team.Division {
			existing = id
			break
		}
	}

	if existing == 0 {
		existing = r.nextID
		r.nextID++
	}
	team.ID = existing
	r.teams[existing] = team
	r.names[existing] = append([]string(nil), riderNames...)

	return team, storage.WriteResult{ID: existing, RowsAffected: int64(1 + len(riderNames))}, nil
}

func (r *RosterRepository) ListBySeason(_ context.Context, year int, division game.Division) ([]roster.PlayerTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.PlayerTeam, 0, len(r.teams))
	for _, team := range r.teams {
		if team.Year == year && team.Division == division {
			out = append(out, team)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *RosterRepository) ListEntriesBySeason(_ context.Context, year int, division game.Division) (map[int64][]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64][]roster.Entry)
	for _, team := range r.teams {
		if team.Year == year && team.Division == division {
			out[team.ID] = r.entriesFor(team)
		}
	}

	return out, nil
}

func (r *RosterRepository) SetValidity(_ context.Context, teamID int64, isValid bool) (storage.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.teams[teamID]
	if !ok {
		return storage.WriteResult{}, nil
	}
	team.IsValid = isValid
	r.teams[teamID] = team

	return storage.WriteResult{ID: teamID, RowsAffected: 1}, nil
}

func (r *RosterRepository) entriesFor(team roster.PlayerTeam) []roster.Entry {
	names := r.names[team.ID]
	entries := make([]roster.Entry, 0, len(names))
	for _, name := range names {
		entry := roster.Entry{
			TeamID:    team.ID,
			RiderName: name,
			Year:      team.Year,
			Division:  team.Division,
		}
		if item, ok := r.riders[riderKey(name, team.Year, team.Division)]; ok {
			entry.Price = item.Price
			entry.ProTeamName = item.ProTeamName
			entry.ProTeamAcronym = item.ProTeamAcronym
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Price != entries[j].Price {
			return entries[i].Price > entries[j].Price
		}
		return entries[i].RiderName < entries[j].RiderName
	})

	return entries
}

func riderKey(name string, year int, division game.Division) string {
	return name + "::" + string(division) + "::" + strconv.Itoa(year)
}
