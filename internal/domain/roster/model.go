package roster

import (
	"fmt"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// PlayerTeam is one player's roster head for a season edition. A player owns
// at most one team per (year, division).
type PlayerTeam struct {
	ID        int64
	PlayerID  int64
	Year      int
	Division  game.Division
	Name      string
	IsValid   bool
	UpdatedAt time.Time
}

func (t PlayerTeam) ValidateBasic() error {
	if t.PlayerID <= 0 {
		return fmt.Errorf("team player id is required")
	}
	if t.Year <= 0 {
		return fmt.Errorf("team year is required")
	}
	if _, ok := game.AllDivisions[t.Division]; !ok {
		return fmt.Errorf("invalid team division: %s", t.Division)
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Entry is one rider slot on a team roster, referenced by rider name.
type Entry struct {
	TeamID         int64
	RiderName      string
	Year           int
	Division       game.Division
	Price          int
	ProTeamName    string
	ProTeamAcronym string
}
