package rider

import (
	"fmt"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// Rider is a selectable professional cyclist in one season edition.
// Riders are keyed by (name, year, division); there is no synthetic id.
type Rider struct {
	Name           string
	Year           int
	Division       game.Division
	Price          int
	ProTeamName    string
	ProTeamAcronym string
	Nationality    string
}

func (r Rider) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rider name is required")
	}
	if r.Year <= 0 {
		return fmt.Errorf("rider year is required")
	}
	if _, ok := game.AllDivisions[r.Division]; !ok {
		return fmt.Errorf("invalid rider division: %s", r.Division)
	}
	if r.Price < 0 {
		return fmt.Errorf("rider price must not be negative")
	}

	return nil
}

// Filter narrows a season rider listing. Zero values mean "no constraint".
type Filter struct {
	Nationality string
	ProTeamName string
	MinPrice    int
	MaxPrice    int
}

// ProTeam is a professional squad riders belong to during a season.
type ProTeam struct {
	Name    string
	Acronym string
}
