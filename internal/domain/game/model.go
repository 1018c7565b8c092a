package game

import (
	"fmt"
	"time"
)

// Division represents the men's or women's edition of a season game.
type Division string

const (
	DivisionMen   Division = "m"
	DivisionWomen Division = "f"
)

var AllDivisions = map[Division]struct{}{
	DivisionMen:   {},
	DivisionWomen: {},
}

func ParseDivision(raw string) (Division, error) {
	d := Division(raw)
	if _, ok := AllDivisions[d]; !ok {
		return "", fmt.Errorf("invalid division: %q", raw)
	}

	return d, nil
}

// Game is one playable season edition with its roster deadline.
type Game struct {
	Division Division
	Year     int
	Deadline time.Time
}

func (g Game) Validate() error {
	if _, ok := AllDivisions[g.Division]; !ok {
		return fmt.Errorf("invalid game division: %s", g.Division)
	}
	if g.Year <= 0 {
		return fmt.Errorf("game year is required")
	}

	return nil
}
