package scoring

// RiderScore is a computed season total for one rider. Totals are derived on
// read from finisher placements and jersey holds; nothing here is persisted.
type RiderScore struct {
	RiderName      string
	Price          int
	ProTeamName    string
	ProTeamAcronym string
	Points         int
}

// TeamScore is a computed season total for one valid player team.
type TeamScore struct {
	TeamID     int64
	TeamName   string
	PlayerName string
	Points     int
}
