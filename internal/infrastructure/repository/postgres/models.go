package postgres

import (
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
)

type gameRow struct {
	Sex      string    `db:"sex"`
	Year     int       `db:"year"`
	Deadline time.Time `db:"deadline"`
}

func (r gameRow) toDomain() game.Game {
	return game.Game{
		Division: game.Division(r.Sex),
		Year:     r.Year,
		Deadline: r.Deadline,
	}
}

type riderRow struct {
	RiderName      string `db:"rider_name"`
	Year           int    `db:"year"`
	Sex            string `db:"sex"`
	Price          int    `db:"price"`
	ProTeamName    string `db:"pro_team_name"`
	ProTeamAcronym string `db:"pro_team_acronym"`
	Nationality    string `db:"nationality"`
}

func (r riderRow) toDomain() rider.Rider {
	return rider.Rider{
		Name:           r.RiderName,
		Year:           r.Year,
		Division:       game.Division(r.Sex),
		Price:          r.Price,
		ProTeamName:    r.ProTeamName,
		ProTeamAcronym: r.ProTeamAcronym,
		Nationality:    r.Nationality,
	}
}

type raceRow struct {
	RaceID   int64  `db:"race_id"`
	RaceName string `db:"race_name"`
	Year     int    `db:"year"`
	Sex      string `db:"sex"`
	Category string `db:"category"`
}

func (r raceRow) toDomain() race.Race {
	return race.Race{
		ID:       r.RaceID,
		Name:     r.RaceName,
		Year:     r.Year,
		Division: game.Division(r.Sex),
		Category: r.Category,
	}
}

type stageRow struct {
	StageID     int64     `db:"stage_id"`
	RaceID      int64     `db:"race_id"`
	StageNumber int       `db:"stage_number"`
	StageDate   time.Time `db:"stage_date"`
}

func (r stageRow) toDomain() race.Stage {
	return race.Stage{
		ID:          r.StageID,
		RaceID:      r.RaceID,
		StageNumber: r.StageNumber,
		StageDate:   r.StageDate,
	}
}

type finisherRow struct {
	RiderName      string `db:"rider_name"`
	Year           int    `db:"year"`
	Sex            string `db:"sex"`
	StageID        int64  `db:"stage_id"`
	FinishPosition int    `db:"finish_position"`
	PointsAwarded  int    `db:"points_awarded"`
}

func (r finisherRow) toDomain() race.Finisher {
	return race.Finisher{
		RiderName:      r.RiderName,
		Year:           r.Year,
		Division:       game.Division(r.Sex),
		StageID:        r.StageID,
		FinishPosition: r.FinishPosition,
		PointsAwarded:  r.PointsAwarded,
	}
}

type jerseyRow struct {
	RiderName     string `db:"rider_name"`
	Year          int    `db:"year"`
	Sex           string `db:"sex"`
	StageID       int64  `db:"stage_id"`
	JerseyType    string `db:"jersey_type"`
	IsFinal       bool   `db:"is_final"`
	PointsAwarded int    `db:"points_awarded"`
}

func (r jerseyRow) toDomain() race.JerseyHolder {
	return race.JerseyHolder{
		RiderName:     r.RiderName,
		Year:          r.Year,
		Division:      game.Division(r.Sex),
		StageID:       r.StageID,
		JerseyType:    r.JerseyType,
		IsFinal:       r.IsFinal,
		PointsAwarded: r.PointsAwarded,
	}
}

type teamRow struct {
	TeamID    int64     `db:"team_id"`
	PlayerID  int64     `db:"player_id"`
	Year      int       `db:"year"`
	Sex       string    `db:"sex"`
	TeamName  string    `db:"team_name"`
	IsValid   bool      `db:"is_valid"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r teamRow) toDomain() roster.PlayerTeam {
	return roster.PlayerTeam{
		ID:        r.TeamID,
		PlayerID:  r.PlayerID,
		Year:      r.Year,
		Division:  game.Division(r.Sex),
		Name:      r.TeamName,
		IsValid:   r.IsValid,
		UpdatedAt: r.UpdatedAt,
	}
}

type entryRow struct {
	TeamID         int64  `db:"team_id"`
	RiderName      string `db:"rider_name"`
	Year           int    `db:"year"`
	Sex            string `db:"sex"`
	Price          int    `db:"price"`
	ProTeamName    string `db:"pro_team_name"`
	ProTeamAcronym string `db:"pro_team_acronym"`
}

func (r entryRow) toDomain() roster.Entry {
	return roster.Entry{
		TeamID:         r.TeamID,
		RiderName:      r.RiderName,
		Year:           r.Year,
		Division:       game.Division(r.Sex),
		Price:          r.Price,
		ProTeamName:    r.ProTeamName,
		ProTeamAcronym: r.ProTeamAcronym,
	}
}
