package race

import (
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// Race is a stage race or one-day race inside a season edition.
type Race struct {
	ID       int64
	Name     string
	Year     int
	Division game.Division
	Category string
}

// Stage is one scored day of a race. One-day races carry a single stage.
type Stage struct {
	ID          int64
	RaceID      int64
	StageNumber int
	StageDate   time.Time
}

// Finisher is a scored placement of a rider on one stage.
type Finisher struct {
	RiderName      string
	Year           int
	Division       game.Division
	StageID        int64
	FinishPosition int
	PointsAwarded  int
}

// JerseyHolder is a classification jersey held after a stage. IsFinal marks
// the end-of-race standing; interim holds score points as well.
type JerseyHolder struct {
	RiderName     string
	Year          int
	Division      game.Division
	StageID       int64
	JerseyType    string
	IsFinal       bool
	PointsAwarded int
}

// StageResult bundles one stage with its placements and jerseys for display.
type StageResult struct {
	Stage     Stage
	Finishers []Finisher
	Jerseys   []JerseyHolder
}
