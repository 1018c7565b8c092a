package race

import (
	"context"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// Repository describes race persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, year int, division game.Division) ([]Race, error)
	GetByID(ctx context.Context, raceID int64) (Race, bool, error)
	ListStageResults(ctx context.Context, raceID int64) ([]StageResult, error)
	ListSeasonFinishers(ctx context.Context, year int, division game.Division) ([]Finisher, error)
	ListSeasonJerseys(ctx context.Context, year int, division game.Division) ([]JerseyHolder, error)
}
