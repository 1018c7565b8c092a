package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) ListBySeason(ctx context.Context, year int, division game.Division) ([]race.Race, error) {
	const query = `
SELECT race_id, race_name, year, sex, COALESCE(category, '') AS category
FROM race
WHERE year = $1
  AND sex = $2
ORDER BY race_id`

	var rows []raceRow
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID int64) (race.Race, bool, error) {
	const query = `
SELECT race_id, race_name, year, sex, COALESCE(category, '') AS category
FROM race
WHERE race_id = $1`

	var row raceRow
	if err := r.db.GetContext(ctx, &row, query, raceID); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RaceRepository) ListStageResults(ctx context.Context, raceID int64) ([]race.StageResult, error) {
	const stagesQuery = `
SELECT stage_id, race_id, stage_number, stage_date
FROM stage
WHERE race_id = $1
ORDER BY stage_number`

	var stageRows []stageRow
	if err := r.db.SelectContext(ctx, &stageRows, stagesQuery, raceID); err != nil {
		return nil, fmt.Errorf("select stages: %w", err)
	}
	if len(stageRows) == 0 {
		return []race.StageResult{}, nil
	}

	const finishersQuery = `
SELECT f.rider_name, f.year, f.sex, f.stage_id, f.finish_position, f.points_awarded
FROM finisher f
JOIN stage s ON s.stage_id = f.stage_id
WHERE s.race_id = $1
ORDER BY f.stage_id, f.finish_position`

	var finisherRows []finisherRow
	if err := r.db.SelectContext(ctx, &finisherRows, finishersQuery, raceID); err != nil {
		return nil, fmt.Errorf("select stage finishers: %w", err)
	}

	const jerseysQuery = `
SELECT j.rider_name, j.year, j.sex, j.stage_id, j.jersey_type, j.is_final, j.points_awarded
FROM jersey_holder j
JOIN stage s ON s.stage_id = j.stage_id
WHERE s.race_id = $1
ORDER BY j.stage_id, j.jersey_type`

	var jerseyRows []jerseyRow
	if err := r.db.SelectContext(ctx, &jerseyRows, jerseysQuery, raceID); err != nil {
		return nil, fmt.Errorf("select stage jerseys: %w", err)
	}

	finishersByStage := make(map[int64][]race.Finisher, len(stageRows))
	for _, row := range finisherRows {
		finishersByStage[row.StageID] = append(finishersByStage[row.StageID], row.toDomain())
	}
	jerseysByStage := make(map[int64][]race.JerseyHolder, len(stageRows))
	for _, row := range jerseyRows {
		jerseysByStage[row.StageID] = append(jerseysByStage[row.StageID], row.toDomain())
	}

	out := make([]race.StageResult, 0, len(stageRows))
	for _, row := range stageRows {
		stage := row.toDomain()
		out = append(out, race.StageResult{
			Stage:     stage,
			Finishers: finishersByStage[stage.ID],
			Jerseys:   jerseysByStage[stage.ID],
		})
	}

	return out, nil
}

func (r *RaceRepository) ListSeasonFinishers(ctx context.Context, year int, division game.Division) ([]race.Finisher, error) {
	const query = `
SELECT rider_name, year, sex, stage_id, finish_position, points_awarded
FROM finisher
WHERE year = $1
  AND sex = $2`

	var rows []finisherRow
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select season finishers: %w", err)
	}

	out := make([]race.Finisher, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RaceRepository) ListSeasonJerseys(ctx context.Context, year int, division game.Division) ([]race.JerseyHolder, error) {
	const query = `
SELECT rider_name, year, sex, stage_id, jersey_type, is_final, points_awarded
FROM jersey_holder
WHERE year = $1
  AND sex = $2`

	var rows []jerseyRow
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select season jerseys: %w", err)
	}

	out := make([]race.JerseyHolder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
