package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/domain/storage"
	qb "github.com/vdsgame/vds-api/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

const entrySelectQuery = `
SELECT ptr.team_id,
       ptr.rider_name,
       ptr.year,
       ptr.sex,
       COALESCE(r.price, 0) AS price,
       COALESCE(r.pro_team_name, '') AS pro_team_name,
       COALESCE(pt.acronym, '') AS pro_team_acronym
FROM player_team_roster ptr
LEFT JOIN rider r
       ON r.rider_name = ptr.rider_name AND r.year = ptr.year AND r.sex = ptr.sex
LEFT JOIN pro_team pt
       ON pt.name = r.pro_team_name AND pt.year = r.year`

func (r *RosterRepository) GetByOwner(ctx context.Context, playerID int64, year int, division game.Division) (roster.PlayerTeam, []roster.Entry, bool, error) {
	const teamQuery = `
SELECT team_id, player_id, year, sex, team_name, is_valid, updated_at
FROM player_team
WHERE player_id = $1
  AND year = $2
  AND sex = $3`

	var row teamRow
	if err := r.db.GetContext(ctx, &row, teamQuery, playerID, year, string(division)); err != nil {
		if isNotFound(err) {
			return roster.PlayerTeam{}, nil, false, nil
		}
		return roster.PlayerTeam{}, nil, false, fmt.Errorf("get player team: %w", err)
	}

	entries, err := r.listEntries(ctx, row.TeamID)
	if err != nil {
		return roster.PlayerTeam{}, nil, false, err
	}

	return row.toDomain(), entries, true, nil
}

// Replace swaps the full roster inside one transaction so readers never see
// a team head pointing at a half-written rider list.
func (r *RosterRepository) Replace(ctx context.Context, team roster.PlayerTeam, riderNames []string) (roster.PlayerTeam, storage.WriteResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("begin tx for roster replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertTeamQuery = `
INSERT INTO player_team (player_id, year, sex, team_name, is_valid, updated_at)
VALUES (:player_id, :year, :sex, :team_name, :is_valid, :updated_at)
ON CONFLICT (player_id, year, sex)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    is_valid = EXCLUDED.is_valid,
    updated_at = EXCLUDED.updated_at
RETURNING team_id, updated_at`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertTeamQuery, map[string]any{
		"player_id":  team.PlayerID,
		"year":       team.Year,
		"sex":        string(team.Division),
		"team_name":  team.Name,
		"is_valid":   team.IsValid,
		"updated_at": team.UpdatedAt,
	})
	if err != nil {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("bind upsert player team query: %w", err)
	}
	upsertSQL = tx.Rebind(upsertSQL)

	var (
		teamID    int64
		updatedAt time.Time
	)
	rows, err := tx.QueryxContext(ctx, upsertSQL, upsertArgs...)
	if err != nil {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("upsert player team: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&teamID, &updatedAt); err != nil {
			return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("scan upserted player team: %w", err)
		}
	} else {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("upsert player team: no row returned")
	}
	rows.Close()

	const clearQuery = `DELETE FROM player_team_roster WHERE team_id = $1`
	if _, err := tx.ExecContext(ctx, clearQuery, teamID); err != nil {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("clear roster entries: %w", err)
	}

	affected := int64(1)
	if len(riderNames) > 0 {
		insert := qb.InsertInto("player_team_roster").
			Columns("team_id", "rider_name", "year", "sex")
		for _, name := range riderNames {
			insert = insert.Values(teamID, name, team.Year, string(team.Division))
		}
		insertSQL, insertArgs, err := insert.ToSQL()
		if err != nil {
			return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("build insert roster entries query: %w", err)
		}

		res, err := tx.ExecContext(ctx, insertSQL, insertArgs...)
		if err != nil {
			return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("insert roster entries: %w", err)
		}
		if inserted, err := res.RowsAffected(); err == nil {
			affected += inserted
		}
	}

	if err := tx.Commit(); err != nil {
		return roster.PlayerTeam{}, storage.WriteResult{}, fmt.Errorf("commit roster replace tx: %w", err)
	}

	team.ID = teamID
	team.UpdatedAt = updatedAt

	return team, storage.WriteResult{ID: teamID, RowsAffected: affected}, nil
}

func (r *RosterRepository) ListBySeason(ctx context.Context, year int, division game.Division) ([]roster.PlayerTeam, error) {
	const query = `
SELECT team_id, player_id, year, sex, team_name, is_valid, updated_at
FROM player_team
WHERE year = $1
  AND sex = $2
ORDER BY team_id`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select player teams: %w", err)
	}

	out := make([]roster.PlayerTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RosterRepository) ListEntriesBySeason(ctx context.Context, year int, division game.Division) (map[int64][]roster.Entry, error) {
	query := entrySelectQuery + `
WHERE ptr.year = $1
  AND ptr.sex = $2
ORDER BY ptr.team_id, price DESC, ptr.rider_name`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, year, string(division)); err != nil {
		return nil, fmt.Errorf("select season roster entries: %w", err)
	}

	out := make(map[int64][]roster.Entry)
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], row.toDomain())
	}

	return out, nil
}

func (r *RosterRepository) SetValidity(ctx context.Context, teamID int64, isValid bool) (storage.WriteResult, error) {
	const query = `
UPDATE player_team
SET is_valid = $1,
    updated_at = NOW()
WHERE team_id = $2`

	res, err := r.db.ExecContext(ctx, query, isValid, teamID)
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("update team validity: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("read affected rows: %w", err)
	}

	return storage.WriteResult{ID: teamID, RowsAffected: affected}, nil
}

func (r *RosterRepository) listEntries(ctx context.Context, teamID int64) ([]roster.Entry, error) {
	query := entrySelectQuery + `
WHERE ptr.team_id = $1
ORDER BY price DESC, ptr.rider_name`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("select roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
