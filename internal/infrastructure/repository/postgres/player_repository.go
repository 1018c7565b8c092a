package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/storage"
	qb "github.com/vdsgame/vds-api/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

type playerTableRow struct {
	PlayerID      int64     `db:"player_id"`
	PlayerName    string    `db:"player_name"`
	OAuthProvider string    `db:"oauth_provider"`
	OAuthID       string    `db:"oauth_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r playerTableRow) toDomain() player.Player {
	return player.Player{
		ID:   r.PlayerID,
		Name: r.PlayerName,
		Identity: player.Identity{
			Provider:  r.OAuthProvider,
			SubjectID: r.OAuthID,
		},
		CreatedAt: r.CreatedAt,
	}
}

var playerSelectColumns = []string{"player_id", "player_name", "oauth_provider", "oauth_id", "created_at"}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	const query = `
SELECT player_id, player_name, oauth_provider, oauth_id, created_at
FROM player
WHERE player_id = $1`

	var row playerTableRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIdentity(ctx context.Context, identity player.Identity) (player.Player, bool, error) {
	const query = `
SELECT player_id, player_name, oauth_provider, oauth_id, created_at
FROM player
WHERE oauth_provider = $1
  AND oauth_id = $2`

	var row playerTableRow
	if err := r.db.GetContext(ctx, &row, query, identity.Provider, identity.SubjectID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by identity: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := qb.Select(playerSelectColumns...).From("player").
		Where(qb.In("player_id", values)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, storage.WriteResult, error) {
	const query = `
INSERT INTO player (player_name, oauth_provider, oauth_id, created_at)
VALUES ($1, $2, $3, $4)
RETURNING player_id`

	var id int64
	err := r.db.QueryRowxContext(ctx, query, p.Name, p.Identity.Provider, p.Identity.SubjectID, p.CreatedAt).Scan(&id)
	if err != nil {
		// Concurrent first login for the same identity loses the insert
		// race; return the winner's row instead.
		if isUniqueViolation(err) {
			existing, found, getErr := r.GetByIdentity(ctx, p.Identity)
			if getErr == nil && found {
				return existing, storage.WriteResult{ID: existing.ID}, nil
			}
		}
		return player.Player{}, storage.WriteResult{}, fmt.Errorf("insert player: %w", err)
	}

	p.ID = id

	return p, storage.WriteResult{ID: id, RowsAffected: 1}, nil
}
