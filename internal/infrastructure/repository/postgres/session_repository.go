package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/storage"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionRow struct {
	Token     string    `db:"token"`
	PlayerID  int64     `db:"player_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *SessionRepository) Get(ctx context.Context, token string) (player.Session, bool, error) {
	const query = `
SELECT token, player_id, created_at
FROM session
WHERE token = $1`

	var row sessionRow
	if err := r.db.GetContext(ctx, &row, query, token); err != nil {
		if isNotFound(err) {
			return player.Session{}, false, nil
		}
		return player.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return player.Session{
		Token:     row.Token,
		PlayerID:  row.PlayerID,
		CreatedAt: row.CreatedAt,
	}, true, nil
}

func (r *SessionRepository) Save(ctx context.Context, s player.Session) (storage.WriteResult, error) {
	const query = `
INSERT INTO session (token, player_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, s.Token, s.PlayerID, s.CreatedAt)
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("insert session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("read affected rows: %w", err)
	}

	return storage.WriteResult{RowsAffected: affected}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) (storage.WriteResult, error) {
	const query = `DELETE FROM session WHERE token = $1`

	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("delete session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storage.WriteResult{}, fmt.Errorf("read affected rows: %w", err)
	}

	return storage.WriteResult{ID: 0, RowsAffected: affected}, nil
}
