package player

import (
	"context"

	"github.com/vdsgame/vds-api/internal/domain/storage"
)

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByIdentity(ctx context.Context, identity Identity) (Player, bool, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Player, error)
	Create(ctx context.Context, p Player) (Player, storage.WriteResult, error)
}

// SessionRepository stores opaque login sessions. Expiry is enforced by the
// session gate on read; there is no background sweeper.
type SessionRepository interface {
	Get(ctx context.Context, token string) (Session, bool, error)
	Save(ctx context.Context, s Session) (storage.WriteResult, error)
	Delete(ctx context.Context, token string) (storage.WriteResult, error)
}
