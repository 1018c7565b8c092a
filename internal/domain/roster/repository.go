package roster

import (
	"context"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/storage"
)

// Repository describes roster persistence needs from use cases.
//
// Replace swaps the full roster in one transaction: upsert the team head,
// drop existing entries, insert the new ones, and persist the validity flag
// already computed by the caller.
type Repository interface {
	GetByOwner(ctx context.Context, playerID int64, year int, division game.Division) (PlayerTeam, []Entry, bool, error)
	Replace(ctx context.Context, team PlayerTeam, riderNames []string) (PlayerTeam, storage.WriteResult, error)
	ListBySeason(ctx context.Context, year int, division game.Division) ([]PlayerTeam, error)
	ListEntriesBySeason(ctx context.Context, year int, division game.Division) (map[int64][]Entry, error)
	SetValidity(ctx context.Context, teamID int64, isValid bool) (storage.WriteResult, error)
}
