package rider

import (
	"context"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

// Repository describes rider persistence needs from use cases.
type Repository interface {
	ListBySeason(ctx context.Context, year int, division game.Division, filter Filter) ([]Rider, error)
	PricesByName(ctx context.Context, year int, division game.Division) (map[string]int, error)
}
