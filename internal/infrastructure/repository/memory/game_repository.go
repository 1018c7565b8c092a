package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items []game.Game
}

func NewGameRepository(items []game.Game) *GameRepository {
	return &GameRepository{items: append([]game.Game(nil), items...)}
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]game.Game(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Division < out[j].Division
	})

	return out, nil
}
