package memory

import (
	"context"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/storage"
)

type PlayerRepository struct {
	mu         sync.RWMutex
	byID       map[int64]player.Player
	byIdentity map[player.Identity]int64
	nextID     int64
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		byID:       make(map[int64]player.Player),
		byIdentity: make(map[player.Identity]int64),
		nextID:     1,
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIdentity(_ context.Context, identity player.Identity) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byIdentity[identity]
	if !ok {
		return player.Player{}, false, nil
	}

	return r.byID[id], true, nil
}

func (r *PlayerRepository) ListByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, storage.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byIdentity[p.Identity]; ok {
		return r.byID[id], storage.WriteResult{ID: id}, nil
	}

	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	r.byIdentity[p.Identity] = p.ID

	return p, storage.WriteResult{ID: p.ID, RowsAffected: 1}, nil
}
