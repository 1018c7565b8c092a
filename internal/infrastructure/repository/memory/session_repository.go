package memory

import (
	"context"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/player"
	"github.com/vdsgame/vds-api/internal/domain/storage"
)

type SessionRepository struct {
	mu    sync.RWMutex
	items map[string]player.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{items: make(map[string]player.Session)}
}

func (r *SessionRepository) Get(_ context.Context, token string) (player.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[token]
	return s, ok, nil
}

func (r *SessionRepository) Save(_ context.Context, s player.Session) (storage.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[s.Token] = s
	return storage.WriteResult{RowsAffected: 1}, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) (storage.WriteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[token]; !ok {
		return storage.WriteResult{}, nil
	}
	delete(r.items, token)

	return storage.WriteResult{RowsAffected: 1}, nil
}
