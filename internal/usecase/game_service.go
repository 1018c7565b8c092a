package usecase

import (
	"context"
	"fmt"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

type GameService struct {
	gameRepo game.Repository
}

func NewGameService(gameRepo game.Repository) *GameService {
	return &GameService{gameRepo: gameRepo}
}

func (s *GameService) ListGames(ctx context.Context) ([]game.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return games, nil
}
