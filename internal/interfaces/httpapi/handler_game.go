package httpapi

import (
	"net/http"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
)

type gameDTO struct {
	Sex      string `json:"sex"`
	Year     int    `json:"year"`
	Deadline string `json:"deadline"`
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	games, err := h.gameService.ListGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		Sex:      string(g.Division),
		Year:     g.Year,
		Deadline: g.Deadline.UTC().Format(time.RFC3339),
	}
}
