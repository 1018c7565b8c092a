package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/usecase"
)

type revalidateJobRequest struct {
	Year     int    `json:"year" validate:"required,gt=0"`
	Division string `json:"division" validate:"required"`
}

// RunRevalidateJob recomputes stored validity flags for a whole season
// edition. Reached only through the internal job token gate.
func (h *Handler) RunRevalidateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRevalidateJob")
	defer span.End()

	var req revalidateJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	division, err := game.ParseDivision(req.Division)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.revalidateService.RevalidateSeason(ctx, req.Year, division)
	if err != nil {
		h.logger.ErrorContext(ctx, "revalidate job failed", "year", req.Year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
