package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/scoring"
	"github.com/vdsgame/vds-api/internal/usecase"
)

type riderDTO struct {
	RiderName   string `json:"rider_name"`
	Year        int    `json:"year"`
	Sex         string `json:"sex"`
	Price       int    `json:"price"`
	ProTeamName string `json:"pro_team_name"`
	TeamAcronym string `json:"team_acronym"`
	Nationality string `json:"nationality"`
}

type riderScoreDTO struct {
	RiderName   string `json:"rider_name"`
	Price       int    `json:"price"`
	ProTeamName string `json:"pro_team_name"`
	TeamAcronym string `json:"team_acronym"`
	TotalScore  int    `json:"total_score"`
}

func (h *Handler) ListRiders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRiders")
	defer span.End()

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter, err := riderFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	riders, err := h.riderService.ListRiders(ctx, year, division, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list riders failed", "year", year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]riderDTO, 0, len(riders))
	for _, item := range riders {
		items = append(items, riderToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RiderScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RiderScores")
	defer span.End()

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.riderService.RiderScores(ctx, year, division)
	if err != nil {
		h.logger.WarnContext(ctx, "rider scores failed", "year", year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]riderScoreDTO, 0, len(scores))
	for _, item := range scores {
		items = append(items, riderScoreToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func riderFilterFromQuery(r *http.Request) (rider.Filter, error) {
	query := r.URL.Query()
	filter := rider.Filter{
		Nationality: strings.TrimSpace(query.Get("nationality")),
		ProTeamName: strings.TrimSpace(query.Get("team")),
	}

	if raw := strings.TrimSpace(query.Get("minPrice")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return rider.Filter{}, fmt.Errorf("%w: minPrice must be an integer", usecase.ErrInvalidInput)
		}
		filter.MinPrice = value
	}
	if raw := strings.TrimSpace(query.Get("maxPrice")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return rider.Filter{}, fmt.Errorf("%w: maxPrice must be an integer", usecase.ErrInvalidInput)
		}
		filter.MaxPrice = value
	}

	return filter, nil
}

func riderToDTO(v rider.Rider) riderDTO {
	return riderDTO{
		RiderName:   v.Name,
		Year:        v.Year,
		Sex:         string(v.Division),
		Price:       v.Price,
		ProTeamName: v.ProTeamName,
		TeamAcronym: v.ProTeamAcronym,
		Nationality: v.Nationality,
	}
}

func riderScoreToDTO(v scoring.RiderScore) riderScoreDTO {
	return riderScoreDTO{
		RiderName:   v.RiderName,
		Price:       v.Price,
		ProTeamName: v.ProTeamName,
		TeamAcronym: v.ProTeamAcronym,
		TotalScore:  v.Points,
	}
}
