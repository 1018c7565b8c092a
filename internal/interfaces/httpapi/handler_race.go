package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/usecase"
)

type raceDTO struct {
	RaceID   int64  `json:"race_id"`
	RaceName string `json:"race_name"`
	Year     int    `json:"year"`
	Sex      string `json:"sex"`
	Category string `json:"category"`
}

type stageFinisherDTO struct {
	StageNumber    int    `json:"stage_number"`
	StageDate      string `json:"stage_date"`
	RiderName      string `json:"rider_name"`
	FinishPosition int    `json:"finish_position"`
	PointsAwarded  int    `json:"points_awarded"`
}

type stageJerseyDTO struct {
	StageNumber   int    `json:"stage_number"`
	StageDate     string `json:"stage_date"`
	RiderName     string `json:"rider_name"`
	JerseyType    string `json:"jersey_type"`
	IsFinal       bool   `json:"is_final"`
	PointsAwarded int    `json:"points_awarded"`
}

type raceResultsDTO struct {
	Results []stageFinisherDTO `json:"results"`
	Jerseys []stageJerseyDTO   `json:"jerseys"`
}

func (h *Handler) ListRaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaces")
	defer span.End()

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	races, err := h.raceService.ListRaces(ctx, year, division)
	if err != nil {
		h.logger.WarnContext(ctx, "list races failed", "year", year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]raceDTO, 0, len(races))
	for _, item := range races {
		items = append(items, raceToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListRaceResults flattens per-stage placements and jersey holds into the
// two row lists the results page renders.
func (h *Handler) ListRaceResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRaceResults")
	defer span.End()

	raceID, err := strconv.ParseInt(PathParam(r, "raceId"), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: race id must be an integer", usecase.ErrInvalidInput))
		return
	}

	_, stages, err := h.raceService.RaceResults(ctx, raceID)
	if err != nil {
		h.logger.WarnContext(ctx, "race results failed", "race_id", raceID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := raceResultsDTO{
		Results: []stageFinisherDTO{},
		Jerseys: []stageJerseyDTO{},
	}
	for _, stage := range stages {
		date := stage.Stage.StageDate.UTC().Format("2006-01-02")
		for _, finisher := range stage.Finishers {
			out.Results = append(out.Results, stageFinisherDTO{
				StageNumber:    stage.Stage.StageNumber,
				StageDate:      date,
				RiderName:      finisher.RiderName,
				FinishPosition: finisher.FinishPosition,
				PointsAwarded:  finisher.PointsAwarded,
			})
		}
		for _, jersey := range stage.Jerseys {
			out.Jerseys = append(out.Jerseys, stageJerseyDTO{
				StageNumber:   stage.Stage.StageNumber,
				StageDate:     date,
				RiderName:     jersey.RiderName,
				JerseyType:    jersey.JerseyType,
				IsFinal:       jersey.IsFinal,
				PointsAwarded: jersey.PointsAwarded,
			})
		}
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func raceToDTO(v race.Race) raceDTO {
	return raceDTO{
		RaceID:   v.ID,
		RaceName: v.Name,
		Year:     v.Year,
		Sex:      string(v.Division),
		Category: v.Category,
	}
}
