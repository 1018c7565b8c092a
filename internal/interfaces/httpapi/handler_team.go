package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/vdsgame/vds-api/internal/domain/roster"
	"github.com/vdsgame/vds-api/internal/domain/scoring"
	"github.com/vdsgame/vds-api/internal/usecase"
)

type teamDTO struct {
	TeamID    int64            `json:"team_id"`
	PlayerID  int64            `json:"player_id"`
	Year      int              `json:"year"`
	Sex       string           `json:"sex"`
	TeamName  string           `json:"team_name"`
	IsValid   bool             `json:"is_valid"`
	UpdatedAt string           `json:"updated_at"`
	Roster    []rosterEntryDTO `json:"roster"`
}

type rosterEntryDTO struct {
	RiderName   string `json:"rider_name"`
	Year        int    `json:"year"`
	Sex         string `json:"sex"`
	Price       int    `json:"price"`
	ProTeamName string `json:"pro_team_name"`
	TeamAcronym string `json:"team_acronym"`
}

type verdictDTO struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type teamScoreDTO struct {
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	TotalScore int    `json:"total_score"`
}

type saveTeamRequest struct {
	TeamName string   `json:"team_name" validate:"required,max=100"`
	Riders   []string `json:"riders"`
}

type saveTeamResponse struct {
	teamDTO
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type validateTeamRequest struct {
	Riders []string `json:"riders"`
}

func (h *Handler) TeamRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamRankings")
	defer span.End()

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.TeamRankings(ctx, year, division)
	if err != nil {
		h.logger.WarnContext(ctx, "team rankings failed", "year", year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(scores))
	for _, item := range scores {
		items = append(items, teamScoreToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// GetMyTeam returns the caller's team for a season edition, or a JSON null
// when no team has been saved yet.
func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, entries, found, err := h.teamService.GetTeam(ctx, principal.ID, year, division)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "player_id", principal.ID, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team, entries))
}

func (h *Handler) SaveMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveTeamRequest
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

	outcome, err := h.teamService.SaveTeam(ctx, usecase.SaveTeamInput{
		PlayerID:   principal.ID,
		Year:       year,
		Division:   division,
		TeamName:   req.TeamName,
		RiderNames: req.Riders,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "player_id", principal.ID, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveTeamResponse{
		teamDTO:  teamToDTO(outcome.Team, outcome.Entries),
		Errors:   emptyIfNil(outcome.Verdict.Errors),
		Warnings: emptyIfNil(outcome.Verdict.Warnings),
	})
}

// ValidateTeam runs the roster rules without touching stored state.
func (h *Handler) ValidateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateTeam")
	defer span.End()

	year, division, err := seasonParams(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req validateTeamRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	verdict, err := h.teamService.ValidateTeam(ctx, year, division, req.Riders)
	if err != nil {
		h.logger.WarnContext(ctx, "validate team failed", "year", year, "division", division, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, verdictToDTO(verdict))
}

func teamToDTO(team roster.PlayerTeam, entries []roster.Entry) teamDTO {
	items := make([]rosterEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, rosterEntryDTO{
			RiderName:   entry.RiderName,
			Year:        entry.Year,
			Sex:         string(entry.Division),
			Price:       entry.Price,
			ProTeamName: entry.ProTeamName,
			TeamAcronym: entry.ProTeamAcronym,
		})
	}

	return teamDTO{
		TeamID:    team.ID,
		PlayerID:  team.PlayerID,
		Year:      team.Year,
		Sex:       string(team.Division),
		TeamName:  team.Name,
		IsValid:   team.IsValid,
		UpdatedAt: team.UpdatedAt.UTC().Format(time.RFC3339),
		Roster:    items,
	}
}

func verdictToDTO(v roster.Verdict) verdictDTO {
	return verdictDTO{
		IsValid:  v.IsValid,
		Errors:   emptyIfNil(v.Errors),
		Warnings: emptyIfNil(v.Warnings),
	}
}

func teamScoreToDTO(v scoring.TeamScore) teamScoreDTO {
	return teamScoreDTO{
		TeamID:     v.TeamID,
		TeamName:   v.TeamName,
		PlayerName: v.PlayerName,
		TotalScore: v.Points,
	}
}

// emptyIfNil keeps error and warning lists serialized as [] rather than null.
func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}

	return items
}
