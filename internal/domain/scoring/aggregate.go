package scoring

import (
	"sort"

	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/rider"
	"github.com/vdsgame/vds-api/internal/domain/roster"
)

// RiderTotals folds finisher placements and jersey holds into per-rider
// season totals. Jersey points count whether the hold is interim or final;
// the final flag only marks the end-of-race standing for display.
func RiderTotals(finishers []race.Finisher, jerseys []race.JerseyHolder) map[string]int {
	totals := make(map[string]int)
	for _, f := range finishers {
		totals[f.RiderName] += f.PointsAwarded
	}
	for _, j := range jerseys {
		totals[j.RiderName] += j.PointsAwarded
	}

	return totals
}

// ScoreRiders projects season totals over the full rider pool. Riders with
// no results score zero rather than disappearing. Ordered by points
// descending, name ascending on ties.
func ScoreRiders(riders []rider.Rider, finishers []race.Finisher, jerseys []race.JerseyHolder) []RiderScore {
	totals := RiderTotals(finishers, jerseys)

	scores := make([]RiderScore, 0, len(riders))
	for _, r := range riders {
		scores = append(scores, RiderScore{
			RiderName:      r.Name,
			Price:          r.Price,
			ProTeamName:    r.ProTeamName,
			ProTeamAcronym: r.ProTeamAcronym,
			Points:         totals[r.Name],
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].RiderName < scores[j].RiderName
	})

	return scores
}

// ScoreTeams projects season totals over player teams. Only teams whose
// stored validity flag is set participate; invalid teams are skipped
// entirely, not listed with zero. Ordered by points descending, team name
// ascending on ties.
func ScoreTeams(teams []roster.PlayerTeam, entriesByTeam map[int64][]roster.Entry, playerNames map[int64]string, riderTotals map[string]int) []TeamScore {
	scores := make([]TeamScore, 0, len(teams))
	for _, t := range teams {
		if !t.IsValid {
			continue
		}

		total := 0
		for _, e := range entriesByTeam[t.ID] {
			total += riderTotals[e.RiderName]
		}

		scores = append(scores, TeamScore{
			TeamID:     t.ID,
			TeamName:   t.Name,
			PlayerName: playerNames[t.PlayerID],
			Points:     total,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].TeamName < scores[j].TeamName
	})

	return scores
}
