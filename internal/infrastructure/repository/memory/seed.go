package memory

import (
	"time"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/race"
	"github.com/vdsgame/vds-api/internal/domain/rider"
)

const SeedYear = 2026

func SeedGames() []game.Game {
	return []game.Game{
		{Division: game.DivisionMen, Year: SeedYear, Deadline: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Division: game.DivisionWomen, Year: SeedYear, Deadline: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedRiders() []rider.Rider {
	men := []rider.Rider{
		{Name: "Tadej Strmec", Price: 32, ProTeamName: "Alpine Devo", ProTeamAcronym: "ALP", Nationality: "SI"},
		{Name: "Jonas Vester", Price: 26, ProTeamName: "Nordkap Cycling", ProTeamAcronym: "NKC", Nationality: "DK"},
		{Name: "Remco Vanheule", Price: 24, ProTeamName: "Flandria Pro", ProTeamAcronym: "FLA", Nationality: "BE"},
		{Name: "Mathieu Delcroix", Price: 22, ProTeamName: "Flandria Pro", ProTeamAcronym: "FLA", Nationality: "NL"},
		{Name: "Wout Termont", Price: 20, ProTeamName: "Nordkap Cycling", ProTeamAcronym: "NKC", Nationality: "BE"},
		{Name: "Primoz Koren", Price: 18, ProTeamName: "Alpine Devo", ProTeamAcronym: "ALP", Nationality: "SI"},
		{Name: "Mads Holgaard", Price: 14, ProTeamName: "Nordkap Cycling", ProTeamAcronym: "NKC", Nationality: "DK"},
		{Name: "Julian Fabre", Price: 12, ProTeamName: "Massif Central", ProTeamAcronym: "MSC", Nationality: "FR"},
		{Name: "Marc Soler Puig", Price: 10, ProTeamName: "Massif Central", ProTeamAcronym: "MSC", Nationality: "ES"},
		{Name: "Ben Aldershot", Price: 8, ProTeamName: "Granite Racing", ProTeamAcronym: "GRN", Nationality: "GB"},
		{Name: "Casper Drenthe", Price: 6, ProTeamName: "Granite Racing", ProTeamAcronym: "GRN", Nationality: "NL"},
		{Name: "Luca Bettini", Price: 4, ProTeamName: "Massif Central", ProTeamAcronym: "MSC", Nationality: "IT"},
		{Name: "Oier Zabala", Price: 2, ProTeamName: "Granite Racing", ProTeamAcronym: "GRN", Nationality: "ES"},
	}
	women := []rider.Rider{
		{Name: "Demi Van Oost", Price: 28, ProTeamName: "Flandria Pro Women", ProTeamAcronym: "FPW", Nationality: "NL"},
		{Name: "Lotte Claes", Price: 24, ProTeamName: "Flandria Pro Women", ProTeamAcronym: "FPW", Nationality: "BE"},
		{Name: "Katarzyna Wilk", Price: 20, ProTeamName: "Alpine Devo Women", ProTeamAcronym: "ADW", Nationality: "PL"},
		{Name: "Elisa Moreni", Price: 16, ProTeamName: "Alpine Devo Women", ProTeamAcronym: "ADW", Nationality: "IT"},
		{Name: "Ane Bergstrom", Price: 12, ProTeamName: "Nordkap Women", ProTeamAcronym: "NKW", Nationality: "NO"},
		{Name: "Clara Dufour", Price: 8, ProTeamName: "Nordkap Women", ProTeamAcronym: "NKW", Nationality: "FR"},
		{Name: "Maja Lindqvist", Price: 4, ProTeamName: "Nordkap Women", ProTeamAcronym: "NKW", Nationality: "SE"},
		{Name: "Ines Carvalho", Price: 2, ProTeamName: "Alpine Devo Women", ProTeamAcronym: "ADW", Nationality: "PT"},
	}

	out := make([]rider.Rider, 0, len(men)+len(women))
	for _, r := range men {
		r.Year = SeedYear
		r.Division = game.DivisionMen
		out = append(out, r)
	}
	for _, r := range women {
		r.Year = SeedYear
		r.Division = game.DivisionWomen
		out = append(out, r)
	}

	return out
}

func SeedRaces() []race.Race {
	return []race.Race{
		{ID: 1, Name: "Omloop van de Kempen", Year: SeedYear, Division: game.DivisionMen, Category: "classic"},
		{ID: 2, Name: "Ronde van de Kempen Vrouwen", Year: SeedYear, Division: game.DivisionWomen, Category: "classic"},
		{ID: 3, Name: "Tour du Massif", Year: SeedYear, Division: game.DivisionMen, Category: "stage-race"},
	}
}

func SeedStages() []race.Stage {
	return []race.Stage{
		{ID: 10, RaceID: 1, StageNumber: 1, StageDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)},
		{ID: 11, RaceID: 2, StageNumber: 1, StageDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
		{ID: 12, RaceID: 3, StageNumber: 1, StageDate: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)},
		{ID: 13, RaceID: 3, StageNumber: 2, StageDate: time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedFinishers() []race.Finisher {
	return []race.Finisher{
		{RiderName: "Remco Vanheule", Year: SeedYear, Division: game.DivisionMen, StageID: 10, FinishPosition: 1, PointsAwarded: 50},
		{RiderName: "Wout Termont", Year: SeedYear, Division: game.DivisionMen, StageID: 10, FinishPosition: 2, PointsAwarded: 35},
		{RiderName: "Mathieu Delcroix", Year: SeedYear, Division: game.DivisionMen, StageID: 10, FinishPosition: 3, PointsAwarded: 25},
		{RiderName: "Demi Van Oost", Year: SeedYear, Division: game.DivisionWomen, StageID: 11, FinishPosition: 1, PointsAwarded: 50},
		{RiderName: "Lotte Claes", Year: SeedYear, Division: game.DivisionWomen, StageID: 11, FinishPosition: 2, PointsAwarded: 35},
		{RiderName: "Tadej Strmec", Year: SeedYear, Division: game.DivisionMen, StageID: 12, FinishPosition: 1, PointsAwarded: 30},
		{RiderName: "Jonas Vester", Year: SeedYear, Division: game.DivisionMen, StageID: 12, FinishPosition: 2, PointsAwarded: 22},
		{RiderName: "Jonas Vester", Year: SeedYear, Division: game.DivisionMen, StageID: 13, FinishPosition: 1, PointsAwarded: 30},
		{RiderName: "Tadej Strmec", Year: SeedYear, Division: game.DivisionMen, StageID: 13, FinishPosition: 2, PointsAwarded: 22},
	}
}

func SeedJerseys() []race.JerseyHolder {
	return []race.JerseyHolder{
		{RiderName: "Tadej Strmec", Year: SeedYear, Division: game.DivisionMen, StageID: 12, JerseyType: "leader", IsFinal: false, PointsAwarded: 5},
		{RiderName: "Jonas Vester", Year: SeedYear, Division: game.DivisionMen, StageID: 13, JerseyType: "leader", IsFinal: true, PointsAwarded: 25},
		{RiderName: "Demi Van Oost", Year: SeedYear, Division: game.DivisionWomen, StageID: 11, JerseyType: "points", IsFinal: true, PointsAwarded: 15},
	}
}
