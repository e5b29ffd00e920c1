package league

import (
	"sort"

	"github.com/Dosada05/league-tracker/models"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ComputeStandings folds the scored matches into a ranked table with one row
// per team. Pending matches contribute nothing. Rows are ordered by points,
// then goal difference, then goals scored; teams tied on all three keep their
// registration order. Neither argument is modified.
func ComputeStandings(teams []string, matches []models.Match) []models.StandingsRow {
	rows := make([]models.StandingsRow, len(teams))
	byTeam := make(map[string]*models.StandingsRow, len(teams))
	for i, t := range teams {
		rows[i].Team = t
		byTeam[t] = &rows[i]
	}

	for _, m := range matches {
		hg, ag, ok := m.Score()
		if !ok {
			continue
		}
		home, away := byTeam[m.Home], byTeam[m.Away]
		if home == nil || away == nil {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += hg
		home.GoalsAgainst += ag
		away.GoalsFor += ag
		away.GoalsAgainst += hg

		switch {
		case hg > ag:
			home.Wins++
			home.Points += pointsForWin
			away.Losses++
		case hg < ag:
			away.Wins++
			away.Points += pointsForWin
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points += pointsForDraw
			away.Points += pointsForDraw
		}
	}

	for i := range rows {
		rows[i].Diff = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Diff != b.Diff {
			return a.Diff > b.Diff
		}
		return a.GoalsFor > b.GoalsFor
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}
