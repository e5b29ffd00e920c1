package league

import (
	"testing"

	"github.com/Dosada05/league-tracker/models"
)

func scored(leg models.Leg, home string, hg, ag int, away string) models.Match {
	m := models.NewMatch(leg, home, away)
	m.HomeGoals, m.AwayGoals = intPtr(hg), intPtr(ag)
	return m
}

func TestStandingsThreeTeamLeague(t *testing.T) {
	teams := []string{"A", "B", "C"}
	matches := []models.Match{
		scored(models.FirstLeg, "A", 3, 1, "B"),
		scored(models.FirstLeg, "A", 1, 1, "C"),
		scored(models.FirstLeg, "B", 2, 2, "C"),
		scored(models.SecondLeg, "B", 0, 4, "A"),
		scored(models.SecondLeg, "C", 0, 1, "A"),
		scored(models.SecondLeg, "C", 1, 1, "B"),
	}

	want := []models.StandingsRow{
		{Position: 1, Team: "A", Played: 4, Wins: 3, Draws: 1, Losses: 0, GoalsFor: 9, GoalsAgainst: 2, Diff: 7, Points: 10},
		{Position: 2, Team: "C", Played: 4, Wins: 0, Draws: 3, Losses: 1, GoalsFor: 4, GoalsAgainst: 5, Diff: -1, Points: 3},
		{Position: 3, Team: "B", Played: 4, Wins: 0, Draws: 2, Losses: 2, GoalsFor: 4, GoalsAgainst: 10, Diff: -6, Points: 2},
	}

	got := ComputeStandings(teams, matches)
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v\nwant      %+v", i, got[i], want[i])
		}
	}
}

func TestStandingsTieKeepsRegistrationOrder(t *testing.T) {
	matches := []models.Match{
		scored(models.FirstLeg, "A", 2, 2, "B"),
		scored(models.SecondLeg, "B", 1, 1, "A"),
	}

	got := ComputeStandings([]string{"A", "B"}, matches)
	if got[0].Team != "A" || got[1].Team != "B" {
		t.Fatalf("order = %s, %s", got[0].Team, got[1].Team)
	}
	for _, r := range got {
		if r.Points != 2 || r.Diff != 0 || r.GoalsFor != 3 {
			t.Errorf("%s = %+v", r.Team, r)
		}
	}

	got = ComputeStandings([]string{"B", "A"}, matches)
	if got[0].Team != "B" {
		t.Fatalf("order = %s, %s", got[0].Team, got[1].Team)
	}
}

func TestStandingsTieBreakers(t *testing.T) {
	// A, B and C finish on 3 points. B and C share a +1 difference, C scored more.
	teams := []string{"A", "B", "C", "D"}
	matches := []models.Match{
		scored(models.FirstLeg, "A", 1, 0, "D"),
		scored(models.FirstLeg, "B", 2, 0, "D"),
		scored(models.FirstLeg, "C", 4, 2, "D"),
		scored(models.SecondLeg, "D", 1, 0, "A"),
		scored(models.SecondLeg, "D", 2, 1, "B"),
		scored(models.SecondLeg, "D", 3, 2, "C"),
	}

	got := ComputeStandings(teams, matches)
	order := []string{got[0].Team, got[1].Team, got[2].Team, got[3].Team}
	want := []string{"D", "C", "B", "A"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStandingsPendingMatchesDoNotCount(t *testing.T) {
	matches := []models.Match{
		models.NewMatch(models.FirstLeg, "A", "B"),
		scored(models.SecondLeg, "B", 1, 0, "A"),
	}

	got := ComputeStandings([]string{"A", "B"}, matches)
	if got[0].Team != "B" || got[0].Played != 1 || got[1].Played != 1 {
		t.Fatalf("standings = %+v", got)
	}
}

func TestStandingsEmptyLeague(t *testing.T) {
	got := ComputeStandings([]string{"A", "B"}, nil)
	for i, r := range got {
		if r.Played != 0 || r.Points != 0 || r.Position != i+1 {
			t.Errorf("row = %+v", r)
		}
	}
	if len(ComputeStandings(nil, nil)) != 0 {
		t.Error("expected no rows")
	}
}

func TestStandingsTotals(t *testing.T) {
	teams := []string{"A", "B", "C"}
	matches := []models.Match{
		scored(models.FirstLeg, "A", 3, 1, "B"),
		scored(models.FirstLeg, "A", 0, 0, "C"),
		scored(models.FirstLeg, "B", 2, 5, "C"),
		models.NewMatch(models.SecondLeg, "B", "A"),
		scored(models.SecondLeg, "C", 2, 2, "A"),
	}
	decisive, drawn, goals := 2, 2, 3+1+0+0+2+5+2+2

	var wins, losses, draws, gf, ga, played int
	for _, r := range ComputeStandings(teams, matches) {
		wins += r.Wins
		losses += r.Losses
		draws += r.Draws
		gf += r.GoalsFor
		ga += r.GoalsAgainst
		played += r.Played
		if r.Played != r.Wins+r.Draws+r.Losses {
			t.Errorf("%s: played %d != W+D+L", r.Team, r.Played)
		}
		if r.Points != 3*r.Wins+r.Draws {
			t.Errorf("%s: points %d", r.Team, r.Points)
		}
	}

	if wins != decisive || losses != decisive {
		t.Errorf("wins=%d losses=%d, want %d", wins, losses, decisive)
	}
	if draws != 2*drawn {
		t.Errorf("draws=%d, want %d", draws, 2*drawn)
	}
	if gf != goals || ga != goals {
		t.Errorf("gf=%d ga=%d, want %d", gf, ga, goals)
	}
	if played != 2*(decisive+drawn) {
		t.Errorf("played=%d", played)
	}
}

func TestStandingsDoesNotModifyInput(t *testing.T) {
	teams := []string{"B", "A"}
	matches := []models.Match{scored(models.FirstLeg, "B", 0, 1, "A")}

	ComputeStandings(teams, matches)
	if teams[0] != "B" || matches[0].ScoreLine() != "B 0 - 1 A" {
		t.Fatal("input modified")
	}
}
