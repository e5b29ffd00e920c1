package league

import (
	"fmt"
	"strings"

	"github.com/Dosada05/league-tracker/models"
)

// AddTeamProposal is the first phase of adding a team. It tells the caller
// whether committing will throw away the existing schedule, so the decision
// can be put to the user before anything changes.
type AddTeamProposal struct {
	Name             string `json:"name"`
	DiscardsSchedule bool   `json:"discards_schedule"`
	MatchesDiscarded int    `json:"matches_discarded"`
}

func normalizeTeamName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyName
	}
	return trimmed, nil
}

func ProposeAddTeam(state *models.LeagueState, name string) (AddTeamProposal, error) {
	trimmed, err := normalizeTeamName(name)
	if err != nil {
		return AddTeamProposal{}, err
	}
	if state.HasTeam(trimmed) {
		return AddTeamProposal{}, fmt.Errorf("%w: %q", ErrDuplicateTeam, trimmed)
	}
	return AddTeamProposal{
		Name:             trimmed,
		DiscardsSchedule: len(state.Matches) > 0,
		MatchesDiscarded: len(state.Matches),
	}, nil
}

// CommitAddTeam applies a proposal. The proposal is re-checked against the
// current state, so a stale proposal cannot bypass validation or the discard
// confirmation.
func CommitAddTeam(state *models.LeagueState, proposal AddTeamProposal, confirmDiscard bool) error {
	current, err := ProposeAddTeam(state, proposal.Name)
	if err != nil {
		return err
	}
	if current.DiscardsSchedule && !confirmDiscard {
		return fmt.Errorf("%w: %d matches would be removed", ErrPendingScheduleDiscardDeclined, current.MatchesDiscarded)
	}
	state.Teams = append(state.Teams, current.Name)
	if current.DiscardsSchedule {
		state.Matches = []models.Match{}
	}
	return nil
}

func AddTeam(state *models.LeagueState, name string, confirmDiscard bool) (AddTeamProposal, error) {
	proposal, err := ProposeAddTeam(state, name)
	if err != nil {
		return AddTeamProposal{}, err
	}
	if err := CommitAddTeam(state, proposal, confirmDiscard); err != nil {
		return AddTeamProposal{}, err
	}
	return proposal, nil
}

// RemoveTeam deletes the team and every match it plays in. Remaining matches
// keep their order and contents.
func RemoveTeam(state *models.LeagueState, name string) error {
	idx := state.TeamIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrTeamNotFound, name)
	}

	teams := make([]string, 0, len(state.Teams)-1)
	teams = append(teams, state.Teams[:idx]...)
	teams = append(teams, state.Teams[idx+1:]...)

	matches := make([]models.Match, 0, len(state.Matches))
	for _, m := range state.Matches {
		if !m.Involves(name) {
			matches = append(matches, m)
		}
	}

	state.Teams = teams
	state.Matches = matches
	return nil
}

func ResetAll(state *models.LeagueState) {
	state.Teams = []string{}
	state.Matches = []models.Match{}
}

// ReplaceSchedule installs a freshly generated schedule. Prior results are
// dropped; there is no merge.
func ReplaceSchedule(state *models.LeagueState, matches []models.Match) {
	out := make([]models.Match, len(matches))
	for i, m := range matches {
		out[i] = m.Clone()
	}
	state.Matches = out
}
