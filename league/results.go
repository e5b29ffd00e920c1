package league

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/league-tracker/models"
)

// MaxGoals bounds a single side's score so standings totals cannot overflow.
const MaxGoals = 999

func checkGoals(goals int) error {
	if goals < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidScore, goals)
	}
	if goals > MaxGoals {
		return fmt.Errorf("%w: %d is above %d", ErrInvalidScore, goals, MaxGoals)
	}
	return nil
}

// RecordResult moves a pending match to scored. Both sides are set together;
// on error the match is returned unchanged.
func RecordResult(m models.Match, homeGoals, awayGoals int) (models.Match, error) {
	if err := checkGoals(homeGoals); err != nil {
		return m, err
	}
	if err := checkGoals(awayGoals); err != nil {
		return m, err
	}
	if m.Scored() {
		return m, fmt.Errorf("%w: %s", ErrMatchAlreadyScored, m.ScoreLine())
	}
	hg, ag := homeGoals, awayGoals
	m.HomeGoals = &hg
	m.AwayGoals = &ag
	return m, nil
}

// ClearResult returns a match to pending. It is the only way to correct a score.
func ClearResult(m models.Match) models.Match {
	m.HomeGoals = nil
	m.AwayGoals = nil
	return m
}

// ParseGoals converts textual goal input into a goal count. Anything that is
// not a plain base-10 integer between 0 and MaxGoals is rejected.
func ParseGoals(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidScore)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidScore, raw)
	}
	if err := checkGoals(n); err != nil {
		return 0, err
	}
	return n, nil
}

// RecordResultByID and ClearResultByID address a match inside the state by its
// stable identifier.
func RecordResultByID(state *models.LeagueState, id models.MatchID, homeGoals, awayGoals int) (models.Match, error) {
	idx := state.MatchIndex(id)
	if idx < 0 {
		return models.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	updated, err := RecordResult(state.Matches[idx], homeGoals, awayGoals)
	if err != nil {
		return models.Match{}, err
	}
	state.Matches[idx] = updated
	return updated, nil
}

func ClearResultByID(state *models.LeagueState, id models.MatchID) (models.Match, error) {
	idx := state.MatchIndex(id)
	if idx < 0 {
		return models.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	state.Matches[idx] = ClearResult(state.Matches[idx])
	return state.Matches[idx], nil
}
