package league

import (
	"fmt"
	"strings"

	"github.com/Dosada05/league-tracker/models"
)

// Validate checks every league invariant. It is used when state comes from
// outside the core, e.g. a persisted snapshot.
func Validate(state *models.LeagueState) error {
	seen := make(map[string]struct{}, len(state.Teams))
	for _, t := range state.Teams {
		if strings.TrimSpace(t) == "" || strings.TrimSpace(t) != t {
			return fmt.Errorf("%w: %q", ErrEmptyName, t)
		}
		if _, ok := seen[t]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTeam, t)
		}
		seen[t] = struct{}{}
	}

	ids := make(map[models.MatchID]struct{}, len(state.Matches))
	for i, m := range state.Matches {
		if _, ok := seen[m.Home]; !ok {
			return fmt.Errorf("match %d: home %w: %q", i, ErrTeamNotFound, m.Home)
		}
		if _, ok := seen[m.Away]; !ok {
			return fmt.Errorf("match %d: away %w: %q", i, ErrTeamNotFound, m.Away)
		}
		if m.Home == m.Away {
			return fmt.Errorf("match %d: %q cannot play itself", i, m.Home)
		}
		if (m.HomeGoals == nil) != (m.AwayGoals == nil) {
			return fmt.Errorf("match %d: %w: only one side has a score", i, ErrInvalidScore)
		}
		if m.Scored() {
			if err := checkGoals(*m.HomeGoals); err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			if err := checkGoals(*m.AwayGoals); err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
		}
		if _, ok := ids[m.ID]; ok {
			return fmt.Errorf("match %d: duplicate fixture %s", i, m.ScoreLine())
		}
		ids[m.ID] = struct{}{}
	}
	return nil
}
