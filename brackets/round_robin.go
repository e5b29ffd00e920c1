package brackets

import (
	"fmt"

	"github.com/Dosada05/league-tracker/league"
	"github.com/Dosada05/league-tracker/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() ScheduleGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "DoubleRoundRobin"
}

// Generate creates a home-and-away round robin. Every pair (i, j) with i < j
// in team order meets once in the first leg with teams[i] at home, and again
// in the second leg with the venues swapped. All first-leg fixtures come
// before any second-leg fixture.
func (g *RoundRobinGenerator) Generate(teams []string) ([]models.Match, error) {
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", league.ErrInsufficientTeams, n)
	}

	pairs := n * (n - 1) / 2
	matches := make([]models.Match, 0, 2*pairs)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matches = append(matches, models.NewMatch(models.FirstLeg, teams[i], teams[j]))
		}
	}
	for k := 0; k < pairs; k++ {
		first := matches[k]
		matches = append(matches, models.NewMatch(models.SecondLeg, first.Away, first.Home))
	}

	return matches, nil
}
