package models

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

type Leg int

const (
	FirstLeg  Leg = 1
	SecondLeg Leg = 2
)

// MatchID identifies a fixture by its leg and the unordered pair of team names.
// Positional indices are never part of the identity, so removing an unrelated
// team or regenerating the schedule keeps the identifier of a fixture stable.
type MatchID string

var idEncoding = base64.RawURLEncoding

func NewMatchID(leg Leg, teamA, teamB string) MatchID {
	if teamB < teamA {
		teamA, teamB = teamB, teamA
	}
	return MatchID(fmt.Sprintf("L%d.%s.%s", leg,
		idEncoding.EncodeToString([]byte(teamA)),
		idEncoding.EncodeToString([]byte(teamB)),
	))
}

// Parse splits the identifier back into its leg and sorted team pair.
func (id MatchID) Parse() (Leg, string, string, error) {
	parts := strings.Split(string(id), ".")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "L") {
		return 0, "", "", fmt.Errorf("malformed match id %q", string(id))
	}
	n, err := strconv.Atoi(strings.TrimPrefix(parts[0], "L"))
	if err != nil || (Leg(n) != FirstLeg && Leg(n) != SecondLeg) {
		return 0, "", "", fmt.Errorf("malformed match id %q: bad leg", string(id))
	}
	a, err := idEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, "", "", fmt.Errorf("malformed match id %q: %w", string(id), err)
	}
	b, err := idEncoding.DecodeString(parts[2])
	if err != nil {
		return 0, "", "", fmt.Errorf("malformed match id %q: %w", string(id), err)
	}
	return Leg(n), string(a), string(b), nil
}

func (id MatchID) String() string {
	return string(id)
}

// Match is a single fixture. HomeGoals and AwayGoals are either both nil
// (pending) or both set (scored).
type Match struct {
	ID        MatchID `json:"id"`
	Leg       Leg     `json:"leg"`
	Home      string  `json:"home"`
	Away      string  `json:"away"`
	HomeGoals *int    `json:"home_goals"`
	AwayGoals *int    `json:"away_goals"`
}

func NewMatch(leg Leg, home, away string) Match {
	return Match{
		ID:   NewMatchID(leg, home, away),
		Leg:  leg,
		Home: home,
		Away: away,
	}
}

func (m Match) Scored() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

func (m Match) Involves(team string) bool {
	return m.Home == team || m.Away == team
}

// Score returns the goals of a scored match. ok is false for pending matches.
func (m Match) Score() (home, away int, ok bool) {
	if !m.Scored() {
		return 0, 0, false
	}
	return *m.HomeGoals, *m.AwayGoals, true
}

// Clone copies the goal pointers so the copy never aliases the original.
func (m Match) Clone() Match {
	c := m
	if m.HomeGoals != nil {
		hg := *m.HomeGoals
		c.HomeGoals = &hg
	}
	if m.AwayGoals != nil {
		ag := *m.AwayGoals
		c.AwayGoals = &ag
	}
	return c
}

func (m Match) ScoreLine() string {
	home, away, ok := m.Score()
	if !ok {
		return fmt.Sprintf("%s - %s", m.Home, m.Away)
	}
	return fmt.Sprintf("%s %d - %d %s", m.Home, home, away, m.Away)
}
