package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/league-tracker/league"
	"github.com/Dosada05/league-tracker/models"
)

type snapshotRecord struct {
	Teams   []string        `json:"teams"`
	Matches []snapshotMatch `json:"matches"`
}

type snapshotMatch struct {
	ID        string `json:"id,omitempty"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals *int   `json:"homeGoals"`
	AwayGoals *int   `json:"awayGoals"`
}

// Encode renders the persistence record:
//
//	{"teams": [...], "matches": [{"home", "away", "homeGoals", "awayGoals"}]}
//
// Match ids are written for readability only; Decode recomputes them.
func Encode(state *models.LeagueState) ([]byte, error) {
	rec := snapshotRecord{
		Teams:   make([]string, len(state.Teams)),
		Matches: make([]snapshotMatch, 0, len(state.Matches)),
	}
	copy(rec.Teams, state.Teams)
	for _, m := range state.Matches {
		rec.Matches = append(rec.Matches, snapshotMatch{
			ID:        m.ID.String(),
			Home:      m.Home,
			Away:      m.Away,
			HomeGoals: m.HomeGoals,
			AwayGoals: m.AwayGoals,
		})
	}
	return json.Marshal(rec)
}

// Decode parses a persisted record and checks every league invariant. Missing
// fields default to empty lists. The leg of each match is derived from team
// order: a generated first-leg fixture always has its home team listed first.
func Decode(data []byte) (*models.LeagueState, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding league snapshot: %w", err)
	}

	state := models.NewLeagueState()
	if rec.Teams != nil {
		state.Teams = rec.Teams
	}
	for _, sm := range rec.Matches {
		leg := models.FirstLeg
		if state.TeamIndex(sm.Home) > state.TeamIndex(sm.Away) {
			leg = models.SecondLeg
		}
		m := models.NewMatch(leg, sm.Home, sm.Away)
		m.HomeGoals = sm.HomeGoals
		m.AwayGoals = sm.AwayGoals
		state.Matches = append(state.Matches, m)
	}

	if err := league.Validate(state); err != nil {
		return nil, fmt.Errorf("invalid league snapshot: %w", err)
	}
	return state, nil
}

// DecodeOrEmpty never fails: absent or corrupted data yields an empty league.
// The returned error reports why the fallback was taken and is informational.
func DecodeOrEmpty(data []byte) (*models.LeagueState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.NewLeagueState(), nil
	}
	state, err := Decode(data)
	if err != nil {
		return models.NewLeagueState(), err
	}
	return state, nil
}
