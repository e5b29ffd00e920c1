package models

// LeagueState is the authoritative in-memory league: teams in insertion order
// and matches in generation order.
type LeagueState struct {
	Teams   []string `json:"teams"`
	Matches []Match  `json:"matches"`
}

func NewLeagueState() *LeagueState {
	return &LeagueState{
		Teams:   []string{},
		Matches: []Match{},
	}
}

func (s *LeagueState) TeamIndex(name string) int {
	for i, t := range s.Teams {
		if t == name {
			return i
		}
	}
	return -1
}

func (s *LeagueState) HasTeam(name string) bool {
	return s.TeamIndex(name) >= 0
}

func (s *LeagueState) MatchIndex(id MatchID) int {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *LeagueState) ScoredCount() int {
	n := 0
	for _, m := range s.Matches {
		if m.Scored() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no memory with s.
func (s *LeagueState) Clone() LeagueState {
	out := LeagueState{
		Teams:   make([]string, len(s.Teams)),
		Matches: make([]Match, len(s.Matches)),
	}
	copy(out.Teams, s.Teams)
	for i, m := range s.Matches {
		out.Matches[i] = m.Clone()
	}
	return out
}
