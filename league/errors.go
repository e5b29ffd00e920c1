package league

import "errors"

// Validation failures returned by the core operations. None of them is fatal;
// a failed operation leaves the league state untouched.
var (
	ErrEmptyName                      = errors.New("team name is required")
	ErrDuplicateTeam                  = errors.New("team is already registered")
	ErrTeamNotFound                   = errors.New("team not found")
	ErrInsufficientTeams              = errors.New("at least two teams are required to generate a schedule")
	ErrInvalidScore                   = errors.New("goals must be whole numbers from 0 to 999")
	ErrPendingScheduleDiscardDeclined = errors.New("adding a team discards the current schedule and the discard was declined")

	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyScored = errors.New("match already has a result, clear it before entering a new one")
)
