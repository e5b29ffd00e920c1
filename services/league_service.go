package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Dosada05/league-tracker/brackets"
	"github.com/Dosada05/league-tracker/league"
	"github.com/Dosada05/league-tracker/models"
	"github.com/Dosada05/league-tracker/storage"
)

const (
	EventTeamAdded       = "team_added"
	EventTeamRemoved     = "team_removed"
	EventLeagueReset     = "league_reset"
	EventScheduleCreated = "schedule_generated"
	EventResultRecorded  = "result_recorded"
	EventResultCleared   = "result_cleared"
	EventLeagueLoaded    = "league_loaded"
)

// Notifier receives a message after every successful mutation.
type Notifier interface {
	Publish(messageType string, payload any)
}

// LeagueUpdate is the payload pushed to live clients.
type LeagueUpdate struct {
	Event     string                `json:"event"`
	State     models.LeagueState    `json:"state"`
	Standings []models.StandingsRow `json:"standings"`
}

type LeagueService interface {
	Load(ctx context.Context) models.LeagueState
	State() models.LeagueState
	Snapshot() LeagueUpdate
	ProposeAddTeam(name string) (league.AddTeamProposal, error)
	AddTeam(ctx context.Context, name string, confirmDiscard bool) (models.LeagueState, error)
	RemoveTeam(ctx context.Context, name string) (models.LeagueState, error)
	ResetAll(ctx context.Context) models.LeagueState
	GenerateSchedule(ctx context.Context) (models.LeagueState, error)
	RecordResult(ctx context.Context, id models.MatchID, homeGoals, awayGoals int) (models.Match, error)
	ClearResult(ctx context.Context, id models.MatchID) (models.Match, error)
	ComputeStandings() []models.StandingsRow
	Flush(ctx context.Context) error
}

// leagueService owns the league state. Every operation runs under one mutex,
// so the core sees a single actor even when transports call concurrently.
type leagueService struct {
	mu        sync.Mutex
	state     *models.LeagueState
	store     storage.SnapshotStore
	generator brackets.ScheduleGenerator
	notifier  Notifier
	logger    *slog.Logger
}

func NewLeagueService(
	store storage.SnapshotStore,
	generator brackets.ScheduleGenerator,
	notifier Notifier,
	logger *slog.Logger,
) LeagueService {
	if generator == nil {
		generator = brackets.NewRoundRobinGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &leagueService{
		state:     models.NewLeagueState(),
		store:     store,
		generator: generator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Load hydrates the league from the store. A missing, unreadable or corrupted
// snapshot leaves an empty league; startup never fails because of it.
func (s *leagueService) Load(ctx context.Context) models.LeagueState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.NewLeagueState()
	if s.store == nil {
		return s.state.Clone()
	}

	data, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		s.logger.InfoContext(ctx, "no saved league, starting empty")
	case err != nil:
		s.logger.WarnContext(ctx, "failed to read saved league, starting empty", slog.Any("error", err))
	default:
		state, decodeErr := storage.DecodeOrEmpty(data)
		if decodeErr != nil {
			s.logger.WarnContext(ctx, "saved league is corrupted, starting empty", slog.Any("error", decodeErr))
		}
		s.state = state
	}

	s.logger.InfoContext(ctx, "league loaded",
		slog.Int("teams", len(s.state.Teams)),
		slog.Int("matches", len(s.state.Matches)),
		slog.Int("scored", s.state.ScoredCount()),
	)
	s.publishLocked(EventLeagueLoaded)
	return s.state.Clone()
}

func (s *leagueService) State() models.LeagueState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *leagueService) Snapshot() LeagueUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked("")
}

func (s *leagueService) ProposeAddTeam(name string) (league.AddTeamProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return league.ProposeAddTeam(s.state, name)
}

func (s *leagueService) AddTeam(ctx context.Context, name string, confirmDiscard bool) (models.LeagueState, error) {
	var added league.AddTeamProposal
	state, err := s.mutate(ctx, EventTeamAdded, func(st *models.LeagueState) error {
		var err error
		added, err = league.AddTeam(st, name, confirmDiscard)
		return err
	})
	if err != nil {
		return models.LeagueState{}, err
	}
	s.logger.InfoContext(ctx, "team added",
		slog.String("team", added.Name),
		slog.Bool("schedule_discarded", added.DiscardsSchedule),
	)
	return state, nil
}

func (s *leagueService) RemoveTeam(ctx context.Context, name string) (models.LeagueState, error) {
	state, err := s.mutate(ctx, EventTeamRemoved, func(st *models.LeagueState) error {
		return league.RemoveTeam(st, name)
	})
	if err != nil {
		return models.LeagueState{}, err
	}
	s.logger.InfoContext(ctx, "team removed", slog.String("team", name), slog.Int("matches_left", len(state.Matches)))
	return state, nil
}

func (s *leagueService) ResetAll(ctx context.Context) models.LeagueState {
	state, _ := s.mutate(ctx, EventLeagueReset, func(st *models.LeagueState) error {
		league.ResetAll(st)
		return nil
	})
	s.logger.InfoContext(ctx, "league reset")
	return state
}

func (s *leagueService) GenerateSchedule(ctx context.Context) (models.LeagueState, error) {
	state, err := s.mutate(ctx, EventScheduleCreated, func(st *models.LeagueState) error {
		matches, err := s.generator.Generate(st.Teams)
		if err != nil {
			return err
		}
		league.ReplaceSchedule(st, matches)
		return nil
	})
	if err != nil {
		return models.LeagueState{}, err
	}
	s.logger.InfoContext(ctx, "schedule generated",
		slog.String("generator", s.generator.GetName()),
		slog.Int("matches", len(state.Matches)),
	)
	return state, nil
}

func (s *leagueService) RecordResult(ctx context.Context, id models.MatchID, homeGoals, awayGoals int) (models.Match, error) {
	var updated models.Match
	_, err := s.mutate(ctx, EventResultRecorded, func(st *models.LeagueState) error {
		var err error
		updated, err = league.RecordResultByID(st, id, homeGoals, awayGoals)
		return err
	})
	if err != nil {
		return models.Match{}, err
	}
	s.logger.InfoContext(ctx, "result recorded", slog.String("match", updated.ScoreLine()))
	return updated.Clone(), nil
}

func (s *leagueService) ClearResult(ctx context.Context, id models.MatchID) (models.Match, error) {
	var updated models.Match
	_, err := s.mutate(ctx, EventResultCleared, func(st *models.LeagueState) error {
		var err error
		updated, err = league.ClearResultByID(st, id)
		return err
	})
	if err != nil {
		return models.Match{}, err
	}
	s.logger.InfoContext(ctx, "result cleared", slog.String("match", updated.ScoreLine()))
	return updated.Clone(), nil
}

func (s *leagueService) ComputeStandings() []models.StandingsRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return league.ComputeStandings(s.state.Teams, s.state.Matches)
}

// Flush writes the current state once more; called on shutdown.
func (s *leagueService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// mutate applies fn to a copy of the state and swaps it in only on success, so
// a failed operation never leaves a partial change behind. Successful changes
// are written through to the store and published.
func (s *leagueService) mutate(ctx context.Context, event string, fn func(*models.LeagueState) error) (models.LeagueState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		s.logger.DebugContext(ctx, "league operation rejected", slog.String("event", event), slog.Any("error", err))
		return models.LeagueState{}, err
	}
	s.state = &next

	if err := s.persistLocked(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist league", slog.String("event", event), slog.Any("error", err))
	}
	s.publishLocked(event)
	return s.state.Clone(), nil
}

func (s *leagueService) persistLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	data, err := storage.Encode(s.state)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, data)
}

func (s *leagueService) publishLocked(event string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(brackets.MessageLeagueUpdated, s.updateLocked(event))
}

func (s *leagueService) updateLocked(event string) LeagueUpdate {
	return LeagueUpdate{
		Event:     event,
		State:     s.state.Clone(),
		Standings: league.ComputeStandings(s.state.Teams, s.state.Matches),
	}
}
