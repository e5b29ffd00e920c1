package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Dosada05/league-tracker/league"
	"github.com/Dosada05/league-tracker/models"
	"github.com/Dosada05/league-tracker/services"
	"github.com/go-chi/chi/v5"
)

type LeagueHandler struct {
	errorResponder
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService, logger *slog.Logger) *LeagueHandler {
	return &LeagueHandler{
		errorResponder: errorResponder{logger: logger},
		leagueService:  ls,
	}
}

type addTeamInput struct {
	Name           string `json:"name"`
	ConfirmDiscard bool   `json:"confirm_discard"`
}

// Goals are accepted as JSON numbers or numeric strings, so form input can be
// forwarded without client-side parsing.
type recordResultInput struct {
	HomeGoals json.RawMessage `json:"home_goals"`
	AwayGoals json.RawMessage `json:"away_goals"`
}

func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, jsonResponse{"league": h.leagueService.State()})
}

func (h *LeagueHandler) ResetLeague(w http.ResponseWriter, r *http.Request) {
	state := h.leagueService.ResetAll(r.Context())
	h.respond(w, r, http.StatusOK, jsonResponse{"league": state})
}

// ProposeTeam is the first phase of adding a team: nothing changes, the
// response says whether committing would discard the schedule.
func (h *LeagueHandler) ProposeTeam(w http.ResponseWriter, r *http.Request) {
	var input addTeamInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	proposal, err := h.leagueService.ProposeAddTeam(input.Name)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"proposal": proposal})
}

func (h *LeagueHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var input addTeamInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	state, err := h.leagueService.AddTeam(r.Context(), input.Name, input.ConfirmDiscard)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, jsonResponse{"league": state})
}

func (h *LeagueHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "teamName")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	state, err := h.leagueService.RemoveTeam(r.Context(), name)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"league": state})
}

func (h *LeagueHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	state, err := h.leagueService.GenerateSchedule(r.Context())
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, jsonResponse{"league": state})
}

func (h *LeagueHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	var input recordResultInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	homeGoals, err := parseGoalsField(input.HomeGoals)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, fmt.Errorf("home_goals: %w", err))
		return
	}
	awayGoals, err := parseGoalsField(input.AwayGoals)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, fmt.Errorf("away_goals: %w", err))
		return
	}

	match, err := h.leagueService.RecordResult(r.Context(), id, homeGoals, awayGoals)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *LeagueHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	id, err := matchIDParam(r)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	match, err := h.leagueService.ClearResult(r.Context(), id)
	if err != nil {
		h.mapLeagueErrorToHTTP(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *LeagueHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, jsonResponse{"standings": h.leagueService.ComputeStandings()})
}

func (h *LeagueHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, jsonResponse{"status": "ok"})
}

func (h *LeagueHandler) respond(w http.ResponseWriter, r *http.Request, status int, body jsonResponse) {
	if err := writeJSON(w, status, body, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// pathParam returns a decoded URL parameter. chi matches against RawPath when
// the request carried escapes the default encoding would not produce (e.g.
// %2F), and only then is the parameter still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s in URL: %w", key, err)
	}
	return decoded, nil
}

// matchIDParam rejects identifiers that could never name a match, so they get
// a 400 rather than a 404.
func matchIDParam(r *http.Request) (models.MatchID, error) {
	id := models.MatchID(chi.URLParam(r, "matchID"))
	if _, _, _, err := id.Parse(); err != nil {
		return "", err
	}
	return id, nil
}

func parseGoalsField(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: value is required", league.ErrInvalidScore)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: %s", league.ErrInvalidScore, raw)
		}
		return league.ParseGoals(s)
	}
	return league.ParseGoals(string(raw))
}
