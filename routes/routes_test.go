package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/league-tracker/brackets"
	"github.com/Dosada05/league-tracker/handlers"
	"github.com/Dosada05/league-tracker/models"
	"github.com/Dosada05/league-tracker/services"
	"github.com/Dosada05/league-tracker/storage"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type testAPI struct {
	router http.Handler
	hub    *brackets.Hub
	store  *storage.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemoryStore()
	hub := brackets.NewHub(logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	svc := services.NewLeagueService(store, nil, hub, logger)
	svc.Load(ctx)

	router := chi.NewRouter()
	SetupRoutes(router,
		handlers.NewLeagueHandler(svc, logger),
		handlers.NewWebSocketHandler(hub, svc, []string{"*"}, logger),
		[]string{"*"},
	)
	return &testAPI{router: router, hub: hub, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: response is not JSON: %q", method, path, rec.Body.String())
	}
	return rec.Code, out
}

func decodeLeague(t *testing.T, body map[string]json.RawMessage) models.LeagueState {
	t.Helper()
	var st models.LeagueState
	if err := json.Unmarshal(body["league"], &st); err != nil {
		t.Fatalf("decode league: %v", err)
	}
	return st
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	code, body := api.do(t, http.MethodGet, "/health", "")
	if code != http.StatusOK || string(body["status"]) != `"ok"` {
		t.Fatalf("health = %d %v", code, body)
	}
}

func TestLeagueLifecycle(t *testing.T) {
	api := newTestAPI(t)

	for _, name := range []string{"A", "B", "C"} {
		code, body := api.do(t, http.MethodPost, "/api/teams", `{"name":"`+name+`"}`)
		if code != http.StatusCreated {
			t.Fatalf("add %s = %d %s", name, code, body["error"])
		}
	}

	code, body := api.do(t, http.MethodPost, "/api/schedule", "")
	if code != http.StatusCreated {
		t.Fatalf("schedule = %d %s", code, body["error"])
	}
	league := decodeLeague(t, body)
	if len(league.Matches) != 6 {
		t.Fatalf("matches = %d", len(league.Matches))
	}

	id := url.PathEscape(league.Matches[0].ID.String())
	code, body = api.do(t, http.MethodPut, "/api/matches/"+id+"/result", `{"home_goals":3,"away_goals":"1"}`)
	if code != http.StatusOK {
		t.Fatalf("record = %d %s", code, body["error"])
	}
	var m models.Match
	json.Unmarshal(body["match"], &m)
	if m.ScoreLine() != "A 3 - 1 B" {
		t.Fatalf("match = %s", m.ScoreLine())
	}

	code, _ = api.do(t, http.MethodPut, "/api/matches/"+id+"/result", `{"home_goals":0,"away_goals":0}`)
	if code != http.StatusConflict {
		t.Fatalf("re-record = %d, want 409", code)
	}

	code, body = api.do(t, http.MethodGet, "/api/standings", "")
	if code != http.StatusOK {
		t.Fatalf("standings = %d", code)
	}
	var rows []models.StandingsRow
	json.Unmarshal(body["standings"], &rows)
	if len(rows) != 3 || rows[0].Team != "A" || rows[0].Points != 3 {
		t.Fatalf("standings = %+v", rows)
	}

	code, _ = api.do(t, http.MethodDelete, "/api/matches/"+id+"/result", "")
	if code != http.StatusOK {
		t.Fatalf("clear = %d", code)
	}

	code, body = api.do(t, http.MethodDelete, "/api/teams/C", "")
	if code != http.StatusOK {
		t.Fatalf("remove = %d", code)
	}
	if got := decodeLeague(t, body); len(got.Teams) != 2 || len(got.Matches) != 2 {
		t.Fatalf("after remove = %+v", got)
	}

	code, body = api.do(t, http.MethodDelete, "/api/league", "")
	if code != http.StatusOK || len(decodeLeague(t, body).Teams) != 0 {
		t.Fatalf("reset = %d", code)
	}
}

func TestAddTeamTwoPhase(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/teams", `{"name":"A"}`)
	api.do(t, http.MethodPost, "/api/teams", `{"name":"B"}`)
	api.do(t, http.MethodPost, "/api/schedule", "")

	code, body := api.do(t, http.MethodPost, "/api/teams/proposals", `{"name":"C"}`)
	if code != http.StatusOK {
		t.Fatalf("proposal = %d", code)
	}
	var p struct {
		DiscardsSchedule bool `json:"discards_schedule"`
		MatchesDiscarded int  `json:"matches_discarded"`
	}
	json.Unmarshal(body["proposal"], &p)
	if !p.DiscardsSchedule || p.MatchesDiscarded != 2 {
		t.Fatalf("proposal = %+v", p)
	}

	code, _ = api.do(t, http.MethodPost, "/api/teams", `{"name":"C"}`)
	if code != http.StatusConflict {
		t.Fatalf("unconfirmed add = %d, want 409", code)
	}

	code, body = api.do(t, http.MethodPost, "/api/teams", `{"name":"C","confirm_discard":true}`)
	if code != http.StatusCreated {
		t.Fatalf("confirmed add = %d", code)
	}
	if st := decodeLeague(t, body); len(st.Teams) != 3 || len(st.Matches) != 0 {
		t.Fatalf("league = %+v", st)
	}
}

func TestErrorStatuses(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/teams", `{"name":"A"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty name", http.MethodPost, "/api/teams", `{"name":"  "}`, http.StatusBadRequest},
		{"duplicate", http.MethodPost, "/api/teams", `{"name":"A"}`, http.StatusConflict},
		{"unknown field", http.MethodPost, "/api/teams", `{"team":"B"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/teams", `{"name":`, http.StatusBadRequest},
		{"unknown team", http.MethodDelete, "/api/teams/Zed", "", http.StatusNotFound},
		{"one team schedule", http.MethodPost, "/api/schedule", "", http.StatusBadRequest},
		{"unknown match", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":1,"away_goals":0}`, http.StatusNotFound},
		{"negative goals", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":-1,"away_goals":0}`, http.StatusBadRequest},
		{"goals above limit", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":1000,"away_goals":0}`, http.StatusBadRequest},
		{"text goals", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":"two","away_goals":0}`, http.StatusBadRequest},
		{"fraction goals", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":1.5,"away_goals":0}`, http.StatusBadRequest},
		{"missing goals", http.MethodPut, "/api/matches/L1.QQ.Qg/result", `{"home_goals":1}`, http.StatusBadRequest},
		{"malformed match id", http.MethodPut, "/api/matches/match-0-1-home/result", `{"home_goals":1,"away_goals":0}`, http.StatusBadRequest},
		{"clear malformed match id", http.MethodDelete, "/api/matches/L7.QQ.Qg/result", "", http.StatusBadRequest},
		{"clear unknown", http.MethodDelete, "/api/matches/L1.QQ.Qg/result", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := api.do(t, tt.method, tt.path, tt.body)
			if code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", code, tt.want, body["error"])
			}
			if _, ok := body["error"]; !ok {
				t.Fatal("missing error message")
			}
		})
	}

	if api.store.Saves() != 1 {
		t.Fatalf("failed requests persisted: saves = %d", api.store.Saves())
	}
}

func TestRemoveTeamWithEscapedName(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodPost, "/api/teams", `{"name":"Red/Blue"}`)
	api.do(t, http.MethodPost, "/api/teams", `{"name":"100% Cotton"}`)

	code, body := api.do(t, http.MethodDelete, "/api/teams/"+url.PathEscape("Red/Blue"), "")
	if code != http.StatusOK {
		t.Fatalf("remove = %d %s", code, body["error"])
	}
	code, body = api.do(t, http.MethodDelete, "/api/teams/"+url.PathEscape("100% Cotton"), "")
	if code != http.StatusOK {
		t.Fatalf("remove = %d %s", code, body["error"])
	}
	if st := decodeLeague(t, body); len(st.Teams) != 0 {
		t.Fatalf("teams = %v", st.Teams)
	}
}

func TestWebSocketReceivesUpdates(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readUpdate := func() services.LeagueUpdate {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg struct {
			Type    string                `json:"type"`
			Payload services.LeagueUpdate `json:"payload"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != brackets.MessageLeagueUpdated {
			t.Fatalf("type = %q", msg.Type)
		}
		return msg.Payload
	}

	if initial := readUpdate(); len(initial.State.Teams) != 0 {
		t.Fatalf("initial = %+v", initial)
	}

	resp, err := http.Post(srv.URL+"/api/teams", "application/json", strings.NewReader(`{"name":"Lions"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	update := readUpdate()
	for update.Event == services.EventLeagueLoaded {
		update = readUpdate()
	}
	if update.Event != services.EventTeamAdded {
		t.Fatalf("event = %q", update.Event)
	}
	if len(update.State.Teams) != 1 || len(update.Standings) != 1 || update.Standings[0].Team != "Lions" {
		t.Fatalf("update = %+v", update)
	}
}
