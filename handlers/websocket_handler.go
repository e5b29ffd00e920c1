package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Dosada05/league-tracker/brackets"
	"github.com/Dosada05/league-tracker/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub           *brackets.Hub
	leagueService services.LeagueService
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

// NewWebSocketHandler accepts connections from the given origins; "*" allows any.
func NewWebSocketHandler(hub *brackets.Hub, ls services.LeagueService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return &WebSocketHandler{
		hub:           hub,
		leagueService: ls,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if allowAll || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// ServeWs upgrades the request and streams league updates. The current state
// is taken when the hub registers the client and sent first, so a fresh client
// can render without a separate fetch and misses no update.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}

	ctx := r.Context()
	h.hub.Attach(conn, func() []byte {
		initial, err := json.Marshal(brackets.WebSocketMessage{
			Type:    brackets.MessageLeagueUpdated,
			Payload: h.leagueService.Snapshot(),
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to encode initial league state", slog.Any("error", err))
			return nil
		}
		return initial
	})
	h.logger.DebugContext(r.Context(), "websocket client connected", slog.String("remote", r.RemoteAddr))
}
