package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubPublishNeverBlocks(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3*sendBuffer; i++ {
			h.Publish(MessageLeagueUpdated, map[string]int{"n": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
	if len(h.broadcast) != sendBuffer {
		t.Fatalf("queued = %d, want %d", len(h.broadcast), sendBuffer)
	}
}

func TestHubRunStopsWithContext(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	select {
	case <-h.done:
	default:
		t.Fatal("done channel not closed")
	}
}

func TestHubInitialMessagePrecedesLaterBroadcasts(t *testing.T) {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Attach(conn, func() []byte {
			// A mutation landing while the client registers.
			h.Publish(MessageLeagueUpdated, "after")
			b, _ := json.Marshal(WebSocketMessage{Type: MessageLeagueUpdated, Payload: "initial"})
			return b
		})
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for _, want := range []string{"initial", "after"} {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg WebSocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %q: %v", want, err)
		}
		if msg.Payload != want {
			t.Fatalf("payload = %v, want %q", msg.Payload, want)
		}
	}
}
