package brackets

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const MessageLeagueUpdated = "LEAGUE_UPDATED"

type WebSocketMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	once    sync.Once
	initial func() []byte
	logger  *slog.Logger
}

// Hub fans league updates out to every connected websocket client. All
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves register/unregister/broadcast requests until ctx is done, then
// closes every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				c.close()
				delete(h.clients, c)
			}
			return nil

		case c := <-h.register:
			h.clients[c] = struct{}{}
			if c.initial != nil {
				if msg := c.initial(); msg != nil {
					c.send <- msg
				}
			}
			h.logger.Debug("websocket client registered", slog.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
				h.logger.Debug("websocket client unregistered", slog.Int("clients", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Warn("websocket client too slow, dropping it")
					delete(h.clients, c)
					c.close()
				}
			}
		}
	}
}

// Publish queues a message for every client. It never blocks the caller: if
// the hub is backed up the update is dropped, the next one carries full state.
func (h *Hub) Publish(messageType string, payload any) {
	b, err := json.Marshal(WebSocketMessage{Type: messageType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal websocket message", slog.String("type", messageType), slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- b:
	default:
		h.logger.Warn("websocket broadcast queue full, update dropped", slog.String("type", messageType))
	}
}

// Attach registers an upgraded connection and starts its pumps. initial, when
// non-nil, is called on the hub goroutine at registration and its result is the
// first message the client gets; every broadcast published after that call
// follows it.
func (h *Hub) Attach(conn *websocket.Conn, initial func() []byte) {
	c := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		initial: initial,
		logger:  h.logger,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *Client) close() {
	c.once.Do(func() { close(c.send) })
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("websocket write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
