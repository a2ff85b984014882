// ABOUTME: Live-reload websocket hub: browsers connect to /livereload and receive reload messages.
// ABOUTME: Writes are serialised per connection; a broadcast never blocks on a slow client for long.
package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// LiveReloadPath is where the hub is mounted when live reload is enabled.
const LiveReloadPath = "/livereload"

const reloadWriteTimeout = 5 * time.Second

// ReloadMessage is sent to every connected browser when content changes.
type ReloadMessage struct {
	Type     string `json:"type"`
	Revision string `json:"revision"`
}

type reloadClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *reloadClient) send(msg ReloadMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(reloadWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Hub tracks live-reload clients.
type Hub struct {
	upgrader websocket.Upgrader
	logger   logrus.FieldLogger

	mu      sync.Mutex
	clients map[*reloadClient]struct{}
	closed  bool
}

// NewHub creates an empty hub.
func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		logger:   logger,
		clients:  make(map[*reloadClient]struct{}),
	}
}

// ServeHTTP upgrades the request and holds the connection until the browser
// goes away. Incoming messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("live reload upgrade failed")
		return
	}

	c := &reloadClient{conn: conn}
	if !h.add(c) {
		conn.Close()
		return
	}
	defer h.remove(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("live reload client error")
			}
			return
		}
	}
}

func (h *Hub) add(c *reloadClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *reloadClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

func (h *Hub) snapshot() []*reloadClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*reloadClient, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends a reload message carrying revision to every client and
// returns how many received it. Clients that fail the write are dropped.
func (h *Hub) Broadcast(revision string) int {
	msg := ReloadMessage{Type: "reload", Revision: revision}
	clients := h.snapshot()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)
	for _, c := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.send(msg); err != nil {
				h.logger.WithError(err).Debug("dropping live reload client")
				h.remove(c)
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}()
	}
	wg.Wait()

	h.logger.WithFields(logrus.Fields{
		"revision": revision,
		"clients":  sent,
	}).Info("live reload broadcast")
	return sent
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*reloadClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*reloadClient]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		c.conn.Close()
	}
}
